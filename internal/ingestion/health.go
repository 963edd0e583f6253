package ingestion

import (
	"sync"
	"time"
)

// ProviderStatus is the health record for one provider inside a
// failover chain, keyed as "chain:provider" (예: "primary:finnhub").
type ProviderStatus struct {
	Name          string     `json:"name"`
	SuccessCount  int64      `json:"success_count"`
	FailureCount  int64      `json:"failure_count"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	LastErrorAt   *time.Time `json:"last_error_at,omitempty"`
}

// HealthMonitor tracks per-provider success/failure over the process
// lifetime. Failover chains report into it on every attempt.
//
// ⭐ SSOT: 프로바이더 헬스 집계는 여기서만.
type HealthMonitor struct {
	mu       sync.Mutex
	statuses map[string]*ProviderStatus
	order    []string // 최초 관측 순서 유지
}

// NewHealthMonitor creates an empty monitor.
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{statuses: make(map[string]*ProviderStatus)}
}

// RecordSuccess notes a successful call for name.
func (m *HealthMonitor) RecordSuccess(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.status(name)
	status.SuccessCount++
	now := time.Now().UTC()
	status.LastSuccessAt = &now
}

// RecordFailure notes a failed call for name with its error message.
func (m *HealthMonitor) RecordFailure(name string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.status(name)
	status.FailureCount++
	status.LastError = message
	now := time.Now().UTC()
	status.LastErrorAt = &now
}

// Statuses returns a snapshot of all provider records in first-seen
// order.
func (m *HealthMonitor) Statuses() []ProviderStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ProviderStatus, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.statuses[name])
	}
	return out
}

// status returns the record for name, creating it on first sight.
// Caller holds the lock.
func (m *HealthMonitor) status(name string) *ProviderStatus {
	if existing, ok := m.statuses[name]; ok {
		return existing
	}
	created := &ProviderStatus{Name: name}
	m.statuses[name] = created
	m.order = append(m.order, name)
	return created
}
