package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// Failover chains providers and tries them in order until one answers.
// Every attempt is reported to the health monitor under
// "chain:provider" so the API can expose per-vendor health.
type Failover struct {
	name      string
	providers []Provider
	monitor   *HealthMonitor
	logger    *logger.Logger
}

// NewFailover builds a chain named name (예: "primary", "themes") over
// the given providers. Nil entries are skipped; at least one real
// provider is required.
func NewFailover(name string, monitor *HealthMonitor, log *logger.Logger, providers ...Provider) (*Failover, error) {
	chain := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("failover chain %q requires at least one provider", name)
	}
	return &Failover{name: name, providers: chain, monitor: monitor, logger: log}, nil
}

// Name implements Provider, returning the chain name.
func (f *Failover) Name() string { return f.name }

// Labels returns the chained provider names in try order.
func (f *Failover) Labels() []string {
	labels := make([]string, 0, len(f.providers))
	for _, p := range f.providers {
		labels = append(labels, p.Name())
	}
	return labels
}

// Fundamentals implements Provider with failover semantics.
func (f *Failover) Fundamentals(ctx context.Context, ticker string) (Fundamentals, error) {
	var errs []string
	for _, p := range f.providers {
		result, err := p.Fundamentals(ctx, ticker)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", p.Name(), err))
			f.recordFailure(p, ticker, err)
			continue
		}
		f.recordSuccess(p)
		return result, nil
	}
	return nil, f.exhausted(ticker, errs)
}

// PriceSeries implements Provider with failover semantics.
func (f *Failover) PriceSeries(ctx context.Context, ticker string, limit int) (contracts.PricePayload, error) {
	var errs []string
	for _, p := range f.providers {
		result, err := p.PriceSeries(ctx, ticker, limit)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", p.Name(), err))
			f.recordFailure(p, ticker, err)
			continue
		}
		f.recordSuccess(p)
		return result, nil
	}
	return contracts.PricePayload{}, f.exhausted(ticker, errs)
}

func (f *Failover) recordSuccess(p Provider) {
	if f.monitor != nil {
		f.monitor.RecordSuccess(f.name + ":" + p.Name())
	}
}

func (f *Failover) recordFailure(p Provider, ticker string, err error) {
	if f.monitor != nil {
		f.monitor.RecordFailure(f.name+":"+p.Name(), err.Error())
	}
	f.logger.WithFields(map[string]interface{}{
		"chain":    f.name,
		"provider": p.Name(),
		"ticker":   ticker,
		"error":    err.Error(),
	}).Warn("Provider failed, trying next in chain")
}

func (f *Failover) exhausted(ticker string, errs []string) error {
	return &ProviderError{
		Provider: f.name,
		Message:  fmt.Sprintf("all providers failed for %s: %s", ticker, strings.Join(errs, "; ")),
	}
}
