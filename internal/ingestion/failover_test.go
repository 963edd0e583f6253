package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/internal/contracts"
)

// stubProvider is a scriptable in-memory provider for chain and
// manager tests.
type stubProvider struct {
	name       string
	payload    Fundamentals
	prices     contracts.PricePayload
	fundErr    error
	priceErr   error
	fundCalls  int
	priceCalls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fundamentals(_ context.Context, _ string) (Fundamentals, error) {
	s.fundCalls++
	if s.fundErr != nil {
		return nil, s.fundErr
	}
	return s.payload, nil
}

func (s *stubProvider) PriceSeries(_ context.Context, _ string, _ int) (contracts.PricePayload, error) {
	s.priceCalls++
	if s.priceErr != nil {
		return contracts.PricePayload{}, s.priceErr
	}
	return s.prices, nil
}

func TestFailoverFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "alpha", payload: Fundamentals{"source": "alpha"}}
	second := &stubProvider{name: "beta", payload: Fundamentals{"source": "beta"}}
	monitor := NewHealthMonitor()

	chain, err := NewFailover("primary", monitor, testLogger(), first, second)
	require.NoError(t, err)

	payload, err := chain.Fundamentals(context.Background(), "CLS")
	require.NoError(t, err)
	assert.Equal(t, "alpha", payload.Str("", "source"))
	assert.Equal(t, 1, first.fundCalls)
	assert.Zero(t, second.fundCalls, "second provider must not be touched on success")

	statuses := monitor.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, "primary:alpha", statuses[0].Name)
	assert.EqualValues(t, 1, statuses[0].SuccessCount)
}

func TestFailoverFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "alpha", fundErr: errors.New("quota exceeded")}
	second := &stubProvider{name: "beta", payload: Fundamentals{"source": "beta"}}
	monitor := NewHealthMonitor()

	chain, err := NewFailover("primary", monitor, testLogger(), first, second)
	require.NoError(t, err)

	payload, err := chain.Fundamentals(context.Background(), "CLS")
	require.NoError(t, err)
	assert.Equal(t, "beta", payload.Str("", "source"))

	statuses := monitor.Statuses()
	require.Len(t, statuses, 2)
	assert.Equal(t, "primary:alpha", statuses[0].Name)
	assert.EqualValues(t, 1, statuses[0].FailureCount)
	assert.Equal(t, "quota exceeded", statuses[0].LastError)
	assert.NotNil(t, statuses[0].LastErrorAt)
	assert.Equal(t, "primary:beta", statuses[1].Name)
	assert.EqualValues(t, 1, statuses[1].SuccessCount)
	assert.NotNil(t, statuses[1].LastSuccessAt)
}

func TestFailoverAllProvidersFailed(t *testing.T) {
	first := &stubProvider{name: "alpha", priceErr: errors.New("down")}
	second := &stubProvider{name: "beta", priceErr: errors.New("also down")}

	chain, err := NewFailover("primary", NewHealthMonitor(), testLogger(), first, second)
	require.NoError(t, err)

	_, err = chain.PriceSeries(context.Background(), "CLS", 365)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "primary", provErr.Provider)
	assert.Contains(t, provErr.Message, "all providers failed for CLS")
	assert.Contains(t, provErr.Message, "alpha: down")
	assert.Contains(t, provErr.Message, "beta: also down")
}

func TestFailoverSkipsNilProviders(t *testing.T) {
	only := &stubProvider{name: "alpha", payload: Fundamentals{}}

	chain, err := NewFailover("primary", nil, testLogger(), nil, only, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, chain.Labels())

	_, err = chain.Fundamentals(context.Background(), "CLS")
	require.NoError(t, err, "nil monitor must be tolerated")
}

func TestNewFailoverRequiresProvider(t *testing.T) {
	_, err := NewFailover("themes", NewHealthMonitor(), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one provider")
}

func TestFailoverName(t *testing.T) {
	chain, err := NewFailover("themes", nil, testLogger(), &stubProvider{name: "fmp"})
	require.NoError(t, err)
	assert.Equal(t, "themes", chain.Name())
}
