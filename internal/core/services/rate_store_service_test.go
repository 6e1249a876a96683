package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
	err   error
	calls int32
	gate  chan struct{} // when set, FetchRates blocks until closed
}

func (p *stubProvider) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	out := make(map[string]decimal.Decimal, len(p.rates))
	for k, v := range p.rates {
		out[k] = v
	}
	return out, nil
}

type stubConnectivity struct{ online bool }

func (s stubConnectivity) Online(context.Context) bool { return s.online }

type flipConnectivity struct{ online atomic.Bool }

func (c *flipConnectivity) Online(context.Context) bool { return c.online.Load() }

func (c *flipConnectivity) set(v bool) { c.online.Store(v) }

type stubHistory struct {
	mu   sync.Mutex
	rows []domain.ExchangeRate
	err  error
}

func (h *stubHistory) UpsertRate(_ context.Context, rate domain.ExchangeRate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.rows = append(h.rows, rate)
	return nil
}

func newTestStore(t *testing.T, provider *stubProvider, connectivity stubConnectivity, history *stubHistory) *RateStoreService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	var histWriter portsrepo.RateHistoryWriter
	if history != nil {
		histWriter = history
	}
	return NewRateStoreService(RateStoreOptions{
		BaseCurrency:   "USD",
		StaleThreshold: 24 * time.Hour,
		FetchTimeout:   time.Second,
	}, provider, connectivity, histWriter, logger)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestRateStore_SeedsFallbackOnConstruction(t *testing.T) {
	s := newTestStore(t, &stubProvider{}, stubConnectivity{online: false}, nil)

	snap := s.Snapshot()
	assert.Equal(t, domain.RateSourceFallback, snap.Source)
	assert.True(t, snap.Rates["USD"].Equal(decimal.NewFromInt(1)), "base rate must be 1")
	assert.True(t, snap.IsStale, "seed data predates any fetch and must read as stale")
	assert.True(t, snap.LastUpdated.IsZero())

	rate, err := s.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))
}

func TestRateStore_GetRate_SameCurrencySkipsSnapshot(t *testing.T) {
	s := newTestStore(t, &stubProvider{}, stubConnectivity{online: false}, nil)

	rate, err := s.GetRate(context.Background(), "XYZ", "XYZ")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestRateStore_GetRate_MissingCodeUnavailable(t *testing.T) {
	s := newTestStore(t, &stubProvider{}, stubConnectivity{online: false}, nil)

	_, err := s.GetRate(context.Background(), "GBP", "XXX")
	assert.ErrorIs(t, err, apperrors.ErrConversionUnavailable)
}

func TestRateStore_RefreshSuccessSwapsSnapshot(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.95"),
		"GBP": decimal.RequireFromString("0.80"),
	}}
	history := &stubHistory{}
	s := newTestStore(t, provider, stubConnectivity{online: true}, history)

	require.NoError(t, s.Refresh(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, domain.RateSourceAPI, snap.Source)
	assert.Equal(t, domain.RefreshSucceeded, snap.State)
	assert.True(t, snap.Rates["USD"].Equal(decimal.NewFromInt(1)))
	assert.True(t, snap.Rates["EUR"].Equal(decimal.RequireFromString("0.95")))

	// Historical rows persisted for every non-base currency.
	history.mu.Lock()
	defer history.mu.Unlock()
	assert.Len(t, history.rows, 2)
}

func TestRateStore_RefreshFailureKeepsSnapshot(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.95")}}
	s := newTestStore(t, provider, stubConnectivity{online: true}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	provider.mu.Lock()
	provider.err = errors.New("provider down")
	provider.mu.Unlock()

	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRateFetchFailed)

	// Previous snapshot remains queryable unchanged.
	snap := s.Snapshot()
	assert.Equal(t, domain.RefreshFailed, snap.State)
	assert.True(t, snap.Rates["EUR"].Equal(decimal.RequireFromString("0.95")))
	rate, err := s.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.95")))
}

func TestRateStore_RefreshOfflineFailsWithoutFetch(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.95")}}
	s := newTestStore(t, provider, stubConnectivity{online: false}, nil)

	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRateFetchFailed)
	assert.EqualValues(t, 0, atomic.LoadInt32(&provider.calls))
	assert.Equal(t, domain.RateSourceFallback, s.Snapshot().Source)
}

func TestRateStore_ConcurrentRefreshesCollapse(t *testing.T) {
	gate := make(chan struct{})
	provider := &stubProvider{
		rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.93")},
		gate:  gate,
	}
	s := newTestStore(t, provider, stubConnectivity{online: true}, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Refresh(context.Background())
		}(i)
	}

	// Let both callers pile onto the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls), "exactly one provider call")
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.True(t, s.Snapshot().Rates["EUR"].Equal(decimal.RequireFromString("0.93")))
}

func TestRateStore_PersistenceFailureDoesNotFailRefresh(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.95")}}
	history := &stubHistory{err: errors.New("disk full")}
	s := newTestStore(t, provider, stubConnectivity{online: true}, history)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, domain.RateSourceAPI, s.Snapshot().Source)
}

func TestRateStore_StalenessDerivedFromAge(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{"INR": decimal.RequireFromString("83.45")}}
	s := newTestStore(t, provider, stubConnectivity{online: true}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	assert.False(t, s.IsStale())

	// Move the clock past the threshold; nothing is stored for staleness.
	base := time.Now()
	s.now = func() time.Time { return base.Add(25 * time.Hour) }
	assert.True(t, s.IsStale())
	assert.True(t, s.Snapshot().IsStale)

	// Rates are still served while stale.
	rate, err := s.GetRate(context.Background(), "USD", "INR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("83.45")))
}

func TestRateStore_RefreshOnReconnect(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.95")}}
	conn := &flipConnectivity{}
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	s := NewRateStoreService(RateStoreOptions{
		BaseCurrency:        "USD",
		RefreshInterval:     time.Hour,
		OnlineCheckInterval: 5 * time.Millisecond,
		FetchTimeout:        time.Second,
	}, provider, conn, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunAutoRefresh(ctx)

	// While offline nothing is fetched.
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, atomic.LoadInt32(&provider.calls))

	// Coming back online refreshes right away, not at the next hourly tick.
	conn.set(true)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&provider.calls) > 0
	}, 2*time.Second, 5*time.Millisecond, "reconnect must trigger an immediate refresh")
	require.Eventually(t, func() bool {
		return s.Snapshot().Source == domain.RateSourceAPI
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRateStore_DropsNonPositiveProviderRates(t *testing.T) {
	provider := &stubProvider{rates: map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.95"),
		"BAD": decimal.Zero,
	}}
	s := newTestStore(t, provider, stubConnectivity{online: true}, nil)

	require.NoError(t, s.Refresh(context.Background()))
	_, ok := s.Snapshot().Rates["BAD"]
	assert.False(t, ok)
}
