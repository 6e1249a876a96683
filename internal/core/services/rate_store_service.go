package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// fallbackRates seeds a never-populated store so conversions keep working
// before the first successful fetch. Base-currency relative (USD).
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"INR": decimal.RequireFromString("83.45"),
	"JPY": decimal.RequireFromString("149.50"),
	"CAD": decimal.RequireFromString("1.36"),
	"AUD": decimal.RequireFromString("1.52"),
	"CHF": decimal.RequireFromString("0.88"),
	"CNY": decimal.RequireFromString("7.24"),
	"SGD": decimal.RequireFromString("1.34"),
	"AED": decimal.RequireFromString("3.67"),
	"NZD": decimal.RequireFromString("1.66"),
}

// RateStoreOptions tune refresh and staleness behaviour.
type RateStoreOptions struct {
	BaseCurrency        string
	RefreshInterval     time.Duration
	StaleThreshold      time.Duration
	FetchTimeout        time.Duration
	OnlineCheckInterval time.Duration
}

// refreshCall is one in-flight fetch; concurrent Refresh callers share it.
type refreshCall struct {
	done chan struct{}
	err  error
}

// RateStoreService owns the current rate snapshot, its refresh cycle and the
// staleness rule. execute/convert paths only read the snapshot under RLock;
// refreshes swap it atomically, serialized through a single-flight guard.
type RateStoreService struct {
	opts         RateStoreOptions
	provider     portssvc.RateProvider
	connectivity portssvc.ConnectivityChecker
	history      portsrepo.RateHistoryWriter
	logger       *slog.Logger
	now          func() time.Time

	mu       sync.RWMutex
	snapshot domain.RateSnapshot
	state    domain.RefreshState

	callMu   sync.Mutex
	inflight *refreshCall
}

// NewRateStoreService constructs the store seeded from the static fallback
// table, so rates are queryable before the first refresh completes.
func NewRateStoreService(opts RateStoreOptions, provider portssvc.RateProvider, connectivity portssvc.ConnectivityChecker, history portsrepo.RateHistoryWriter, logger *slog.Logger) *RateStoreService {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Minute
	}
	if opts.StaleThreshold <= 0 {
		opts.StaleThreshold = 24 * time.Hour
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.OnlineCheckInterval <= 0 {
		opts.OnlineCheckInterval = 30 * time.Second
	}
	opts.BaseCurrency = strings.ToUpper(opts.BaseCurrency)

	s := &RateStoreService{
		opts:         opts,
		provider:     provider,
		connectivity: connectivity,
		history:      history,
		logger:       logger.With(slog.String("component", "rate_store")),
		now:          time.Now,
		state:        domain.RefreshIdle,
	}
	s.seedFallback()
	return s
}

func (s *RateStoreService) seedFallback() {
	rates := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	rates[s.opts.BaseCurrency] = decimal.NewFromInt(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	// LastUpdated stays zero: the seed predates any fetch, so it must read
	// as stale rather than passing static rates off as fresh.
	s.snapshot = domain.RateSnapshot{
		BaseCurrency: s.opts.BaseCurrency,
		Rates:        rates,
		Source:       domain.RateSourceFallback,
	}
}

// IsStale reports whether the snapshot exceeds the age threshold. Derived,
// never stored; a stale rate is still the best available estimate.
func (s *RateStoreService) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isStaleLocked()
}

func (s *RateStoreService) isStaleLocked() bool {
	return s.now().Sub(s.snapshot.LastUpdated) > s.opts.StaleThreshold
}

// Snapshot returns a copy of the working set with derived metadata filled in.
func (s *RateStoreService) Snapshot() domain.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rates := make(map[string]decimal.Decimal, len(s.snapshot.Rates))
	for code, rate := range s.snapshot.Rates {
		rates[code] = rate
	}
	snap := s.snapshot
	snap.Rates = rates
	snap.IsStale = s.isStaleLocked()
	snap.State = s.state
	return snap
}

// GetRate returns the rate converting fromCode into toCode, computed through
// the base currency. Same-currency pairs return 1 without touching the
// snapshot.
func (s *RateStoreService) GetRate(_ context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fromRate, okFrom := s.snapshot.Rates[fromCode]
	toRate, okTo := s.snapshot.Rates[toCode]
	if !okFrom || !okTo || fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", apperrors.ErrConversionUnavailable, fromCode, toCode)
	}
	return toRate.Div(fromRate), nil
}

// Refresh fetches fresh rates and swaps the snapshot. Concurrent callers
// collapse into the in-flight fetch and all observe its result.
func (s *RateStoreService) Refresh(ctx context.Context) error {
	s.callMu.Lock()
	if call := s.inflight; call != nil {
		s.callMu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	s.inflight = call
	s.callMu.Unlock()

	call.err = s.doRefresh(ctx)

	s.callMu.Lock()
	s.inflight = nil
	s.callMu.Unlock()
	close(call.done)
	return call.err
}

func (s *RateStoreService) doRefresh(ctx context.Context) error {
	s.setState(domain.RefreshFetching)

	if s.connectivity != nil && !s.connectivity.Online(ctx) {
		s.setState(domain.RefreshFailed)
		s.logger.Warn("Skipping rate refresh while offline")
		return fmt.Errorf("%w: offline", apperrors.ErrRateFetchFailed)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	rates, err := s.provider.FetchRates(fetchCtx, s.opts.BaseCurrency)
	if err != nil {
		s.setState(domain.RefreshFailed)
		s.logger.Error("Rate provider fetch failed, keeping previous snapshot", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", apperrors.ErrRateFetchFailed, err)
	}
	if len(rates) == 0 {
		s.setState(domain.RefreshFailed)
		return fmt.Errorf("%w: provider returned no rates", apperrors.ErrRateFetchFailed)
	}

	fetchedAt := s.now()
	clean := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if rate.LessThanOrEqual(decimal.Zero) {
			s.logger.Warn("Dropping non-positive rate from provider", slog.String("currency_code", code))
			continue
		}
		clean[strings.ToUpper(code)] = rate
	}
	clean[s.opts.BaseCurrency] = decimal.NewFromInt(1)

	s.mu.Lock()
	s.snapshot = domain.RateSnapshot{
		BaseCurrency: s.opts.BaseCurrency,
		Rates:        clean,
		LastUpdated:  fetchedAt,
		Source:       domain.RateSourceAPI,
	}
	s.state = domain.RefreshSucceeded
	s.mu.Unlock()

	s.logger.Info("Rate snapshot refreshed", slog.Int("count", len(clean)), slog.Time("fetched_at", fetchedAt))
	s.persistHistory(ctx, clean, fetchedAt)
	return nil
}

// persistHistory records the fetched rates for later lookup. Best-effort:
// a failed write is logged and absorbed, never failing the refresh.
func (s *RateStoreService) persistHistory(ctx context.Context, rates map[string]decimal.Decimal, fetchedAt time.Time) {
	if s.history == nil {
		return
	}
	for code, rate := range rates {
		if code == s.opts.BaseCurrency {
			continue
		}
		row := domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: s.opts.BaseCurrency,
			ToCurrencyCode:   code,
			Rate:             rate,
			Source:           domain.RateSourceAPI,
			FetchedAt:        fetchedAt,
		}
		if err := s.history.UpsertRate(ctx, row); err != nil {
			s.logger.Warn("Failed to persist historical rate",
				slog.String("currency_code", code),
				slog.String("error", fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailed, err).Error()))
		}
	}
}

func (s *RateStoreService) setState(state domain.RefreshState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// OnOnline is the reconnect hook: triggers an immediate refresh.
func (s *RateStoreService) OnOnline(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Refresh on reconnect failed", slog.String("error", err.Error()))
	}
}

func (s *RateStoreService) online(ctx context.Context) bool {
	return s.connectivity == nil || s.connectivity.Online(ctx)
}

// RunAutoRefresh drives the refresh policy: an immediate attempt when online,
// one per interval while online, none while offline, and one as soon as
// connectivity returns after an outage. Blocks until ctx is cancelled.
func (s *RateStoreService) RunAutoRefresh(ctx context.Context) {
	online := s.online(ctx)
	if online {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("Initial rate refresh failed", slog.String("error", err.Error()))
		}
	}

	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()
	// Connectivity is polled on a much shorter cadence than the refresh
	// interval so an offline->online transition refreshes right away instead
	// of waiting out the current tick.
	probe := time.NewTicker(s.opts.OnlineCheckInterval)
	defer probe.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-probe.C:
			wasOnline := online
			online = s.online(ctx)
			if !wasOnline && online {
				s.logger.Info("Connectivity restored, refreshing rates")
				s.OnOnline(ctx)
			}
		case <-ticker.C:
			online = s.online(ctx)
			if !online {
				continue
			}
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("Scheduled rate refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunStalenessMonitor periodically logs when the snapshot crosses the age
// threshold. Informational only; conversions keep using stale rates.
func (s *RateStoreService) RunStalenessMonitor(ctx context.Context, checkInterval time.Duration) {
	if checkInterval <= 0 {
		checkInterval = time.Hour
	}
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.IsStale() {
				snap := s.Snapshot()
				s.logger.Warn("Rate snapshot is stale",
					slog.Time("last_updated", snap.LastUpdated),
					slog.String("source", string(snap.Source)))
			}
		}
	}
}
