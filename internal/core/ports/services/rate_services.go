package services

import (
	"context"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider is the outbound port to an external rate feed: one call per
// refresh, returning every rate relative to the requested base currency.
// Any HTTP/JSON provider satisfying this shape is acceptable.
type RateProvider interface {
	FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}

// ConnectivityChecker reports whether the process currently has network
// connectivity. Injected so reconnect events can trigger refreshes and so
// tests can force offline behaviour.
type ConnectivityChecker interface {
	Online(ctx context.Context) bool
}

// RateStoreReaderSvc defines read operations over the current rate snapshot.
type RateStoreReaderSvc interface {
	// GetRate returns the rate converting fromCode into toCode. Same-currency
	// pairs return 1 without consulting the snapshot. Returns
	// apperrors.ErrConversionUnavailable when either code is missing.
	GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// Snapshot returns a copy of the working set with derived staleness.
	Snapshot() domain.RateSnapshot

	// IsStale reports whether the snapshot has exceeded the age threshold.
	// Informational only; stale rates are still served.
	IsStale() bool
}

// RateStoreRefresherSvc defines the refresh side of the rate store.
type RateStoreRefresherSvc interface {
	// Refresh fetches fresh rates and atomically swaps the snapshot.
	// Concurrent calls collapse into the in-flight fetch; all callers
	// observe that fetch's result. Returns apperrors.ErrRateFetchFailed
	// when offline or the provider errors, leaving the snapshot untouched.
	Refresh(ctx context.Context) error

	// OnOnline is the reconnect hook: triggers an immediate refresh.
	OnOnline(ctx context.Context)
}

// RateStoreSvcFacade combines the rate store's read and refresh surfaces.
type RateStoreSvcFacade interface {
	RateStoreReaderSvc
	RateStoreRefresherSvc
}
