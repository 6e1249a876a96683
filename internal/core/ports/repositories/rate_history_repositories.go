package repositories

import (
	"context"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

// RateHistoryReader defines read operations over persisted historical rates.
type RateHistoryReader interface {
	// FindRateOn retrieves the rate for a pair effective on the given day,
	// or the most recent one before it. Returns apperrors.ErrNotFound when
	// no rate predates the day.
	FindRateOn(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error)
}

// RateHistoryWriter defines write operations for historical rates.
type RateHistoryWriter interface {
	// UpsertRate persists one rate row. A duplicate (pair, day) conflict is
	// ignored, not an error.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// RateHistoryRepositoryFacade combines historical-rate repository interfaces.
type RateHistoryRepositoryFacade interface {
	RateHistoryReader
	RateHistoryWriter
}
