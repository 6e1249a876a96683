package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateHistoryRepository implements the historical-rate repository using
// pgxpool. Rows are insert-only; each fetch inserts new rows rather than
// updating old ones.
type PgxRateHistoryRepository struct {
	db *pgxpool.Pool
}

// NewRateHistoryRepository creates a new PgxRateHistoryRepository.
func NewRateHistoryRepository(db *pgxpool.Pool) *PgxRateHistoryRepository {
	return &PgxRateHistoryRepository{db: db}
}

// UpsertRate persists one rate row. The (pair, day) unique constraint makes
// duplicate-day refreshes a no-op rather than an error.
func (r *PgxRateHistoryRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, source, fetched_at, rate_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (from_currency_code, to_currency_code, rate_date) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate,
		string(rate.Source), rate.FetchedAt, rate.FetchedAt.UTC().Truncate(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// FindRateOn retrieves the rate for a pair effective on the given day, or
// the most recent one before it.
func (r *PgxRateHistoryRepository) FindRateOn(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, source, fetched_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1
	`
	rate := &domain.ExchangeRate{}
	var source string
	err := r.db.QueryRow(ctx, query, fromCode, toCode, day.UTC().Truncate(24*time.Hour)).Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &source, &rate.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	rate.Source = domain.RateSource(source)
	return rate, nil
}
