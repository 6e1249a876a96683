package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRepository implements the currency repository using pgxpool.
type PgxCurrencyRepository struct {
	db *pgxpool.Pool
}

// NewCurrencyRepository creates a new PgxCurrencyRepository.
func NewCurrencyRepository(db *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{db: db}
}

// SaveCurrency inserts a new currency row.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (currency_code, name, symbol, precision, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		currency.CurrencyCode, currency.Name, currency.Symbol, currency.Precision, currency.IsActive,
	)
	if err != nil {
		return fmt.Errorf("error inserting currency: %w", err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT currency_code, name, symbol, precision, is_active
		FROM currencies
		WHERE currency_code = $1
	`
	currency := &domain.Currency{}
	err := r.db.QueryRow(ctx, query, currencyCode).Scan(
		&currency.CurrencyCode, &currency.Name, &currency.Symbol, &currency.Precision, &currency.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding currency: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves every configured currency ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_code, name, symbol, precision, is_active
		FROM currencies
		ORDER BY currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.CurrencyCode, &c.Name, &c.Symbol, &c.Precision, &c.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning currency row: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rows: %w", err)
	}
	return currencies, nil
}
