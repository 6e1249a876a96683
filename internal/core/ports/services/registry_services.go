package services

import (
	"context"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

// CurrencyRegistrySvc is the read surface of the currency registry.
// Reference data only: currencies are seeded at load and deactivated, never
// deleted.
type CurrencyRegistrySvc interface {
	// ListActive returns all active currencies ordered by code.
	ListActive(ctx context.Context) []domain.Currency

	// GetCurrency retrieves a currency by code. Returns
	// apperrors.ErrUnsupportedCurrency when the code is unknown.
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)

	// Search matches active currencies by case-insensitive substring of
	// code or name.
	Search(ctx context.Context, query string) []domain.Currency

	// PopularSubset returns the picker ordering: the base currency first,
	// then up to seven more by configured priority.
	PopularSubset(ctx context.Context) []domain.Currency
}
