package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_FallsBackWhenRepositoryFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCurrencyRepository)
	repo.On("ListCurrencies", ctx).Return(nil, fmt.Errorf("connection refused")).Once()

	registry := services.NewCurrencyRegistryService(ctx, repo, "USD", discardLogger())

	active := registry.ListActive(ctx)
	assert.GreaterOrEqual(t, len(active), 8, "fallback set must hold at least 8 currencies")
	repo.AssertExpectations(t)
}

func TestRegistry_FallsBackWhenRepositoryEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCurrencyRepository)
	repo.On("ListCurrencies", ctx).Return([]domain.Currency{}, nil).Once()

	registry := services.NewCurrencyRegistryService(ctx, repo, "USD", discardLogger())

	assert.GreaterOrEqual(t, len(registry.ListActive(ctx)), 8)
}

func TestRegistry_LoadsFromRepository(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCurrencyRepository)
	repo.On("ListCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "USD", Name: "US Dollar", Precision: 2, IsActive: true},
		{CurrencyCode: "EUR", Name: "Euro", Precision: 2, IsActive: true},
		{CurrencyCode: "VEB", Name: "Old Bolivar", Precision: 2, IsActive: false},
	}, nil).Once()

	registry := services.NewCurrencyRegistryService(ctx, repo, "USD", discardLogger())

	active := registry.ListActive(ctx)
	require.Len(t, active, 2)
	assert.Equal(t, "EUR", active[0].CurrencyCode)
	assert.Equal(t, "USD", active[1].CurrencyCode)

	// Deactivated currencies still resolve for historical display.
	veb, err := registry.GetCurrency(ctx, "VEB")
	require.NoError(t, err)
	assert.False(t, veb.IsActive)
}

func TestRegistry_GetCurrency_Unknown(t *testing.T) {
	ctx := context.Background()
	registry := services.NewCurrencyRegistryService(ctx, nil, "USD", discardLogger())

	_, err := registry.GetCurrency(ctx, "ZZZ")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
	assert.Contains(t, err.Error(), "ZZZ")
}

func TestRegistry_GetCurrency_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	registry := services.NewCurrencyRegistryService(ctx, nil, "USD", discardLogger())

	c, err := registry.GetCurrency(ctx, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", c.CurrencyCode)
}

func TestRegistry_Search(t *testing.T) {
	ctx := context.Background()
	registry := services.NewCurrencyRegistryService(ctx, nil, "USD", discardLogger())

	byName := registry.Search(ctx, "rupee")
	require.Len(t, byName, 1)
	assert.Equal(t, "INR", byName[0].CurrencyCode)

	byCode := registry.Search(ctx, "gb")
	require.Len(t, byCode, 1)
	assert.Equal(t, "GBP", byCode[0].CurrencyCode)

	assert.Empty(t, registry.Search(ctx, "no such currency"))
}

func TestRegistry_PopularSubset_BaseFirst(t *testing.T) {
	ctx := context.Background()

	for _, base := range []string{"USD", "EUR", "INR"} {
		registry := services.NewCurrencyRegistryService(ctx, nil, base, discardLogger())
		popular := registry.PopularSubset(ctx)

		require.NotEmpty(t, popular, "base %s", base)
		assert.Equal(t, base, popular[0].CurrencyCode, "base currency must be first")
		assert.LessOrEqual(t, len(popular), 8)

		seen := map[string]bool{}
		for _, c := range popular {
			assert.False(t, seen[c.CurrencyCode], "no duplicates in popular subset")
			seen[c.CurrencyCode] = true
		}
	}
}

func TestRegistry_PopularSubset_Deterministic(t *testing.T) {
	ctx := context.Background()
	registry := services.NewCurrencyRegistryService(ctx, nil, "USD", discardLogger())

	first := registry.PopularSubset(ctx)
	second := registry.PopularSubset(ctx)
	assert.Equal(t, first, second)
}
