package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ConverterService converts amounts between supported currencies via the
// base currency, rounding to the destination's minor unit. Pure reads: it
// never mutates the rate store.
type ConverterService struct {
	registry  portssvc.CurrencyRegistrySvc
	rateStore portssvc.RateStoreReaderSvc
}

// NewConverterService creates a new ConverterService.
func NewConverterService(registry portssvc.CurrencyRegistrySvc, rateStore portssvc.RateStoreReaderSvc) *ConverterService {
	return &ConverterService{registry: registry, rateStore: rateStore}
}

// Convert turns amount in fromCode into toCode. Same-currency conversions
// return the amount untouched, with no store lookup and no extra rounding.
// Amounts are decimal end to end and must be non-negative; rounding is
// half-up on the decimal value.
func (s *ConverterService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.ConversionResult, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	if fromCode == toCode {
		return &domain.ConversionResult{
			ConvertedAmount: amount,
			Rate:            decimal.NewFromInt(1),
			Source:          domain.RateSourceSameCurrency,
			RateDate:        s.rateStore.Snapshot().LastUpdated,
			IsStale:         false,
		}, nil
	}

	if _, err := s.registry.GetCurrency(ctx, fromCode); err != nil {
		return nil, err
	}
	toCurrency, err := s.registry.GetCurrency(ctx, toCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateStore.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	snap := s.rateStore.Snapshot()
	return &domain.ConversionResult{
		ConvertedAmount: amount.Mul(rate).Round(int32(toCurrency.Precision)),
		Rate:            rate,
		Source:          snap.Source,
		RateDate:        snap.LastUpdated,
		IsStale:         snap.IsStale,
	}, nil
}
