package utils

import (
	"fmt"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision
// for a given currency.
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).StringFixed(int32(currency.Precision))
}

// FormatRateTransparency renders the transparency line shown next to any
// converted amount, e.g. "Converted using rate 0.920000 (api) on 2024-03-01".
func FormatRateTransparency(result *domain.ConversionResult) string {
	return fmt.Sprintf("Converted using rate %s (%s) on %s",
		result.Rate.StringFixed(6), result.Source, result.RateDate.Format(time.DateOnly))
}
