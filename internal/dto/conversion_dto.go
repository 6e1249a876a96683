package dto

import (
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the data needed for a display-only conversion preview.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currency_code"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currency_code"`
}

// ConvertResponse carries the converted amount plus full transparency of how
// it was produced, e.g. "Converted using rate 0.920000 (api) on 2024-03-01".
type ConvertResponse struct {
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
	Source          string          `json:"source"`
	RateDate        time.Time       `json:"rateDate"`
	IsStale         bool            `json:"isStale"`
	Display         string          `json:"display"`
}

// ToConvertResponse converts a domain.ConversionResult to its DTO.
func ToConvertResponse(res *domain.ConversionResult, display string) ConvertResponse {
	return ConvertResponse{
		ConvertedAmount: res.ConvertedAmount,
		Rate:            res.Rate,
		Source:          string(res.Source),
		RateDate:        res.RateDate,
		IsStale:         res.IsStale,
		Display:         display,
	}
}
