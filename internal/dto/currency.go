package dto

import (
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Precision    int    `json:"precision"`
	IsActive     bool   `json:"isActive"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: curr.CurrencyCode,
		Name:         curr.Name,
		Symbol:       curr.Symbol,
		Precision:    curr.Precision,
		IsActive:     curr.IsActive,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
