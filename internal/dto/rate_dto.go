package dto

import (
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSnapshotResponse exposes the current working set with its transparency
// metadata (source, age, staleness).
type RateSnapshotResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	LastUpdated  time.Time                  `json:"lastUpdated"`
	Source       string                     `json:"source"`
	IsStale      bool                       `json:"isStale"`
	State        string                     `json:"state"`
}

// ToRateSnapshotResponse converts a domain.RateSnapshot to its DTO.
func ToRateSnapshotResponse(snap domain.RateSnapshot) RateSnapshotResponse {
	return RateSnapshotResponse{
		BaseCurrency: snap.BaseCurrency,
		Rates:        snap.Rates,
		LastUpdated:  snap.LastUpdated,
		Source:       string(snap.Source),
		IsStale:      snap.IsStale,
		State:        string(snap.State),
	}
}

// HistoricalRateResponse defines the data returned for a historical rate lookup.
type HistoricalRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	FetchedAt        time.Time       `json:"fetchedAt"`
}

// ToHistoricalRateResponse converts a domain.ExchangeRate to its DTO.
func ToHistoricalRateResponse(rate *domain.ExchangeRate) HistoricalRateResponse {
	return HistoricalRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Source:           string(rate.Source),
		FetchedAt:        rate.FetchedAt,
	}
}
