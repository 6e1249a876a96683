package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a rate (or a conversion built on it) came from.
type RateSource string

const (
	RateSourceAPI          RateSource = "api"
	RateSourceManual       RateSource = "manual"
	RateSourceFallback     RateSource = "fallback"
	RateSourceSameCurrency RateSource = "same_currency"
)

// ExchangeRate is one historical rate row: base currency to target currency
// at a point in time. Rows are insert-only; a refresh inserts new rows rather
// than updating old ones.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // always the base currency
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	FetchedAt        time.Time       `json:"fetchedAt"`
}

// RefreshState tracks the rate store's refresh cycle.
type RefreshState string

const (
	RefreshIdle      RefreshState = "idle"
	RefreshFetching  RefreshState = "fetching"
	RefreshSucceeded RefreshState = "succeeded"
	RefreshFailed    RefreshState = "failed"
)

// RateSnapshot is the rate store's working set: every rate expressed relative
// to the base currency. Rates[Base] is 1 by construction. IsStale is derived
// from LastUpdated at read time, never stored as ground truth.
type RateSnapshot struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	LastUpdated  time.Time                  `json:"lastUpdated"`
	Source       RateSource                 `json:"source"`
	IsStale      bool                       `json:"isStale"`
	State        RefreshState               `json:"state"`
}
