package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name         string `json:"name"`         // e.g., "US Dollar"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Precision    int    `json:"precision"`    // minor-unit digits, e.g. 2 for USD, 0 for JPY
	IsActive     bool   `json:"isActive"`
}
