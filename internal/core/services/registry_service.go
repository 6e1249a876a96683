package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
)

// fallbackCurrencies is the hardcoded minimal set used when the registry
// source is unavailable or empty. The engine must never present a
// currency-less surface.
var fallbackCurrencies = []domain.Currency{
	{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$", Precision: 2, IsActive: true},
	{CurrencyCode: "EUR", Name: "Euro", Symbol: "€", Precision: 2, IsActive: true},
	{CurrencyCode: "GBP", Name: "British Pound", Symbol: "£", Precision: 2, IsActive: true},
	{CurrencyCode: "INR", Name: "Indian Rupee", Symbol: "₹", Precision: 2, IsActive: true},
	{CurrencyCode: "JPY", Name: "Japanese Yen", Symbol: "¥", Precision: 0, IsActive: true},
	{CurrencyCode: "CAD", Name: "Canadian Dollar", Symbol: "C$", Precision: 2, IsActive: true},
	{CurrencyCode: "AUD", Name: "Australian Dollar", Symbol: "A$", Precision: 2, IsActive: true},
	{CurrencyCode: "CHF", Name: "Swiss Franc", Symbol: "Fr", Precision: 2, IsActive: true},
	{CurrencyCode: "CNY", Name: "Chinese Yuan", Symbol: "¥", Precision: 2, IsActive: true},
	{CurrencyCode: "SGD", Name: "Singapore Dollar", Symbol: "S$", Precision: 2, IsActive: true},
	{CurrencyCode: "AED", Name: "UAE Dirham", Symbol: "د.إ", Precision: 2, IsActive: true},
	{CurrencyCode: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Precision: 2, IsActive: true},
}

// popularPriority orders the picker subset after the base currency.
var popularPriority = []string{"USD", "EUR", "GBP", "INR", "JPY", "CAD", "AUD", "CHF"}

// popularSubsetSize caps the picker list: the base currency plus up to 7 more.
const popularSubsetSize = 8

// CurrencyRegistryService holds the supported-currency reference data.
// Loaded once at construction; reads after that are lock-free.
type CurrencyRegistryService struct {
	baseCurrency string
	byCode       map[string]domain.Currency
	ordered      []domain.Currency
	logger       *slog.Logger
}

// NewCurrencyRegistryService builds the registry from the repository when one
// is available, falling back to the hardcoded set on error or empty result.
func NewCurrencyRegistryService(ctx context.Context, repo portsrepo.CurrencyReader, baseCurrency string, logger *slog.Logger) *CurrencyRegistryService {
	s := &CurrencyRegistryService{
		baseCurrency: strings.ToUpper(baseCurrency),
		logger:       logger.With(slog.String("component", "currency_registry")),
	}

	var currencies []domain.Currency
	if repo != nil {
		loaded, err := repo.ListCurrencies(ctx)
		if err != nil {
			s.logger.Warn("Failed to load currencies from repository, using fallback set", slog.String("error", err.Error()))
		} else {
			currencies = loaded
		}
	}
	if len(currencies) == 0 {
		currencies = fallbackCurrencies
	}

	s.byCode = make(map[string]domain.Currency, len(currencies))
	for _, c := range currencies {
		c.CurrencyCode = strings.ToUpper(c.CurrencyCode)
		s.byCode[c.CurrencyCode] = c
	}
	// The base currency must always resolve, even when the loaded set lacks it.
	if _, ok := s.byCode[s.baseCurrency]; !ok {
		s.logger.Warn("Base currency missing from registry source, seeding it", slog.String("currency_code", s.baseCurrency))
		s.byCode[s.baseCurrency] = domain.Currency{
			CurrencyCode: s.baseCurrency,
			Name:         s.baseCurrency,
			Precision:    2,
			IsActive:     true,
		}
	}

	s.ordered = make([]domain.Currency, 0, len(s.byCode))
	for _, c := range s.byCode {
		s.ordered = append(s.ordered, c)
	}
	sort.Slice(s.ordered, func(i, j int) bool {
		return s.ordered[i].CurrencyCode < s.ordered[j].CurrencyCode
	})

	s.logger.Info("Currency registry loaded", slog.Int("count", len(s.ordered)))
	return s
}

// BaseCurrency returns the code all stored rates are expressed against.
func (s *CurrencyRegistryService) BaseCurrency() string {
	return s.baseCurrency
}

// ListActive returns all active currencies ordered by code.
func (s *CurrencyRegistryService) ListActive(_ context.Context) []domain.Currency {
	out := make([]domain.Currency, 0, len(s.ordered))
	for _, c := range s.ordered {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// GetCurrency retrieves a currency by code.
func (s *CurrencyRegistryService) GetCurrency(_ context.Context, code string) (*domain.Currency, error) {
	c, ok := s.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("%w: currency code '%s'", apperrors.ErrUnsupportedCurrency, strings.ToUpper(code))
	}
	return &c, nil
}

// Search matches active currencies by case-insensitive substring of code or name.
func (s *CurrencyRegistryService) Search(_ context.Context, query string) []domain.Currency {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Currency{}
	for _, c := range s.ordered {
		if !c.IsActive {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(c.CurrencyCode), q) ||
			strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// PopularSubset returns the base currency first, followed by up to seven more
// by configured priority. Ordering is fixed and deterministic.
func (s *CurrencyRegistryService) PopularSubset(_ context.Context) []domain.Currency {
	out := make([]domain.Currency, 0, popularSubsetSize)
	if base, ok := s.byCode[s.baseCurrency]; ok {
		out = append(out, base)
	}
	for _, code := range popularPriority {
		if len(out) >= popularSubsetSize {
			break
		}
		if code == s.baseCurrency {
			continue
		}
		if c, ok := s.byCode[code]; ok && c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
