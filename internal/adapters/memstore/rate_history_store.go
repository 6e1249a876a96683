// Package memstore provides in-memory repository implementations used when no
// database is configured. Rate-history and audit persistence are best-effort
// by contract, so process-lifetime storage is an acceptable degradation.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

type pairKey struct {
	from string
	to   string
}

// RateHistoryStore keeps historical rates in memory, one row per (pair, day).
type RateHistoryStore struct {
	mu    sync.RWMutex
	rates map[pairKey][]domain.ExchangeRate // sorted by day ascending
}

// NewRateHistoryStore creates an empty RateHistoryStore.
func NewRateHistoryStore() *RateHistoryStore {
	return &RateHistoryStore{rates: make(map[pairKey][]domain.ExchangeRate)}
}

func dayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// UpsertRate stores one rate row, ignoring duplicate (pair, day) inserts.
func (s *RateHistoryStore) UpsertRate(_ context.Context, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{from: rate.FromCurrencyCode, to: rate.ToCurrencyCode}
	day := dayOf(rate.FetchedAt)
	rows := s.rates[key]
	for _, existing := range rows {
		if dayOf(existing.FetchedAt).Equal(day) {
			return nil
		}
	}
	rows = append(rows, rate)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].FetchedAt.Before(rows[j].FetchedAt)
	})
	s.rates[key] = rows
	return nil
}

// FindRateOn returns the rate effective on the given day, or the latest one
// before it.
func (s *RateHistoryStore) FindRateOn(_ context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.rates[pairKey{from: fromCode, to: toCode}]
	target := dayOf(day)
	for i := len(rows) - 1; i >= 0; i-- {
		if !dayOf(rows[i].FetchedAt).After(target) {
			row := rows[i]
			return &row, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
