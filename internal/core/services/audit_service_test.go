package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/adapters/memstore"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditRecord(entityID, operationID string, ts time.Time) domain.ExecutionAuditRecord {
	return domain.ExecutionAuditRecord{
		OperationID:      operationID,
		EntityType:       "transaction",
		EntityID:         entityID,
		OriginalAmount:   decimal.NewFromInt(100),
		OriginalCurrency: "EUR",
		AccountAmount:    decimal.NewFromInt(100),
		AccountCurrency:  "EUR",
		PrimaryAmount:    decimal.RequireFromString("108.70"),
		PrimaryCurrency:  "USD",
		ExchangeRate:     decimal.RequireFromString("1.087"),
		ConversionCase:   domain.CaseAmountAccountSame,
		Timestamp:        ts,
	}
}

func TestAuditLogService_RecentForNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuditLogService(memstore.NewAuditStore(), memstore.NewRateHistoryStore())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := auditRecord("txn-1", fmt.Sprintf("op-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, svc.Append(ctx, rec))
	}

	records, err := svc.RecentFor(ctx, "transaction", "txn-1", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "op-2", records[0].OperationID)
	assert.Equal(t, "op-0", records[2].OperationID)
}

func TestAuditLogService_RecentForHonorsLimit(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuditLogService(memstore.NewAuditStore(), memstore.NewRateHistoryStore())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := auditRecord("goal-1", fmt.Sprintf("op-%d", i), base.Add(time.Duration(i)*time.Minute))
		rec.EntityType = "goal"
		require.NoError(t, svc.Append(ctx, rec))
	}

	records, err := svc.RecentFor(ctx, "goal", "goal-1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "op-4", records[0].OperationID)
}

func TestAuditLogService_RecentForEmptyEntityIsEmptySlice(t *testing.T) {
	svc := services.NewAuditLogService(memstore.NewAuditStore(), memstore.NewRateHistoryStore())

	records, err := svc.RecentFor(context.Background(), "transaction", "missing", 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestAuditLogService_RecentForDoesNotLeakAcrossEntities(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuditLogService(memstore.NewAuditStore(), memstore.NewRateHistoryStore())

	require.NoError(t, svc.Append(ctx, auditRecord("txn-1", "op-a", time.Now())))
	other := auditRecord("txn-1", "op-b", time.Now())
	other.EntityType = "bill"
	require.NoError(t, svc.Append(ctx, other))

	records, err := svc.RecentFor(ctx, "transaction", "txn-1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "op-a", records[0].OperationID)
}

func TestAuditLogService_HistoricalRate(t *testing.T) {
	ctx := context.Background()
	history := memstore.NewRateHistoryStore()
	svc := services.NewAuditLogService(memstore.NewAuditStore(), history)

	day1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	day5 := time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, history.UpsertRate(ctx, domain.ExchangeRate{
		FromCurrencyCode: "USD", ToCurrencyCode: "EUR",
		Rate: decimal.RequireFromString("0.91"), Source: domain.RateSourceAPI, FetchedAt: day1,
	}))
	require.NoError(t, history.UpsertRate(ctx, domain.ExchangeRate{
		FromCurrencyCode: "USD", ToCurrencyCode: "EUR",
		Rate: decimal.RequireFromString("0.93"), Source: domain.RateSourceAPI, FetchedAt: day5,
	}))

	// Exact day.
	rate, err := svc.HistoricalRate(ctx, "usd", "eur", day5)
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.93")))

	// A day between two rows resolves to the latest one before it.
	rate, err = svc.HistoricalRate(ctx, "USD", "EUR", day1.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.91")))

	// Before any row.
	_, err = svc.HistoricalRate(ctx, "USD", "EUR", day1.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Pair never recorded.
	_, err = svc.HistoricalRate(ctx, "USD", "GBP", day5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRateHistoryStore_DuplicateDayIgnored(t *testing.T) {
	ctx := context.Background()
	history := memstore.NewRateHistoryStore()

	fetched := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	first := domain.ExchangeRate{
		FromCurrencyCode: "USD", ToCurrencyCode: "INR",
		Rate: decimal.RequireFromString("83.45"), Source: domain.RateSourceAPI, FetchedAt: fetched,
	}
	require.NoError(t, history.UpsertRate(ctx, first))

	later := first
	later.Rate = decimal.RequireFromString("84.00")
	later.FetchedAt = fetched.Add(6 * time.Hour)
	require.NoError(t, history.UpsertRate(ctx, later))

	rate, err := history.FindRateOn(ctx, "USD", "INR", fetched)
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("83.45")), "first row of the day wins")
}
