package services

import (
	"context"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/dto"
	"github.com/shopspring/decimal"
)

// ConverterSvc converts an amount between two supported currencies via the
// base currency, rounding to the destination currency's minor unit.
type ConverterSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.ConversionResult, error)
}

// ExecutionSvc reconciles a financial operation's input amount, account
// currency and primary currency into a consistent set of converted amounts,
// appending one audit record per successful execution.
type ExecutionSvc interface {
	Execute(ctx context.Context, req dto.ExecuteOperationRequest) (*domain.ExecutionResult, error)
}

// AuditLogSvc is the append-only conversion audit log.
type AuditLogSvc interface {
	// Append records one executed conversion.
	Append(ctx context.Context, record domain.ExecutionAuditRecord) error

	// RecentFor lists the latest audit records for a domain entity.
	RecentFor(ctx context.Context, entityType, entityID string, limit int) ([]domain.ExecutionAuditRecord, error)

	// HistoricalRate looks up the persisted rate for a pair on a given day,
	// for retroactive display and reporting only.
	HistoricalRate(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error)
}
