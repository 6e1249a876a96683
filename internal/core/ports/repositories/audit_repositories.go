package repositories

import (
	"context"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
)

// AuditReader defines read operations over the conversion audit log.
type AuditReader interface {
	// ListRecentForEntity retrieves the most recent audit records for a
	// domain entity, newest first.
	ListRecentForEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.ExecutionAuditRecord, error)
}

// AuditWriter defines write operations for the conversion audit log.
// The log is append-only; no update or delete operation exists.
type AuditWriter interface {
	// AppendAuditRecord persists one audit record.
	AppendAuditRecord(ctx context.Context, record domain.ExecutionAuditRecord) error
}

// AuditRepositoryFacade combines audit-log repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
