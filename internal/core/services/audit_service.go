package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
)

const defaultAuditLimit = 20

// AuditLogService is the append-only conversion audit log. Records are
// immutable after creation; the contract has no update or delete.
type AuditLogService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	rateRepo  portsrepo.RateHistoryReader
}

// NewAuditLogService creates a new AuditLogService.
func NewAuditLogService(auditRepo portsrepo.AuditRepositoryFacade, rateRepo portsrepo.RateHistoryReader) *AuditLogService {
	return &AuditLogService{auditRepo: auditRepo, rateRepo: rateRepo}
}

// Append records one executed conversion.
func (s *AuditLogService) Append(ctx context.Context, record domain.ExecutionAuditRecord) error {
	if err := s.auditRepo.AppendAuditRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// RecentFor lists the latest audit records for a domain entity, newest first.
func (s *AuditLogService) RecentFor(ctx context.Context, entityType, entityID string, limit int) ([]domain.ExecutionAuditRecord, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	records, err := s.auditRepo.ListRecentForEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	if records == nil {
		records = []domain.ExecutionAuditRecord{}
	}
	return records, nil
}

// HistoricalRate looks up the persisted rate for a pair on a given day.
// Retroactive display and reporting only, never re-execution.
func (s *AuditLogService) HistoricalRate(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindRateOn(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode), day)
}
