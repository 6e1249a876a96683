package pgsql

import (
	"context"
	"fmt"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository implements the conversion audit log using pgxpool.
// Append-only by contract: no UPDATE or DELETE statements exist here.
type PgxAuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new PgxAuditRepository.
func NewAuditRepository(db *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{db: db}
}

// AppendAuditRecord inserts one audit record.
func (r *PgxAuditRepository) AppendAuditRecord(ctx context.Context, record domain.ExecutionAuditRecord) error {
	query := `
		INSERT INTO conversion_audit (
			operation_id, entity_type, entity_id,
			original_amount, original_currency,
			account_amount, account_currency,
			primary_amount, primary_currency,
			exchange_rate, conversion_case, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		record.OperationID, record.EntityType, record.EntityID,
		record.OriginalAmount, record.OriginalCurrency,
		record.AccountAmount, record.AccountCurrency,
		record.PrimaryAmount, record.PrimaryCurrency,
		record.ExchangeRate, string(record.ConversionCase), record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error inserting audit record: %w", err)
	}
	return nil
}

// ListRecentForEntity retrieves the most recent audit records for a domain
// entity, newest first.
func (r *PgxAuditRepository) ListRecentForEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.ExecutionAuditRecord, error) {
	query := `
		SELECT operation_id, entity_type, entity_id,
			original_amount, original_currency,
			account_amount, account_currency,
			primary_amount, primary_currency,
			exchange_rate, conversion_case, created_at
		FROM conversion_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing audit records: %w", err)
	}
	defer rows.Close()

	var records []domain.ExecutionAuditRecord
	for rows.Next() {
		var rec domain.ExecutionAuditRecord
		var conversionCase string
		if err := rows.Scan(
			&rec.OperationID, &rec.EntityType, &rec.EntityID,
			&rec.OriginalAmount, &rec.OriginalCurrency,
			&rec.AccountAmount, &rec.AccountCurrency,
			&rec.PrimaryAmount, &rec.PrimaryCurrency,
			&rec.ExchangeRate, &conversionCase, &rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("error scanning audit row: %w", err)
		}
		parsed, err := domain.ParseConversionCase(conversionCase)
		if err != nil {
			return nil, fmt.Errorf("error decoding audit row: %w", err)
		}
		rec.ConversionCase = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return records, nil
}
