package dto

import (
	"time"

	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditRecordResponse defines the data returned for one conversion audit record.
type AuditRecordResponse struct {
	OperationID      string          `json:"operationID"`
	EntityType       string          `json:"entityType"`
	EntityID         string          `json:"entityID"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	AccountAmount    decimal.Decimal `json:"accountAmount"`
	AccountCurrency  string          `json:"accountCurrency"`
	PrimaryAmount    decimal.Decimal `json:"primaryAmount"`
	PrimaryCurrency  string          `json:"primaryCurrency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConversionCase   string          `json:"conversionCase"`
	Timestamp        time.Time       `json:"timestamp"`
}

// ToAuditRecordResponse converts a domain.ExecutionAuditRecord to its DTO.
func ToAuditRecordResponse(rec *domain.ExecutionAuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		OperationID:      rec.OperationID,
		EntityType:       rec.EntityType,
		EntityID:         rec.EntityID,
		OriginalAmount:   rec.OriginalAmount,
		OriginalCurrency: rec.OriginalCurrency,
		AccountAmount:    rec.AccountAmount,
		AccountCurrency:  rec.AccountCurrency,
		PrimaryAmount:    rec.PrimaryAmount,
		PrimaryCurrency:  rec.PrimaryCurrency,
		ExchangeRate:     rec.ExchangeRate,
		ConversionCase:   string(rec.ConversionCase),
		Timestamp:        rec.Timestamp,
	}
}

// ToListAuditRecordResponse converts a slice of audit records to DTOs.
func ToListAuditRecordResponse(records []domain.ExecutionAuditRecord) []AuditRecordResponse {
	res := make([]AuditRecordResponse, len(records))
	for i := range records {
		res[i] = ToAuditRecordResponse(&records[i])
	}
	return res
}
