package dto

import (
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExecuteOperationRequest defines the data needed to execute a financial
// operation across the operation, account and primary currencies.
type ExecuteOperationRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,currency_code"`
	AccountID       string          `json:"accountID" binding:"required"`
	AccountCurrency string          `json:"accountCurrency" binding:"required,currency_code"`
	PrimaryCurrency string          `json:"primaryCurrency" binding:"required,currency_code"`
	OperationKind   string          `json:"operationKind" binding:"required"`
	EntityType      string          `json:"entityType" binding:"required"`
	EntityID        string          `json:"entityID" binding:"required"`
}

// ExecuteOperationResponse defines the data returned for a successful execution.
type ExecuteOperationResponse struct {
	Success       bool                `json:"success"`
	AccountAmount decimal.Decimal     `json:"accountAmount"`
	PrimaryAmount decimal.Decimal     `json:"primaryAmount"`
	ExchangeRate  decimal.Decimal     `json:"exchangeRate"`
	Case          string              `json:"conversionCase"`
	Audit         AuditRecordResponse `json:"audit"`
}

// ToExecuteOperationResponse converts a domain.ExecutionResult to its DTO.
func ToExecuteOperationResponse(res *domain.ExecutionResult) ExecuteOperationResponse {
	return ExecuteOperationResponse{
		Success:       true,
		AccountAmount: res.AccountAmount,
		PrimaryAmount: res.PrimaryAmount,
		ExchangeRate:  res.ExchangeRate,
		Case:          string(res.Case),
		Audit:         ToAuditRecordResponse(&res.Audit),
	}
}
