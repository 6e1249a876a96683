package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ConversionCase classifies how the operation, account and primary currencies
// of a financial operation relate. Exactly one case applies per operation.
type ConversionCase string

const (
	// CaseAllSame - operation, account and primary currency are identical.
	CaseAllSame ConversionCase = "all_same"
	// CaseAmountAccountSame - operation currency matches the account, differs from primary.
	CaseAmountAccountSame ConversionCase = "amount_account_same"
	// CaseAmountPrimarySame - operation currency matches primary, differs from the account.
	CaseAmountPrimarySame ConversionCase = "amount_primary_same"
	// CaseAccountPrimarySame - account and primary match, operation differs.
	CaseAccountPrimarySame ConversionCase = "account_primary_same"
	// CaseAmountDifferentOthersSame - account and primary match, operation is a
	// third code. Computationally identical to CaseAccountPrimarySame; kept as
	// a distinct label for audit-record fidelity.
	CaseAmountDifferentOthersSame ConversionCase = "amount_different_others_same"
	// CaseAllDifferent - all three currencies are distinct.
	CaseAllDifferent ConversionCase = "all_different"
)

// ParseConversionCase maps a stored audit label back to its ConversionCase.
func ParseConversionCase(s string) (ConversionCase, error) {
	switch c := ConversionCase(s); c {
	case CaseAllSame, CaseAmountAccountSame, CaseAmountPrimarySame,
		CaseAccountPrimarySame, CaseAmountDifferentOthersSame, CaseAllDifferent:
		return c, nil
	}
	return "", fmt.Errorf("unknown conversion case %q", s)
}

// OperationKind names the domain flow that requested an execution.
type OperationKind string

const (
	OperationTransaction OperationKind = "transaction"
	OperationGoalCreate  OperationKind = "goal_create"
	OperationBillPayment OperationKind = "bill_payment"
	OperationLiability   OperationKind = "liability"
	OperationTransfer    OperationKind = "transfer"
)

// ParseOperationKind validates a request-supplied operation kind.
func ParseOperationKind(s string) (OperationKind, error) {
	switch k := OperationKind(s); k {
	case OperationTransaction, OperationGoalCreate, OperationBillPayment,
		OperationLiability, OperationTransfer:
		return k, nil
	}
	return "", fmt.Errorf("unknown operation kind %q", s)
}

// ConversionResult is the immutable output of a single conversion, carrying
// full transparency of how the number was produced.
type ConversionResult struct {
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
	Source          RateSource      `json:"source"`
	RateDate        time.Time       `json:"rateDate"`
	IsStale         bool            `json:"isStale"`
}

// ExecutionAuditRecord is the append-only trace of one executed operation.
// Created once per successful execution, never modified or deleted.
type ExecutionAuditRecord struct {
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
	ConversionCase   ConversionCase  `json:"conversionCase"`
	Timestamp        time.Time       `json:"timestamp"`
}

// ExecutionResult is returned to callers of the execution engine. Callers
// apply the converted amounts to their own storage; the engine itself only
// appends the audit record.
type ExecutionResult struct {
	AccountAmount decimal.Decimal      `json:"accountAmount"`
	PrimaryAmount decimal.Decimal      `json:"primaryAmount"`
	ExchangeRate  decimal.Decimal      `json:"exchangeRate"`
	Case          ConversionCase       `json:"conversionCase"`
	Audit         ExecutionAuditRecord `json:"audit"`
}
