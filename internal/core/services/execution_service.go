package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/domain"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/dto"
	"github.com/shopspring/decimal"
)

// ExecutionService reconciles a financial operation's amount, account
// currency and primary currency into a consistent set of converted amounts.
// All-or-nothing: any failed conversion leg fails the whole operation and
// nothing is audited. The engine never touches account balances or domain
// records; callers apply the returned amounts themselves.
type ExecutionService struct {
	registry  portssvc.CurrencyRegistrySvc
	converter portssvc.ConverterSvc
	audit     portssvc.AuditLogSvc
	logger    *slog.Logger
	now       func() time.Time
}

// NewExecutionService creates a new ExecutionService.
func NewExecutionService(registry portssvc.CurrencyRegistrySvc, converter portssvc.ConverterSvc, audit portssvc.AuditLogSvc, logger *slog.Logger) *ExecutionService {
	return &ExecutionService{
		registry:  registry,
		converter: converter,
		audit:     audit,
		logger:    logger.With(slog.String("component", "execution_engine")),
		now:       time.Now,
	}
}

// ClassifyConversionCase compares the three currency codes pairwise and
// returns the single case that applies. Check order is fixed so
// classification is deterministic: first match wins.
func ClassifyConversionCase(operationCurrency, accountCurrency, primaryCurrency string) domain.ConversionCase {
	switch {
	case operationCurrency == accountCurrency && accountCurrency == primaryCurrency:
		return domain.CaseAllSame
	case operationCurrency == accountCurrency:
		return domain.CaseAmountAccountSame
	case operationCurrency == primaryCurrency:
		return domain.CaseAmountPrimarySame
	case accountCurrency == primaryCurrency:
		return domain.CaseAccountPrimarySame
	default:
		return domain.CaseAllDifferent
	}
}

// Execute validates the request, classifies its conversion case, computes
// every required leg and appends one audit record.
func (s *ExecutionService) Execute(ctx context.Context, req dto.ExecuteOperationRequest) (*domain.ExecutionResult, error) {
	kind, err := domain.ParseOperationKind(req.OperationKind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	// Goal-creation previews may pass a zero placeholder amount.
	if req.Amount.IsZero() && kind != domain.OperationGoalCreate {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	operationCurrency := strings.ToUpper(req.CurrencyCode)
	accountCurrency := strings.ToUpper(req.AccountCurrency)
	primaryCurrency := strings.ToUpper(req.PrimaryCurrency)
	for _, code := range []string{operationCurrency, accountCurrency, primaryCurrency} {
		if _, err := s.registry.GetCurrency(ctx, code); err != nil {
			return nil, err
		}
	}

	conversionCase := ClassifyConversionCase(operationCurrency, accountCurrency, primaryCurrency)

	var (
		accountAmount decimal.Decimal
		primaryAmount decimal.Decimal
		exchangeRate  = decimal.NewFromInt(1)
	)

	switch conversionCase {
	case domain.CaseAllSame:
		accountAmount = req.Amount
		primaryAmount = req.Amount

	case domain.CaseAmountAccountSame:
		accountAmount = req.Amount
		primaryRes, err := s.converter.Convert(ctx, req.Amount, operationCurrency, primaryCurrency)
		if err != nil {
			return nil, err
		}
		primaryAmount = primaryRes.ConvertedAmount
		exchangeRate = primaryRes.Rate

	case domain.CaseAmountPrimarySame:
		primaryAmount = req.Amount
		accountRes, err := s.converter.Convert(ctx, req.Amount, operationCurrency, accountCurrency)
		if err != nil {
			return nil, err
		}
		accountAmount = accountRes.ConvertedAmount
		exchangeRate = accountRes.Rate

	case domain.CaseAccountPrimarySame, domain.CaseAmountDifferentOthersSame:
		// One conversion serves both targets; the two labels are distinct for
		// audit fidelity only.
		res, err := s.converter.Convert(ctx, req.Amount, operationCurrency, accountCurrency)
		if err != nil {
			return nil, err
		}
		accountAmount = res.ConvertedAmount
		primaryAmount = res.ConvertedAmount
		exchangeRate = res.Rate

	case domain.CaseAllDifferent:
		accountRes, err := s.converter.Convert(ctx, req.Amount, operationCurrency, accountCurrency)
		if err != nil {
			return nil, err
		}
		primaryRes, err := s.converter.Convert(ctx, req.Amount, operationCurrency, primaryCurrency)
		if err != nil {
			return nil, err
		}
		accountAmount = accountRes.ConvertedAmount
		primaryAmount = primaryRes.ConvertedAmount
		exchangeRate = primaryRes.Rate
	}

	record := domain.ExecutionAuditRecord{
		OperationID:      uuid.NewString(),
		EntityType:       req.EntityType,
		EntityID:         req.EntityID,
		OriginalAmount:   req.Amount,
		OriginalCurrency: operationCurrency,
		AccountAmount:    accountAmount,
		AccountCurrency:  accountCurrency,
		PrimaryAmount:    primaryAmount,
		PrimaryCurrency:  primaryCurrency,
		ExchangeRate:     exchangeRate,
		ConversionCase:   conversionCase,
		Timestamp:        s.now(),
	}

	if err := s.audit.Append(ctx, record); err != nil {
		// Best-effort persistence: the conversion itself succeeded.
		s.logger.Warn("Failed to append conversion audit record",
			slog.String("operation_id", record.OperationID),
			slog.String("error", err.Error()))
	}

	return &domain.ExecutionResult{
		AccountAmount: accountAmount,
		PrimaryAmount: primaryAmount,
		ExchangeRate:  exchangeRate,
		Case:          conversionCase,
		Audit:         record,
	}, nil
}
