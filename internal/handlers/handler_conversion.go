package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/dto"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/middleware"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/utils"
)

// conversionHandler handles display-only conversion previews and full
// operation executions.
type conversionHandler struct {
	registry  portssvc.CurrencyRegistrySvc
	converter portssvc.ConverterSvc
	execution portssvc.ExecutionSvc
}

func newConversionHandler(registry portssvc.CurrencyRegistrySvc, converter portssvc.ConverterSvc, execution portssvc.ExecutionSvc) *conversionHandler {
	return &conversionHandler{registry: registry, converter: converter, execution: execution}
}

// registerConversionRoutes registers the convert and execute routes.
func registerConversionRoutes(rg *gin.RouterGroup, registry portssvc.CurrencyRegistrySvc, converter portssvc.ConverterSvc, execution portssvc.ExecutionSvc) {
	h := newConversionHandler(registry, converter, execution)
	rg.POST("/convert", h.convert)
	rg.POST("/execute", h.execute)
}

func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.converter.Convert(c.Request.Context(), req.Amount, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		h.renderConversionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(result, utils.FormatRateTransparency(result)))
}

func (h *conversionHandler) execute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExecuteOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for execute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.execution.Execute(c.Request.Context(), req)
	if err != nil {
		h.renderConversionError(c, err)
		return
	}

	logger.Info("Operation executed",
		slog.String("conversion_case", string(result.Case)),
		slog.String("operation_id", result.Audit.OperationID))
	c.JSON(http.StatusOK, dto.ToExecuteOperationResponse(result))
}

// renderConversionError maps the engine's error taxonomy onto HTTP statuses.
// Conversions either succeed with full metadata or fail explicitly; there is
// no silent fallback rate.
func (h *conversionHandler) renderConversionError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedCurrency):
		logger.Warn("Unsupported currency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, apperrors.ErrConversionUnavailable):
		logger.Warn("Conversion unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
	default:
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Conversion failed"})
	}
}
