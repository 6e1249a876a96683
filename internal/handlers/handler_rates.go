package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/apperrors"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/dto"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/middleware"
)

// rateHandler handles HTTP requests for the rate store and historical rates.
type rateHandler struct {
	rateStore portssvc.RateStoreSvcFacade
	audit     portssvc.AuditLogSvc
}

func newRateHandler(rateStore portssvc.RateStoreSvcFacade, audit portssvc.AuditLogSvc) *rateHandler {
	return &rateHandler{rateStore: rateStore, audit: audit}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateStore portssvc.RateStoreSvcFacade, audit portssvc.AuditLogSvc) {
	h := newRateHandler(rateStore, audit)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getSnapshot)
		rates.POST("/refresh", h.refresh)
		rates.GET("/historical", h.getHistoricalRate)
	}
}

func (h *rateHandler) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(h.rateStore.Snapshot()))
}

// refresh triggers a fetch. Concurrent requests collapse into the in-flight
// fetch; all callers get that fetch's outcome.
func (h *rateHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateStore.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrRateFetchFailed) {
			logger.Warn("Manual rate refresh failed", slog.String("error", err.Error()))
			// The previous snapshot stays authoritative; report it with the failure.
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":    "Rate refresh failed; previous snapshot retained",
				"snapshot": dto.ToRateSnapshotResponse(h.rateStore.Snapshot()),
			})
			return
		}
		logger.Error("Rate refresh error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(h.rateStore.Snapshot()))
}

func (h *rateHandler) getHistoricalRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fromCode := c.Query("from")
	toCode := c.Query("to")
	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be 3-letter currency codes"})
		return
	}

	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	rate, err := h.audit.HistoricalRate(c.Request.Context(), fromCode, toCode, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No historical rate for that pair and date"})
			return
		}
		logger.Error("Failed to look up historical rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve historical rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoricalRateResponse(rate))
}
