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
)

// currencyHandler handles HTTP requests related to the currency registry.
type currencyHandler struct {
	registry portssvc.CurrencyRegistrySvc
}

func newCurrencyHandler(registry portssvc.CurrencyRegistrySvc) *currencyHandler {
	return &currencyHandler{registry: registry}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, registry portssvc.CurrencyRegistrySvc) {
	h := newCurrencyHandler(registry)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
}

// listCurrencies returns the active set; `?q=` filters by code or name and
// `?popular=true` returns the picker subset (base currency first).
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if c.Query("popular") == "true" {
		c.JSON(http.StatusOK, dto.ToListCurrencyResponse(h.registry.PopularSubset(c.Request.Context())))
		return
	}
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, dto.ToListCurrencyResponse(h.registry.Search(c.Request.Context(), q)))
		return
	}

	currencies := h.registry.ListActive(c.Request.Context())
	logger.Info("Currencies listed", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	if len(code) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	currency, err := h.registry.GetCurrency(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedCurrency) {
			logger.Warn("Currency not found", slog.String("currency_code", code))
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else {
			logger.Error("Failed to get currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
