package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/dto"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/middleware"
)

// auditHandler exposes the conversion audit log for transparency display.
type auditHandler struct {
	audit portssvc.AuditLogSvc
}

// registerAuditRoutes registers the audit-log read routes.
func registerAuditRoutes(rg *gin.RouterGroup, audit portssvc.AuditLogSvc) {
	h := &auditHandler{audit: audit}
	rg.GET("/audit/:entityType/:entityID", h.recentForEntity)
}

func (h *auditHandler) recentForEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := c.Param("entityType")
	entityID := c.Param("entityID")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	records, err := h.audit.RecentFor(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		logger.Error("Failed to list audit records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditRecordResponse(records))
}
