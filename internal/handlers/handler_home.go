package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
)

// registerHomeRoutes adds the liveness endpoint, exposing snapshot metadata
// so operators can see rate freshness at a glance.
func registerHomeRoutes(r *gin.Engine, rateStore portssvc.RateStoreReaderSvc) {
	r.GET("/health", func(c *gin.Context) {
		snap := rateStore.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"rateSource":  string(snap.Source),
			"lastUpdated": snap.LastUpdated,
			"isStale":     snap.IsStale,
			"state":       string(snap.State),
		})
	})
}
