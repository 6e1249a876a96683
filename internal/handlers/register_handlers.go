package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/middleware"
	"github.com/hrushi18-lang/finance-trackerin-sub007/internal/platform/config"
	"github.com/ulule/limiter/v3"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerValidators()

	registerHomeRoutes(r, services.RateStore)

	v1 := r.Group("/api/v1")
	if limiterInstance != nil {
		v1.Use(middleware.RateLimit(limiterInstance))
	}

	registerCurrencyRoutes(v1, services.Registry)
	registerRateRoutes(v1, services.RateStore, services.Audit)
	registerConversionRoutes(v1, services.Registry, services.Converter, services.Execution)
	registerAuditRoutes(v1, services.Audit)
}

// registerValidators adds the currency_code rule used by DTO binding tags.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(fl.Field().String())
		})
	}
}
