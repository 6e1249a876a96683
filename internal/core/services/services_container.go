package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
	portssvc "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/services"
)

// NewServiceContainer wires the engine's services in dependency order:
// registry, rate store, converter, audit log, execution engine. One shared
// container per process, constructed explicitly at startup.
func NewServiceContainer(ctx context.Context, opts RateStoreOptions, repos portsrepo.RepositoryProvider, provider portssvc.RateProvider, connectivity portssvc.ConnectivityChecker, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	registry := NewCurrencyRegistryService(ctx, repos.CurrencyRepo, opts.BaseCurrency, logger)
	container.Registry = registry

	rateStore := NewRateStoreService(opts, provider, connectivity, repos.RateHistoryRepo, logger)
	container.RateStore = rateStore

	container.Converter = NewConverterService(registry, rateStore)
	container.Audit = NewAuditLogService(repos.AuditRepo, repos.RateHistoryRepo)
	container.Execution = NewExecutionService(registry, container.Converter, container.Audit, logger)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.CurrencyRegistrySvc = (*CurrencyRegistryService)(nil)
	_ portssvc.RateStoreSvcFacade  = (*RateStoreService)(nil)
	_ portssvc.ConverterSvc        = (*ConverterService)(nil)
	_ portssvc.ExecutionSvc        = (*ExecutionService)(nil)
	_ portssvc.AuditLogSvc         = (*AuditLogService)(nil)
)
