package services

// ServiceContainer aggregates the engine's services for handler wiring.
// One shared instance per process, constructed explicitly at startup; no
// ambient singletons.
type ServiceContainer struct {
	Registry  CurrencyRegistrySvc
	RateStore RateStoreSvcFacade
	Converter ConverterSvc
	Execution ExecutionSvc
	Audit     AuditLogSvc
}
