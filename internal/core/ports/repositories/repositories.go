package repositories

// RepositoryProvider aggregates every repository the service layer needs.
// Implementations may back these with Postgres or, when no database is
// configured, with in-memory stores (rate history and audit persistence are
// best-effort by contract).
type RepositoryProvider struct {
	CurrencyRepo    CurrencyRepositoryFacade
	RateHistoryRepo RateHistoryRepositoryFacade
	AuditRepo       AuditRepositoryFacade
}
