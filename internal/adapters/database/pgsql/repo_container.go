package pgsql

import (
	portsrepo "github.com/hrushi18-lang/finance-trackerin-sub007/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repository set.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:    NewCurrencyRepository(db),
		RateHistoryRepo: NewRateHistoryRepository(db),
		AuditRepo:       NewAuditRepository(db),
	}
}

// Compile-time interface checks.
var (
	_ portsrepo.CurrencyRepositoryFacade    = (*PgxCurrencyRepository)(nil)
	_ portsrepo.RateHistoryRepositoryFacade = (*PgxRateHistoryRepository)(nil)
	_ portsrepo.AuditRepositoryFacade       = (*PgxAuditRepository)(nil)
)
