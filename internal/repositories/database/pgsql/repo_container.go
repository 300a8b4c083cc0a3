package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql repository implementations.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		IncomeRepo:     newPgxIncomeRepository(dbPool),
		ObligationRepo: newPgxObligationRepository(dbPool),
	}
}
