package services

import (
	"time"

	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly wired
// dependencies. loc is the reference timezone for the due-date countdown;
// generator is the opaque text-generation collaborator.
func NewServiceContainer(repos portsrepo.RepositoryProvider, generator portssvc.TextGenerator, loc *time.Location) *portssvc.ServiceContainer {
	ledger := NewLedgerService(repos.ObligationRepo, repos.IncomeRepo, loc)
	income := NewIncomeService(repos.IncomeRepo)

	return &portssvc.ServiceContainer{
		User:    NewUserService(repos.UserRepo),
		Income:  income,
		Ledger:  ledger,
		Insight: NewInsightService(ledger, income, generator, loc),
	}
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.UserSvcFacade    = (*UserService)(nil)
	_ portssvc.IncomeSvcFacade  = (*IncomeService)(nil)
	_ portssvc.LedgerSvcFacade  = (*LedgerService)(nil)
	_ portssvc.InsightSvcFacade = (*InsightService)(nil)
)
