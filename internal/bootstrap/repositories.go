package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kestrelgames/emberrealm/internal/database/postgres"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Ledger     repository.Ledger
	Inventory  repository.Inventory
	Character  repository.Character
	Settlement repository.Settlement
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:     postgres.NewLedgerRepository(dbPool),
		Inventory:  postgres.NewInventoryRepository(dbPool),
		Character:  postgres.NewCharacterRepository(dbPool),
		Settlement: postgres.NewSettlementRepository(dbPool),
	}
}
