package repository

import (
	"context"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Settlement defines the interface for reward settlement persistence.
// Settlement applies every grant of a battle's reward intent inside one
// transaction, so the tx surface carries the ledger, inventory, and
// character primitives it mutates.
type Settlement interface {
	// GetSettledResult returns the stored result for a settled battle id,
	// or nil when the battle has not been settled.
	GetSettledResult(ctx context.Context, battleID string) (*domain.BattleResult, error)
	BeginTx(ctx context.Context) (SettlementTx, error)
}

// SettlementTx defines the interface for settlement transactions
type SettlementTx interface {
	Tx
	// InsertSettledBattle records the battle id and result. Returns false
	// without error when the id was already recorded (replay).
	InsertSettledBattle(ctx context.Context, battleID string, result domain.BattleResult) (bool, error)

	GetBalancesForUpdate(ctx context.Context, playerID string) (*domain.Balances, error)
	SetBalance(ctx context.Context, playerID string, kind domain.CurrencyKind, balance int) error

	GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error)
	UpsertStack(ctx context.Context, playerID string, stack domain.InventoryStack) error

	GetCharacterForUpdate(ctx context.Context, playerID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character domain.Character) error
}
