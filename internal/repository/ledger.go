package repository

import (
	"context"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Ledger defines the interface for currency balance persistence
type Ledger interface {
	// EnsureBalances lazily initializes the player's ledger row with the
	// starting grant, exactly once. A no-op when the row already exists.
	EnsureBalances(ctx context.Context, playerID string, grant domain.Balances) error
	GetBalances(ctx context.Context, playerID string) (*domain.Balances, error)
	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx defines the interface for ledger transactions. Reads take a row
// lock so check-then-act debits cannot race a concurrent mutation.
type LedgerTx interface {
	Tx
	GetBalancesForUpdate(ctx context.Context, playerID string) (*domain.Balances, error)
	SetBalance(ctx context.Context, playerID string, kind domain.CurrencyKind, balance int) error
}
