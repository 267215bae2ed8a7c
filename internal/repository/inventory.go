package repository

import (
	"context"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Inventory defines the interface for inventory persistence
type Inventory interface {
	GetInventory(ctx context.Context, playerID string) (*domain.Inventory, error)
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for inventory transactions
type InventoryTx interface {
	Tx
	GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error)
	// UpsertStack writes one stack row; quantity must be positive.
	UpsertStack(ctx context.Context, playerID string, stack domain.InventoryStack) error
	// DeleteStack removes a stack row. Stacks are never persisted at zero.
	DeleteStack(ctx context.Context, playerID, itemCode string) error
}
