package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &InventoryTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *InventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *InventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetInventory retrieves the player's inventory
func (r *InventoryRepository) GetInventory(ctx context.Context, playerID string) (*domain.Inventory, error) {
	return getInventory(ctx, r.db, playerID, "")
}

// GetInventoryForUpdate retrieves the player's inventory under row locks
func (t *InventoryTx) GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, playerID, " FOR UPDATE")
}

// UpsertStack writes one stack row
func (t *InventoryTx) UpsertStack(ctx context.Context, playerID string, stack domain.InventoryStack) error {
	return upsertStack(ctx, t.tx, playerID, stack)
}

// DeleteStack removes a stack row
func (t *InventoryTx) DeleteStack(ctx context.Context, playerID, itemCode string) error {
	return deleteStack(ctx, t.tx, playerID, itemCode)
}
