package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// querier is the subset of pgx operations shared by pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getInventory(ctx context.Context, q querier, playerID, suffix string) (*domain.Inventory, error) {
	rows, err := q.Query(ctx,
		`SELECT item_code, quantity, equipped
		 FROM inventory_stacks WHERE player_id = $1 ORDER BY item_code`+suffix, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inv := &domain.Inventory{PlayerID: playerID}
	for rows.Next() {
		var stack domain.InventoryStack
		if err := rows.Scan(&stack.ItemCode, &stack.Quantity, &stack.Equipped); err != nil {
			return nil, fmt.Errorf("failed to scan inventory stack: %w", err)
		}
		inv.Stacks = append(inv.Stacks, stack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}
	return inv, nil
}

func upsertStack(ctx context.Context, q querier, playerID string, stack domain.InventoryStack) error {
	_, err := q.Exec(ctx,
		`INSERT INTO inventory_stacks (player_id, item_code, quantity, equipped)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (player_id, item_code)
		 DO UPDATE SET quantity = EXCLUDED.quantity, equipped = EXCLUDED.equipped`,
		playerID, stack.ItemCode, stack.Quantity, stack.Equipped)
	if err != nil {
		return fmt.Errorf("failed to upsert stack: %w", err)
	}
	return nil
}

func deleteStack(ctx context.Context, q querier, playerID, itemCode string) error {
	_, err := q.Exec(ctx,
		`DELETE FROM inventory_stacks WHERE player_id = $1 AND item_code = $2`,
		playerID, itemCode)
	if err != nil {
		return fmt.Errorf("failed to delete stack: %w", err)
	}
	return nil
}
