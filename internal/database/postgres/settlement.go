package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// SettlementRepository implements the settlement repository for PostgreSQL
type SettlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// SettlementTx implements repository.SettlementTx
type SettlementTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *SettlementRepository) BeginTx(ctx context.Context) (repository.SettlementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &SettlementTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *SettlementTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *SettlementTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetSettledResult returns the stored result for a settled battle id, or nil
func (r *SettlementRepository) GetSettledResult(ctx context.Context, battleID string) (*domain.BattleResult, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT result FROM settled_battles WHERE battle_id = $1`, battleID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settled battle: %w", err)
	}

	var result domain.BattleResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode settled result: %w", err)
	}
	return &result, nil
}

// InsertSettledBattle records the battle id and result. The primary key on
// battle_id makes replays report inserted=false instead of double-applying.
func (t *SettlementTx) InsertSettledBattle(ctx context.Context, battleID string, result domain.BattleResult) (bool, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return false, fmt.Errorf("failed to encode battle result: %w", err)
	}

	var winner *string
	if result.WinnerID != "" {
		winner = &result.WinnerID
	}

	tag, err := t.tx.Exec(ctx,
		`INSERT INTO settled_battles (battle_id, winner_id, result)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (battle_id) DO NOTHING`,
		battleID, winner, raw)
	if err != nil {
		return false, fmt.Errorf("failed to insert settled battle: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetBalancesForUpdate retrieves balances under a row lock
func (t *SettlementTx) GetBalancesForUpdate(ctx context.Context, playerID string) (*domain.Balances, error) {
	return getBalances(ctx, t.tx, playerID, " FOR UPDATE")
}

// SetBalance writes a single currency field
func (t *SettlementTx) SetBalance(ctx context.Context, playerID string, kind domain.CurrencyKind, balance int) error {
	return setBalance(ctx, t.tx, playerID, kind, balance)
}

// GetInventoryForUpdate retrieves the inventory under row locks
func (t *SettlementTx) GetInventoryForUpdate(ctx context.Context, playerID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, playerID, " FOR UPDATE")
}

// UpsertStack writes one stack row
func (t *SettlementTx) UpsertStack(ctx context.Context, playerID string, stack domain.InventoryStack) error {
	return upsertStack(ctx, t.tx, playerID, stack)
}

// GetCharacterForUpdate retrieves the character under a row lock
func (t *SettlementTx) GetCharacterForUpdate(ctx context.Context, playerID string) (*domain.Character, error) {
	return getCharacter(ctx, t.tx, playerID, " FOR UPDATE")
}

// UpdateCharacter writes the mutable character stats
func (t *SettlementTx) UpdateCharacter(ctx context.Context, c domain.Character) error {
	return updateCharacter(ctx, t.tx, c)
}
