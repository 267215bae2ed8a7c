package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// LedgerRepository implements the ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &LedgerTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// EnsureBalances inserts the starting grant row if the player has none.
// ON CONFLICT DO NOTHING guarantees the grant is applied exactly once.
func (r *LedgerRepository) EnsureBalances(ctx context.Context, playerID string, grant domain.Balances) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO balances (player_id, soft, hard, upgrade)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (player_id) DO NOTHING`,
		playerID, grant.Soft, grant.Hard, grant.Upgrade)
	if err != nil {
		return fmt.Errorf("failed to ensure balances: %w", err)
	}
	return nil
}

// GetBalances retrieves the player's current balances
func (r *LedgerRepository) GetBalances(ctx context.Context, playerID string) (*domain.Balances, error) {
	return getBalances(ctx, r.db, playerID, "")
}

// GetBalancesForUpdate retrieves the player's balances under a row lock
func (t *LedgerTx) GetBalancesForUpdate(ctx context.Context, playerID string) (*domain.Balances, error) {
	return getBalances(ctx, t.tx, playerID, " FOR UPDATE")
}

// SetBalance writes a single currency field for the player
func (t *LedgerTx) SetBalance(ctx context.Context, playerID string, kind domain.CurrencyKind, balance int) error {
	return setBalance(ctx, t.tx, playerID, kind, balance)
}

func getBalances(ctx context.Context, q querier, playerID, suffix string) (*domain.Balances, error) {
	row := q.QueryRow(ctx,
		`SELECT soft, hard, upgrade FROM balances WHERE player_id = $1`+suffix, playerID)

	b := domain.Balances{PlayerID: playerID}
	if err := row.Scan(&b.Soft, &b.Hard, &b.Upgrade); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	return &b, nil
}

func setBalance(ctx context.Context, q querier, playerID string, kind domain.CurrencyKind, balance int) error {
	var column string
	switch kind {
	case domain.CurrencySoft:
		column = "soft"
	case domain.CurrencyHard:
		column = "hard"
	case domain.CurrencyUpgrade:
		column = "upgrade"
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, kind)
	}

	tag, err := q.Exec(ctx,
		`UPDATE balances SET `+column+` = $2 WHERE player_id = $1`, playerID, balance)
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
