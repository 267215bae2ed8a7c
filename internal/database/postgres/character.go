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

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CharacterTx implements repository.CharacterTx
type CharacterTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &CharacterTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *CharacterTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *CharacterTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// CreatePlayer inserts the player identity row
func (r *CharacterRepository) CreatePlayer(ctx context.Context, playerID, username string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO players (player_id, username) VALUES ($1, $2)`, playerID, username)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// CreateCharacter inserts the character row for a player
func (r *CharacterRepository) CreateCharacter(ctx context.Context, c *domain.Character) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO characters (player_id, name, level, experience, health, max_health, attack, defense, speed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.PlayerID, c.Name, c.Level, c.Experience, c.Health, c.MaxHealth, c.Attack, c.Defense, c.Speed)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// GetCharacter retrieves a player's character
func (r *CharacterRepository) GetCharacter(ctx context.Context, playerID string) (*domain.Character, error) {
	return getCharacter(ctx, r.db, playerID, "")
}

// GetCharacterForUpdate retrieves a player's character under a row lock
func (t *CharacterTx) GetCharacterForUpdate(ctx context.Context, playerID string) (*domain.Character, error) {
	return getCharacter(ctx, t.tx, playerID, " FOR UPDATE")
}

// UpdateCharacter writes the mutable character stats
func (t *CharacterTx) UpdateCharacter(ctx context.Context, c domain.Character) error {
	return updateCharacter(ctx, t.tx, c)
}

func getCharacter(ctx context.Context, q querier, playerID, suffix string) (*domain.Character, error) {
	row := q.QueryRow(ctx,
		`SELECT player_id, name, level, experience, health, max_health, attack, defense, speed, created_at, updated_at
		 FROM characters WHERE player_id = $1`+suffix, playerID)

	var c domain.Character
	err := row.Scan(&c.PlayerID, &c.Name, &c.Level, &c.Experience, &c.Health, &c.MaxHealth,
		&c.Attack, &c.Defense, &c.Speed, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

func updateCharacter(ctx context.Context, q querier, c domain.Character) error {
	tag, err := q.Exec(ctx,
		`UPDATE characters
		 SET level = $2, experience = $3, health = $4, max_health = $5,
		     attack = $6, defense = $7, speed = $8, updated_at = now()
		 WHERE player_id = $1`,
		c.PlayerID, c.Level, c.Experience, c.Health, c.MaxHealth, c.Attack, c.Defense, c.Speed)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
