package character

import (
	"context"
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/ledger"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// Equipped is the slice of the inventory service the character service
// needs to fold equipment bonuses into effective stats.
type Equipped interface {
	EquippedItems(ctx context.Context, playerID string) ([]domain.InventoryStack, error)
}

// Service defines the interface for player registration and character
// progression.
type Service interface {
	Register(ctx context.Context, playerID, username string) (*domain.Character, error)
	Get(ctx context.Context, playerID string) (*domain.Character, error)
	AwardExperience(ctx context.Context, playerID string, amount int) (*domain.Character, error)
	EffectiveStats(ctx context.Context, playerID string) (domain.Combatant, error)
}

type service struct {
	repo     repository.Character
	ledger   ledger.Service
	catalog  item.Catalog
	equipped Equipped
}

// NewService creates a new character service
func NewService(repo repository.Character, ledgerSvc ledger.Service, catalog item.Catalog, equipped Equipped) Service {
	return &service{
		repo:     repo,
		ledger:   ledgerSvc,
		catalog:  catalog,
		equipped: equipped,
	}
}

// Register creates the player row and its character with registration
// defaults, and materializes the starting currency grant.
func (s *service) Register(ctx context.Context, playerID, username string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	if err := s.repo.CreatePlayer(ctx, playerID, username); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	character := domain.NewCharacter(playerID, username)
	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	// The grant is lazy on the ledger side; reading balances applies it.
	if _, err := s.ledger.Balances(ctx, playerID); err != nil {
		return nil, err
	}

	log.Info("Player registered", "player_id", playerID, "username", username)
	return character, nil
}

// Get returns the player's character.
func (s *service) Get(ctx context.Context, playerID string) (*domain.Character, error) {
	return s.repo.GetCharacter(ctx, playerID)
}

// AwardExperience adds experience under a row lock and applies as many
// level-ups as the total supports. Each level-up resets experience, so the
// loop carries the remainder forward.
func (s *service) AwardExperience(ctx context.Context, playerID string, amount int) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	character.Experience += amount
	levelsGained := 0
	for character.Experience >= domain.ExperienceToNextLevel(character.Level) {
		overflow := character.Experience - domain.ExperienceToNextLevel(character.Level)
		character.LevelUp()
		character.Experience = overflow
		levelsGained++
	}

	if err := tx.UpdateCharacter(ctx, *character); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	if levelsGained > 0 {
		for i := 0; i < levelsGained; i++ {
			metrics.LevelUps.Inc()
		}
		log.Info("Character leveled up", "player_id", playerID, "level", character.Level)
	}
	return character, nil
}

// EffectiveStats snapshots the character's stats with equipped item bonuses
// folded in. The snapshot is what battles consume; later stat changes do not
// affect a battle already started.
func (s *service) EffectiveStats(ctx context.Context, playerID string) (domain.Combatant, error) {
	character, err := s.repo.GetCharacter(ctx, playerID)
	if err != nil {
		return domain.Combatant{}, err
	}

	bonuses := domain.StatBonuses{}
	stacks, err := s.equipped.EquippedItems(ctx, playerID)
	if err != nil {
		return domain.Combatant{}, err
	}
	for _, stack := range stacks {
		it, err := s.catalog.Get(stack.ItemCode)
		if err != nil {
			return domain.Combatant{}, err
		}
		bonuses.MaxHealth += it.Bonuses.MaxHealth
		bonuses.Attack += it.Bonuses.Attack
		bonuses.Defense += it.Bonuses.Defense
		bonuses.Speed += it.Bonuses.Speed
	}

	maxHealth := character.MaxHealth + bonuses.MaxHealth
	health := character.Health + bonuses.MaxHealth
	if health > maxHealth {
		health = maxHealth
	}
	return domain.Combatant{
		ID:        playerID,
		Health:    health,
		MaxHealth: maxHealth,
		Attack:    character.Attack + bonuses.Attack,
		Defense:   character.Defense + bonuses.Defense,
		Speed:     character.Speed + bonuses.Speed,
	}, nil
}
