package settlement

import (
	"context"
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// Service applies a battle's reward intent to the winner's balances,
// inventory, and character exactly once per battle id. A replayed
// settlement returns the stored result without further mutation.
type Service interface {
	Settle(ctx context.Context, result domain.BattleResult) (*domain.BattleResult, error)
}

type service struct {
	repo  repository.Settlement
	locks *concurrency.LockManager
}

// NewService creates a new settlement service
func NewService(repo repository.Settlement, locks *concurrency.LockManager) Service {
	return &service{
		repo:  repo,
		locks: locks,
	}
}

// Settle records the battle and applies its rewards in one transaction.
// The settled-battles insert and every grant either all commit or all roll
// back; a retry after a timeout hits the recorded id and short-circuits.
func (s *service) Settle(ctx context.Context, result domain.BattleResult) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)

	if result.BattleID == "" {
		return nil, fmt.Errorf("%w: empty battle id", domain.ErrInvalidAmount)
	}

	// Serialize settlements per battle id; concurrent retries for the same
	// battle queue up and the losers take the replay path.
	mu := s.locks.GetLock("settle:" + result.BattleID)
	mu.Lock()
	defer mu.Unlock()

	if stored, err := s.repo.GetSettledResult(ctx, result.BattleID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	} else if stored != nil {
		metrics.SettlementReplays.Inc()
		log.Info("Settlement replayed", "battle_id", result.BattleID)
		return stored, nil
	}

	if winnerID := result.Rewards.WinnerID; winnerID != "" {
		mu := s.locks.GetLock(winnerID)
		mu.Lock()
		defer mu.Unlock()
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inserted, err := tx.InsertSettledBattle(ctx, result.BattleID, result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	if !inserted {
		// Lost a race against another process; roll back and serve the
		// stored result.
		_ = tx.Rollback(ctx)
		stored, err := s.repo.GetSettledResult(ctx, result.BattleID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
		}
		metrics.SettlementReplays.Inc()
		return stored, nil
	}

	if err := s.applyRewards(ctx, tx, result.Rewards); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	metrics.BattlesSettled.WithLabelValues(string(result.Mode)).Inc()
	log.Info("Battle settled", "battle_id", result.BattleID, "winner_id", result.WinnerID, "mode", result.Mode)
	return &result, nil
}

func (s *service) applyRewards(ctx context.Context, tx repository.SettlementTx, rewards domain.RewardIntent) error {
	if rewards.Empty() {
		return nil
	}
	winnerID := rewards.WinnerID

	for _, grant := range rewards.Currencies {
		balances, err := tx.GetBalancesForUpdate(ctx, winnerID)
		if err != nil {
			return err
		}
		if err := tx.SetBalance(ctx, winnerID, grant.Kind, balances.Get(grant.Kind)+grant.Amount); err != nil {
			return err
		}
	}

	if len(rewards.Items) > 0 {
		inv, err := tx.GetInventoryForUpdate(ctx, winnerID)
		if err != nil {
			return err
		}
		for _, grant := range rewards.Items {
			stack := domain.InventoryStack{ItemCode: grant.ItemCode, Quantity: grant.Quantity}
			if i := inv.FindStack(grant.ItemCode); i >= 0 {
				stack = inv.Stacks[i]
				stack.Quantity += grant.Quantity
			}
			if err := tx.UpsertStack(ctx, winnerID, stack); err != nil {
				return err
			}
		}
	}

	if rewards.Experience > 0 {
		character, err := tx.GetCharacterForUpdate(ctx, winnerID)
		if err != nil {
			return err
		}
		character.Experience += rewards.Experience
		for character.Experience >= domain.ExperienceToNextLevel(character.Level) {
			overflow := character.Experience - domain.ExperienceToNextLevel(character.Level)
			character.LevelUp()
			character.Experience = overflow
			metrics.LevelUps.Inc()
		}
		if err := tx.UpdateCharacter(ctx, *character); err != nil {
			return err
		}
	}
	return nil
}
