package ledger

import (
	"context"
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// Service defines the interface for currency ledger operations. Every
// mutation is a signed delta applied atomically; transfers are zero-sum,
// credits and debits are authorized mints and sinks.
type Service interface {
	Credit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error)
	Debit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error)
	Transfer(ctx context.Context, fromID, toID string, kind domain.CurrencyKind, amount int) error
	Balances(ctx context.Context, playerID string) (*domain.Balances, error)
}

type service struct {
	repo  repository.Ledger
	locks *concurrency.LockManager
	grant domain.Balances
}

// NewService creates a new ledger service. grant is the starting balance
// lazily applied to players without a ledger row.
func NewService(repo repository.Ledger, locks *concurrency.LockManager, grant domain.Balances) Service {
	return &service{
		repo:  repo,
		locks: locks,
		grant: grant,
	}
}

func validateAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return nil
}

// Credit increases the balance by amount and returns the new balance.
func (s *service) Credit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error) {
	log := logger.FromContext(ctx)

	if err := validateAmount(amount); err != nil {
		return 0, err
	}
	if err := s.ensure(ctx, playerID); err != nil {
		return 0, err
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	newBalance, err := s.applyDelta(ctx, playerID, kind, amount)
	if err != nil {
		return 0, err
	}

	metrics.LedgerCredits.WithLabelValues(string(kind)).Inc()
	log.Info("Ledger credit", "player_id", playerID, "kind", kind, "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// Debit decreases the balance by amount and returns the new balance. The
// insufficient-funds check and the decrement happen under the same row lock.
func (s *service) Debit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error) {
	log := logger.FromContext(ctx)

	if err := validateAmount(amount); err != nil {
		return 0, err
	}
	if err := s.ensure(ctx, playerID); err != nil {
		return 0, err
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	newBalance, err := s.applyDelta(ctx, playerID, kind, -amount)
	if err != nil {
		return 0, err
	}

	metrics.LedgerDebits.WithLabelValues(string(kind)).Inc()
	log.Info("Ledger debit", "player_id", playerID, "kind", kind, "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// Transfer moves amount between two players as one atomic unit. Both
// players' locks are taken in ascending id order to avoid deadlock.
func (s *service) Transfer(ctx context.Context, fromID, toID string, kind domain.CurrencyKind, amount int) error {
	log := logger.FromContext(ctx)

	if err := validateAmount(amount); err != nil {
		return err
	}
	if fromID == toID {
		return domain.ErrSameAccount
	}
	if err := s.ensure(ctx, fromID); err != nil {
		return err
	}
	if err := s.ensure(ctx, toID); err != nil {
		return err
	}

	unlock := s.locks.LockPair(fromID, toID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Row locks are acquired in the same fixed order as the in-process
	// locks.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	lockedBalances := make(map[string]*domain.Balances, 2)
	for _, id := range []string{first, second} {
		b, err := tx.GetBalancesForUpdate(ctx, id)
		if err != nil {
			return err
		}
		lockedBalances[id] = b
	}

	from := lockedBalances[fromID]
	to := lockedBalances[toID]
	if from.Get(kind) < amount {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, from.Get(kind), amount)
	}

	if err := tx.SetBalance(ctx, fromID, kind, from.Get(kind)-amount); err != nil {
		return err
	}
	if err := tx.SetBalance(ctx, toID, kind, to.Get(kind)+amount); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	metrics.LedgerTransfers.WithLabelValues(string(kind)).Inc()
	log.Info("Ledger transfer", "from", fromID, "to", toID, "kind", kind, "amount", amount)
	return nil
}

// Balances returns the player's three balances, lazily initializing the
// ledger row with the starting grant.
func (s *service) Balances(ctx context.Context, playerID string) (*domain.Balances, error) {
	if err := s.ensure(ctx, playerID); err != nil {
		return nil, err
	}
	return s.repo.GetBalances(ctx, playerID)
}

func (s *service) ensure(ctx context.Context, playerID string) error {
	grant := s.grant
	grant.PlayerID = playerID
	if err := s.repo.EnsureBalances(ctx, playerID, grant); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}

// applyDelta reads the balance under a row lock, applies the signed delta,
// and writes it back in one transaction.
func (s *service) applyDelta(ctx context.Context, playerID string, kind domain.CurrencyKind, delta int) (int, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balances, err := tx.GetBalancesForUpdate(ctx, playerID)
	if err != nil {
		return 0, err
	}

	newBalance := balances.Get(kind) + delta
	if newBalance < 0 {
		return 0, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, balances.Get(kind), -delta)
	}

	if err := tx.SetBalance(ctx, playerID, kind, newBalance); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	return newBalance, nil
}
