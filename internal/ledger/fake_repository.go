package ledger

import (
	"context"
	"sync"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// FakeRepository is an in-memory repository.Ledger for tests and local
// development. Transactions copy balances on read and publish them on
// commit, mirroring the row-lock behavior of the postgres implementation.
type FakeRepository struct {
	mu       sync.Mutex
	balances map[string]domain.Balances
}

// NewFakeRepository creates an empty in-memory ledger repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{balances: make(map[string]domain.Balances)}
}

// EnsureBalances inserts the grant row if missing
func (f *FakeRepository) EnsureBalances(_ context.Context, playerID string, grant domain.Balances) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.balances[playerID]; !ok {
		grant.PlayerID = playerID
		f.balances[playerID] = grant
	}
	return nil
}

// GetBalances returns the current balances
func (f *FakeRepository) GetBalances(_ context.Context, playerID string) (*domain.Balances, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.balances[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &b, nil
}

// BeginTx starts an in-memory transaction holding the repository lock until
// commit or rollback, which serializes concurrent writers like FOR UPDATE.
func (f *FakeRepository) BeginTx(_ context.Context) (repository.LedgerTx, error) {
	f.mu.Lock()
	return &fakeTx{repo: f, pending: make(map[string]domain.Balances)}, nil
}

type fakeTx struct {
	repo    *FakeRepository
	pending map[string]domain.Balances
	done    bool
}

func (t *fakeTx) GetBalancesForUpdate(_ context.Context, playerID string) (*domain.Balances, error) {
	if b, ok := t.pending[playerID]; ok {
		return &b, nil
	}
	b, ok := t.repo.balances[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &b, nil
}

func (t *fakeTx) SetBalance(_ context.Context, playerID string, kind domain.CurrencyKind, balance int) error {
	b, ok := t.pending[playerID]
	if !ok {
		cur, exists := t.repo.balances[playerID]
		if !exists {
			return domain.ErrPlayerNotFound
		}
		b = cur
	}
	switch kind {
	case domain.CurrencySoft:
		b.Soft = balance
	case domain.CurrencyHard:
		b.Hard = balance
	case domain.CurrencyUpgrade:
		b.Upgrade = balance
	default:
		return domain.ErrUnknownCurrency
	}
	t.pending[playerID] = b
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return nil
	}
	for id, b := range t.pending {
		t.repo.balances[id] = b
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}
