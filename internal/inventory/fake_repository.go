package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// FakeRepository is an in-memory repository.Inventory for tests and local
// development. Transactions hold the repository lock until commit or
// rollback, which serializes concurrent writers like FOR UPDATE.
type FakeRepository struct {
	mu     sync.Mutex
	stacks map[string]map[string]domain.InventoryStack
}

// NewFakeRepository creates an empty in-memory inventory repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{stacks: make(map[string]map[string]domain.InventoryStack)}
}

func (f *FakeRepository) snapshot(playerID string) *domain.Inventory {
	inv := &domain.Inventory{PlayerID: playerID}
	for _, stack := range f.stacks[playerID] {
		inv.Stacks = append(inv.Stacks, stack)
	}
	sort.Slice(inv.Stacks, func(i, j int) bool {
		return inv.Stacks[i].ItemCode < inv.Stacks[j].ItemCode
	})
	return inv
}

// GetInventory returns a snapshot of the player's stacks
func (f *FakeRepository) GetInventory(_ context.Context, playerID string) (*domain.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(playerID), nil
}

// BeginTx starts an in-memory transaction
func (f *FakeRepository) BeginTx(_ context.Context) (repository.InventoryTx, error) {
	f.mu.Lock()
	return &fakeTx{repo: f, pending: make(map[string]map[string]*domain.InventoryStack)}, nil
}

type fakeTx struct {
	repo *FakeRepository
	// pending maps player to item code to the new stack, nil for deletion.
	pending map[string]map[string]*domain.InventoryStack
	done    bool
}

func (t *fakeTx) GetInventoryForUpdate(_ context.Context, playerID string) (*domain.Inventory, error) {
	return t.repo.snapshot(playerID), nil
}

func (t *fakeTx) UpsertStack(_ context.Context, playerID string, stack domain.InventoryStack) error {
	if t.pending[playerID] == nil {
		t.pending[playerID] = make(map[string]*domain.InventoryStack)
	}
	s := stack
	t.pending[playerID][stack.ItemCode] = &s
	return nil
}

func (t *fakeTx) DeleteStack(_ context.Context, playerID, itemCode string) error {
	if t.pending[playerID] == nil {
		t.pending[playerID] = make(map[string]*domain.InventoryStack)
	}
	t.pending[playerID][itemCode] = nil
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return nil
	}
	for playerID, changes := range t.pending {
		if t.repo.stacks[playerID] == nil {
			t.repo.stacks[playerID] = make(map[string]domain.InventoryStack)
		}
		for code, stack := range changes {
			if stack == nil {
				delete(t.repo.stacks[playerID], code)
			} else {
				t.repo.stacks[playerID][code] = *stack
			}
		}
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
