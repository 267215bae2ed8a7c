package character

import (
	"context"
	"sync"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// FakeRepository is an in-memory repository.Character for tests and local
// development.
type FakeRepository struct {
	mu         sync.Mutex
	players    map[string]string
	characters map[string]domain.Character
}

// NewFakeRepository creates an empty in-memory character repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		players:    make(map[string]string),
		characters: make(map[string]domain.Character),
	}
}

// CreatePlayer records the player row
func (f *FakeRepository) CreatePlayer(_ context.Context, playerID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players[playerID] = username
	return nil
}

// CreateCharacter records the character row
func (f *FakeRepository) CreateCharacter(_ context.Context, character *domain.Character) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.characters[character.PlayerID] = *character
	return nil
}

// GetCharacter returns the character for a player
func (f *FakeRepository) GetCharacter(_ context.Context, playerID string) (*domain.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.characters[playerID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

// BeginTx starts an in-memory transaction holding the repository lock until
// commit or rollback.
func (f *FakeRepository) BeginTx(_ context.Context) (repository.CharacterTx, error) {
	f.mu.Lock()
	return &fakeTx{repo: f, pending: make(map[string]domain.Character)}, nil
}

type fakeTx struct {
	repo    *FakeRepository
	pending map[string]domain.Character
	done    bool
}

func (t *fakeTx) GetCharacterForUpdate(_ context.Context, playerID string) (*domain.Character, error) {
	if c, ok := t.pending[playerID]; ok {
		return &c, nil
	}
	c, ok := t.repo.characters[playerID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (t *fakeTx) UpdateCharacter(_ context.Context, character domain.Character) error {
	if _, ok := t.repo.characters[character.PlayerID]; !ok {
		return domain.ErrCharacterNotFound
	}
	t.pending[character.PlayerID] = character
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return nil
	}
	for id, c := range t.pending {
		t.repo.characters[id] = c
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
