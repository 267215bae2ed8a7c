package repository

import (
	"context"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Character defines the interface for player/character persistence.
// A player owns exactly one character; both rows are created at registration.
type Character interface {
	CreatePlayer(ctx context.Context, playerID, username string) error
	CreateCharacter(ctx context.Context, character *domain.Character) error
	GetCharacter(ctx context.Context, playerID string) (*domain.Character, error)
	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx defines the interface for character transactions
type CharacterTx interface {
	Tx
	GetCharacterForUpdate(ctx context.Context, playerID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character domain.Character) error
}
