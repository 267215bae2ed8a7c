package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player errors
	ErrMsgPlayerNotFound    = "player not found"
	ErrMsgCharacterNotFound = "character not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"
	ErrMsgSameAccount       = "cannot transfer to the same account"
	ErrMsgUnknownCurrency   = "unknown currency kind"

	// Item/inventory errors
	ErrMsgUnknownItem          = "unknown item"
	ErrMsgNotOwned             = "item not owned"
	ErrMsgNoEquipSlot          = "item has no equip slot"
	ErrMsgNotEquipped          = "item is not equipped"
	ErrMsgItemEquipped         = "item is equipped"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgUnknownSlot          = "unknown equipment slot"

	// Battle errors
	ErrMsgInvalidCombatant = "invalid combatant snapshot"
	ErrMsgUnknownBoss      = "unknown boss"
	ErrMsgAlreadySettled   = "battle already settled"

	// Database/system errors
	ErrMsgPersistenceUnavailable = "persistence unavailable"
	ErrMsgTxClosed               = "tx is closed"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound    = errors.New(ErrMsgPlayerNotFound)
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrSameAccount       = errors.New(ErrMsgSameAccount)
	ErrUnknownCurrency   = errors.New(ErrMsgUnknownCurrency)

	// Item/inventory errors
	ErrUnknownItem          = errors.New(ErrMsgUnknownItem)
	ErrNotOwned             = errors.New(ErrMsgNotOwned)
	ErrNoEquipSlot          = errors.New(ErrMsgNoEquipSlot)
	ErrNotEquipped          = errors.New(ErrMsgNotEquipped)
	ErrItemEquipped         = errors.New(ErrMsgItemEquipped)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrUnknownSlot          = errors.New(ErrMsgUnknownSlot)

	// Battle errors
	ErrInvalidCombatant = errors.New(ErrMsgInvalidCombatant)
	ErrUnknownBoss      = errors.New(ErrMsgUnknownBoss)

	// System errors
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)
)
