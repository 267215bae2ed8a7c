package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain
// consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Ledger messages
	ErrMsgNotEnoughFunds  = "Not enough funds"
	ErrMsgInvalidAmount   = "Amount must be a positive integer"
	ErrMsgSameAccount     = "Sender and receiver must differ"
	ErrMsgUnknownCurrency = "Unknown currency kind"

	// Inventory messages
	ErrMsgItemNotFound      = "Item not found"
	ErrMsgNotOwned          = "You don't have that item"
	ErrMsgInsufficientItems = "Not enough items"
	ErrMsgNoEquipSlot       = "That item cannot be equipped"
	ErrMsgNotEquipped       = "That item is not equipped"
	ErrMsgItemEquipped      = "Unequip that item first"

	// Player messages
	ErrMsgPlayerNotFound    = "Player not found"
	ErrMsgCharacterNotFound = "Character not found"

	// Battle messages
	ErrMsgBossNotFound      = "Boss not found"
	ErrMsgInvalidCombatant  = "Invalid combatant snapshot"
	ErrMsgInvalidBattleMode = "Invalid battle mode"

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailable        = "Server is temporarily unavailable. Please try again later."
	ErrMsgUnknownError       = "Unknown error"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess     = "Item added successfully"
	MsgItemRemovedSuccess   = "Item removed successfully"
	MsgItemEquippedSuccess  = "Item equipped successfully"
	MsgItemUnequippedSucc   = "Item unequipped successfully"
	MsgTransferSuccess      = "Transfer completed successfully"
	MsgRegisteredSuccess    = "Player registered successfully"
	MsgPurchaseSuccess      = "Purchase completed successfully"
)
