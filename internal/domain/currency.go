package domain

import "fmt"

// CurrencyKind identifies one of the three player currencies.
type CurrencyKind string

const (
	CurrencySoft    CurrencyKind = "soft"
	CurrencyHard    CurrencyKind = "hard"
	CurrencyUpgrade CurrencyKind = "upgrade"
)

// ParseCurrencyKind validates a string currency kind at the ledger boundary.
// Arbitrary strings are rejected rather than silently accepted.
func ParseCurrencyKind(s string) (CurrencyKind, error) {
	switch CurrencyKind(s) {
	case CurrencySoft, CurrencyHard, CurrencyUpgrade:
		return CurrencyKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

// Balances holds the three currency balances for one player.
// Invariant: no field is ever negative.
type Balances struct {
	PlayerID string `json:"player_id"`
	Soft     int    `json:"soft"`
	Hard     int    `json:"hard"`
	Upgrade  int    `json:"upgrade"`
}

// Get returns the balance for the given kind.
func (b Balances) Get(kind CurrencyKind) int {
	switch kind {
	case CurrencySoft:
		return b.Soft
	case CurrencyHard:
		return b.Hard
	case CurrencyUpgrade:
		return b.Upgrade
	}
	return 0
}

// CurrencyGrant is a single currency reward inside a RewardIntent.
type CurrencyGrant struct {
	Kind   CurrencyKind `json:"kind"`
	Amount int          `json:"amount"`
}
