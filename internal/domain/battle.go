package domain

import "fmt"

// BattleMode tags which reward table a battle settles against.
type BattleMode string

const (
	ModePvP  BattleMode = "pvp"
	ModePvE  BattleMode = "pve"
	ModeBoss BattleMode = "boss"
)

// ParseBattleMode validates a string battle mode.
func ParseBattleMode(s string) (BattleMode, error) {
	switch BattleMode(s) {
	case ModePvP, ModePvE, ModeBoss:
		return BattleMode(s), nil
	default:
		return "", fmt.Errorf("invalid battle mode %q", s)
	}
}

// BattleAction is the closed set of actions a combatant can take in a turn.
type BattleAction string

const (
	ActionAttack        BattleAction = "attack"
	ActionCriticalHit   BattleAction = "critical_hit"
	ActionSpecialAttack BattleAction = "special_attack"
	ActionDeath         BattleAction = "death"
	ActionDraw          BattleAction = "draw"
)

// Combatant is a stat snapshot captured at battle start. A battle is
// unaffected by concurrent stat changes to either combatant.
type Combatant struct {
	ID        string `json:"id"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
	Speed     int    `json:"speed"`
}

// Validate fails fast on malformed snapshots rather than producing
// undefined simulation behavior.
func (c Combatant) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty combatant id", ErrInvalidCombatant)
	}
	if c.Health <= 0 || c.MaxHealth <= 0 || c.Health > c.MaxHealth {
		return fmt.Errorf("%w: health %d/%d out of range", ErrInvalidCombatant, c.Health, c.MaxHealth)
	}
	if c.Attack < 0 || c.Defense < 0 || c.Speed < 0 {
		return fmt.Errorf("%w: negative stat", ErrInvalidCombatant)
	}
	return nil
}

// BattleLogEntry is one resolved turn in the ordered battle log.
type BattleLogEntry struct {
	Turn     int          `json:"turn"`
	ActorID  string       `json:"actor_id"`
	Action   BattleAction `json:"action"`
	TargetID string       `json:"target_id,omitempty"`
	Damage   int          `json:"damage,omitempty"`
	Message  string       `json:"message"`
}

// RewardIntent is the combat engine's pure output describing what should be
// granted, prior to being applied by settlement.
type RewardIntent struct {
	WinnerID   string          `json:"winner_id,omitempty"`
	Experience int             `json:"experience"`
	Currencies []CurrencyGrant `json:"currencies,omitempty"`
	Items      []ItemGrant     `json:"items,omitempty"`
}

// Empty reports whether the intent grants nothing (draws).
func (r RewardIntent) Empty() bool {
	return r.WinnerID == "" && r.Experience == 0 && len(r.Currencies) == 0 && len(r.Items) == 0
}

// BattleResult is the full outcome of a simulated battle. WinnerID is empty
// for a draw.
type BattleResult struct {
	BattleID     string           `json:"battle_id"`
	Mode         BattleMode       `json:"mode"`
	ChallengerID string           `json:"challenger_id"`
	OpponentID   string           `json:"opponent_id"`
	WinnerID     string           `json:"winner_id,omitempty"`
	Turns        int              `json:"turns"`
	Log          []BattleLogEntry `json:"log"`
	Rewards      RewardIntent     `json:"rewards"`
}

// Draw reports whether the battle ended without a winner.
func (r BattleResult) Draw() bool {
	return r.WinnerID == ""
}
