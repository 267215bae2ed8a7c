package domain

// EventTypeBattleCompleted is published once per completed battle for
// real-time broadcast. Delivery is fire-and-forget.
const EventTypeBattleCompleted = "battle.completed"

// BattleCompletedPayload is the outbound event body for a completed battle.
type BattleCompletedPayload struct {
	BattleID     string           `json:"battle_id"`
	Mode         BattleMode       `json:"mode"`
	WinnerID     string           `json:"winner_id,omitempty"`
	Log          []BattleLogEntry `json:"log"`
	RewardIntent RewardIntent     `json:"reward_intent"`
}
