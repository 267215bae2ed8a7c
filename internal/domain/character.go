package domain

import "time"

// Default stats for a freshly registered character.
const (
	DefaultLevel     = 1
	DefaultMaxHealth = 100
	DefaultAttack    = 10
	DefaultDefense   = 5
	DefaultSpeed     = 8
)

// ExperienceToNextLevel is the xp required to advance from the given level.
func ExperienceToNextLevel(level int) int {
	return level * 100
}

// Character holds the mutable RPG stats for a player. Exactly one per
// player; mutated only by level-up and equipment bonuses.
type Character struct {
	PlayerID   string    `json:"player_id"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	Health     int       `json:"health"`
	MaxHealth  int       `json:"max_health"`
	Attack     int       `json:"attack"`
	Defense    int       `json:"defense"`
	Speed      int       `json:"speed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCharacter returns a character with registration defaults.
func NewCharacter(playerID, name string) *Character {
	return &Character{
		PlayerID:  playerID,
		Name:      name,
		Level:     DefaultLevel,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
		Attack:    DefaultAttack,
		Defense:   DefaultDefense,
		Speed:     DefaultSpeed,
	}
}

// LevelUp advances the character one level: +10 max health (fully healed),
// +2 attack, +1 defense, +1 speed, experience reset.
func (c *Character) LevelUp() {
	c.Level++
	c.MaxHealth += 10
	c.Health = c.MaxHealth
	c.Attack += 2
	c.Defense++
	c.Speed++
	c.Experience = 0
}
