package battle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Sentinel errors for the boss loader
var (
	ErrDuplicateBoss     = errors.New("duplicate boss code")
	ErrInvalidBossConfig = errors.New("invalid boss configuration")
)

// BossConfig represents the JSON configuration for bosses
type BossConfig struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Bosses []BossDef `json:"bosses"`
}

// BossDef represents a single boss definition in the JSON
type BossDef struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Health  int    `json:"health"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Speed   int    `json:"speed"`
}

// LoadBosses reads and parses a bosses JSON file
func LoadBosses(path string) (*BossConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bosses config: %w", err)
	}

	var config BossConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bosses config: %w", err)
	}

	return &config, nil
}

// ValidateBosses checks the boss configuration for errors
func ValidateBosses(config *BossConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidBossConfig)
	}
	if len(config.Bosses) == 0 {
		return fmt.Errorf("%w: no bosses defined", ErrInvalidBossConfig)
	}

	codes := make(map[string]bool, len(config.Bosses))
	for i := range config.Bosses {
		def := &config.Bosses[i]

		if def.Code == "" {
			return fmt.Errorf("%w: boss %d has empty code", ErrInvalidBossConfig, i)
		}
		if codes[def.Code] {
			return fmt.Errorf("%w: %s", ErrDuplicateBoss, def.Code)
		}
		codes[def.Code] = true

		if def.Name == "" {
			return fmt.Errorf("%w: boss %s has empty name", ErrInvalidBossConfig, def.Code)
		}
		if def.Health <= 0 || def.Attack < 0 || def.Defense < 0 || def.Speed < 0 {
			return fmt.Errorf("%w: boss %s has invalid stats", ErrInvalidBossConfig, def.Code)
		}
	}

	return nil
}

// Bosses is an immutable index of boss stat blocks keyed by code.
type Bosses map[string]domain.Combatant

// NewBosses loads and validates the boss configuration.
func NewBosses(path string) (Bosses, error) {
	config, err := LoadBosses(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateBosses(config); err != nil {
		return nil, err
	}
	return newBossesFromConfig(config), nil
}

// NewBossesFromDefs builds a boss index directly from definitions. Used by
// tests and seed tooling.
func NewBossesFromDefs(defs []BossDef) Bosses {
	return newBossesFromConfig(&BossConfig{Bosses: defs})
}

func newBossesFromConfig(config *BossConfig) Bosses {
	bosses := make(Bosses, len(config.Bosses))
	for _, def := range config.Bosses {
		bosses[def.Code] = domain.Combatant{
			ID:        def.Code,
			Health:    def.Health,
			MaxHealth: def.Health,
			Attack:    def.Attack,
			Defense:   def.Defense,
			Speed:     def.Speed,
		}
	}
	return bosses
}

// Get returns a fresh stat snapshot for the boss code.
func (b Bosses) Get(code string) (domain.Combatant, error) {
	boss, ok := b[code]
	if !ok {
		return domain.Combatant{}, fmt.Errorf("%w: %s", domain.ErrUnknownBoss, code)
	}
	return boss, nil
}
