package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateCode = errors.New("duplicate item code")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for catalog items
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Slot          string             `json:"slot"`
	Bonuses       domain.StatBonuses `json:"bonuses"`
	Price         int                `json:"price"`
	PriceCurrency string             `json:"price_currency"`
}

// Load reads and parses an items JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items config: %w", err)
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(config.Items) == 0 {
		return fmt.Errorf("%w: no items defined", ErrInvalidConfig)
	}

	codes := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		def := &config.Items[i]

		if def.Code == "" {
			return fmt.Errorf("%w: item %d has empty code", ErrInvalidConfig, i)
		}
		if codes[def.Code] {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, def.Code)
		}
		codes[def.Code] = true

		if def.Name == "" {
			return fmt.Errorf("%w: item %s has empty name", ErrInvalidConfig, def.Code)
		}
		if _, err := domain.ParseEquipSlot(def.Slot); err != nil {
			return fmt.Errorf("item %s: %w", def.Code, err)
		}
		if def.Price < 0 {
			return fmt.Errorf("%w: item %s has negative price", ErrInvalidConfig, def.Code)
		}
		if def.Price > 0 {
			if _, err := domain.ParseCurrencyKind(def.PriceCurrency); err != nil {
				return fmt.Errorf("item %s: %w", def.Code, err)
			}
		}
	}

	return nil
}

// toDomain converts a validated definition to the immutable catalog entity.
func toDomain(def Def) domain.Item {
	slot, _ := domain.ParseEquipSlot(def.Slot)
	currency := domain.CurrencyKind(def.PriceCurrency)
	return domain.Item{
		Code:          def.Code,
		Name:          def.Name,
		Description:   def.Description,
		Slot:          slot,
		Bonuses:       def.Bonuses,
		Price:         def.Price,
		PriceCurrency: currency,
	}
}
