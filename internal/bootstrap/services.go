package bootstrap

import (
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/battle"
	"github.com/kestrelgames/emberrealm/internal/character"
	"github.com/kestrelgames/emberrealm/internal/combat"
	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/config"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/event"
	"github.com/kestrelgames/emberrealm/internal/inventory"
	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/ledger"
	"github.com/kestrelgames/emberrealm/internal/settlement"
	"github.com/kestrelgames/emberrealm/internal/shop"
)

// Services holds all game services.
type Services struct {
	Ledger    ledger.Service
	Inventory inventory.Service
	Character character.Service
	Shop      shop.Service
	Battle    battle.Service
	Catalog   item.Catalog
}

// InitializeServices wires the game services in dependency order. The lock
// manager is shared so that ledger, inventory and settlement serialize on
// the same per-player keys.
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus) (*Services, error) {
	catalog, err := item.NewCatalog(cfg.ItemsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load item catalog: %w", err)
	}

	bosses, err := battle.NewBosses(cfg.BossesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load boss roster: %w", err)
	}

	locks := concurrency.NewLockManager()

	ledgerService := ledger.NewService(repos.Ledger, locks, domain.Balances{
		Soft:    cfg.StartingSoft,
		Hard:    cfg.StartingHard,
		Upgrade: cfg.StartingUpgrade,
	})
	inventoryService := inventory.NewService(repos.Inventory, catalog, locks)
	characterService := character.NewService(repos.Character, ledgerService, catalog, inventoryService)
	shopService := shop.NewService(catalog, ledgerService, inventoryService)

	engine := combat.NewEngine(combat.Tuning{
		MaxTurns:          cfg.MaxBattleTurns,
		CritChance:        cfg.CritChance,
		SpecialChance:     cfg.SpecialChance,
		SpecialMultiplier: cfg.SpecialMultiplier,
	}, combat.DefaultRewardTable())

	settlementService := settlement.NewService(repos.Settlement, locks)
	battleService := battle.NewService(characterService, engine, settlementService, bus, bosses)

	return &Services{
		Ledger:    ledgerService,
		Inventory: inventoryService,
		Character: characterService,
		Shop:      shopService,
		Battle:    battleService,
		Catalog:   catalog,
	}, nil
}
