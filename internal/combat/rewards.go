package combat

import "github.com/kestrelgames/emberrealm/internal/domain"

// Reward is one row of the reward table.
type Reward struct {
	Experience int
	Currencies []domain.CurrencyGrant
	Items      []domain.ItemGrant
}

// RewardTable maps a battle mode to the grants its winner receives. Draws
// grant nothing.
type RewardTable map[domain.BattleMode]Reward

// DefaultRewardTable returns the standard per-mode reward rows.
func DefaultRewardTable() RewardTable {
	return RewardTable{
		domain.ModePvP: {
			Experience: 100,
			Currencies: []domain.CurrencyGrant{{Kind: domain.CurrencySoft, Amount: 50}},
			Items:      []domain.ItemGrant{{ItemCode: "potion_health", Quantity: 1}},
		},
		domain.ModePvE: {
			Experience: 75,
			Currencies: []domain.CurrencyGrant{{Kind: domain.CurrencySoft, Amount: 25}},
		},
		domain.ModeBoss: {
			Experience: 150,
			Currencies: []domain.CurrencyGrant{{Kind: domain.CurrencyHard, Amount: 25}},
			Items:      []domain.ItemGrant{{ItemCode: "ember_core", Quantity: 1}},
		},
	}
}

// Intent computes the reward intent for a finished battle. Only a player
// winner is rewarded: in pve and boss modes the opponent is an NPC, so a
// battle the challenger loses yields an empty intent. Draws yield an empty
// intent in every mode.
func (t RewardTable) Intent(mode domain.BattleMode, winnerID, challengerID string) domain.RewardIntent {
	if winnerID == "" {
		return domain.RewardIntent{}
	}
	if mode != domain.ModePvP && winnerID != challengerID {
		return domain.RewardIntent{}
	}
	row, ok := t[mode]
	if !ok {
		return domain.RewardIntent{}
	}

	return domain.RewardIntent{
		WinnerID:   winnerID,
		Experience: row.Experience,
		Currencies: append([]domain.CurrencyGrant(nil), row.Currencies...),
		Items:      append([]domain.ItemGrant(nil), row.Items...),
	}
}
