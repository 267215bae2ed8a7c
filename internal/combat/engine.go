package combat

import (
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Tuning holds the simulation parameters. Zero values are replaced by the
// package defaults.
type Tuning struct {
	MaxTurns          int
	CritChance        float64
	SpecialChance     float64
	SpecialMultiplier float64
}

// DefaultTuning returns the standard simulation parameters.
func DefaultTuning() Tuning {
	return Tuning{
		MaxTurns:          DefaultMaxTurns,
		CritChance:        DefaultCritChance,
		SpecialChance:     DefaultSpecialChance,
		SpecialMultiplier: DefaultSpecialMultiplier,
	}
}

func (t Tuning) withDefaults() Tuning {
	if t.MaxTurns <= 0 {
		t.MaxTurns = DefaultMaxTurns
	}
	if t.CritChance <= 0 {
		t.CritChance = DefaultCritChance
	}
	if t.SpecialChance <= 0 {
		t.SpecialChance = DefaultSpecialChance
	}
	if t.SpecialMultiplier <= 0 {
		t.SpecialMultiplier = DefaultSpecialMultiplier
	}
	return t
}

// Engine runs deterministic turn-based battle simulations. It holds no
// shared mutable state: simulations may run fully in parallel, and the
// engine never touches the ledger or inventory. It only computes intent.
type Engine struct {
	tuning  Tuning
	rewards RewardTable
}

// NewEngine creates a combat engine with the given tuning and reward table.
func NewEngine(tuning Tuning, rewards RewardTable) *Engine {
	return &Engine{tuning: tuning.withDefaults(), rewards: rewards}
}

// Simulate runs a battle between two stat snapshots to completion. The
// challenger acts first on equal speed. The result, including every roll,
// is a pure function of the inputs.
func (e *Engine) Simulate(battleID string, mode domain.BattleMode, challenger, opponent domain.Combatant) (*domain.BattleResult, error) {
	if err := challenger.Validate(); err != nil {
		return nil, err
	}
	if err := opponent.Validate(); err != nil {
		return nil, err
	}
	if challenger.ID == opponent.ID {
		return nil, fmt.Errorf("%w: identical combatant ids", domain.ErrInvalidCombatant)
	}

	first, second := &challenger, &opponent
	if opponent.Speed > challenger.Speed {
		first, second = &opponent, &challenger
	}

	rng := newRoller(battleID)
	result := &domain.BattleResult{
		BattleID:     battleID,
		Mode:         mode,
		ChallengerID: challenger.ID,
		OpponentID:   opponent.ID,
	}

	turn := 0
	for turn < e.tuning.MaxTurns {
		for _, pair := range [][2]*domain.Combatant{{first, second}, {second, first}} {
			actor, target := pair[0], pair[1]
			if actor.Health <= 0 || target.Health <= 0 {
				continue
			}
			turn++
			result.Log = append(result.Log, e.resolveTurn(rng, turn, actor, target))

			if target.Health <= 0 {
				result.Log = append(result.Log, domain.BattleLogEntry{
					Turn:    turn,
					ActorID: target.ID,
					Action:  domain.ActionDeath,
					Message: fmt.Sprintf(msgDeath, target.ID),
				})
				result.WinnerID = actor.ID
			}
			if turn >= e.tuning.MaxTurns {
				break
			}
		}
		if result.WinnerID != "" {
			break
		}
	}
	result.Turns = turn

	if result.WinnerID == "" {
		result.Log = append(result.Log, domain.BattleLogEntry{
			Turn:    turn,
			Action:  domain.ActionDraw,
			Message: fmt.Sprintf(msgDraw, turn),
		})
	}

	result.Rewards = e.rewards.Intent(mode, result.WinnerID, challenger.ID)
	return result, nil
}

// resolveTurn applies one action. A single roll selects critical hit,
// special attack, or basic attack in that priority order.
func (e *Engine) resolveTurn(rng roller, turn int, actor, target *domain.Combatant) domain.BattleLogEntry {
	base := actor.Attack - target.Defense
	if base < 1 {
		base = 1
	}

	action := domain.ActionAttack
	format := msgAttack
	damage := base
	switch roll := rng.roll(turn); {
	case roll < e.tuning.CritChance:
		action = domain.ActionCriticalHit
		format = msgCrit
		damage = int(float64(base) * DefaultCritMultiplier)
	case roll < e.tuning.CritChance+e.tuning.SpecialChance:
		action = domain.ActionSpecialAttack
		format = msgSpecial
		damage = int(float64(base) * e.tuning.SpecialMultiplier)
	}

	target.Health -= damage
	if target.Health < 0 {
		target.Health = 0
	}

	return domain.BattleLogEntry{
		Turn:     turn,
		ActorID:  actor.ID,
		Action:   action,
		TargetID: target.ID,
		Damage:   damage,
		Message:  fmt.Sprintf(format, actor.ID, target.ID, damage),
	}
}
