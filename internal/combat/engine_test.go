package combat

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(DefaultTuning(), DefaultRewardTable())
}

func strongCombatant(id string) domain.Combatant {
	return domain.Combatant{ID: id, Health: 100, MaxHealth: 100, Attack: 20, Defense: 5, Speed: 10}
}

func weakCombatant(id string) domain.Combatant {
	return domain.Combatant{ID: id, Health: 50, MaxHealth: 50, Attack: 8, Defense: 2, Speed: 6}
}

func TestSimulateDeterministic(t *testing.T) {
	engine := testEngine()

	a, err := engine.Simulate("battle-42", domain.ModePvP, strongCombatant("alice"), weakCombatant("bob"))
	require.NoError(t, err)
	b, err := engine.Simulate("battle-42", domain.ModePvP, strongCombatant("alice"), weakCombatant("bob"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulateDifferentBattleIDsDiverge(t *testing.T) {
	engine := testEngine()

	var logs [][]domain.BattleLogEntry
	for _, id := range []string{"battle-1", "battle-2", "battle-3", "battle-4", "battle-5"} {
		r, err := engine.Simulate(id, domain.ModePvP, strongCombatant("alice"), strongCombatant("bob"))
		require.NoError(t, err)
		logs = append(logs, r.Log)
	}

	// Not every pair of battles must differ, but five identical logs would
	// mean the battle id is not feeding the rolls.
	allSame := true
	for _, log := range logs[1:] {
		if !reflect.DeepEqual(log, logs[0]) {
			allSame = false
		}
	}
	assert.False(t, allSame)
}

func TestSimulateOneTurnKill(t *testing.T) {
	engine := testEngine()

	attacker := domain.Combatant{ID: "slayer", Health: 100, MaxHealth: 100, Attack: 20, Defense: 0, Speed: 10}
	victim := domain.Combatant{ID: "wisp", Health: 10, MaxHealth: 10, Attack: 1, Defense: 0, Speed: 1}

	r, err := engine.Simulate("battle-boss-1", domain.ModeBoss, attacker, victim)
	require.NoError(t, err)

	assert.Equal(t, "slayer", r.WinnerID)
	assert.Equal(t, 1, r.Turns)
	require.Len(t, r.Log, 2)
	assert.Equal(t, domain.ActionDeath, r.Log[1].Action)
	assert.Equal(t, "wisp", r.Log[1].ActorID)
}

func TestSimulateSpeedOrdersTurns(t *testing.T) {
	engine := testEngine()

	fast := domain.Combatant{ID: "fast", Health: 100, MaxHealth: 100, Attack: 10, Defense: 5, Speed: 20}
	slow := domain.Combatant{ID: "slow", Health: 100, MaxHealth: 100, Attack: 10, Defense: 5, Speed: 5}

	// The faster combatant acts first even as the opponent.
	r, err := engine.Simulate("battle-7", domain.ModePvP, slow, fast)
	require.NoError(t, err)
	assert.Equal(t, "fast", r.Log[0].ActorID)
}

func TestSimulateChallengerFirstOnSpeedTie(t *testing.T) {
	engine := testEngine()

	r, err := engine.Simulate("battle-8", domain.ModePvP, strongCombatant("alice"), strongCombatant("bob"))
	require.NoError(t, err)
	assert.Equal(t, "alice", r.Log[0].ActorID)
}

func TestSimulateDrawAtMaxTurns(t *testing.T) {
	// Attack never beats defense, so the minimum damage of 1 per turn
	// cannot finish either combatant inside the turn limit.
	engine := NewEngine(Tuning{MaxTurns: 10}, DefaultRewardTable())

	tank := func(id string) domain.Combatant {
		return domain.Combatant{ID: id, Health: 1000, MaxHealth: 1000, Attack: 1, Defense: 50, Speed: 5}
	}

	r, err := engine.Simulate("battle-9", domain.ModePvP, tank("alice"), tank("bob"))
	require.NoError(t, err)

	assert.True(t, r.Draw())
	assert.Equal(t, 10, r.Turns)
	assert.True(t, r.Rewards.Empty())
	last := r.Log[len(r.Log)-1]
	assert.Equal(t, domain.ActionDraw, last.Action)
}

func TestSimulateDamageFloorIsOne(t *testing.T) {
	engine := NewEngine(Tuning{MaxTurns: 4}, DefaultRewardTable())

	r, err := engine.Simulate("battle-10", domain.ModePvP,
		domain.Combatant{ID: "a", Health: 100, MaxHealth: 100, Attack: 1, Defense: 99, Speed: 5},
		domain.Combatant{ID: "b", Health: 100, MaxHealth: 100, Attack: 1, Defense: 99, Speed: 5})
	require.NoError(t, err)

	for _, entry := range r.Log {
		if entry.Action == domain.ActionDraw {
			continue
		}
		assert.GreaterOrEqual(t, entry.Damage, 1)
	}
}

func TestSimulateRejectsMalformedCombatant(t *testing.T) {
	engine := testEngine()

	bad := strongCombatant("alice")
	bad.Health = -5
	_, err := engine.Simulate("battle-11", domain.ModePvP, bad, weakCombatant("bob"))
	assert.ErrorIs(t, err, domain.ErrInvalidCombatant)

	noID := strongCombatant("")
	_, err = engine.Simulate("battle-12", domain.ModePvP, strongCombatant("alice"), noID)
	assert.ErrorIs(t, err, domain.ErrInvalidCombatant)

	_, err = engine.Simulate("battle-13", domain.ModePvP, strongCombatant("alice"), strongCombatant("alice"))
	assert.ErrorIs(t, err, domain.ErrInvalidCombatant)
}

func TestRewardIntentPerMode(t *testing.T) {
	table := DefaultRewardTable()

	pvp := table.Intent(domain.ModePvP, "alice", "alice")
	assert.Equal(t, 100, pvp.Experience)
	require.Len(t, pvp.Currencies, 1)
	assert.Equal(t, domain.CurrencySoft, pvp.Currencies[0].Kind)
	assert.Equal(t, 50, pvp.Currencies[0].Amount)
	assert.Len(t, pvp.Items, 1)

	boss := table.Intent(domain.ModeBoss, "alice", "alice")
	assert.Equal(t, 150, boss.Experience)
	require.Len(t, boss.Currencies, 1)
	assert.Equal(t, domain.CurrencyHard, boss.Currencies[0].Kind)
	assert.Equal(t, 25, boss.Currencies[0].Amount)
}

func TestRewardIntentPvPDefenderCanWin(t *testing.T) {
	table := DefaultRewardTable()

	intent := table.Intent(domain.ModePvP, "bob", "alice")
	assert.Equal(t, "bob", intent.WinnerID)
	assert.Equal(t, 100, intent.Experience)
}

func TestRewardIntentNPCWinnerGetsNothing(t *testing.T) {
	table := DefaultRewardTable()

	intent := table.Intent(domain.ModeBoss, "boss_ashen_king", "alice")
	assert.True(t, intent.Empty())
}
