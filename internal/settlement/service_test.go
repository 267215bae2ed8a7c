package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// fakeRepo is an in-memory repository.Settlement over a single shared state,
// with optional failure injection to exercise rollback.
type fakeRepo struct {
	settled    map[string]domain.BattleResult
	balances   map[string]domain.Balances
	stacks     map[string]map[string]domain.InventoryStack
	characters map[string]domain.Character

	failOnSetBalance bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		settled:    make(map[string]domain.BattleResult),
		balances:   make(map[string]domain.Balances),
		stacks:     make(map[string]map[string]domain.InventoryStack),
		characters: make(map[string]domain.Character),
	}
}

func (f *fakeRepo) GetSettledResult(_ context.Context, battleID string) (*domain.BattleResult, error) {
	if r, ok := f.settled[battleID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRepo) BeginTx(context.Context) (repository.SettlementTx, error) {
	return &fakeTx{repo: f, shadow: newFakeRepo().cloneFrom(f)}, nil
}

func (f *fakeRepo) cloneFrom(src *fakeRepo) *fakeRepo {
	for k, v := range src.settled {
		f.settled[k] = v
	}
	for k, v := range src.balances {
		f.balances[k] = v
	}
	for k, v := range src.stacks {
		inner := make(map[string]domain.InventoryStack, len(v))
		for c, s := range v {
			inner[c] = s
		}
		f.stacks[k] = inner
	}
	for k, v := range src.characters {
		f.characters[k] = v
	}
	f.failOnSetBalance = src.failOnSetBalance
	return f
}

// fakeTx mutates a shadow copy and swaps it in on commit, so a rollback
// leaves the repository untouched.
type fakeTx struct {
	repo   *fakeRepo
	shadow *fakeRepo
	done   bool
}

func (t *fakeTx) InsertSettledBattle(_ context.Context, battleID string, result domain.BattleResult) (bool, error) {
	if _, ok := t.shadow.settled[battleID]; ok {
		return false, nil
	}
	t.shadow.settled[battleID] = result
	return true, nil
}

func (t *fakeTx) GetBalancesForUpdate(_ context.Context, playerID string) (*domain.Balances, error) {
	b, ok := t.shadow.balances[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &b, nil
}

func (t *fakeTx) SetBalance(_ context.Context, playerID string, kind domain.CurrencyKind, balance int) error {
	if t.shadow.failOnSetBalance {
		return errors.New("disk on fire")
	}
	b := t.shadow.balances[playerID]
	b.PlayerID = playerID
	switch kind {
	case domain.CurrencySoft:
		b.Soft = balance
	case domain.CurrencyHard:
		b.Hard = balance
	case domain.CurrencyUpgrade:
		b.Upgrade = balance
	}
	t.shadow.balances[playerID] = b
	return nil
}

func (t *fakeTx) GetInventoryForUpdate(_ context.Context, playerID string) (*domain.Inventory, error) {
	inv := &domain.Inventory{PlayerID: playerID}
	for _, s := range t.shadow.stacks[playerID] {
		inv.Stacks = append(inv.Stacks, s)
	}
	return inv, nil
}

func (t *fakeTx) UpsertStack(_ context.Context, playerID string, stack domain.InventoryStack) error {
	if t.shadow.stacks[playerID] == nil {
		t.shadow.stacks[playerID] = make(map[string]domain.InventoryStack)
	}
	t.shadow.stacks[playerID][stack.ItemCode] = stack
	return nil
}

func (t *fakeTx) GetCharacterForUpdate(_ context.Context, playerID string) (*domain.Character, error) {
	c, ok := t.shadow.characters[playerID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (t *fakeTx) UpdateCharacter(_ context.Context, character domain.Character) error {
	t.shadow.characters[character.PlayerID] = character
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return nil
	}
	t.repo.settled = t.shadow.settled
	t.repo.balances = t.shadow.balances
	t.repo.stacks = t.shadow.stacks
	t.repo.characters = t.shadow.characters
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.done = true
	return nil
}

func testResult() domain.BattleResult {
	return domain.BattleResult{
		BattleID:     "battle-1",
		Mode:         domain.ModeBoss,
		ChallengerID: "alice",
		OpponentID:   "boss_ashen_king",
		WinnerID:     "alice",
		Turns:        4,
		Rewards: domain.RewardIntent{
			WinnerID:   "alice",
			Experience: 150,
			Currencies: []domain.CurrencyGrant{{Kind: domain.CurrencyHard, Amount: 25}},
			Items:      []domain.ItemGrant{{ItemCode: "ember_core", Quantity: 1}},
		},
	}
}

func newTestService(repo *fakeRepo) Service {
	repo.balances["alice"] = domain.Balances{PlayerID: "alice", Soft: 100}
	repo.characters["alice"] = *domain.NewCharacter("alice", "Alice")
	return NewService(repo, concurrency.NewLockManager())
}

func TestSettleAppliesAllGrants(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	result, err := svc.Settle(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, "alice", result.WinnerID)

	assert.Equal(t, 25, repo.balances["alice"].Hard)
	assert.Equal(t, 1, repo.stacks["alice"]["ember_core"].Quantity)

	// 150 xp crosses the level-1 threshold of 100 with 50 left over.
	c := repo.characters["alice"]
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 50, c.Experience)
}

func TestSettleTwiceIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Settle(ctx, testResult())
	require.NoError(t, err)

	second, err := svc.Settle(ctx, testResult())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// No double application.
	assert.Equal(t, 25, repo.balances["alice"].Hard)
	assert.Equal(t, 1, repo.stacks["alice"]["ember_core"].Quantity)
	assert.Equal(t, 2, repo.characters["alice"].Level)
}

func TestSettleDrawAppliesNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	draw := testResult()
	draw.BattleID = "battle-draw"
	draw.WinnerID = ""
	draw.Rewards = domain.RewardIntent{}

	_, err := svc.Settle(context.Background(), draw)
	require.NoError(t, err)

	assert.Equal(t, 0, repo.balances["alice"].Hard)
	assert.Equal(t, 1, repo.characters["alice"].Level)

	// The draw is still recorded so a retry replays instead of reapplying.
	stored, err := repo.GetSettledResult(context.Background(), "battle-draw")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestSettlePartialFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	repo.failOnSetBalance = true

	_, err := svc.Settle(context.Background(), testResult())
	require.Error(t, err)

	// Nothing is observable: no settled id, no grants.
	stored, err := repo.GetSettledResult(context.Background(), "battle-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Equal(t, 0, repo.balances["alice"].Hard)
	assert.Empty(t, repo.stacks["alice"])
	assert.Equal(t, 1, repo.characters["alice"].Level)

	// The same battle settles cleanly once the fault clears.
	repo.failOnSetBalance = false
	_, err = svc.Settle(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 25, repo.balances["alice"].Hard)
}

func TestSettleRejectsEmptyBattleID(t *testing.T) {
	svc := newTestService(newFakeRepo())

	r := testResult()
	r.BattleID = ""
	_, err := svc.Settle(context.Background(), r)
	require.Error(t, err)
}
