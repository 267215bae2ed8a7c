package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/item"
)

func testCatalog() item.Catalog {
	return item.NewCatalogFromItems([]domain.Item{
		{Code: "sword_basic", Name: "Basic Sword", Slot: domain.SlotMainHand, Bonuses: domain.StatBonuses{Attack: 5}, Price: 50, PriceCurrency: domain.CurrencySoft},
		{Code: "sword_advanced", Name: "Advanced Sword", Slot: domain.SlotMainHand, Bonuses: domain.StatBonuses{Attack: 12}, Price: 200, PriceCurrency: domain.CurrencySoft},
		{Code: "armor_leather", Name: "Leather Armor", Slot: domain.SlotTorso, Bonuses: domain.StatBonuses{Defense: 3}, Price: 75, PriceCurrency: domain.CurrencySoft},
		{Code: "potion_health", Name: "Health Potion", Slot: domain.SlotNone, Price: 25, PriceCurrency: domain.CurrencySoft},
	})
}

func newTestService(repo *FakeRepository) Service {
	return NewService(repo, testCatalog(), concurrency.NewLockManager())
}

func TestAddItemCreatesAndGrowsStack(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "potion_health", 2))
	require.NoError(t, svc.AddItem(ctx, "player-a", "potion_health", 3))

	inv, err := svc.ListInventory(ctx, "player-a")
	require.NoError(t, err)
	require.Len(t, inv.Stacks, 1)
	assert.Equal(t, 5, inv.Stacks[0].Quantity)
}

func TestAddItemUnknownCode(t *testing.T) {
	svc := newTestService(NewFakeRepository())

	err := svc.AddItem(context.Background(), "player-a", "banana", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestRemoveItemDeletesEmptyStack(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "potion_health", 2))
	require.NoError(t, svc.RemoveItem(ctx, "player-a", "potion_health", 2))

	inv, err := svc.ListInventory(ctx, "player-a")
	require.NoError(t, err)
	assert.Empty(t, inv.Stacks)
}

func TestRemoveItemInsufficientQuantity(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "potion_health", 1))

	err := svc.RemoveItem(ctx, "player-a", "potion_health", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	inv, _ := svc.ListInventory(ctx, "player-a")
	require.Len(t, inv.Stacks, 1)
	assert.Equal(t, 1, inv.Stacks[0].Quantity)
}

func TestRemoveItemRefusesToDrainEquippedStack(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))

	err := svc.RemoveItem(ctx, "player-a", "sword_basic", 1)
	assert.ErrorIs(t, err, domain.ErrItemEquipped)

	// A partial removal leaving the equipped stack alive is fine.
	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.RemoveItem(ctx, "player-a", "sword_basic", 1))
}

func TestEquipAndSlotSwap(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_advanced", 1))

	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))

	// Equipping the second main-hand item unequips the first atomically.
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_advanced"))

	equipped, err := svc.EquippedItems(ctx, "player-a")
	require.NoError(t, err)
	require.Len(t, equipped, 1)
	assert.Equal(t, "sword_advanced", equipped[0].ItemCode)
}

func TestEquipDifferentSlotsCoexist(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.AddItem(ctx, "player-a", "armor_leather", 1))
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))
	require.NoError(t, svc.Equip(ctx, "player-a", "armor_leather"))

	equipped, err := svc.EquippedItems(ctx, "player-a")
	require.NoError(t, err)
	assert.Len(t, equipped, 2)
}

func TestEquipAlreadyEquippedIsNoOp(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))

	equipped, err := svc.EquippedItems(ctx, "player-a")
	require.NoError(t, err)
	assert.Len(t, equipped, 1)
}

func TestEquipNotOwned(t *testing.T) {
	svc := newTestService(NewFakeRepository())

	err := svc.Equip(context.Background(), "player-a", "sword_basic")
	assert.ErrorIs(t, err, domain.ErrNotOwned)
}

func TestEquipConsumableFails(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "potion_health", 1))

	err := svc.Equip(ctx, "player-a", "potion_health")
	assert.ErrorIs(t, err, domain.ErrNoEquipSlot)
}

func TestUnequipTwiceFailsSecondTime(t *testing.T) {
	svc := newTestService(NewFakeRepository())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "player-a", "sword_basic", 1))
	require.NoError(t, svc.Equip(ctx, "player-a", "sword_basic"))

	require.NoError(t, svc.Unequip(ctx, "player-a", "sword_basic"))

	err := svc.Unequip(ctx, "player-a", "sword_basic")
	assert.ErrorIs(t, err, domain.ErrNotEquipped)
}
