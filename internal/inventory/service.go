package inventory

import (
	"context"
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/concurrency"
	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/repository"
)

// Service defines the interface for inventory operations. Stacks are keyed
// by catalog item code; a stack never persists at quantity zero, and at most
// one equipped stack occupies any equip slot per player.
type Service interface {
	AddItem(ctx context.Context, playerID, itemCode string, quantity int) error
	RemoveItem(ctx context.Context, playerID, itemCode string, quantity int) error
	Equip(ctx context.Context, playerID, itemCode string) error
	Unequip(ctx context.Context, playerID, itemCode string) error
	EquippedItems(ctx context.Context, playerID string) ([]domain.InventoryStack, error)
	ListInventory(ctx context.Context, playerID string) (*domain.Inventory, error)
}

type service struct {
	repo    repository.Inventory
	catalog item.Catalog
	locks   *concurrency.LockManager
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, catalog item.Catalog, locks *concurrency.LockManager) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		locks:   locks,
	}
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity %d", domain.ErrInvalidAmount, quantity)
	}
	return nil
}

// AddItem increases the stack for itemCode by quantity, creating it if
// missing. The equipped flag of an existing stack is preserved.
func (s *service) AddItem(ctx context.Context, playerID, itemCode string, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if _, err := s.catalog.Get(itemCode); err != nil {
		return err
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, playerID)
	if err != nil {
		return err
	}

	stack := domain.InventoryStack{ItemCode: itemCode, Quantity: quantity}
	if i := inv.FindStack(itemCode); i >= 0 {
		stack = inv.Stacks[i]
		stack.Quantity += quantity
	}
	if err := tx.UpsertStack(ctx, playerID, stack); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	log.Info("Item added", "player_id", playerID, "item", itemCode, "quantity", quantity)
	return nil
}

// RemoveItem decreases the stack for itemCode by quantity, deleting the
// stack when it reaches zero. An equipped stack cannot be drained to zero;
// it must be unequipped first.
func (s *service) RemoveItem(ctx context.Context, playerID, itemCode string, quantity int) error {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return err
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, playerID)
	if err != nil {
		return err
	}

	i := inv.FindStack(itemCode)
	if i < 0 || inv.Stacks[i].Quantity < quantity {
		owned := 0
		if i >= 0 {
			owned = inv.Stacks[i].Quantity
		}
		return fmt.Errorf("%w: %s have %d, need %d", domain.ErrInsufficientQuantity, itemCode, owned, quantity)
	}

	stack := inv.Stacks[i]
	stack.Quantity -= quantity
	if stack.Quantity == 0 {
		if stack.Equipped {
			return fmt.Errorf("%w: %s", domain.ErrItemEquipped, itemCode)
		}
		if err := tx.DeleteStack(ctx, playerID, itemCode); err != nil {
			return err
		}
	} else {
		if err := tx.UpsertStack(ctx, playerID, stack); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	log.Info("Item removed", "player_id", playerID, "item", itemCode, "quantity", quantity)
	return nil
}

// Equip marks the stack for itemCode equipped, unequipping whatever else
// occupies the same slot in the same transaction. Equipping an
// already-equipped item is a no-op success.
func (s *service) Equip(ctx context.Context, playerID, itemCode string) error {
	log := logger.FromContext(ctx)

	target, err := s.catalog.Get(itemCode)
	if err != nil {
		return err
	}
	if !target.Equippable() {
		return fmt.Errorf("%w: %s", domain.ErrNoEquipSlot, itemCode)
	}

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, playerID)
	if err != nil {
		return err
	}

	i := inv.FindStack(itemCode)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotOwned, itemCode)
	}
	if inv.Stacks[i].Equipped {
		return nil
	}

	// Clear the slot before occupying it.
	for j := range inv.Stacks {
		if j == i || !inv.Stacks[j].Equipped {
			continue
		}
		other, err := s.catalog.Get(inv.Stacks[j].ItemCode)
		if err != nil {
			return err
		}
		if other.Slot != target.Slot {
			continue
		}
		cleared := inv.Stacks[j]
		cleared.Equipped = false
		if err := tx.UpsertStack(ctx, playerID, cleared); err != nil {
			return err
		}
	}

	equipped := inv.Stacks[i]
	equipped.Equipped = true
	if err := tx.UpsertStack(ctx, playerID, equipped); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	metrics.ItemsEquipped.WithLabelValues(itemCode).Inc()
	log.Info("Item equipped", "player_id", playerID, "item", itemCode, "slot", target.Slot)
	return nil
}

// Unequip clears the equipped flag on the stack for itemCode.
func (s *service) Unequip(ctx context.Context, playerID, itemCode string) error {
	log := logger.FromContext(ctx)

	mu := s.locks.GetLock(playerID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, playerID)
	if err != nil {
		return err
	}

	i := inv.FindStack(itemCode)
	if i < 0 || !inv.Stacks[i].Equipped {
		return fmt.Errorf("%w: %s", domain.ErrNotEquipped, itemCode)
	}

	stack := inv.Stacks[i]
	stack.Equipped = false
	if err := tx.UpsertStack(ctx, playerID, stack); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}

	log.Info("Item unequipped", "player_id", playerID, "item", itemCode)
	return nil
}

// EquippedItems returns only the stacks currently equipped.
func (s *service) EquippedItems(ctx context.Context, playerID string) ([]domain.InventoryStack, error) {
	inv, err := s.repo.GetInventory(ctx, playerID)
	if err != nil {
		return nil, err
	}

	equipped := make([]domain.InventoryStack, 0, len(inv.Stacks))
	for _, stack := range inv.Stacks {
		if stack.Equipped {
			equipped = append(equipped, stack)
		}
	}
	return equipped, nil
}

// ListInventory returns a snapshot of all stacks owned by the player.
func (s *service) ListInventory(ctx context.Context, playerID string) (*domain.Inventory, error) {
	return s.repo.GetInventory(ctx, playerID)
}
