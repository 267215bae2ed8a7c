package shop

import (
	"context"
	"fmt"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/inventory"
	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/ledger"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
)

// Receipt summarizes a completed purchase.
type Receipt struct {
	ItemCode   string              `json:"item_code"`
	Quantity   int                 `json:"quantity"`
	UnitPrice  int                 `json:"unit_price"`
	TotalPrice int                 `json:"total_price"`
	Currency   domain.CurrencyKind `json:"currency"`
	Balance    int                 `json:"balance"`
}

// Service defines the interface for shop operations. The shop sells the
// whole catalog at catalog prices; a purchase is a ledger debit followed by
// an inventory grant.
type Service interface {
	Buy(ctx context.Context, playerID, itemCode string, quantity int) (*Receipt, error)
	Listings(ctx context.Context) []domain.Item
}

type service struct {
	catalog   item.Catalog
	ledger    ledger.Service
	inventory inventory.Service
}

// NewService creates a new shop service
func NewService(catalog item.Catalog, ledgerSvc ledger.Service, inventorySvc inventory.Service) Service {
	return &service{
		catalog:   catalog,
		ledger:    ledgerSvc,
		inventory: inventorySvc,
	}
}

// Buy debits the catalog price and grants the item. If the grant fails
// after the debit went through, the debit is compensated so the player is
// never charged for an item they did not receive.
func (s *service) Buy(ctx context.Context, playerID, itemCode string, quantity int) (*Receipt, error) {
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d", domain.ErrInvalidAmount, quantity)
	}
	it, err := s.catalog.Get(itemCode)
	if err != nil {
		return nil, err
	}

	if it.Price <= 0 {
		return nil, fmt.Errorf("%w: %s is not for sale", domain.ErrUnknownItem, itemCode)
	}

	total := it.Price * quantity
	balance, err := s.ledger.Debit(ctx, playerID, it.PriceCurrency, total)
	if err != nil {
		return nil, err
	}

	if err := s.inventory.AddItem(ctx, playerID, itemCode, quantity); err != nil {
		if _, refundErr := s.ledger.Credit(ctx, playerID, it.PriceCurrency, total); refundErr != nil {
			log.Error("Failed to refund purchase", "player_id", playerID, "item", itemCode, "amount", total, "error", refundErr)
		}
		return nil, err
	}

	metrics.ItemsBought.WithLabelValues(itemCode).Inc()
	log.Info("Item bought", "player_id", playerID, "item", itemCode, "quantity", quantity, "total", total)
	return &Receipt{
		ItemCode:   itemCode,
		Quantity:   quantity,
		UnitPrice:  it.Price,
		TotalPrice: total,
		Currency:   it.PriceCurrency,
		Balance:    balance,
	}, nil
}

// Listings returns the purchasable catalog in stable order. Drop-only
// materials carry no price and are not listed.
func (s *service) Listings(ctx context.Context) []domain.Item {
	all := s.catalog.All()
	listings := make([]domain.Item, 0, len(all))
	for _, it := range all {
		if it.Price > 0 {
			listings = append(listings, it)
		}
	}
	return listings
}
