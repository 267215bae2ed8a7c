package item

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Catalog cache sizing. The catalog is read-mostly; the LRU keeps hot
// lookups off the map-copy path used for immutability.
const (
	cacheSize = 256
	cacheTTL  = 10 * time.Minute
)

// Catalog defines the read-only item catalog consumed by the inventory
// store, the shop, and the combat engine.
type Catalog interface {
	Get(itemCode string) (domain.Item, error)
	All() []domain.Item
}

type catalog struct {
	items map[string]domain.Item
	order []string
	cache *expirable.LRU[string, domain.Item]
}

// NewCatalog loads, validates, and indexes the item configuration. The
// returned catalog is immutable.
func NewCatalog(path string) (Catalog, error) {
	config, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(config); err != nil {
		return nil, err
	}
	return newCatalogFromConfig(config), nil
}

// NewCatalogFromItems builds a catalog directly from item definitions,
// bypassing file loading. Used by tests and seed tooling.
func NewCatalogFromItems(items []domain.Item) Catalog {
	index := make(map[string]domain.Item, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		index[it.Code] = it
		order = append(order, it.Code)
	}
	sort.Strings(order)

	return &catalog{
		items: index,
		order: order,
		cache: expirable.NewLRU[string, domain.Item](cacheSize, nil, cacheTTL),
	}
}

func newCatalogFromConfig(config *Config) *catalog {
	items := make(map[string]domain.Item, len(config.Items))
	order := make([]string, 0, len(config.Items))
	for _, def := range config.Items {
		items[def.Code] = toDomain(def)
		order = append(order, def.Code)
	}
	sort.Strings(order)

	return &catalog{
		items: items,
		order: order,
		cache: expirable.NewLRU[string, domain.Item](cacheSize, nil, cacheTTL),
	}
}

// Get returns the item definition for a code
func (c *catalog) Get(itemCode string) (domain.Item, error) {
	if item, ok := c.cache.Get(itemCode); ok {
		return item, nil
	}
	item, ok := c.items[itemCode]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemCode)
	}
	c.cache.Add(itemCode, item)
	return item, nil
}

// All returns the full catalog in stable code order
func (c *catalog) All() []domain.Item {
	out := make([]domain.Item, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.items[code])
	}
	return out
}
