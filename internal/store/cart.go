package store

import (
	"context"
	"encoding/json"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// CartStore holds one user's cart rows. It rehydrates from Storage once at
// construction and writes the full serialized list back on every mutation.
// Mutations keep the in-memory state even when the write fails; persistence
// is best-effort per mutation, there is no transactional grouping.
type CartStore struct {
	storage Storage
	key     string
	items   []models.CartItem
}

// NewCartStore loads the cart persisted under key.
func NewCartStore(ctx context.Context, storage Storage, key string) (*CartStore, error) {
	s := &CartStore{storage: storage, key: key}
	raw, ok, err := storage.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &s.items); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Items returns the current cart rows.
func (s *CartStore) Items() []models.CartItem {
	return s.items
}

// Add merges quantity into the row derived from product and variant, creating
// the row with a unit-price snapshot when absent. The variant price override
// wins over the product price. Callers must pass a positive quantity; there
// is no guard at this layer.
func (s *CartStore) Add(ctx context.Context, product models.Product, variant *models.ProductVariant, quantity int) (models.CartItem, error) {
	variantID := ""
	if variant != nil {
		variantID = variant.ID
	}
	id := models.CartItemID(product.ID, variantID)

	price := product.Price
	if variant != nil && variant.Price != nil {
		price = *variant.Price
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += quantity
			return s.items[i], s.persist(ctx)
		}
	}

	item := models.CartItem{
		ID:        id,
		ProductID: product.ID,
		VariantID: variantID,
		Quantity:  quantity,
		Price:     price,
		Product:   product,
		Variant:   variant,
	}
	s.items = append(s.items, item)
	return item, s.persist(ctx)
}

// UpdateQuantity replaces the row's quantity verbatim. A quantity <= 0 removes
// the row. There is no upper bound check against stock here.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.persist(ctx)
}

// Remove deletes the row by id; no-op if absent.
func (s *CartStore) Remove(ctx context.Context, itemID string) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// Clear empties the cart. Used after checkout completes.
func (s *CartStore) Clear(ctx context.Context) error {
	s.items = nil
	return s.persist(ctx)
}

// Total returns the sum of price x quantity over all rows.
func (s *CartStore) Total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemsCount returns the sum of quantities, not the row count.
func (s *CartStore) ItemsCount() int {
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, s.key, raw)
}

// itemsOrEmpty keeps the persisted form a JSON array even when the cart is
// empty.
func (s *CartStore) itemsOrEmpty() []models.CartItem {
	if s.items == nil {
		return []models.CartItem{}
	}
	return s.items
}
