package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// WishlistStore holds one user's wishlist. Same persistence model as
// CartStore, under its own key.
type WishlistStore struct {
	storage Storage
	key     string
	items   []models.WishlistItem
}

// NewWishlistStore loads the wishlist persisted under key.
func NewWishlistStore(ctx context.Context, storage Storage, key string) (*WishlistStore, error) {
	s := &WishlistStore{storage: storage, key: key}
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

// Items returns the current wishlist rows.
func (s *WishlistStore) Items() []models.WishlistItem {
	return s.items
}

// Add creates a wishlist entry for the product; no-op if one already exists.
func (s *WishlistStore) Add(ctx context.Context, product models.Product) (models.WishlistItem, error) {
	for _, item := range s.items {
		if item.ProductID == product.ID {
			return item, nil
		}
	}

	item := models.WishlistItem{
		ID:        models.WishlistItemID(product.ID),
		ProductID: product.ID,
		AddedAt:   time.Now().UTC(),
		Product:   product,
	}
	s.items = append(s.items, item)
	return item, s.persist(ctx)
}

// Remove deletes the entry for productID; no-op if absent.
func (s *WishlistStore) Remove(ctx context.Context, productID string) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// Contains reports whether the product is wishlisted.
func (s *WishlistStore) Contains(productID string) bool {
	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clear removes all entries.
func (s *WishlistStore) Clear(ctx context.Context) error {
	s.items = nil
	return s.persist(ctx)
}

func (s *WishlistStore) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.WishlistItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, s.key, raw)
}
