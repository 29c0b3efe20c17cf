package models

import (
	"fmt"
	"time"
)

// CartItem is one cart row. Its id is derived from the product and variant so
// identical selections merge into a single row. Price is a unit-price
// snapshot taken at add time (variant override wins over the product price).
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   Product         `json:"product"`
	Variant   *ProductVariant `json:"variant,omitempty"`
}

// CartItemID derives the deterministic row id for a product/variant pair.
// A missing variant maps to the "default" slot.
func CartItemID(productID, variantID string) string {
	if variantID == "" {
		variantID = "default"
	}
	return fmt.Sprintf("%s-%s", productID, variantID)
}

// WishlistItem is one wishlist row; at most one exists per product.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
	Product   Product   `json:"product"`
}

// WishlistItemID derives the wishlist row id for a product.
func WishlistItemID(productID string) string {
	return "wishlist-" + productID
}
