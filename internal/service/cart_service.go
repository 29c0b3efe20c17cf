package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Dhruv6019/BrivaMart/internal/events"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/store"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// TaxRate is applied to the cart subtotal at checkout.
const TaxRate = 0.08

// FreeShippingThreshold is the subtotal above which standard shipping
// costs nothing.
const FreeShippingThreshold = 15000

// CartService owns per-user cart and wishlist state plus checkout. Each
// user's state lives under its own storage key, so concurrent users never
// contend with each other.
type CartService struct {
	storage  store.Storage
	products Products
	orders   Orders
	audits   Audits
	producer *events.Producer
}

// NewCartService constructs a new CartService.
func NewCartService(storage store.Storage, products Products, orders Orders, audits Audits, producer *events.Producer) *CartService {
	return &CartService{
		storage:  storage,
		products: products,
		orders:   orders,
		audits:   audits,
		producer: producer,
	}
}

func cartKey(userID string) string     { return "cart:" + userID }
func wishlistKey(userID string) string { return "wishlist:" + userID }

func (s *CartService) cart(ctx context.Context, userID string) (*store.CartStore, error) {
	return store.NewCartStore(ctx, s.storage, cartKey(userID))
}

func (s *CartService) wishlist(ctx context.Context, userID string) (*store.WishlistStore, error) {
	return store.NewWishlistStore(ctx, s.storage, wishlistKey(userID))
}

// CartState is the full cart view returned from every cart operation.
type CartState struct {
	Items      []models.CartItem `json:"items"`
	Total      float64           `json:"total"`
	ItemsCount int               `json:"itemsCount"`
}

func cartState(c *store.CartStore) *CartState {
	return &CartState{Items: c.Items(), Total: c.Total(), ItemsCount: c.ItemsCount()}
}

// GetCart returns the user's cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartState, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartState(cart), nil
}

// AddToCart resolves the product and optional variant, then merges the
// selection into the cart.
func (s *CartService) AddToCart(ctx context.Context, userID, productID, variantID string, quantity int) (*CartState, error) {
	if quantity <= 0 {
		return nil, utils.ErrValidation
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	product.Normalize()

	var variant *models.ProductVariant
	if variantID != "" {
		variant = product.Variant(variantID)
		if variant == nil {
			return nil, utils.ErrValidation
		}
	}

	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := cart.Add(ctx, *product, variant, quantity); err != nil {
		return nil, err
	}
	return cartState(cart), nil
}

// UpdateCartQuantity sets an item's quantity. Zero or negative removes the
// item.
func (s *CartService) UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartState, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return cartState(cart), nil
}

// RemoveFromCart removes an item; an absent id is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID string) (*CartState, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(ctx, itemID); err != nil {
		return nil, err
	}
	return cartState(cart), nil
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*CartState, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Clear(ctx); err != nil {
		return nil, err
	}
	return cartState(cart), nil
}

// GetWishlist returns the user's wishlist.
func (s *CartService) GetWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	wl, err := s.wishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wl.Items(), nil
}

// AddToWishlist records a product on the wishlist; duplicates are no-ops.
func (s *CartService) AddToWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	product.Normalize()

	wl, err := s.wishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := wl.Add(ctx, *product); err != nil {
		return nil, err
	}
	return wl.Items(), nil
}

// RemoveFromWishlist drops a product from the wishlist.
func (s *CartService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error) {
	wl, err := s.wishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := wl.Remove(ctx, productID); err != nil {
		return nil, err
	}
	return wl.Items(), nil
}

// ClearWishlist empties the wishlist.
func (s *CartService) ClearWishlist(ctx context.Context, userID string) error {
	wl, err := s.wishlist(ctx, userID)
	if err != nil {
		return err
	}
	return wl.Clear(ctx)
}

// InWishlist reports wishlist membership for a product.
func (s *CartService) InWishlist(ctx context.Context, userID, productID string) (bool, error) {
	wl, err := s.wishlist(ctx, userID)
	if err != nil {
		return false, err
	}
	return wl.Contains(productID), nil
}

// CheckoutInput carries the checkout selections.
type CheckoutInput struct {
	ShippingMethod models.ShippingMethod `json:"shippingMethod"`
	PaymentMethod  string                `json:"paymentMethod"`
}

// Checkout snapshots the cart into an order, computes tax and shipping,
// stores the order and clears the cart.
func (s *CartService) Checkout(ctx context.Context, userID, ip string, in *CheckoutInput) (*models.Order, error) {
	cart, err := s.cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := cart.Items()
	if len(items) == 0 {
		return nil, utils.ErrCartEmpty
	}

	method := models.ShippingStandard
	if in != nil && in.ShippingMethod != "" {
		method = in.ShippingMethod
	}
	subtotal := cart.Total()
	shipping, err := shippingCost(method, subtotal)
	if err != nil {
		return nil, err
	}
	tax := subtotal * TaxRate

	snapshot, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		Items:          snapshot,
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		Total:          subtotal + tax + shipping,
		Status:         models.OrderStatusPending,
		ShippingMethod: method,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if in != nil {
		order.PaymentMethod = in.PaymentMethod
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	if err := cart.Clear(ctx); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("cart clear after checkout failed")
	}

	audit(s.audits, &userID, models.AuditOrderPlaced, "orders", ip, true, map[string]interface{}{
		"orderId": order.ID, "total": order.Total, "itemsCount": len(items),
	})
	if err := s.producer.Publish(ctx, events.TypeOrderPlaced, userID, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("event publish failed")
	}

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *CartService) ListOrders(userID string) ([]models.Order, error) {
	return s.orders.ListByUser(userID)
}

// GetOrder returns one order scoped to its owner.
func (s *CartService) GetOrder(id, userID string) (*models.Order, error) {
	order, err := s.orders.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// DropUser deletes the user's cart and wishlist keys. Called when the
// account itself is removed.
func (s *CartService) DropUser(ctx context.Context, userID string) error {
	if err := s.storage.Delete(ctx, cartKey(userID)); err != nil {
		return err
	}
	return s.storage.Delete(ctx, wishlistKey(userID))
}

func shippingCost(method models.ShippingMethod, subtotal float64) (float64, error) {
	switch method {
	case models.ShippingStandard:
		if subtotal > FreeShippingThreshold {
			return 0, nil
		}
		return 299, nil
	case models.ShippingExpress:
		return 599, nil
	case models.ShippingOvernight:
		return 1299, nil
	default:
		return 0, utils.ErrValidation
	}
}
