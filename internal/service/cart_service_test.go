package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/store"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

type cartEnv struct {
	svc      *CartService
	products *fakeProducts
	orders   *fakeOrders
	audits   *fakeAudits
	userID   string
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()
	env := &cartEnv{
		products: newFakeProducts(),
		orders:   newFakeOrders(),
		audits:   &fakeAudits{},
		userID:   uuid.New().String(),
	}
	env.svc = NewCartService(store.NewMemoryStorage(), env.products, env.orders, env.audits, nil)
	return env
}

func (e *cartEnv) seedProduct(t *testing.T, id string, price float64, variants ...models.ProductVariant) {
	t.Helper()
	require.NoError(t, e.products.Create(&models.Product{
		ID:       id,
		Name:     "product " + id,
		Price:    price,
		Category: "test",
		InStock:  true,
		Variants: models.VariantList(variants),
	}))
}

func TestAddToCartResolvesVariantPrice(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)

	override := 80.0
	env.seedProduct(t, "p1", 50, models.ProductVariant{ID: "v1", Name: "Color", Type: models.VariantTypeColor, Value: "Red", Price: &override})

	cart, err := env.svc.AddToCart(ctx, env.userID, "p1", "v1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "p1-v1", cart.Items[0].ID)
	require.Equal(t, 160.0, cart.Total)
	require.Equal(t, 2, cart.ItemsCount)
}

func TestAddToCartUnknownProductOrVariant(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 50)

	_, err := env.svc.AddToCart(ctx, env.userID, "missing", "", 1)
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = env.svc.AddToCart(ctx, env.userID, "p1", "missing-variant", 1)
	require.ErrorIs(t, err, utils.ErrValidation)

	_, err = env.svc.AddToCart(ctx, env.userID, "p1", "", 0)
	require.ErrorIs(t, err, utils.ErrValidation)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 50)

	_, err := env.svc.AddToCart(ctx, env.userID, "p1", "", 1)
	require.NoError(t, err)

	other, err := env.svc.GetCart(ctx, uuid.New().String())
	require.NoError(t, err)
	require.Empty(t, other.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)

	_, err := env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: models.ShippingStandard})
	require.ErrorIs(t, err, utils.ErrCartEmpty)
}

func TestCheckoutComputesTotalsAndClearsCart(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 100)

	_, err := env.svc.AddToCart(ctx, env.userID, "p1", "", 2)
	require.NoError(t, err)

	order, err := env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{
		ShippingMethod: models.ShippingStandard,
		PaymentMethod:  "card",
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, order.Subtotal)
	require.Equal(t, 16.0, order.Tax)
	require.Equal(t, 299.0, order.Shipping)
	require.Equal(t, 515.0, order.Total)
	require.Equal(t, models.OrderStatusPending, order.Status)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(order.Items, &items))
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)

	cart, err := env.svc.GetCart(ctx, env.userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	require.Contains(t, env.audits.actions(), models.AuditOrderPlaced)
}

func TestCheckoutShippingTiers(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "cheap", 100)
	env.seedProduct(t, "expensive", 20000)

	// Standard shipping is free above the threshold.
	_, err := env.svc.AddToCart(ctx, env.userID, "expensive", "", 1)
	require.NoError(t, err)
	order, err := env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: models.ShippingStandard})
	require.NoError(t, err)
	require.Equal(t, 0.0, order.Shipping)

	// Express and overnight are flat fees regardless of subtotal.
	_, err = env.svc.AddToCart(ctx, env.userID, "cheap", "", 1)
	require.NoError(t, err)
	order, err = env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: models.ShippingExpress})
	require.NoError(t, err)
	require.Equal(t, 599.0, order.Shipping)

	_, err = env.svc.AddToCart(ctx, env.userID, "cheap", "", 1)
	require.NoError(t, err)
	order, err = env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: models.ShippingOvernight})
	require.NoError(t, err)
	require.Equal(t, 1299.0, order.Shipping)

	// An unknown method is rejected before any write.
	_, err = env.svc.AddToCart(ctx, env.userID, "cheap", "", 1)
	require.NoError(t, err)
	_, err = env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: "teleport"})
	require.ErrorIs(t, err, utils.ErrValidation)
}

func TestOrderLookupScopedToOwner(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 100)

	_, err := env.svc.AddToCart(ctx, env.userID, "p1", "", 1)
	require.NoError(t, err)
	order, err := env.svc.Checkout(ctx, env.userID, "10.0.0.1", &CheckoutInput{ShippingMethod: models.ShippingStandard})
	require.NoError(t, err)

	got, err := env.svc.GetOrder(order.ID, env.userID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = env.svc.GetOrder(order.ID, uuid.New().String())
	require.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestWishlistFlow(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 100)

	items, err := env.svc.AddToWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "wishlist-p1", items[0].ID)

	// Duplicate adds stay a single row.
	items, err = env.svc.AddToWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	in, err := env.svc.InWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)
	require.True(t, in)

	items, err = env.svc.RemoveFromWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)
	require.Empty(t, items)

	_, err = env.svc.AddToWishlist(ctx, env.userID, "missing")
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = env.svc.AddToWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)
	require.NoError(t, env.svc.ClearWishlist(ctx, env.userID))
	items, err = env.svc.GetWishlist(ctx, env.userID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDropUserRemovesState(t *testing.T) {
	ctx := context.Background()
	env := newCartEnv(t)
	env.seedProduct(t, "p1", 100)

	_, err := env.svc.AddToCart(ctx, env.userID, "p1", "", 1)
	require.NoError(t, err)
	_, err = env.svc.AddToWishlist(ctx, env.userID, "p1")
	require.NoError(t, err)

	require.NoError(t, env.svc.DropUser(ctx, env.userID))

	cart, err := env.svc.GetCart(ctx, env.userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	wl, err := env.svc.GetWishlist(ctx, env.userID)
	require.NoError(t, err)
	require.Empty(t, wl)
}
