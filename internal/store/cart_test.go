package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

func testProduct(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "product " + id, Price: price}
}

func newTestCart(t *testing.T) (*CartStore, Storage) {
	t.Helper()
	storage := NewMemoryStorage()
	cart, err := NewCartStore(context.Background(), storage, "cart:u1")
	require.NoError(t, err)
	return cart, storage
}

func TestCartAddMergesSameSelection(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	p := testProduct("p1", 50)
	_, err := cart.Add(ctx, p, nil, 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, p, nil, 2)
	require.NoError(t, err)

	items := cart.Items()
	require.Len(t, items, 1)
	require.Equal(t, "p1-default", items[0].ID)
	require.Equal(t, 3, items[0].Quantity)
}

func TestCartVariantsAreSeparateRows(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	p := testProduct("p1", 50)
	override := 80.0
	variant := &models.ProductVariant{ID: "v1", Type: models.VariantTypeColor, Name: "Color", Value: "Red", Price: &override}

	_, err := cart.Add(ctx, p, nil, 1)
	require.NoError(t, err)
	item, err := cart.Add(ctx, p, variant, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items(), 2)
	require.Equal(t, "p1-v1", item.ID)
	require.Equal(t, 80.0, item.Price)
}

func TestCartTotalAndCount(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	_, err := cart.Add(ctx, testProduct("p1", 50), nil, 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, testProduct("p2", 30), nil, 1)
	require.NoError(t, err)

	require.Equal(t, 130.0, cart.Total())
	require.Equal(t, 3, cart.ItemsCount())
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	item, err := cart.Add(ctx, testProduct("p1", 50), nil, 2)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateQuantity(ctx, item.ID, 0))
	require.Empty(t, cart.Items())

	item, err = cart.Add(ctx, testProduct("p1", 50), nil, 2)
	require.NoError(t, err)
	require.NoError(t, cart.UpdateQuantity(ctx, item.ID, -1))
	require.Empty(t, cart.Items())
}

func TestCartRemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(t)

	_, err := cart.Add(ctx, testProduct("p1", 50), nil, 1)
	require.NoError(t, err)

	require.NoError(t, cart.Remove(ctx, "missing"))
	require.Len(t, cart.Items(), 1)
}

func TestCartPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	cart, storage := newTestCart(t)

	_, err := cart.Add(ctx, testProduct("p1", 50), nil, 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, testProduct("p2", 30), nil, 1)
	require.NoError(t, err)

	reloaded, err := NewCartStore(ctx, storage, "cart:u1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items(), 2)
	require.Equal(t, 130.0, reloaded.Total())
	require.Equal(t, 3, reloaded.ItemsCount())
}

func TestCartClearPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	cart, storage := newTestCart(t)

	_, err := cart.Add(ctx, testProduct("p1", 50), nil, 1)
	require.NoError(t, err)
	require.NoError(t, cart.Clear(ctx))

	raw, ok, err := storage.Load(ctx, "cart:u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, "[]", string(raw))
}
