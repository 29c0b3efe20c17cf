package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

type productEnv struct {
	svc      *ProductService
	products *fakeProducts
	users    *fakeUsers
	audits   *fakeAudits
	adminID  string
	userID   string
}

func newProductEnv(t *testing.T) *productEnv {
	t.Helper()
	env := &productEnv{
		products: newFakeProducts(),
		users:    newFakeUsers(),
		audits:   &fakeAudits{},
	}
	env.svc = NewProductService(env.products, env.users, env.audits, nil, nil)

	admin := &models.UserProfile{ID: uuid.New().String(), Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, env.users.Create(admin))
	env.adminID = admin.ID

	user := &models.UserProfile{ID: uuid.New().String(), Email: "user@example.com", Role: models.RoleUser}
	require.NoError(t, env.users.Create(user))
	env.userID = user.ID

	return env
}

func TestCreateProductDerivesStockState(t *testing.T) {
	env := newProductEnv(t)

	product, err := env.svc.CreateProduct(context.Background(), env.adminID, &ProductInput{
		Name:          "Headphones",
		Category:      "audio",
		Price:         199.99,
		StockQuantity: 3,
	})
	require.NoError(t, err)
	require.True(t, product.InStock)
	require.Equal(t, []string{models.PlaceholderImage}, []string(product.Images))
	require.Contains(t, env.audits.actions(), models.AuditProductCreated)

	empty, err := env.svc.CreateProduct(context.Background(), env.adminID, &ProductInput{
		Name:          "Sold Out",
		Category:      "audio",
		Price:         10,
		StockQuantity: 0,
	})
	require.NoError(t, err)
	require.False(t, empty.InStock)
}

func TestNonAdminCannotMutateCatalog(t *testing.T) {
	env := newProductEnv(t)

	_, err := env.svc.CreateProduct(context.Background(), env.userID, &ProductInput{
		Name: "X", Category: "c", Price: 1, StockQuantity: 1,
	})
	require.ErrorIs(t, err, utils.ErrAdminRequired)
	require.Empty(t, env.products.byID)

	// An unknown caller is unauthorized, not merely forbidden.
	_, err = env.svc.CreateProduct(context.Background(), "ghost", &ProductInput{
		Name: "X", Category: "c", Price: 1, StockQuantity: 1,
	})
	require.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAdminRoleIsRecheckedPerCall(t *testing.T) {
	env := newProductEnv(t)

	product, err := env.svc.CreateProduct(context.Background(), env.adminID, &ProductInput{
		Name: "X", Category: "c", Price: 1, StockQuantity: 1,
	})
	require.NoError(t, err)

	// Demote the admin; the next mutation must observe the new role.
	env.users.byID[env.adminID].Role = models.RoleUser

	err = env.svc.DeleteProduct(context.Background(), env.adminID, product.ID)
	require.ErrorIs(t, err, utils.ErrAdminRequired)
	_, getErr := env.svc.GetProduct(product.ID)
	require.NoError(t, getErr)
}

func TestUpdateProductRederivesInStock(t *testing.T) {
	env := newProductEnv(t)

	product, err := env.svc.CreateProduct(context.Background(), env.adminID, &ProductInput{
		Name: "X", Category: "c", Price: 1, StockQuantity: 5,
	})
	require.NoError(t, err)

	zero := 0
	updated, err := env.svc.UpdateProduct(context.Background(), env.adminID, product.ID, &ProductUpdate{
		StockQuantity: &zero,
	})
	require.NoError(t, err)
	require.False(t, updated.InStock)

	ten := 10
	updated, err = env.svc.UpdateProduct(context.Background(), env.adminID, product.ID, &ProductUpdate{
		StockQuantity: &ten,
	})
	require.NoError(t, err)
	require.True(t, updated.InStock)
}

func TestGetProductsFilterConjunction(t *testing.T) {
	env := newProductEnv(t)

	seed := func(name, description, category string, price float64) {
		t.Helper()
		_, err := env.svc.CreateProduct(context.Background(), env.adminID, &ProductInput{
			Name:          name,
			Description:   description,
			Category:      category,
			Price:         price,
			StockQuantity: 1,
		})
		require.NoError(t, err)
	}

	seed("Torque Wrench", "drive socket set", "Hardware", 45)
	seed("Impact Driver", "cordless wrench companion", "Hardware", 100)
	seed("Pro Wrench", "forged steel", "Hardware", 100.01)
	seed("Wrench Mug", "novelty ceramic", "Kitchen", 45)
	seed("Claw Hammer", "smooth face", "Hardware", 45)

	min, max := 0.0, 100.0
	products, err := env.svc.GetProducts(&models.ProductFilter{
		Category: "Hardware",
		Search:   "WRENCH",
		PriceMin: &min,
		PriceMax: &max,
	})
	require.NoError(t, err)

	// Name and description both match the search, case-insensitively, and
	// the price bounds are inclusive: the product at exactly 100 is kept
	// while the one at 100.01 is not. The off-category and no-match
	// products are excluded even though they satisfy the other clauses.
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	require.ElementsMatch(t, []string{"Torque Wrench", "Impact Driver"}, names)
}

func TestGetProductUnknownID(t *testing.T) {
	env := newProductEnv(t)

	_, err := env.svc.GetProduct("missing")
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = env.svc.UpdateProduct(context.Background(), env.adminID, "missing", &ProductUpdate{})
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	err = env.svc.DeleteProduct(context.Background(), env.adminID, "missing")
	require.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestSearchUnavailableWithoutIndex(t *testing.T) {
	env := newProductEnv(t)

	_, err := env.svc.Search(context.Background(), "headphones", 10)
	require.ErrorIs(t, err, utils.ErrSearchUnavailable)
}
