package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Dhruv6019/BrivaMart/internal/events"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/search"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// DefaultLowStockAlert is applied when a product is created without an
// explicit threshold.
const DefaultLowStockAlert = 5

// ProductService provides catalog reads for everyone and mutations for
// admins. Each mutating call re-fetches the caller's role from the profile
// store; privilege is never cached or derived from token claims.
type ProductService struct {
	products Products
	users    UserProfiles
	audits   Audits
	producer *events.Producer
	index    *search.ProductIndex
}

// NewProductService constructs a new ProductService.
func NewProductService(products Products, users UserProfiles, audits Audits, producer *events.Producer, index *search.ProductIndex) *ProductService {
	return &ProductService{
		products: products,
		users:    users,
		audits:   audits,
		producer: producer,
		index:    index,
	}
}

// GetProducts returns the full matching set for the filter conjunction,
// newest first.
func (s *ProductService) GetProducts(filter *models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.GetAll(filter)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

// GetProduct returns one product; an unknown id is a distinct not-found
// error, never an empty success.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	product.Normalize()
	return product, nil
}

// ProductInput carries the fields for product creation.
type ProductInput struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	OriginalPrice  *float64              `json:"originalPrice"`
	Category       string                `json:"category"`
	Subcategory    string                `json:"subcategory"`
	Brand          string                `json:"brand"`
	Images         []string              `json:"images"`
	Specifications models.SpecMap        `json:"specifications"`
	Variants       []models.ProductVariant `json:"variants"`
	Tags           []string              `json:"tags"`
	StockQuantity  int                   `json:"stockQuantity"`
	LowStockAlert  *int                  `json:"lowStockAlert"`
	Featured       bool                  `json:"featured"`
	IsNew          bool                  `json:"isNew"`
	OnSale         bool                  `json:"onSale"`
}

// CreateProduct inserts a catalog entry. Admin only.
func (s *ProductService) CreateProduct(ctx context.Context, callerID string, in *ProductInput) (*models.Product, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	if in == nil || in.Name == "" || in.Category == "" || in.Price < 0 || in.StockQuantity < 0 {
		return nil, utils.ErrValidation
	}

	lowStock := DefaultLowStockAlert
	if in.LowStockAlert != nil {
		lowStock = *in.LowStockAlert
	}
	images := in.Images
	if len(images) == 0 {
		images = []string{models.PlaceholderImage}
	}

	product := &models.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		OriginalPrice:  in.OriginalPrice,
		Images:         pq.StringArray(images),
		Category:       in.Category,
		Subcategory:    in.Subcategory,
		Brand:          in.Brand,
		InStock:        in.StockQuantity > 0,
		StockQuantity:  in.StockQuantity,
		LowStockAlert:  lowStock,
		Specifications: in.Specifications,
		Variants:       models.VariantList(in.Variants),
		Tags:           pq.StringArray(in.Tags),
		Featured:       in.Featured,
		IsNew:          in.IsNew,
		OnSale:         in.OnSale,
	}
	product.Normalize()

	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	audit(s.audits, &callerID, models.AuditProductCreated, "products", "", true, map[string]interface{}{
		"productId": product.ID, "name": product.Name,
	})
	s.publish(ctx, events.TypeProductCreated, product)
	s.reindex(ctx, product)

	return product, nil
}

// ProductUpdate carries partial product mutations. Nil fields are left
// untouched. Stock is the source of truth for availability: inStock is
// re-derived from stockQuantity on every write and cannot be set directly.
type ProductUpdate struct {
	Name           *string                  `json:"name"`
	Description    *string                  `json:"description"`
	Price          *float64                 `json:"price"`
	OriginalPrice  *float64                 `json:"originalPrice"`
	Category       *string                  `json:"category"`
	Subcategory    *string                  `json:"subcategory"`
	Brand          *string                  `json:"brand"`
	Images         []string                 `json:"images"`
	Specifications models.SpecMap           `json:"specifications"`
	Variants       []models.ProductVariant  `json:"variants"`
	Tags           []string                 `json:"tags"`
	StockQuantity  *int                     `json:"stockQuantity"`
	LowStockAlert  *int                     `json:"lowStockAlert"`
	Featured       *bool                    `json:"featured"`
	IsNew          *bool                    `json:"isNew"`
	OnSale         *bool                    `json:"onSale"`
}

// UpdateProduct applies a partial update. Admin only.
func (s *ProductService) UpdateProduct(ctx context.Context, callerID, id string, update *ProductUpdate) (*models.Product, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	if update == nil {
		return nil, utils.ErrValidation
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.OriginalPrice != nil {
		product.OriginalPrice = update.OriginalPrice
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Subcategory != nil {
		product.Subcategory = *update.Subcategory
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Images != nil {
		product.Images = pq.StringArray(update.Images)
	}
	if update.Specifications != nil {
		product.Specifications = update.Specifications
	}
	if update.Variants != nil {
		product.Variants = models.VariantList(update.Variants)
	}
	if update.Tags != nil {
		product.Tags = pq.StringArray(update.Tags)
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, utils.ErrValidation
		}
		product.StockQuantity = *update.StockQuantity
	}
	if update.LowStockAlert != nil {
		product.LowStockAlert = *update.LowStockAlert
	}
	if update.Featured != nil {
		product.Featured = *update.Featured
	}
	if update.IsNew != nil {
		product.IsNew = *update.IsNew
	}
	if update.OnSale != nil {
		product.OnSale = *update.OnSale
	}
	product.InStock = product.StockQuantity > 0
	product.Normalize()

	if err := s.products.Update(product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	audit(s.audits, &callerID, models.AuditProductUpdated, "products", "", true, map[string]interface{}{
		"productId": id,
	})
	s.publish(ctx, events.TypeProductUpdated, product)
	s.reindex(ctx, product)

	return product, nil
}

// DeleteProduct removes a catalog entry. Admin only.
func (s *ProductService) DeleteProduct(ctx context.Context, callerID, id string) error {
	if err := s.requireAdmin(callerID); err != nil {
		return err
	}

	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}

	audit(s.audits, &callerID, models.AuditProductDeleted, "products", "", true, map[string]interface{}{
		"productId": id,
	})
	s.publish(ctx, events.TypeProductDeleted, map[string]string{"productId": id})

	if err := s.index.Remove(ctx, id); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("search index remove failed")
	}
	return nil
}

// Search queries the Elasticsearch product index.
func (s *ProductService) Search(ctx context.Context, query string, size int) ([]models.Product, error) {
	if !s.index.Enabled() {
		return nil, utils.ErrSearchUnavailable
	}
	if query == "" {
		return nil, utils.ErrValidation
	}
	return s.index.Query(ctx, query, size)
}

// requireAdmin re-derives the caller's privilege with a fresh profile read.
func (s *ProductService) requireAdmin(callerID string) error {
	if callerID == "" {
		return utils.ErrUnauthorized
	}
	role, err := s.users.GetRole(callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrUnauthorized
		}
		return err
	}
	if role != models.RoleAdmin {
		return utils.ErrAdminRequired
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.producer.Publish(ctx, eventType, eventType, payload); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}

func (s *ProductService) reindex(ctx context.Context, product *models.Product) {
	if err := s.index.Index(ctx, product); err != nil {
		log.Warn().Err(err).Str("product_id", product.ID).Msg("search index update failed")
	}
}
