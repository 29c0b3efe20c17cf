package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// ProductRepository handles data access for the product catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns products matching the filter conjunction, newest first.
// Search matches name or description case-insensitively. Price bounds are
// inclusive. No pagination: the full matching set is returned.
func (r *ProductRepository) GetAll(filter *models.ProductFilter) ([]models.Product, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	appendCond := func(cond string, vals ...interface{}) {
		where += " AND " + cond
		args = append(args, vals...)
		argIdx += len(vals)
	}

	if filter != nil {
		if filter.Category != "" {
			appendCond(fmt.Sprintf("category = $%d", argIdx), filter.Category)
		}
		if filter.Search != "" {
			appendCond(
				fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx),
				"%"+filter.Search+"%",
			)
		}
		if filter.PriceMin != nil {
			appendCond(fmt.Sprintf("price >= $%d", argIdx), *filter.PriceMin)
		}
		if filter.PriceMax != nil {
			appendCond(fmt.Sprintf("price <= $%d", argIdx), *filter.PriceMax)
		}
		if filter.InStock != nil {
			appendCond(fmt.Sprintf("in_stock = $%d", argIdx), *filter.InStock)
		}
		if filter.Featured != nil {
			appendCond(fmt.Sprintf("featured = $%d", argIdx), *filter.Featured)
		}
		if filter.IsNew != nil {
			appendCond(fmt.Sprintf("is_new = $%d", argIdx), *filter.IsNew)
		}
		if filter.OnSale != nil {
			appendCond(fmt.Sprintf("on_sale = $%d", argIdx), *filter.OnSale)
		}
	}

	q := `SELECT * FROM products ` + where + ` ORDER BY created_at DESC`

	var products []models.Product
	if err := r.db.Select(&products, q, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products
            (id, name, description, price, original_price, images, category, subcategory,
             brand, rating, review_count, in_stock, stock_quantity, low_stock_alert,
             specifications, variants, tags, featured, is_new, on_sale)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.Images,
		p.Category,
		p.Subcategory,
		p.Brand,
		p.Rating,
		p.ReviewCount,
		p.InStock,
		p.StockQuantity,
		p.LowStockAlert,
		p.Specifications,
		p.Variants,
		p.Tags,
		p.Featured,
		p.IsNew,
		p.OnSale,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update replaces an existing product's mutable columns.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products
        SET name = $2, description = $3, price = $4, original_price = $5, images = $6,
            category = $7, subcategory = $8, brand = $9, rating = $10, review_count = $11,
            in_stock = $12, stock_quantity = $13, low_stock_alert = $14,
            specifications = $15, variants = $16, tags = $17,
            featured = $18, is_new = $19, on_sale = $20,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.Images,
		p.Category,
		p.Subcategory,
		p.Brand,
		p.Rating,
		p.ReviewCount,
		p.InStock,
		p.StockQuantity,
		p.LowStockAlert,
		p.Specifications,
		p.Variants,
		p.Tags,
		p.Featured,
		p.IsNew,
		p.OnSale,
	).Scan(&p.UpdatedAt)
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
