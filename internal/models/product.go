package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// PlaceholderImage is served for products that have no stored images.
const PlaceholderImage = "/images/product-placeholder.png"

// VariantType enumerates the supported variant dimensions.
type VariantType string

const (
	VariantTypeColor VariantType = "color"
	VariantTypeSize  VariantType = "size"
	VariantTypeStyle VariantType = "style"
)

// ProductVariant is a purchasable sub-option of a product with its own stock
// and optional price override.
type ProductVariant struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          VariantType `json:"type"`
	Value         string      `json:"value"`
	Price         *float64    `json:"price,omitempty"`
	StockQuantity int         `json:"stockQuantity"`
	Image         string      `json:"image,omitempty"`
}

// VariantList stores product variants as a jsonb column.
type VariantList []ProductVariant

// Value implements driver.Valuer for jsonb storage.
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		v = VariantList{}
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for jsonb storage.
func (v *VariantList) Scan(src interface{}) error {
	return scanJSON(src, v)
}

// SpecMap stores product specifications (name -> value) as a jsonb column.
type SpecMap map[string]string

// Value implements driver.Valuer for jsonb storage.
func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		m = SpecMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb storage.
func (m *SpecMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

// Product represents a catalog entry. Fields are tagged for both DB scanning
// (snake_case columns) and JSON serialization (camelCase wire format).
type Product struct {
	ID             string         `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Description    string         `db:"description" json:"description"`
	Price          float64        `db:"price" json:"price"`
	OriginalPrice  *float64       `db:"original_price" json:"originalPrice,omitempty"`
	Images         pq.StringArray `db:"images" json:"images"`
	Category       string         `db:"category" json:"category"`
	Subcategory    string         `db:"subcategory" json:"subcategory"`
	Brand          string         `db:"brand" json:"brand"`
	Rating         float64        `db:"rating" json:"rating"`
	ReviewCount    int            `db:"review_count" json:"reviewCount"`
	InStock        bool           `db:"in_stock" json:"inStock"`
	StockQuantity  int            `db:"stock_quantity" json:"stockQuantity"`
	LowStockAlert  int            `db:"low_stock_alert" json:"lowStockAlert"`
	Specifications SpecMap        `db:"specifications" json:"specifications"`
	Variants       VariantList    `db:"variants" json:"variants"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	Featured       bool           `db:"featured" json:"featured"`
	IsNew          bool           `db:"is_new" json:"isNew"`
	OnSale         bool           `db:"on_sale" json:"onSale"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// Variant returns the variant with the given id, or nil if absent.
func (p *Product) Variant(id string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// Normalize applies read-side defaults: a placeholder image when none is
// stored, and non-nil collection fields so JSON output stays stable.
func (p *Product) Normalize() {
	if len(p.Images) == 0 {
		p.Images = pq.StringArray{PlaceholderImage}
	}
	if p.Specifications == nil {
		p.Specifications = SpecMap{}
	}
	if p.Variants == nil {
		p.Variants = VariantList{}
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
}

// ProductFilter is the conjunction of optional catalog filters.
type ProductFilter struct {
	Category string
	Search   string
	PriceMin *float64
	PriceMax *float64
	InStock  *bool
	Featured *bool
	IsNew    *bool
	OnSale   *bool
}
