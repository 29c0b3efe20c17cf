package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ShippingMethod selects the shipping cost tier at checkout.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

// Order is a completed checkout. Items holds the cart rows snapshotted as
// jsonb; the cart itself is cleared once the order is stored.
type Order struct {
	ID             string         `db:"id" json:"id"`
	UserID         string         `db:"user_id" json:"userId"`
	Items          types.JSONText `db:"items" json:"items"`
	Subtotal       float64        `db:"subtotal" json:"subtotal"`
	Tax            float64        `db:"tax" json:"tax"`
	Shipping       float64        `db:"shipping" json:"shipping"`
	Total          float64        `db:"total" json:"total"`
	Status         OrderStatus    `db:"status" json:"status"`
	ShippingMethod ShippingMethod `db:"shipping_method" json:"shippingMethod"`
	PaymentMethod  string         `db:"payment_method" json:"paymentMethod"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}
