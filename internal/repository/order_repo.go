package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// OrderRepository handles data access for orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order.
func (r *OrderRepository) Create(o *models.Order) error {
	const q = `
        INSERT INTO orders
            (id, user_id, items, subtotal, tax, shipping, total, status, shipping_method, payment_method)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		o.ID,
		o.UserID,
		o.Items,
		o.Subtotal,
		o.Tax,
		o.Shipping,
		o.Total,
		o.Status,
		o.ShippingMethod,
		o.PaymentMethod,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

// GetByID returns a single order scoped to its owning user.
func (r *OrderRepository) GetByID(id, userID string) (*models.Order, error) {
	const q = `SELECT * FROM orders WHERE id = $1 AND user_id = $2 LIMIT 1`

	var o models.Order
	if err := r.db.Get(&o, q, id, userID); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns all orders of a user, newest first.
func (r *OrderRepository) ListByUser(userID string) ([]models.Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	var orders []models.Order
	if err := r.db.Select(&orders, q, userID); err != nil {
		return nil, err
	}
	return orders, nil
}
