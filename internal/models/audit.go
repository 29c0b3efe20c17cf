package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Audit actions recorded by the service. The table is append-only; there is
// no read-side API.
const (
	AuditLoginSuccess   = "login_success"
	AuditLoginFailed    = "login_failed"
	AuditProfileUpdated = "profile_updated"
	AuditAccountDeleted = "account_deleted"
	AuditSessionRevoked = "session_revoked"
	AuditPasswordReset  = "password_reset"
	AuditProductCreated = "product_created"
	AuditProductUpdated = "product_updated"
	AuditProductDeleted = "product_deleted"
	AuditOrderPlaced    = "order_placed"
)

// AuditLog is one row of the append-only audit trail.
type AuditLog struct {
	ID        int64          `db:"id" json:"id"`
	UserID    *string        `db:"user_id" json:"userId,omitempty"`
	Action    string         `db:"action" json:"action"`
	Resource  string         `db:"resource" json:"resource"`
	Details   types.JSONText `db:"details" json:"details"`
	Success   bool           `db:"success" json:"success"`
	IPAddress string         `db:"ip_address" json:"ipAddress"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
