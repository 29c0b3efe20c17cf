package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// AuditRepository appends rows to the audit trail. The table is append-only;
// there are no read or delete methods.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts one audit row.
func (r *AuditRepository) Append(entry *models.AuditLog) error {
	const q = `
        INSERT INTO audit_logs (user_id, action, resource, details, success, ip_address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	details := entry.Details
	if details == nil {
		details = []byte("{}")
	}

	return r.db.QueryRowx(q,
		entry.UserID,
		entry.Action,
		entry.Resource,
		details,
		entry.Success,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}
