package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// OTPRepository handles data access for OTP verifications.
type OTPRepository struct {
	db *sqlx.DB
}

// NewOTPRepository creates a new OTPRepository.
func NewOTPRepository(db *sqlx.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create inserts a new verification.
func (r *OTPRepository) Create(v *models.OTPVerification) error {
	const q = `
        INSERT INTO otp_verifications
            (id, user_id, email, phone, purpose, code, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	return r.db.QueryRowx(q,
		v.ID,
		v.UserID,
		v.Email,
		v.Phone,
		v.Purpose,
		v.Code,
		v.ExpiresAt,
	).Scan(&v.CreatedAt)
}

// GetByID returns a single verification by id.
func (r *OTPRepository) GetByID(id string) (*models.OTPVerification, error) {
	const q = `SELECT * FROM otp_verifications WHERE id = $1 LIMIT 1`

	var v models.OTPVerification
	if err := r.db.Get(&v, q, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// IncrementAttempts records one failed code submission.
func (r *OTPRepository) IncrementAttempts(id string) error {
	const q = `UPDATE otp_verifications SET attempts = attempts + 1 WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// MarkConsumed stamps the verification as redeemed.
func (r *OTPRepository) MarkConsumed(id string, at time.Time) error {
	const q = `UPDATE otp_verifications SET consumed_at = $2 WHERE id = $1`
	res, err := r.db.Exec(q, id, at)
	if err != nil {
		return err
	}
	return requireRow(res)
}
