package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// UserProfileRepository handles data access for user profiles.
type UserProfileRepository struct {
	db *sqlx.DB
}

// NewUserProfileRepository creates a new UserProfileRepository.
func NewUserProfileRepository(db *sqlx.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

// Create inserts a new profile row.
func (r *UserProfileRepository) Create(u *models.UserProfile) error {
	const q = `
        INSERT INTO user_profiles
            (id, email, phone, first_name, last_name, role, password_hash, encrypted_phone)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		u.ID,
		u.Email,
		u.Phone,
		u.FirstName,
		u.LastName,
		u.Role,
		u.PasswordHash,
		u.EncryptedPhone,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByID returns a single profile by id.
func (r *UserProfileRepository) GetByID(id string) (*models.UserProfile, error) {
	const q = `SELECT * FROM user_profiles WHERE id = $1 LIMIT 1`

	var u models.UserProfile
	if err := r.db.Get(&u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a single profile by email.
func (r *UserProfileRepository) GetByEmail(email string) (*models.UserProfile, error) {
	const q = `SELECT * FROM user_profiles WHERE email = $1 LIMIT 1`

	var u models.UserProfile
	if err := r.db.Get(&u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetRole re-fetches the current role for a user. Mutating product operations
// call this on every request instead of trusting token claims.
func (r *UserProfileRepository) GetRole(id string) (models.Role, error) {
	const q = `SELECT role FROM user_profiles WHERE id = $1 LIMIT 1`

	var role models.Role
	if err := r.db.Get(&role, q, id); err != nil {
		return "", err
	}
	return role, nil
}

// UpdateProfile applies whitelisted field updates. Nil fields are skipped;
// email is never updatable.
func (r *UserProfileRepository) UpdateProfile(id string, update *models.ProfileUpdate, encryptedPhone *string) (*models.UserProfile, error) {
	set := ""
	args := []interface{}{}
	argIdx := 1

	appendSet := func(col string, val interface{}) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, argIdx)
		args = append(args, val)
		argIdx++
	}

	if update.FirstName != nil {
		appendSet("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		appendSet("last_name", *update.LastName)
	}
	if update.Phone != nil {
		appendSet("phone", *update.Phone)
		appendSet("encrypted_phone", encryptedPhone)
	}
	if update.AvatarURL != nil {
		appendSet("avatar_url", *update.AvatarURL)
	}

	if set == "" {
		return r.GetByID(id)
	}

	q := fmt.Sprintf(
		`UPDATE user_profiles SET %s, updated_at = NOW() WHERE id = $%d RETURNING *`,
		set, argIdx,
	)
	args = append(args, id)

	var u models.UserProfile
	if err := r.db.Get(&u, q, args...); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the stored credential hash.
func (r *UserProfileRepository) UpdatePassword(id, passwordHash string) error {
	const q = `UPDATE user_profiles SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetVerified marks the email (and optionally phone) as verified.
func (r *UserProfileRepository) SetVerified(id string, email, phone bool) error {
	const q = `
        UPDATE user_profiles
        SET email_verified = email_verified OR $2,
            phone_verified = phone_verified OR $3,
            updated_at = NOW()
        WHERE id = $1`
	res, err := r.db.Exec(q, id, email, phone)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// TouchLastLogin records a successful login.
func (r *UserProfileRepository) TouchLastLogin(id string, at time.Time) error {
	const q = `UPDATE user_profiles SET last_login = $2 WHERE id = $1`
	_, err := r.db.Exec(q, id, at)
	return err
}

// Delete removes the profile row. Dependent rows (sessions, OTP
// verifications, orders, audit references) are handled by FK cascade.
func (r *UserProfileRepository) Delete(id string) error {
	const q = `DELETE FROM user_profiles WHERE id = $1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-row result into sql.ErrNoRows so callers can
// distinguish not-found from success.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
