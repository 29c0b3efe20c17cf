package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// SessionRepository handles data access for login sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session.
func (r *SessionRepository) Create(s *models.Session) error {
	const q = `
        INSERT INTO user_sessions
            (id, user_id, device_info, ip_address, user_agent, last_activity, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	return r.db.QueryRowx(q,
		s.ID,
		s.UserID,
		s.DeviceInfo,
		s.IPAddress,
		s.UserAgent,
		s.LastActivity,
		s.ExpiresAt,
	).Scan(&s.CreatedAt)
}

// GetByID returns a single session by id.
func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	const q = `SELECT * FROM user_sessions WHERE id = $1 LIMIT 1`

	var s models.Session
	if err := r.db.Get(&s, q, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns all sessions belonging to a user, newest first.
func (r *SessionRepository) ListByUser(userID string) ([]models.Session, error) {
	const q = `SELECT * FROM user_sessions WHERE user_id = $1 ORDER BY created_at DESC`

	var sessions []models.Session
	if err := r.db.Select(&sessions, q, userID); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Touch updates the session's last-activity timestamp.
func (r *SessionRepository) Touch(id string, at time.Time) error {
	const q = `UPDATE user_sessions SET last_activity = $2 WHERE id = $1`
	_, err := r.db.Exec(q, id, at)
	return err
}

// Delete removes a session scoped to its owning user. Returns sql.ErrNoRows
// when the session does not exist or belongs to another user.
func (r *SessionRepository) Delete(id, userID string) error {
	const q = `DELETE FROM user_sessions WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(q, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteByUser removes all sessions of the user.
func (r *SessionRepository) DeleteByUser(userID string) error {
	const q = `DELETE FROM user_sessions WHERE user_id = $1`
	_, err := r.db.Exec(q, userID)
	return err
}
