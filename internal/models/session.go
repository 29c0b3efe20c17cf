package models

import "time"

// Session is a server-held login session. Users may list and revoke their
// own sessions; a revoked session invalidates its access tokens immediately.
type Session struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	DeviceInfo   string    `db:"device_info" json:"deviceInfo"`
	IPAddress    string    `db:"ip_address" json:"ipAddress"`
	UserAgent    string    `db:"user_agent" json:"userAgent"`
	LastActivity time.Time `db:"last_activity" json:"lastActivity"`
	ExpiresAt    time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
