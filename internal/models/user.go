package models

import "time"

// Role is the coarse authorization label gating mutating product operations.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// UserProfile represents an application user. Email is immutable after
// creation; the password hash and the encrypted phone side-channel never
// leave the server.
type UserProfile struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Role           Role       `db:"role" json:"role"`
	AvatarURL      *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	EmailVerified  bool       `db:"email_verified" json:"emailVerified"`
	PhoneVerified  bool       `db:"phone_verified" json:"phoneVerified"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	EncryptedPhone *string    `db:"encrypted_phone" json:"-"`
	LastLogin      *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// ProfileUpdate carries the whitelisted profile mutations. Nil fields are
// left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
