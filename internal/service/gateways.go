package service

import (
	"time"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// The services consume persistence through these narrow gateways so the core
// flows stay independent of any specific backend. Production wiring uses the
// sqlx repositories; tests substitute in-memory fakes.

// UserProfiles is the profile persistence surface.
type UserProfiles interface {
	Create(u *models.UserProfile) error
	GetByID(id string) (*models.UserProfile, error)
	GetByEmail(email string) (*models.UserProfile, error)
	GetRole(id string) (models.Role, error)
	UpdateProfile(id string, update *models.ProfileUpdate, encryptedPhone *string) (*models.UserProfile, error)
	UpdatePassword(id, passwordHash string) error
	SetVerified(id string, email, phone bool) error
	TouchLastLogin(id string, at time.Time) error
	Delete(id string) error
}

// OTPs is the OTP verification persistence surface.
type OTPs interface {
	Create(v *models.OTPVerification) error
	GetByID(id string) (*models.OTPVerification, error)
	IncrementAttempts(id string) error
	MarkConsumed(id string, at time.Time) error
}

// Sessions is the login session persistence surface.
type Sessions interface {
	Create(s *models.Session) error
	GetByID(id string) (*models.Session, error)
	ListByUser(userID string) ([]models.Session, error)
	Touch(id string, at time.Time) error
	Delete(id, userID string) error
	DeleteByUser(userID string) error
}

// Audits appends to the audit trail.
type Audits interface {
	Append(entry *models.AuditLog) error
}

// Products is the catalog persistence surface.
type Products interface {
	GetAll(filter *models.ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id string) error
}

// Orders is the order persistence surface.
type Orders interface {
	Create(o *models.Order) error
	GetByID(id, userID string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
}
