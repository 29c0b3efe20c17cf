package models

import "time"

// OTPPurpose enumerates what a verification code authorizes.
type OTPPurpose string

const (
	OTPPurposeEmailSignup   OTPPurpose = "email_signup"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// MaxOTPAttempts is the number of failed code submissions allowed before a
// verification is locked out.
const MaxOTPAttempts = 5

// OTPVerification is a short-lived server-held record keyed by verification
// id. The code never leaves the server unless insecure echo mode is enabled.
type OTPVerification struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"userId"`
	Email      string     `db:"email" json:"email"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Purpose    OTPPurpose `db:"purpose" json:"purpose"`
	Code       string     `db:"code" json:"-"`
	Attempts   int        `db:"attempts" json:"-"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expiresAt"`
	ConsumedAt *time.Time `db:"consumed_at" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// Usable reports whether the verification can still accept a code.
func (v *OTPVerification) Usable(now time.Time) bool {
	return v.ConsumedAt == nil && v.Attempts < MaxOTPAttempts && now.Before(v.ExpiresAt)
}
