package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dhruv6019/BrivaMart/internal/config"
	"github.com/Dhruv6019/BrivaMart/internal/events"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// MinPasswordLength is enforced on signup and password reset.
const MinPasswordLength = 8

// AuthService orchestrates the signup/OTP-verify, login, password reset,
// profile and session flows. Every sensitive operation appends an audit row.
type AuthService struct {
	users    UserProfiles
	otps     OTPs
	sessions Sessions
	audits   Audits
	producer *events.Producer
	cfg      *config.AuthConfig
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users UserProfiles, otps OTPs, sessions Sessions, audits Audits, producer *events.Producer, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		users:    users,
		otps:     otps,
		sessions: sessions,
		audits:   audits,
		producer: producer,
		cfg:      cfg,
	}
}

// RegisterInput carries the signup request fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// RegisterResult is returned on successful signup. OTPCode is populated only
// when insecure echo mode is enabled; otherwise the code stays server-side
// until a delivery channel redeems it.
type RegisterResult struct {
	User           *models.UserProfile
	VerificationID string
	OTPCode        string
}

// Register creates the account and profile row, then issues an email-signup
// OTP. Validation runs before any write.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.FirstName == "" || in.LastName == "" || len(in.Password) < MinPasswordLength {
		return nil, utils.ErrValidation
	}

	if _, err := s.users.GetByEmail(in.Email); err == nil {
		return nil, utils.ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var encryptedPhone *string
	if in.Phone != nil && *in.Phone != "" {
		enc, err := utils.EncryptString(s.cfg.EncryptionKey, *in.Phone)
		if err != nil {
			return nil, err
		}
		encryptedPhone = &enc
	}

	user := &models.UserProfile{
		ID:             uuid.New().String(),
		Email:          in.Email,
		Phone:          in.Phone,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Role:           models.RoleUser,
		PasswordHash:   string(hash),
		EncryptedPhone: encryptedPhone,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	verification, err := s.issueOTP(user.ID, user.Email, user.Phone, models.OTPPurposeEmailSignup)
	if err != nil {
		return nil, err
	}

	if err := s.producer.Publish(ctx, events.TypeUserRegistered, user.ID, map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
	}); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("publish user_registered failed")
	}

	result := &RegisterResult{User: user, VerificationID: verification.ID}
	if s.cfg.InsecureOTPEcho {
		result.OTPCode = verification.Code
	}
	return result, nil
}

// VerifyOTP redeems a signup code. A success marks the account's email (and
// phone, when attached) as verified and returns the refreshed profile.
// Password-reset codes are redeemed only through ResetPassword.
func (s *AuthService) VerifyOTP(verificationID, code string) (*models.UserProfile, error) {
	verification, err := s.checkOTP(verificationID, code, models.OTPPurposeEmailSignup)
	if err != nil {
		return nil, err
	}

	phoneVerified := verification.Phone != nil && *verification.Phone != ""
	if err := s.users.SetVerified(verification.UserID, true, phoneVerified); err != nil {
		return nil, mapUserErr(err)
	}

	user, err := s.users.GetByID(verification.UserID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// LoginResult is returned on successful login.
type LoginResult struct {
	User    *models.UserProfile
	Session *models.Session
	Token   string
}

// Login checks credentials in a single round trip; nothing is retried. Both
// outcomes append an audit row.
func (s *AuthService) Login(email, password, ip, userAgent string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, utils.ErrValidation
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			audit(s.audits, nil, models.AuditLoginFailed, "auth", ip, false, map[string]interface{}{
				"email": email, "reason": "unknown_email",
			})
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		audit(s.audits, &user.ID, models.AuditLoginFailed, "auth", ip, false, map[string]interface{}{
			"email": email, "reason": "bad_password",
		})
		return nil, utils.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		DeviceInfo:   userAgent,
		IPAddress:    ip,
		UserAgent:    userAgent,
		LastActivity: now,
		ExpiresAt:    now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("update last_login failed")
	}
	user.LastLogin = &now

	token, err := utils.GenerateJWT([]byte(s.cfg.JWTSecret), user.ID, session.ID, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	audit(s.audits, &user.ID, models.AuditLoginSuccess, "auth", ip, true, map[string]interface{}{
		"email": email, "sessionId": session.ID,
	})

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// ResetRequestResult mirrors RegisterResult for the password-reset branch.
type ResetRequestResult struct {
	VerificationID string
	OTPCode        string
}

// RequestPasswordReset looks up the profile by email and issues a reset OTP.
// An unknown email is a distinct not-found error.
func (s *AuthService) RequestPasswordReset(email string) (*ResetRequestResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, utils.ErrValidation
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, mapUserErr(err)
	}

	verification, err := s.issueOTP(user.ID, user.Email, nil, models.OTPPurposePasswordReset)
	if err != nil {
		return nil, err
	}

	result := &ResetRequestResult{VerificationID: verification.ID}
	if s.cfg.InsecureOTPEcho {
		result.OTPCode = verification.Code
	}
	return result, nil
}

// ResetPassword re-verifies the OTP, then replaces the stored credential.
// All existing sessions are revoked.
func (s *AuthService) ResetPassword(verificationID, code, newPassword, ip string) error {
	if len(newPassword) < MinPasswordLength {
		return utils.ErrValidation
	}

	verification, err := s.checkOTP(verificationID, code, models.OTPPurposePasswordReset)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(verification.UserID, string(hash)); err != nil {
		return mapUserErr(err)
	}

	if err := s.sessions.DeleteByUser(verification.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", verification.UserID).Msg("session revocation after reset failed")
	}

	audit(s.audits, &verification.UserID, models.AuditPasswordReset, "auth", ip, true, map[string]interface{}{
		"verificationId": verification.ID,
	})
	return nil
}

// GetProfile returns the profile for an authenticated user.
func (s *AuthService) GetProfile(userID string) (*models.UserProfile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// UpdateProfile whitelist-copies firstName/lastName/phone/avatarUrl. A phone
// update is additionally stored in encrypted form alongside the plaintext.
func (s *AuthService) UpdateProfile(userID string, update *models.ProfileUpdate, ip string) (*models.UserProfile, error) {
	if update == nil {
		return nil, utils.ErrValidation
	}

	var encryptedPhone *string
	if update.Phone != nil && *update.Phone != "" {
		enc, err := utils.EncryptString(s.cfg.EncryptionKey, *update.Phone)
		if err != nil {
			return nil, err
		}
		encryptedPhone = &enc
	}

	user, err := s.users.UpdateProfile(userID, update, encryptedPhone)
	if err != nil {
		return nil, mapUserErr(err)
	}

	audit(s.audits, &userID, models.AuditProfileUpdated, "user_profiles", ip, true, map[string]interface{}{
		"updatedFields": updatedFields(update),
	})
	return user, nil
}

// DeleteAccount removes the profile row (dependent rows cascade) and revokes
// the calling session.
func (s *AuthService) DeleteAccount(userID, ip string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return mapUserErr(err)
	}

	audit(s.audits, &userID, models.AuditAccountDeleted, "user_profiles", ip, true, map[string]interface{}{
		"email": user.Email,
	})

	if err := s.users.Delete(userID); err != nil {
		return mapUserErr(err)
	}

	if err := s.sessions.DeleteByUser(userID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Str("user_id", userID).Msg("session cleanup after account deletion failed")
	}
	return nil
}

// Authenticate validates an access token against both its signature and its
// backing session row, so a revoked session kills the token immediately. The
// session's last activity timestamp is refreshed as a side effect.
func (s *AuthService) Authenticate(token string) (*utils.Claims, error) {
	claims, err := utils.ValidateJWT([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	session, err := s.sessions.GetByID(claims.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUnauthorized
		}
		return nil, err
	}
	now := time.Now().UTC()
	if session.UserID != claims.UserID || session.Expired(now) {
		return nil, utils.ErrUnauthorized
	}
	if err := s.sessions.Touch(session.ID, now); err != nil {
		log.Warn().Err(err).Str("session_id", session.ID).Msg("session touch failed")
	}
	return claims, nil
}

// Logout invalidates the calling session.
func (s *AuthService) Logout(userID, sessionID string) error {
	if err := s.sessions.Delete(sessionID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrSessionNotFound
		}
		return err
	}
	return nil
}

// ListSessions returns the user's sessions, newest first.
func (s *AuthService) ListSessions(userID string) ([]models.Session, error) {
	return s.sessions.ListByUser(userID)
}

// RevokeSession deletes one of the user's sessions and records the revocation.
func (s *AuthService) RevokeSession(userID, sessionID, ip string) error {
	if err := s.sessions.Delete(sessionID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrSessionNotFound
		}
		return err
	}

	audit(s.audits, &userID, models.AuditSessionRevoked, "user_sessions", ip, true, map[string]interface{}{
		"sessionId": sessionID,
	})
	return nil
}

// issueOTP creates a fresh verification for the user and purpose.
func (s *AuthService) issueOTP(userID, email string, phone *string, purpose models.OTPPurpose) (*models.OTPVerification, error) {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	verification := &models.OTPVerification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Email:     email,
		Phone:     phone,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.cfg.OTPTTL),
	}
	if err := s.otps.Create(verification); err != nil {
		return nil, err
	}
	return verification, nil
}

// checkOTP validates a code submission against a verification of the given
// purpose and consumes it on success. A purpose mismatch is rejected before
// anything is consumed, so a code issued for one flow cannot be burned by
// submitting it to another. Failed submissions count toward the attempt
// limit.
func (s *AuthService) checkOTP(verificationID, code string, purpose models.OTPPurpose) (*models.OTPVerification, error) {
	if verificationID == "" || code == "" {
		return nil, utils.ErrValidation
	}

	verification, err := s.otps.GetByID(verificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrVerificationInvalid
		}
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case verification.Purpose != purpose:
		return nil, utils.ErrVerificationInvalid
	case verification.ConsumedAt != nil:
		return nil, utils.ErrVerificationInvalid
	case verification.Attempts >= models.MaxOTPAttempts:
		return nil, utils.ErrTooManyAttempts
	case now.After(verification.ExpiresAt):
		return nil, utils.ErrCodeExpired
	}

	if !utils.CodesEqual(verification.Code, code) {
		if err := s.otps.IncrementAttempts(verification.ID); err != nil {
			log.Warn().Err(err).Str("verification_id", verification.ID).Msg("attempt increment failed")
		}
		return nil, utils.ErrCodeMismatch
	}

	if err := s.otps.MarkConsumed(verification.ID, now); err != nil {
		return nil, err
	}
	return verification, nil
}

// updatedFields lists which whitelisted fields a profile update touched.
func updatedFields(update *models.ProfileUpdate) []string {
	var fields []string
	if update.FirstName != nil {
		fields = append(fields, "first_name")
	}
	if update.LastName != nil {
		fields = append(fields, "last_name")
	}
	if update.Phone != nil {
		fields = append(fields, "phone")
	}
	if update.AvatarURL != nil {
		fields = append(fields, "avatar_url")
	}
	return fields
}

// mapUserErr converts a missing-row error into the user-facing not-found.
func mapUserErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrUserNotFound
	}
	return err
}
