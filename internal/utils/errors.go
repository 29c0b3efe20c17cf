package utils

import "errors"

// Common application errors used across services.
var (
	ErrValidation          = errors.New("VALIDATION_ERROR")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrUnauthorized        = errors.New("UNAUTHORIZED")
	ErrAdminRequired       = errors.New("ADMIN_REQUIRED")
	ErrEmailTaken          = errors.New("EMAIL_TAKEN")
	ErrUserNotFound        = errors.New("USER_NOT_FOUND")
	ErrProductNotFound     = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound       = errors.New("ORDER_NOT_FOUND")
	ErrSessionNotFound     = errors.New("SESSION_NOT_FOUND")
	ErrVerificationInvalid = errors.New("VERIFICATION_INVALID")
	ErrCodeMismatch        = errors.New("CODE_MISMATCH")
	ErrCodeExpired         = errors.New("CODE_EXPIRED")
	ErrTooManyAttempts     = errors.New("TOO_MANY_ATTEMPTS")
	ErrCartEmpty           = errors.New("CART_EMPTY")
	ErrSearchUnavailable   = errors.New("SEARCH_UNAVAILABLE")
)
