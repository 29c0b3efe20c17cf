package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope. Every operation
// returns this shape; callers branch on Success rather than on transport
// errors.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Message: message,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
		},
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// FromError maps a service error onto the envelope using the shared error
// taxonomy. Unknown errors are normalized to a generic internal message so
// transport details never leak to clients.
func FromError(c *gin.Context, err error) {
	var status int
	var code, message string

	switch {
	case errors.Is(err, ErrValidation):
		status, code, message = http.StatusBadRequest, "VALIDATION_ERROR", "Missing or invalid request fields"
	case errors.Is(err, ErrInvalidCredentials):
		status, code, message = http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"
	case errors.Is(err, ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"
	case errors.Is(err, ErrAdminRequired):
		status, code, message = http.StatusForbidden, "ADMIN_REQUIRED", "Admin access required"
	case errors.Is(err, ErrEmailTaken):
		status, code, message = http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists"
	case errors.Is(err, ErrUserNotFound):
		status, code, message = http.StatusNotFound, "USER_NOT_FOUND", "User not found"
	case errors.Is(err, ErrProductNotFound):
		status, code, message = http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"
	case errors.Is(err, ErrOrderNotFound):
		status, code, message = http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found"
	case errors.Is(err, ErrSessionNotFound):
		status, code, message = http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found"
	case errors.Is(err, ErrVerificationInvalid):
		status, code, message = http.StatusBadRequest, "VERIFICATION_INVALID", "Verification not found or already used"
	case errors.Is(err, ErrCodeMismatch):
		status, code, message = http.StatusBadRequest, "CODE_MISMATCH", "Incorrect verification code"
	case errors.Is(err, ErrCodeExpired):
		status, code, message = http.StatusBadRequest, "CODE_EXPIRED", "Verification code has expired"
	case errors.Is(err, ErrTooManyAttempts):
		status, code, message = http.StatusBadRequest, "TOO_MANY_ATTEMPTS", "Too many failed attempts"
	case errors.Is(err, ErrCartEmpty):
		status, code, message = http.StatusBadRequest, "CART_EMPTY", "Cart is empty"
	case errors.Is(err, ErrSearchUnavailable):
		status, code, message = http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "Product search is not configured"
	default:
		status, code, message = http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"
	}

	Error(c, status, code, message)
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}
