package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dhruv6019/BrivaMart/internal/service"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// AuthMiddleware authenticates requests with a Bearer access token. The token
// is only accepted while its backing session row still exists and has not
// expired, so revocation takes effect immediately.
type AuthMiddleware struct {
	authService *service.AuthService
	rateLimiter *InvalidAuthRateLimiter
}

// NewAuthMiddleware constructs a new AuthMiddleware.
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware function that enforces authentication.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.handleAuthError(c, "Missing or invalid authorization header")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.Authenticate(token)
		if err != nil {
			m.handleAuthError(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)

		c.Next()
	}
}

func (m *AuthMiddleware) handleAuthError(c *gin.Context, message string) {
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
	c.Abort()
}

// UserID returns the authenticated user id from context.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// SessionID returns the authenticated session id from context.
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
