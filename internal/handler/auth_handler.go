package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Dhruv6019/BrivaMart/internal/middleware"
	"github.com/Dhruv6019/BrivaMart/internal/models"
	"github.com/Dhruv6019/BrivaMart/internal/service"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// AuthHandler exposes the signup, login, password reset, profile and session
// endpoints.
type AuthHandler struct {
	authService   *service.AuthService
	cartService   *service.CartService
	avatarService *service.AvatarService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, cartService *service.CartService, avatarService *service.AvatarService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		cartService:   cartService,
		avatarService: avatarService,
	}
}

// Register creates an account and issues a signup verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required"`
		FirstName string  `json:"firstName" binding:"required"`
		LastName  string  `json:"lastName" binding:"required"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	data := gin.H{
		"user":           result.User,
		"verificationId": result.VerificationID,
	}
	if result.OTPCode != "" {
		data["otpCode"] = result.OTPCode
	}
	utils.Success(c, http.StatusCreated, "Account created, verification required", data)
}

// VerifyOTP redeems a signup verification code.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		VerificationID string `json:"verificationId" binding:"required"`
		Code           string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.authService.VerifyOTP(req.VerificationID, req.Code)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Verification successful", gin.H{"user": user})
}

// Login authenticates credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.authService.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":    result.User,
		"session": result.Session,
		"token":   result.Token,
	})
}

// Logout invalidates the calling session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(middleware.UserID(c), middleware.SessionID(c)); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Logged out", nil)
}

// RequestPasswordReset issues a reset verification code for the email.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.authService.RequestPasswordReset(req.Email)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	data := gin.H{"verificationId": result.VerificationID}
	if result.OTPCode != "" {
		data["otpCode"] = result.OTPCode
	}
	utils.Success(c, http.StatusOK, "Password reset code issued", data)
}

// ResetPassword redeems a reset code and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		VerificationID string `json:"verificationId" binding:"required"`
		Code           string `json:"code" binding:"required"`
		NewPassword    string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.authService.ResetPassword(req.VerificationID, req.Code, req.NewPassword, c.ClientIP()); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Password updated, all sessions revoked", nil)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Profile retrieved", gin.H{"user": user})
}

// UpdateProfile applies a partial profile update.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), &req, c.ClientIP())
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Profile updated", gin.H{"user": user})
}

// UploadAvatar stores a new avatar image and saves its URL on the profile.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	if !h.avatarService.Enabled() {
		utils.Error(c, http.StatusServiceUnavailable, "AVATARS_DISABLED", "Avatar storage is not configured")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, service.MaxAvatarBytes+1))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to read upload")
		return
	}

	userID := middleware.UserID(c)
	url, err := h.avatarService.Upload(c.Request.Context(), userID, data, c.ContentType())
	if err != nil {
		utils.FromError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(userID, &models.ProfileUpdate{AvatarURL: &url}, c.ClientIP())
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Avatar updated", gin.H{"user": user})
}

// DeleteAccount removes the account, its sessions and its stored cart state.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.authService.DeleteAccount(userID, c.ClientIP()); err != nil {
		utils.FromError(c, err)
		return
	}
	if err := h.cartService.DropUser(c.Request.Context(), userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("cart state cleanup failed")
	}
	utils.Success(c, http.StatusOK, "Account deleted", nil)
}

// ListSessions returns the user's active sessions, newest first.
func (h *AuthHandler) ListSessions(c *gin.Context) {
	sessions, err := h.authService.ListSessions(middleware.UserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Sessions retrieved", gin.H{"sessions": sessions})
}

// RevokeSession deletes one of the user's sessions by id.
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	if err := h.authService.RevokeSession(middleware.UserID(c), c.Param("id"), c.ClientIP()); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Session revoked", nil)
}
