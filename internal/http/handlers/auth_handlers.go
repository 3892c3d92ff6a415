package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/draftly/domain"
	"github.com/you/draftly/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest represents email verification request
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// ResendOTPRequest represents OTP resend request
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest represents password reset initiation request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents password reset completion request
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required,len=64"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func tokenResponse(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
		"user": gin.H{
			"id":             result.User.ID,
			"email":          result.User.Email,
			"email_verified": result.User.EmailVerified,
		},
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), middleware.ClientIdentifier(c))
	if err != nil {
		if err == domain.ErrUserAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	logAudit(domain.NewAuditEvent(domain.UserRegistrationEvent, result.User.ID).
		WithEmail(result.User.Email).
		WithClient(middleware.ClientIdentifier(c), c.Request.UserAgent()).
		WithSession(result.SessionID))

	c.JSON(http.StatusCreated, gin.H{"data": tokenResponse(result)})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), middleware.ClientIdentifier(c))
	if err != nil {
		logAudit(domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithEmail(req.Email).
			WithClient(middleware.ClientIdentifier(c), c.Request.UserAgent()).
			WithError(err))
		if err == domain.ErrInvalidCredentials {
			// Same response for unknown email and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	logAudit(domain.NewAuditEvent(domain.UserLoginEvent, result.User.ID).
		WithEmail(result.User.Email).
		WithClient(middleware.ClientIdentifier(c), c.Request.UserAgent()).
		WithSession(result.SessionID))

	c.JSON(http.StatusOK, gin.H{"data": tokenResponse(result)})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), middleware.ClientIdentifier(c))
	if err != nil {
		switch err {
		case domain.ErrTokenInvalid, domain.ErrTokenExpired, domain.ErrSessionNotFound, domain.ErrSessionExpired, domain.ErrUserNotFound:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokenResponse(result)})
}

// VerifyEmail handles email verification
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		logAudit(domain.NewAuditEvent(domain.EmailVerifyFailedEvent, 0).WithEmail(req.Email).WithError(err))
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrOTPExpired, domain.ErrOTPNotSet:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired, please request a new one"})
		case domain.ErrOTPInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email verification failed"})
		}
		return
	}

	logAudit(domain.NewAuditEvent(domain.EmailVerifiedEvent, 0).WithEmail(req.Email))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Email verified successfully"},
	})
}

// ResendOTP handles verification code resend
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Verification code sent"},
	})
}

// ForgotPassword handles password reset initiation
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	logAudit(domain.NewAuditEvent(domain.ResetRequestedEvent, 0).WithEmail(req.Email))

	// Same response whether or not the account exists
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "If that email is registered, a reset link has been sent"},
	})
}

// ResetPassword handles password reset completion
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch err {
		case domain.ErrResetTokenInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid reset token"})
		case domain.ErrResetTokenExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired, please request a new one"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		}
		return
	}

	logAudit(domain.NewAuditEvent(domain.ResetCompletedEvent, 0).
		WithClient(middleware.ClientIdentifier(c), c.Request.UserAgent()))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset successfully. Please log in again."},
	})
}

// Me handles getting user profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID.(uint))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"email_verified": user.EmailVerified,
			"created_at":     user.CreatedAt,
			"updated_at":     user.UpdatedAt,
		},
	})
}

// Logout handles user logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	userID, _ := c.Get("user_id")
	if id, ok := userID.(uint); ok {
		logAudit(domain.NewAuditEvent(domain.UserLogoutEvent, id).WithSession(sessionID.(string)))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully"},
	})
}
