package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
}

// SessionRepository defines session data access operations.
// DeleteByUser is the revocation primitive: it must remove every session
// synchronously so an in-flight refresh with an old token cannot succeed.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// APIKeyRepository defines encrypted API key data access operations
type APIKeyRepository interface {
	Create(ctx context.Context, key *APIKey) error
	FindByUserAndProvider(ctx context.Context, userID uint, provider string) (*APIKey, error)
	ListByUser(ctx context.Context, userID uint) ([]*APIKey, error)
	Delete(ctx context.Context, userID uint, provider string) error
	TouchLastUsed(ctx context.Context, keyID uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password, userAgent, ipAddress string) (*AuthResult, error)
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed token operations. Validation fails closed:
// any failure surfaces as an error and callers treat all errors uniformly
// as unauthenticated.
type TokenService interface {
	GenerateAccessToken(userID uint, email, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, email, sessionID string) (string, error)
	GenerateTokenPair(userID uint, email, sessionID string) (accessToken, refreshToken string, err error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// CredentialCipher defines authenticated encryption for secrets at rest
type CredentialCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(cipherPayload string) (string, error)
}

// OTPService defines one-time code and reset token primitives
type OTPService interface {
	GenerateCode() (string, error)
	GenerateResetToken() (string, error)
	CodeExpiry(now time.Time) time.Time
	ResetTokenExpiry(now time.Time) time.Time
	IsExpired(expiresAt *time.Time) bool
	VerifyCode(provided, stored string) bool
}

// RateLimiter defines fixed-window request throttling
type RateLimiter interface {
	Check(key string, policy RateLimitPolicy) *RateLimitResult
}

// APIKeyService defines encrypted API key business logic
type APIKeyService interface {
	Add(ctx context.Context, userID uint, provider, plaintextKey string) (*APIKey, error)
	List(ctx context.Context, userID uint) ([]*APIKey, error)
	Reveal(ctx context.Context, userID uint, provider string) (string, error)
	Delete(ctx context.Context, userID uint, provider string) error
}

// NotificationService defines notification operations
type NotificationService interface {
	SendEmail(to, subject, body string) error
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
