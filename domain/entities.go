package domain

import "time"

// User represents an account in the system
type User struct {
	ID                  uint
	Email               string
	PasswordHash        string `gorm:"column:password"`
	EmailVerified       bool
	OTPCode             *string
	OTPExpiresAt        *time.Time
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session is the server-side record backing a refresh token.
// Deleting the record revokes the refresh token before its signed expiry.
type Session struct {
	ID        string
	UserID    uint
	UserAgent string
	IPAddress string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// APIKey represents an encrypted third-party provider key owned by a user.
// EncryptedPayload is the only form the key is ever persisted in.
type APIKey struct {
	ID               uint
	UserID           uint
	Provider         string
	EncryptedPayload string
	IsValid          bool
	LastUsedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RateLimitPolicy configures a fixed-window limiter bucket
type RateLimitPolicy struct {
	Window      time.Duration
	MaxRequests int
}

// RateLimitResult represents a single rate-limit decision
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}
