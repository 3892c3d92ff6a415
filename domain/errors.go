package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// OTP errors
var (
	ErrOTPExpired = errors.New("verification code has expired")
	ErrOTPInvalid = errors.New("invalid verification code")
	ErrOTPNotSet  = errors.New("no verification code pending")
)

// Reset token errors
var (
	ErrResetTokenInvalid = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Credential cipher errors
var (
	ErrCipherAuthentication   = errors.New("ciphertext authentication failed")
	ErrCipherPayloadMalformed = errors.New("malformed cipher payload")
)

// API key errors
var (
	ErrAPIKeyNotFound = errors.New("api key not found")
)

// Rate limiting errors
var (
	ErrRateLimited = errors.New("too many requests")
)
