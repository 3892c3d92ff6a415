package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/you/draftly/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes and reset tokens are
// pure values; storing them against the user record and enforcing the
// single-active-code policy is the caller's job.
type OTPServiceImpl struct {
	config OTPConfig
}

type OTPConfig struct {
	CodeTTL       time.Duration
	ResetTokenTTL time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{config: config}
}

// GenerateCode implements domain.OTPService. The code is uniform over
// [100000, 999999] and drawn from crypto/rand.
func (s *OTPServiceImpl) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100_000), nil
}

// GenerateResetToken implements domain.OTPService. 32 random bytes hex
// encoded; high enough entropy to serve directly as a unique lookup key.
func (s *OTPServiceImpl) GenerateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CodeExpiry implements domain.OTPService
func (s *OTPServiceImpl) CodeExpiry(now time.Time) time.Time {
	return now.Add(s.config.CodeTTL)
}

// ResetTokenExpiry implements domain.OTPService
func (s *OTPServiceImpl) ResetTokenExpiry(now time.Time) time.Time {
	return now.Add(s.config.ResetTokenTTL)
}

// IsExpired implements domain.OTPService. A nil expiry means nothing was
// ever issued, which counts as expired.
func (s *OTPServiceImpl) IsExpired(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return true
	}
	return expiresAt.Before(time.Now())
}

// VerifyCode implements domain.OTPService. Exact match after trimming
// whitespace on both sides; no case folding.
func (s *OTPServiceImpl) VerifyCode(provided, stored string) bool {
	return strings.TrimSpace(provided) == strings.TrimSpace(stored)
}
