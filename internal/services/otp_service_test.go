package services

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/you/draftly/domain"
)

func newTestOTPService() domain.OTPService {
	return NewOTPService(OTPConfig{
		CodeTTL:       10 * time.Minute,
		ResetTokenTTL: 30 * time.Minute,
	})
}

func TestOTPService_GenerateCodeRange(t *testing.T) {
	svc := newTestOTPService()
	pattern := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 10_000; i++ {
		code, err := svc.GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}

		if !pattern.MatchString(code) {
			t.Fatalf("malformed code %q", code)
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range [100000, 999999]", n)
		}
	}
}

func TestOTPService_GenerateResetToken(t *testing.T) {
	svc := newTestOTPService()
	pattern := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.GenerateResetToken()
		if err != nil {
			t.Fatalf("GenerateResetToken() error = %v", err)
		}

		if !pattern.MatchString(token) {
			t.Fatalf("malformed reset token %q", token)
		}

		if seen[token] {
			t.Fatalf("duplicate reset token %q", token)
		}
		seen[token] = true
	}
}

func TestOTPService_IsExpired(t *testing.T) {
	svc := newTestOTPService()

	past := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Second)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "nil means expired", expiresAt: nil, want: true},
		{name: "one second in the past", expiresAt: &past, want: true},
		{name: "one second in the future", expiresAt: &future, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.IsExpired(tt.expiresAt); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOTPService_Expiries(t *testing.T) {
	svc := newTestOTPService()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := svc.CodeExpiry(now); !got.Equal(now.Add(10 * time.Minute)) {
		t.Errorf("CodeExpiry() = %v, want %v", got, now.Add(10*time.Minute))
	}
	if got := svc.ResetTokenExpiry(now); !got.Equal(now.Add(30 * time.Minute)) {
		t.Errorf("ResetTokenExpiry() = %v, want %v", got, now.Add(30*time.Minute))
	}
}

func TestOTPService_VerifyCode(t *testing.T) {
	svc := newTestOTPService()

	tests := []struct {
		name     string
		provided string
		stored   string
		want     bool
	}{
		{name: "exact match", provided: "123456", stored: "123456", want: true},
		{name: "whitespace trimmed", provided: "  123456\n", stored: "123456", want: true},
		{name: "mismatch", provided: "123457", stored: "123456", want: false},
		{name: "empty provided", provided: "", stored: "123456", want: false},
		{name: "both empty", provided: "", stored: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.VerifyCode(tt.provided, tt.stored); got != tt.want {
				t.Errorf("VerifyCode(%q, %q) = %v, want %v", tt.provided, tt.stored, got, tt.want)
			}
		})
	}
}
