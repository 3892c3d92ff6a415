package auth

import (
	"testing"
	"time"

	"github.com/you/draftly/domain"
)

const (
	testAccessSecret  = "access-secret-for-tests-access-secret-for-tests"
	testRefreshSecret = "refresh-secret-for-tests-refresh-secret-for-tests"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService(testAccessSecret, testRefreshSecret, "draftly-test", accessTTL, refreshTTL)
}

func TestJWTService_GenerateAndValidatePair(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokenPair(42, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if accessToken == refreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := svc.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" || claims.SessionID != "sess-1" {
		t.Errorf("unexpected access claims: %+v", claims)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("access token expiry must be after issued-at")
	}

	refreshClaims, err := svc.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if refreshClaims.UserID != 42 || refreshClaims.SessionID != "sess-1" {
		t.Errorf("unexpected refresh claims: %+v", refreshClaims)
	}
}

func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokenPair(1, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	// A refresh token must not pass access validation, and vice versa
	if _, err := svc.ValidateAccessToken(refreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := svc.ValidateRefreshToken(accessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService(-time.Minute, -time.Minute)

	accessToken, err := svc.GenerateAccessToken(1, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(accessToken); err == nil {
		t.Error("expired access token accepted")
	}
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	forger := NewJWTService("some-other-secret", "another-other-secret", "draftly-test", 15*time.Minute, 7*24*time.Hour)

	forged, err := forger.GenerateAccessToken(1, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(forged); err != domain.ErrTokenInvalid {
		t.Errorf("forged token: got error %v, want ErrTokenInvalid", err)
	}
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateAccessToken(tt.token); err == nil {
				t.Error("malformed token accepted")
			}
		})
	}
}

func TestJWTService_TokenUniqueness(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 7*24*time.Hour)

	first, err := svc.GenerateAccessToken(1, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	second, err := svc.GenerateAccessToken(1, "a@x.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	// jti makes identical payloads produce distinct tokens
	if first == second {
		t.Error("two tokens for the same payload are identical")
	}
}
