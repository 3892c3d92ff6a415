package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/you/draftly/domain"
)

const testMasterSecret = "test-master-secret-test-master-secret-test-master-secret-1234567890"

func TestCredentialCipher_RoundTrip(t *testing.T) {
	cipher := NewCredentialCipher(testMasterSecret)

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "typical api key", plaintext: "sk-proj-abcdef1234567890abcdef1234567890"},
		{name: "empty string", plaintext: ""},
		{name: "unicode", plaintext: "ключ-клавиша-🔑"},
		{name: "long value", plaintext: strings.Repeat("x", 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := cipher.Encrypt(tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			decrypted, err := cipher.Decrypt(payload)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if decrypted != tt.plaintext {
				t.Errorf("round trip mismatch: got %q, want %q", decrypted, tt.plaintext)
			}
		})
	}
}

func TestCredentialCipher_EncryptIsSalted(t *testing.T) {
	cipher := NewCredentialCipher(testMasterSecret)

	first, err := cipher.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	second, err := cipher.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if first == second {
		t.Error("two encryptions of the same plaintext produced identical payloads")
	}
}

func TestCredentialCipher_TamperDetection(t *testing.T) {
	cipher := NewCredentialCipher(testMasterSecret)

	payload, err := cipher.Encrypt("secret value")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	// Flip one byte in each region of the layout: salt, iv, tag, ciphertext
	for _, offset := range []int{0, saltLen, saltLen + ivLen, saltLen + ivLen + tagLen} {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[offset] ^= 0x01

		_, err := cipher.Decrypt(base64.StdEncoding.EncodeToString(tampered))
		if err != domain.ErrCipherAuthentication {
			t.Errorf("tampering at offset %d: got error %v, want ErrCipherAuthentication", offset, err)
		}
	}
}

func TestCredentialCipher_WrongMasterSecret(t *testing.T) {
	cipher := NewCredentialCipher(testMasterSecret)
	other := NewCredentialCipher(testMasterSecret + "-different")

	payload, err := cipher.Encrypt("secret value")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := other.Decrypt(payload); err != domain.ErrCipherAuthentication {
		t.Errorf("decrypt with wrong secret: got error %v, want ErrCipherAuthentication", err)
	}
}

func TestCredentialCipher_MalformedPayload(t *testing.T) {
	cipher := NewCredentialCipher(testMasterSecret)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not base64", payload: "not-valid-base64!!!"},
		{name: "empty", payload: ""},
		{name: "too short for layout", payload: base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cipher.Decrypt(tt.payload); err != domain.ErrCipherPayloadMalformed {
				t.Errorf("Decrypt() error = %v, want ErrCipherPayloadMalformed", err)
			}
		})
	}
}
