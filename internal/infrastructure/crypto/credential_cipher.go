package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/you/draftly/domain"
)

// Payload layout: salt || iv || tag || ciphertext, base64-encoded.
const (
	saltLen = 64
	ivLen   = 16
	tagLen  = 16

	kdfIterations = 100_000
	keyLen        = 32
)

// CredentialCipherImpl implements domain.CredentialCipher using
// PBKDF2-SHA512 key derivation and AES-256-GCM.
type CredentialCipherImpl struct {
	masterSecret []byte
}

// NewCredentialCipher creates a new credential cipher bound to a master secret
func NewCredentialCipher(masterSecret string) domain.CredentialCipher {
	return &CredentialCipherImpl{masterSecret: []byte(masterSecret)}
}

// Encrypt implements domain.CredentialCipher. Every call derives a fresh
// key from a new random salt, so two encryptions of the same plaintext
// under the same master secret never share key material.
func (c *CredentialCipherImpl) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	gcm, err := c.newGCM(salt)
	if err != nil {
		return "", err
	}

	// Seal appends ciphertext || tag; the payload layout wants tag first.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagLen]
	tag := sealed[len(sealed)-tagLen:]

	payload := make([]byte, 0, saltLen+ivLen+tagLen+len(ciphertext))
	payload = append(payload, salt...)
	payload = append(payload, iv...)
	payload = append(payload, tag...)
	payload = append(payload, ciphertext...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt implements domain.CredentialCipher. It fails closed: a payload
// that does not decode, does not fit the fixed layout, or does not pass
// tag verification yields an error and never partial plaintext.
func (c *CredentialCipherImpl) Decrypt(cipherPayload string) (string, error) {
	payload, err := base64.StdEncoding.DecodeString(cipherPayload)
	if err != nil {
		return "", domain.ErrCipherPayloadMalformed
	}

	if len(payload) < saltLen+ivLen+tagLen {
		return "", domain.ErrCipherPayloadMalformed
	}

	salt := payload[:saltLen]
	iv := payload[saltLen : saltLen+ivLen]
	tag := payload[saltLen+ivLen : saltLen+ivLen+tagLen]
	ciphertext := payload[saltLen+ivLen+tagLen:]

	gcm, err := c.newGCM(salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+tagLen)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", domain.ErrCipherAuthentication
	}

	return string(plaintext), nil
}

func (c *CredentialCipherImpl) newGCM(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.masterSecret, salt, kdfIterations, keyLen, sha512.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}

	return gcm, nil
}
