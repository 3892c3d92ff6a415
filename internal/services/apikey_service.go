package services

import (
	"context"
	"fmt"

	"github.com/you/draftly/domain"
)

// APIKeyServiceImpl implements domain.APIKeyService
type APIKeyServiceImpl struct {
	keyRepo domain.APIKeyRepository
	cipher  domain.CredentialCipher
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(keyRepo domain.APIKeyRepository, cipher domain.CredentialCipher) domain.APIKeyService {
	return &APIKeyServiceImpl{
		keyRepo: keyRepo,
		cipher:  cipher,
	}
}

// Add implements domain.APIKeyService. A key for an existing
// (user, provider) pair is replaced by delete-then-recreate; cipher
// payloads are never updated in place.
func (s *APIKeyServiceImpl) Add(ctx context.Context, userID uint, provider, plaintextKey string) (*domain.APIKey, error) {
	encrypted, err := s.cipher.Encrypt(plaintextKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt api key: %w", err)
	}

	if _, err := s.keyRepo.FindByUserAndProvider(ctx, userID, provider); err == nil {
		if err := s.keyRepo.Delete(ctx, userID, provider); err != nil {
			return nil, fmt.Errorf("failed to replace api key: %w", err)
		}
	}

	key := &domain.APIKey{
		UserID:           userID,
		Provider:         provider,
		EncryptedPayload: encrypted,
		IsValid:          true,
	}

	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to store api key: %w", err)
	}

	return key, nil
}

// List implements domain.APIKeyService. Callers get metadata only; the
// encrypted payload stays out of list responses.
func (s *APIKeyServiceImpl) List(ctx context.Context, userID uint) ([]*domain.APIKey, error) {
	keys, err := s.keyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		key.EncryptedPayload = ""
	}
	return keys, nil
}

// Reveal implements domain.APIKeyService. Decryption fails closed: a
// tampered payload or wrong master secret yields an error, never garbage.
func (s *APIKeyServiceImpl) Reveal(ctx context.Context, userID uint, provider string) (string, error) {
	key, err := s.keyRepo.FindByUserAndProvider(ctx, userID, provider)
	if err != nil {
		return "", err
	}

	plaintext, err := s.cipher.Decrypt(key.EncryptedPayload)
	if err != nil {
		return "", err
	}

	if err := s.keyRepo.TouchLastUsed(ctx, key.ID); err != nil {
		return "", fmt.Errorf("failed to record key usage: %w", err)
	}

	return plaintext, nil
}

// Delete implements domain.APIKeyService
func (s *APIKeyServiceImpl) Delete(ctx context.Context, userID uint, provider string) error {
	return s.keyRepo.Delete(ctx, userID, provider)
}
