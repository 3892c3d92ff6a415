package mocks

import (
	"context"

	"github.com/you/draftly/domain"
)

// MockAPIKeyRepository implements domain.APIKeyRepository interface for testing
type MockAPIKeyRepository struct {
	CreateFunc                func(ctx context.Context, key *domain.APIKey) error
	FindByUserAndProviderFunc func(ctx context.Context, userID uint, provider string) (*domain.APIKey, error)
	ListByUserFunc            func(ctx context.Context, userID uint) ([]*domain.APIKey, error)
	DeleteFunc                func(ctx context.Context, userID uint, provider string) error
	TouchLastUsedFunc         func(ctx context.Context, keyID uint) error
}

// NewMockAPIKeyRepository creates a new MockAPIKeyRepository with default behaviors
func NewMockAPIKeyRepository() *MockAPIKeyRepository {
	return &MockAPIKeyRepository{}
}

// Create creates a new API key
func (m *MockAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, key)
	}
	return nil
}

// FindByUserAndProvider finds a key by owner and provider
func (m *MockAPIKeyRepository) FindByUserAndProvider(ctx context.Context, userID uint, provider string) (*domain.APIKey, error) {
	if m.FindByUserAndProviderFunc != nil {
		return m.FindByUserAndProviderFunc(ctx, userID, provider)
	}
	return nil, domain.ErrAPIKeyNotFound
}

// ListByUser lists a user's keys
func (m *MockAPIKeyRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.APIKey, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// Delete deletes a key
func (m *MockAPIKeyRepository) Delete(ctx context.Context, userID uint, provider string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, provider)
	}
	return nil
}

// TouchLastUsed stamps a key's last-used time
func (m *MockAPIKeyRepository) TouchLastUsed(ctx context.Context, keyID uint) error {
	if m.TouchLastUsedFunc != nil {
		return m.TouchLastUsedFunc(ctx, keyID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.APIKeyRepository = (*MockAPIKeyRepository)(nil)
