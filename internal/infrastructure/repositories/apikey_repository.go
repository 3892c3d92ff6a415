package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/draftly/domain"
)

// APIKeyRepositoryImpl implements domain.APIKeyRepository using GORM
type APIKeyRepositoryImpl struct {
	db *gorm.DB
}

// DBAPIKey represents the database model for APIKey (with GORM tags)
type DBAPIKey struct {
	ID               uint       `gorm:"primaryKey"`
	UserID           uint       `gorm:"uniqueIndex:idx_user_provider"`
	Provider         string     `gorm:"uniqueIndex:idx_user_provider;size:64"`
	EncryptedPayload string     `gorm:"type:text"`
	IsValid          bool
	LastUsedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBAPIKey) TableName() string {
	return "api_keys"
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(db *gorm.DB) domain.APIKeyRepository {
	return &APIKeyRepositoryImpl{db: db}
}

// Create implements domain.APIKeyRepository
func (r *APIKeyRepositoryImpl) Create(ctx context.Context, key *domain.APIKey) error {
	dbKey := r.domainToDB(key)
	if err := r.db.WithContext(ctx).Create(dbKey).Error; err != nil {
		return err
	}
	key.ID = dbKey.ID
	return nil
}

// FindByUserAndProvider implements domain.APIKeyRepository
func (r *APIKeyRepositoryImpl) FindByUserAndProvider(ctx context.Context, userID uint, provider string) (*domain.APIKey, error) {
	var dbKey DBAPIKey
	err := r.db.WithContext(ctx).Where("user_id = ? AND provider = ?", userID, provider).First(&dbKey).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbKey), nil
}

// ListByUser implements domain.APIKeyRepository
func (r *APIKeyRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*domain.APIKey, error) {
	var dbKeys []DBAPIKey
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("provider").Find(&dbKeys).Error; err != nil {
		return nil, err
	}

	keys := make([]*domain.APIKey, 0, len(dbKeys))
	for i := range dbKeys {
		keys = append(keys, r.dbToDomain(&dbKeys[i]))
	}
	return keys, nil
}

// Delete implements domain.APIKeyRepository
func (r *APIKeyRepositoryImpl) Delete(ctx context.Context, userID uint, provider string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND provider = ?", userID, provider).Delete(&DBAPIKey{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAPIKeyNotFound
	}
	return nil
}

// TouchLastUsed implements domain.APIKeyRepository
func (r *APIKeyRepositoryImpl) TouchLastUsed(ctx context.Context, keyID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&DBAPIKey{}).Where("id = ?", keyID).Update("last_used_at", &now).Error
}

// domainToDB converts domain API key to database API key
func (r *APIKeyRepositoryImpl) domainToDB(key *domain.APIKey) *DBAPIKey {
	return &DBAPIKey{
		ID:               key.ID,
		UserID:           key.UserID,
		Provider:         key.Provider,
		EncryptedPayload: key.EncryptedPayload,
		IsValid:          key.IsValid,
		LastUsedAt:       key.LastUsedAt,
	}
}

// dbToDomain converts database API key to domain API key
func (r *APIKeyRepositoryImpl) dbToDomain(dbKey *DBAPIKey) *domain.APIKey {
	return &domain.APIKey{
		ID:               dbKey.ID,
		UserID:           dbKey.UserID,
		Provider:         dbKey.Provider,
		EncryptedPayload: dbKey.EncryptedPayload,
		IsValid:          dbKey.IsValid,
		LastUsedAt:       dbKey.LastUsedAt,
		CreatedAt:        dbKey.CreatedAt,
		UpdatedAt:        dbKey.UpdatedAt,
	}
}
