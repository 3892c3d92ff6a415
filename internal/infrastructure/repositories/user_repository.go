package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/draftly/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                  uint       `gorm:"primaryKey"`
	Email               string     `gorm:"uniqueIndex;size:255"`
	PasswordHash        string     `gorm:"column:password"`
	EmailVerified       bool       `gorm:"index"`
	OTPCode             *string    `gorm:"size:16"`
	OTPExpiresAt        *time.Time
	ResetToken          *string    `gorm:"uniqueIndex;size:64"`
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time  `gorm:"index"`
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByResetToken implements domain.UserRepository. The token column is
// unique, so the token alone is a sufficient lookup key.
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. Nullable columns (OTP code and
// reset token) are written explicitly so clearing them actually persists.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":                  user.Email,
			"password":               user.PasswordHash,
			"email_verified":         user.EmailVerified,
			"otp_code":               user.OTPCode,
			"otp_expires_at":         user.OTPExpiresAt,
			"reset_token":            user.ResetToken,
			"reset_token_expires_at": user.ResetTokenExpiresAt,
		}).Error
}

// MarkEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email_verified": true,
			"otp_code":       nil,
			"otp_expires_at": nil,
		}).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                  user.ID,
		Email:               user.Email,
		PasswordHash:        user.PasswordHash,
		EmailVerified:       user.EmailVerified,
		OTPCode:             user.OTPCode,
		OTPExpiresAt:        user.OTPExpiresAt,
		ResetToken:          user.ResetToken,
		ResetTokenExpiresAt: user.ResetTokenExpiresAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                  dbUser.ID,
		Email:               dbUser.Email,
		PasswordHash:        dbUser.PasswordHash,
		EmailVerified:       dbUser.EmailVerified,
		OTPCode:             dbUser.OTPCode,
		OTPExpiresAt:        dbUser.OTPExpiresAt,
		ResetToken:          dbUser.ResetToken,
		ResetTokenExpiresAt: dbUser.ResetTokenExpiresAt,
		CreatedAt:           dbUser.CreatedAt,
		UpdatedAt:           dbUser.UpdatedAt,
	}
}
