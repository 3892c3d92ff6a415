package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/draftly/domain"
	"github.com/you/draftly/internal/config"
	"github.com/you/draftly/internal/infrastructure/auth"
	"github.com/you/draftly/internal/infrastructure/crypto"
	"github.com/you/draftly/internal/infrastructure/database"
	"github.com/you/draftly/internal/infrastructure/notifications"
	"github.com/you/draftly/internal/infrastructure/repositories"
	"github.com/you/draftly/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	APIKeyRepo  domain.APIKeyRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Cipher      domain.CredentialCipher
	NotifySvc   domain.NotificationService
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	APIKeySvc   domain.APIKeyService
	RateLimiter *services.RateLimiterImpl
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	container.DB = gdb

	container.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.APIKeyRepo = repositories.NewAPIKeyRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.AccessSecret,
		c.Config.RefreshSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.Cipher = crypto.NewCredentialCipher(c.Config.MasterSecret)
	c.NotifySvc = notifications.NewSMTPService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	c.OTPSvc = services.NewOTPService(services.OTPConfig{
		CodeTTL:       c.Config.OTPCodeTTL,
		ResetTokenTTL: c.Config.ResetTokenTTL,
	})
	c.RateLimiter = services.NewRateLimiter()

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.NotifySvc,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.APIKeySvc = services.NewAPIKeyService(c.APIKeyRepo, c.Cipher)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RateLimiter != nil {
		c.RateLimiter.Close()
	}

	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
