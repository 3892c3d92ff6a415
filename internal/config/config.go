package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type EncryptionConfig struct {
	MasterSecret string `yaml:"master_secret"`
}

type OTPConfig struct {
	CodeTTL       string `yaml:"code_ttl"`
	ResetTokenTTL string `yaml:"reset_token_ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Encryption EncryptionConfig `yaml:"encryption"`
	OTP        OTPConfig        `yaml:"otp"`
	SMTP       SMTPConfig       `yaml:"smtp"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	AccessSecret     string
	RefreshSecret    string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	MasterSecret     string
	OTPCodeTTL       time.Duration
	ResetTokenTTL    time.Duration
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
}

// Secrets below the minimum are a startup failure, not a warning. A service
// that falls back to a default signing or encryption key is worse than one
// that refuses to start.
const minMasterSecretLen = 64

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(defaultString(configFile.JWT.AccessTTL, "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(defaultString(configFile.JWT.RefreshTTL, "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(defaultString(configFile.OTP.CodeTTL, "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP code TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(defaultString(configFile.OTP.ResetTokenTTL, "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	cfg := &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,
		AccessSecret:  env("ACCESS_TOKEN_SECRET", configFile.JWT.AccessSecret),
		RefreshSecret: env("REFRESH_TOKEN_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:     configFile.JWT.Issuer,
		AccessTTL:     accTTL,
		RefreshTTL:    refTTL,
		MasterSecret:  env("ENCRYPTION_MASTER_SECRET", configFile.Encryption.MasterSecret),
		OTPCodeTTL:    codeTTL,
		ResetTokenTTL: resetTTL,
		SMTPHost:      env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:      configFile.SMTP.Port,
		SMTPUsername:  env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:  env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:      configFile.SMTP.From,
	}

	if err := cfg.validateSecrets(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateSecrets() error {
	if c.AccessSecret == "" {
		return errors.New("access token secret is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("refresh token secret is required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("access and refresh token secrets must be independent")
	}
	if len(c.MasterSecret) < minMasterSecretLen {
		return fmt.Errorf("encryption master secret must be at least %d characters", minMasterSecretLen)
	}
	return nil
}

func defaultString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
