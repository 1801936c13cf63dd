package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultJWTSecret  = "change-this-in-production"
	defaultHexKey     = "0000000000000000000000000000000000000000000000000000000000000000"
	StorageDriverDisk = "local"
	StorageDriverS3   = "s3"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Storage  StorageConfig
	NATS     NATSConfig
	Jobs     JobsConfig
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:3000"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string `env:"SERVER_PORT" envDefault:"8080"`
	Env            string `env:"SERVER_ENV" envDefault:"development"`
	CORSOrigin     string `env:"CORS_ORIGIN" envDefault:"*"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"`
	RunMigrations  bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// IsDevelopment reports whether debug details may be exposed.
func (c ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"crowdfund"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string        `env:"JWT_SECRET" envDefault:"change-this-in-production"`
	AccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" envDefault:"168h"`
}

// SecurityConfig holds session and verification secrets
type SecurityConfig struct {
	SessionEncryptionKey string        `env:"SESSION_ENCRYPTION_KEY" envDefault:"0000000000000000000000000000000000000000000000000000000000000000"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	VerificationSecret   string        `env:"EMAIL_VERIFICATION_SECRET" envDefault:"change-this-in-production"`
	VerificationTTL      time.Duration `env:"EMAIL_VERIFICATION_TTL" envDefault:"24h"`
}

// StorageConfig selects where uploaded documents live
type StorageConfig struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"local"`
	Dir         string `env:"STORAGE_DIR" envDefault:"./uploads"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// NATSConfig holds the event bus connection. An empty URL logs events instead.
type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"crowdfund"`
}

// JobsConfig holds background job intervals
type JobsConfig struct {
	CampaignCloseInterval time.Duration `env:"CAMPAIGN_CLOSE_INTERVAL" envDefault:"5m"`
	CampaignCloseBatch    int           `env:"CAMPAIGN_CLOSE_BATCH" envDefault:"100"`
}

var parseEnv = env.ParseAs[Config]

// Load reads configuration from the environment. Call godotenv first to pick up a .env file.
func Load() (*Config, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageDriverDisk:
	case StorageDriverS3:
		if c.Storage.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.JWT.AccessExpiry <= 0 || c.JWT.RefreshExpiry <= 0 {
		errs = append(errs, errors.New("JWT expiries must be positive"))
	}
	if c.Jobs.CampaignCloseInterval <= 0 {
		errs = append(errs, errors.New("CAMPAIGN_CLOSE_INTERVAL must be positive"))
	}
	if c.Server.Env == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set in production"))
		}
		if c.Security.VerificationSecret == defaultJWTSecret {
			errs = append(errs, errors.New("EMAIL_VERIFICATION_SECRET must be set in production"))
		}
		if c.Security.SessionEncryptionKey == defaultHexKey {
			errs = append(errs, errors.New("SESSION_ENCRYPTION_KEY must be set in production"))
		}
	}
	return errors.Join(errs...)
}
