package config

import (
	"errors"
	"fmt"
	"time"

	pkgdb "github.com/ahwlsqja/carbon-nft-registry/pkg/db"
	pkgredis "github.com/ahwlsqja/carbon-nft-registry/pkg/redis"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Events   EventsConfig
}

type ServerConfig struct {
	Host               string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port               int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	Environment        string        `envconfig:"ENVIRONMENT" default:"development"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"app"`
	Password        string        `envconfig:"DB_PASSWORD" default:"apppassword"`
	Name            string        `envconfig:"DB_NAME" default:"carbon_nft"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// Pool returns the connection settings for pkg/db
func (d DatabaseConfig) Pool() pkgdb.Config {
	return pkgdb.Config{
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		Name:            d.Name,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
	}
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Client returns the connection settings for pkg/redis
func (r RedisConfig) Client() pkgredis.Config {
	return pkgredis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
	}
}

// AuthConfig holds wallet login settings.
// SessionSecret must never be logged.
type AuthConfig struct {
	SessionSecret string        `envconfig:"SESSION_JWT_SECRET" required:"true"`
	NonceTTL      time.Duration `envconfig:"NONCE_TTL" default:"5m"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"1h"`
}

type EventsConfig struct {
	Enabled bool `envconfig:"EVENTS_ENABLED" default:"true"`
}

// Validation errors
var (
	ErrWeakSessionSecret = fmt.Errorf("SESSION_JWT_SECRET must be at least %d bytes", session.MinSecretLen)
	ErrInvalidNonceTTL   = errors.New("NONCE_TTL must be positive")
	ErrInvalidSessionTTL = errors.New("SESSION_TTL must be positive")
)

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < session.MinSecretLen {
		return ErrWeakSessionSecret
	}
	if c.Auth.NonceTTL <= 0 {
		return ErrInvalidNonceTTL
	}
	if c.Auth.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	return nil
}
