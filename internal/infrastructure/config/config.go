package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port            string        `env:"PORT,             default=7070"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	LoadingDelay    time.Duration `env:"LOADING_DELAY,    default=5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth  AuthConfig
	Seed  SeedConfig
	Audit AuditConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	TokenBackend string        `env:"TOKEN_BACKEND, default=memory"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=0s"`
	UserBackend  string        `env:"USER_BACKEND,  default=memory"`

	// GenericErrors hides whether a failed login hit an unknown user or a
	// wrong password.
	GenericErrors bool `env:"AUTH_GENERIC_ERRORS, default=false"`
}

// SeedConfig is the account created at start-up.
type SeedConfig struct {
	Login    string `env:"SEED_LOGIN,    default=admin"`
	Password string `env:"SEED_PASSWORD, default=admin"`
	Name     string `env:"SEED_NAME,     default=Admin"`
	Avatar   string `env:"SEED_AVATAR,   default=https://i.pravatar.cc/300"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_api"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backends and negative durations.
func (c *Config) Validate() error {
	c.Auth.TokenBackend = strings.ToLower(strings.TrimSpace(c.Auth.TokenBackend))
	c.Auth.UserBackend = strings.ToLower(strings.TrimSpace(c.Auth.UserBackend))

	switch c.Auth.TokenBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unsupported TOKEN_BACKEND %q", c.Auth.TokenBackend)
	}
	switch c.Auth.UserBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: unsupported USER_BACKEND %q", c.Auth.UserBackend)
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("config: TOKEN_TTL must not be negative")
	}
	if c.LoadingDelay < 0 {
		return fmt.Errorf("config: LOADING_DELAY must not be negative")
	}
	if c.Port == "" {
		return fmt.Errorf("config: PORT is required")
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults
// (JSON logs, no swagger UI).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
