// Package config provides configuration management for CRM Relay.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like BACKEND_BASE_URL, SERVER_PORT)
// 3. Default values
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	bootstrapLogger     *zap.Logger
	bootstrapLoggerOnce sync.Once
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Mailbox  MailboxConfig  `mapstructure:"mailbox"`
	Log      LogConfig      `mapstructure:"log"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Security SecurityConfig `mapstructure:"security"`
	Health   HealthConfig   `mapstructure:"health"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port             int           `mapstructure:"port"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
}

// BackendConfig contains CRM backend connection settings.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// Client-credentials auth against the backend token endpoint.
	// Empty client_id disables outbound auth (trusted network deployments).
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`

	MaxIdleConns int `mapstructure:"max_idle_conns"`
}

// MailboxConfig contains mail-server connection settings.
// The mailbox integration is best-effort: when disabled, conversation
// checks resolve to the empty result instead of failing.
type MailboxConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// WorkerConfig contains worker pool sizing.
type WorkerConfig struct {
	GeneralPoolSize int `mapstructure:"general_pool_size"`
	BackendPoolSize int `mapstructure:"backend_pool_size"`

	// ComposeConcurrency bounds concurrent activity sub-enrichments per
	// composition call.
	ComposeConcurrency int `mapstructure:"compose_concurrency"`
}

// SecurityConfig contains security-related settings.
// The API signing key is auto-generated on first boot if missing.
type SecurityConfig struct {
	APISigningKey string        `mapstructure:"api_signing_key"`
	JWTIssuer     string        `mapstructure:"jwt_issuer"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

// HealthConfig contains collaborator health probe settings.
type HealthConfig struct {
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
}

// Load reads configuration from file, environment, and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/crm-relay")

	// Environment variable override, no prefix: BACKEND_BASE_URL,
	// SERVER_PORT, LOG_LEVEL. Nested keys map dots to underscores.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.ensureSecrets(); err != nil {
		return nil, fmt.Errorf("ensure secrets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must not be empty")
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url is not a valid URL: %w", err)
	}
	if c.Mailbox.Enabled && c.Mailbox.BaseURL == "" {
		return fmt.Errorf("mailbox.base_url must not be empty when mailbox is enabled")
	}
	if len(c.Security.APISigningKey) < 32 {
		return fmt.Errorf("security.api_signing_key must be at least 32 characters")
	}
	return nil
}

// ensureSecrets auto-generates missing secrets on first boot.
func (c *Config) ensureSecrets() error {
	if c.Security.APISigningKey == "" {
		key, err := generateSecureRandomHex(32)
		if err != nil {
			return fmt.Errorf("auto-generate api signing key: %w", err)
		}
		c.Security.APISigningKey = key
		logBootstrapWarn(
			"auto-generated api_signing_key; set SECURITY_API_SIGNING_KEY env var for persistence",
			zap.Int("length", len(key)),
		)
	}
	return nil
}

func logBootstrapWarn(msg string, fields ...zap.Field) {
	bootstrapLoggerOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

		l, err := cfg.Build()
		if err != nil {
			bootstrapLogger = zap.NewNop()
			return
		}
		bootstrapLogger = l
	})

	bootstrapLogger.Warn(msg, fields...)
}

// generateSecureRandomHex produces a hex-encoded string of n random bytes.
func generateSecureRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("crypto/rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.allow_credentials", true)

	// Backend
	v.SetDefault("backend.base_url", "http://localhost:9000")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.max_idle_conns", 50)

	// Mailbox
	v.SetDefault("mailbox.enabled", false)
	v.SetDefault("mailbox.timeout", "10s")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Worker pools
	v.SetDefault("worker.general_pool_size", 100)
	v.SetDefault("worker.backend_pool_size", 50)
	v.SetDefault("worker.compose_concurrency", 16)

	// Security
	v.SetDefault("security.jwt_issuer", "crm-relay")
	v.SetDefault("security.token_lifetime", 12*time.Hour)

	// Health
	v.SetDefault("health.probe_interval", "30s")
	v.SetDefault("health.probe_timeout", "5s")
}
