// Package config provides environment-driven configuration for the tenant
// administration service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL     Secret
	Port            string
	ListenHost      string
	MetricsPort     string
	CORSOrigins     []string
	LogLevel        string
	JWTSecret       Secret
	TokenTTL        time.Duration
	AdminUsername   string
	AdminPassword   Secret
	DefaultTenantID string
	SeedDemo        bool
	AuditQueueSize  int
	ImportTimeout   time.Duration
	DBMaxConns      int32

	// EncryptionProvider is "none", "static" or "vault".
	EncryptionProvider string
	EncryptionKey      Secret
	VaultAddr          string
	VaultToken         Secret
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     Secret(envOrDefault("DATABASE_URL", "")),
		Port:            envOrDefault("PORT", "3030"),
		ListenHost:      envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:     envOrDefault("METRICS_PORT", "9091"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		JWTSecret:       Secret(envOrDefault("JWT_SECRET", "")),
		AdminUsername:   envOrDefault("ADMIN_USERNAME", "admin@system.com"),
		AdminPassword:   Secret(envOrDefault("ADMIN_PASSWORD", "")),
		DefaultTenantID: envOrDefault("DEFAULT_TENANT_ID", "tenant-1"),
		SeedDemo:        envOrDefault("SEED_DEMO", "false") == "true",

		EncryptionProvider: envOrDefault("ENCRYPTION_PROVIDER", "none"),
		EncryptionKey:      Secret(envOrDefault("ENCRYPTION_KEY", "")),
		VaultAddr:          envOrDefault("VAULT_ADDR", ""),
		VaultToken:         Secret(envOrDefault("VAULT_TOKEN", "")),
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(envOrDefault("TOKEN_TTL", "8h")); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL must be a duration such as 8h: %w", err)
	}

	if cfg.ImportTimeout, err = time.ParseDuration(envOrDefault("IMPORT_TIMEOUT", "2m")); err != nil {
		return nil, fmt.Errorf("IMPORT_TIMEOUT must be a duration such as 2m: %w", err)
	}

	queueSize, err := strconv.Atoi(envOrDefault("AUDIT_QUEUE_SIZE", "1000"))
	if err != nil || queueSize < 1 || queueSize > 100000 {
		return nil, fmt.Errorf("AUDIT_QUEUE_SIZE must be an integer between 1 and 100000")
	}
	cfg.AuditQueueSize = queueSize

	maxConns, err := strconv.ParseInt(envOrDefault("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil || maxConns < 1 || maxConns > 100 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer between 1 and 100")
	}
	cfg.DBMaxConns = int32(maxConns)

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

// Persistent reports whether a database is configured. Without one the
// store lives only in memory.
func (c *Config) Persistent() bool {
	return c.DatabaseURL.Value() != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
