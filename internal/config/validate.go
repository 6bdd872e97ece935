package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	minJWTSecretLen     = 32
	minAdminPasswordLen = 8
	maxTokenTTL         = 7 * 24 * time.Hour
)

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateAuth(); err != nil {
		return err
	}

	if err := c.validateEncryption(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if c.ImportTimeout <= 0 {
		return fmt.Errorf("IMPORT_TIMEOUT must be positive")
	}

	return nil
}

// validateDatabase accepts an empty DATABASE_URL, which selects the
// in-memory store.
func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return nil
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if !isLoopback(dbHost) {
		sslmode := dbURL.Query().Get("sslmode")
		if sslmode == "disable" {
			return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
		}
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := parsePort("PORT", c.Port)
	if err != nil {
		return err
	}

	// Loopback for local deployments, 0.0.0.0/:: for containers where the
	// network boundary is enforced externally.
	validHosts := []string{"127.0.0.1", "::1", "localhost", "0.0.0.0", "::"}
	if !slices.Contains(validHosts, c.ListenHost) {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	metricsPort, err := parsePort("METRICS_PORT", c.MetricsPort)
	if err != nil {
		return err
	}

	if metricsPort == port {
		return fmt.Errorf("METRICS_PORT must differ from PORT")
	}

	return nil
}

func parsePort(name, v string) (int, error) {
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", name, err)
	}

	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535", name)
	}

	return port, nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateAuth() error {
	if len(c.JWTSecret.Value()) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}

	if c.TokenTTL <= 0 || c.TokenTTL > maxTokenTTL {
		return fmt.Errorf("TOKEN_TTL must be between 1s and %s", maxTokenTTL)
	}

	if strings.TrimSpace(c.AdminUsername) == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}

	if len(c.AdminPassword.Value()) < minAdminPasswordLen {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", minAdminPasswordLen)
	}

	if strings.TrimSpace(c.DefaultTenantID) == "" {
		return fmt.Errorf("DEFAULT_TENANT_ID must not be empty")
	}

	return nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// validateEncryption checks the at-rest encryption settings. Encryption
// only applies to the PostgreSQL store.
func (c *Config) validateEncryption() error {
	switch c.EncryptionProvider {
	case "none":
		return nil
	case "static":
		key := c.EncryptionKey.Value()
		if len(key) != 64 {
			return fmt.Errorf("ENCRYPTION_KEY must be 64 hex characters (32 bytes), got %d", len(key))
		}

		if _, err := hex.DecodeString(key); err != nil {
			return fmt.Errorf("ENCRYPTION_KEY must be hex: %w", err)
		}
	case "vault":
		if c.VaultToken.Value() == "" {
			return fmt.Errorf("VAULT_TOKEN is required when ENCRYPTION_PROVIDER=vault")
		}

		u, err := url.Parse(c.VaultAddr)
		if err != nil || u.Host == "" {
			return fmt.Errorf("VAULT_ADDR must be a URL such as https://vault:8200")
		}

		if u.Scheme != "https" && !isLoopback(u.Hostname()) {
			return fmt.Errorf("VAULT_ADDR must use https for non-local host %q", u.Hostname())
		}
	default:
		return fmt.Errorf("ENCRYPTION_PROVIDER must be none, static or vault, got %q", c.EncryptionProvider)
	}

	if !c.Persistent() {
		return fmt.Errorf("ENCRYPTION_PROVIDER=%s requires DATABASE_URL", c.EncryptionProvider)
	}

	return nil
}
