package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds settings for the HTTP service
type ServerConfig struct {
	Port               int
	DatabaseType       string // sqlite or postgres
	DatabaseURL        string
	RedisAddr          string // empty selects the in-process cache
	RulesFile          string
	RateLimitPerMinute int
	TrustProxy         bool // key rate limits on X-Forwarded-For
}

// DefaultServerConfig returns settings suitable for local use
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               8080,
		DatabaseType:       "sqlite",
		DatabaseURL:        "ngtax.db",
		RateLimitPerMinute: 30,
	}
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv fills settings that were not set explicitly (zero values or
// defaults, as reported by explicit) from environment variables.
func (c *ServerConfig) ApplyEnv(explicit func(name string) bool) error {
	if !explicit("port") {
		if v := os.Getenv("PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			c.Port = port
		}
	}
	if !explicit("db-type") {
		if v := os.Getenv("DATABASE_TYPE"); v != "" {
			c.DatabaseType = v
		}
	}
	if !explicit("db") {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if !explicit("redis") {
		if v := os.Getenv("REDIS_ADDR"); v != "" {
			c.RedisAddr = v
		}
	}
	if !explicit("rules") {
		if v := os.Getenv("RULES_FILE"); v != "" {
			c.RulesFile = v
		}
	}
	if !explicit("rate-limit") {
		if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New("invalid RATE_LIMIT_PER_MINUTE env variable")
			}
			c.RateLimitPerMinute = n
		}
	}
	if !explicit("trust-proxy") {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New("invalid TRUST_PROXY env variable")
			}
			c.TrustProxy = b
		}
	}
	return nil
}

// Validate checks the server settings
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	switch c.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database type must be 'sqlite' or 'postgres', got %q", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use --db or DATABASE_URL env)")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}
