// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AuthXMLPath  string
	AuthYAMLPath string
	DBPath       string
	// SecretKey is the AES-256 key for the encrypted record table. Nil when
	// HOSTAUTH_SECRET_KEY is unset, in which case the database is skipped.
	SecretKey  []byte
	EnvTokens  bool
	ListenAddr string
	LogLevel   slog.Level
}

// HasDatabase reports whether the encrypted SQLite record table should be
// consulted. Both a path and a key are required.
func (c *Config) HasDatabase() bool {
	return c.DBPath != "" && c.SecretKey != nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional:
// HOSTAUTH_AUTH_XML (auth.xml), HOSTAUTH_AUTH_YAML (unset), HOSTAUTH_DB_PATH (unset),
// HOSTAUTH_SECRET_KEY (64 hex chars), HOSTAUTH_ENV_TOKENS (true),
// HOSTAUTH_LISTEN_ADDR (127.0.0.1:8080), HOSTAUTH_LOG_LEVEL (info).
func Load() (*Config, error) {
	authXML := "auth.xml"
	if v, ok := os.LookupEnv("HOSTAUTH_AUTH_XML"); ok {
		authXML = v
	}

	envTokens := true
	if v, ok := os.LookupEnv("HOSTAUTH_ENV_TOKENS"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HOSTAUTH_ENV_TOKENS has invalid boolean %q: %w", v, err)
		}
		envTokens = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("HOSTAUTH_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	var secretKey []byte
	if v := os.Getenv("HOSTAUTH_SECRET_KEY"); v != "" {
		if len(v) != 64 {
			return nil, fmt.Errorf("HOSTAUTH_SECRET_KEY must be 64 hex characters, got %d", len(v))
		}
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("HOSTAUTH_SECRET_KEY is not valid hex: %w", err)
		}
		secretKey = key
	}

	logLevel := slog.LevelInfo
	if v := os.Getenv("HOSTAUTH_LOG_LEVEL"); v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf("HOSTAUTH_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		AuthXMLPath:  authXML,
		AuthYAMLPath: os.Getenv("HOSTAUTH_AUTH_YAML"),
		DBPath:       os.Getenv("HOSTAUTH_DB_PATH"),
		SecretKey:    secretKey,
		EnvTokens:    envTokens,
		ListenAddr:   listenAddr,
		LogLevel:     logLevel,
	}, nil
}
