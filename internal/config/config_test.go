package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every HOSTAUTH_ env var that Load() reads.
var allConfigKeys = []string{
	"HOSTAUTH_AUTH_XML",
	"HOSTAUTH_AUTH_YAML",
	"HOSTAUTH_DB_PATH",
	"HOSTAUTH_SECRET_KEY",
	"HOSTAUTH_ENV_TOKENS",
	"HOSTAUTH_LISTEN_ADDR",
	"HOSTAUTH_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all HOSTAUTH_ env vars so tests don't
// inherit values from the host environment.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_AUTH_XML", "/etc/hostauth/auth.xml")
	t.Setenv("HOSTAUTH_AUTH_YAML", "/etc/hostauth/auth.yaml")
	t.Setenv("HOSTAUTH_DB_PATH", "/tmp/test.db")
	t.Setenv("HOSTAUTH_ENV_TOKENS", "false")
	t.Setenv("HOSTAUTH_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("HOSTAUTH_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/etc/hostauth/auth.xml", cfg.AuthXMLPath)
	assert.Equal(t, "/etc/hostauth/auth.yaml", cfg.AuthYAMLPath)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.False(t, cfg.EnvTokens)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "auth.xml", cfg.AuthXMLPath)
	assert.Equal(t, "", cfg.AuthYAMLPath)
	assert.Equal(t, "", cfg.DBPath)
	assert.True(t, cfg.EnvTokens)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.HasDatabase())
}

func TestLoad_InvalidEnvTokens(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_ENV_TOKENS", "sometimes")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOSTAUTH_ENV_TOKENS")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_LOG_LEVEL", "chatty")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOSTAUTH_LOG_LEVEL")
}

func TestLoad_SecretKey_Absent(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_DB_PATH", "/tmp/test.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Nil(t, cfg.SecretKey)
	assert.False(t, cfg.HasDatabase(), "a database without a key is not consulted")
}

func TestLoad_SecretKey_Valid(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_DB_PATH", "/tmp/test.db")
	// 64 hex chars = 32 bytes
	t.Setenv("HOSTAUTH_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Len(t, cfg.SecretKey, 32)
	assert.True(t, cfg.HasDatabase())
}

func TestLoad_SecretKey_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("HOSTAUTH_SECRET_KEY", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOSTAUTH_SECRET_KEY")
}

func TestLoad_SecretKey_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	// 64 chars but not valid hex
	t.Setenv("HOSTAUTH_SECRET_KEY", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOSTAUTH_SECRET_KEY")
}
