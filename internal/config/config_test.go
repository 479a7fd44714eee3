package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test; envconfig treats a
// present-but-empty variable as an explicit value.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var managedKeys = []string{
	"PORT", "AI_PROVIDER", "AI_TEMPERATURE", "AI_TOP_P", "AI_TOP_K", "AI_MAX_TOKENS",
	"AI_TIMEOUT", "AI_MODEL", "AI_API_KEY", "AI_REGION", "SESSION_DRIVER", "SESSION_PATH",
	"CATALOG_FACILITIES_FILE", "CATALOG_PERSONAS_FILE", "LOG_DEBUG", "LOG_PRETTY",
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, managedKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 40, cfg.AI.TopK)
	assert.Equal(t, SessionDriverMemory, cfg.Session.Driver)
	assert.Equal(t, "data/sessions.db", cfg.Session.Path)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadIgnoresUnprefixedNames(t *testing.T) {
	unsetEnv(t, managedKeys...)
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("MODEL", "stray")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/sessions.db", cfg.Session.Path)
	assert.Empty(t, cfg.AI.Model)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadSQLiteAndLogging(t *testing.T) {
	unsetEnv(t, managedKeys...)
	t.Setenv("SESSION_DRIVER", "sqlite")
	t.Setenv("SESSION_PATH", "/tmp/hub.db")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionDriverSQLite, cfg.Session.Driver)
	assert.Equal(t, "/tmp/hub.db", cfg.Session.Path)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadServerAddrVariants(t *testing.T) {
	cases := map[string]string{
		"9090":           ":9090",
		":7000":          ":7000",
		"127.0.0.1:8081": "127.0.0.1:8081",
	}
	for port, want := range cases {
		t.Setenv("PORT", port)
		server, err := loadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, want, server.Addr)
	}

	t.Setenv("PORT", "80 80")
	_, err := loadServerConfig()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	unsetEnv(t, managedKeys...)

	t.Setenv("AI_PROVIDER", "mystery")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_TEMPERATURE", "not-a-number")
	_, err = Load()
	assert.Error(t, err)

	unsetEnv(t, "AI_TEMPERATURE")
	t.Setenv("SESSION_DRIVER", "redis")
	_, err = Load()
	assert.Error(t, err)
}

func TestAIConfigEnabled(t *testing.T) {
	assert.False(t, AIConfig{Provider: ProviderGemini, APIKey: "k"}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderArk, AccessKey: "a", SecretKey: "s", Model: "m"}.Enabled())
	assert.False(t, AIConfig{Provider: ProviderOpenAI, AccessKey: "a", SecretKey: "s", Model: "m"}.Enabled())
}
