package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "hello")
	assert.Equal(t, "hello", envStr("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envStr("TEST_STR_MISSING", "fallback"))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, envInt("TEST_INT", 0))
	assert.Equal(t, 99, envInt("TEST_INT_MISSING", 99))
	t.Setenv("TEST_INT_BAD", "abc")
	assert.Equal(t, 7, envInt("TEST_INT_BAD", 7))

	t.Setenv("TEST_BOOL", "false")
	assert.False(t, envBool("TEST_BOOL", true))
	assert.True(t, envBool("TEST_BOOL_MISSING", true))
	t.Setenv("TEST_BOOL_BAD", "maybe")
	assert.True(t, envBool("TEST_BOOL_BAD", true))

	t.Setenv("TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, envFloat("TEST_FLOAT", 0), 1e-9)

	t.Setenv("TEST_DUR", "5s")
	assert.Equal(t, 5.0, envDuration("TEST_DUR", 0).Seconds())
	t.Setenv("TEST_DUR_BAD", "five-seconds")
	assert.Equal(t, 1.0, envDuration("TEST_DUR_BAD", 1e9).Seconds())

	t.Setenv("TEST_LIST", "a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, envList("TEST_LIST", nil))
	assert.Equal(t, []string{"*"}, envList("TEST_LIST_MISSING", []string{"*"}))
}

func TestLoadSucceedsWithDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./innov8.db", cfg.DatabasePath)
	assert.Equal(t, "auto", cfg.ValidationProvider)
	assert.Equal(t, 168.0, cfg.JWTExpiration.Hours())
}

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	t.Run("empty database path", func(t *testing.T) {
		cfg := base
		cfg.DatabasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base
		cfg.ValidationProvider = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("openai provider requires key", func(t *testing.T) {
		cfg := base
		cfg.ValidationProvider = "openai"
		cfg.OpenAIAPIKey = ""
		assert.Error(t, cfg.Validate())

		cfg.OpenAIAPIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base
		cfg.Port = 0
		assert.Error(t, cfg.Validate())
	})
}
