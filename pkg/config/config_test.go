package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(false, "")

	assert.False(t, cfg.Debug)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.APIKeys)
}

func TestFlagPortWins(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg := Load(true, "3000")
	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestEnvPortUsedWhenFlagEmpty(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg := Load(false, "")
	assert.Equal(t, "9000", cfg.Port)
}

func TestAPIKeysSplitAndTrimmed(t *testing.T) {
	t.Setenv("API_KEYS", "alpha, beta ,gamma")

	cfg := Load(false, "")
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.APIKeys)
}
