package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.AnonymizedTelemetry)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9100")
	t.Setenv("ANONYMIZED_TELEMETRY", "False")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9100", cfg.Addr())
	assert.False(t, cfg.AnonymizedTelemetry)
}

func TestConfigFromEnvTelemetryOn(t *testing.T) {
	t.Setenv("ANONYMIZED_TELEMETRY", "true")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.AnonymizedTelemetry)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Port: 0}
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}
