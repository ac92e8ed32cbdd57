package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4.1-mini", cfg.ChatModel)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("sk-test"),
		WithBaseURL("http://localhost:11434/v1/"),
		WithEmbeddingModel("embeddinggemma"),
		WithChatModel("qwen2.5:3b"),
		WithTemperature(0.7),
	)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost:11434/v1/", cfg.BaseURL)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
}

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("  sk-test \n"),
		WithBaseURL(" http://localhost:11434/v1/ "),
	)
	cfg.Normalize()

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.ErrorContains(t, cfg.Validate(), "APIKey")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"), WithEmbeddingModel(" "))
		assert.ErrorContains(t, cfg.Validate(), "EmbeddingModel")
	})

	t.Run("missing chat model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"), WithChatModel(""))
		assert.ErrorContains(t, cfg.Validate(), "ChatModel")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"), WithTemperature(3.5))
		assert.ErrorContains(t, cfg.Validate(), "Temperature")
	})
}
