package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, f := range flags {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == name {
			return sf
		}
	}
	return nil
}

func TestAIFlagDefaults(t *testing.T) {
	flags := aiFlags()

	model := findStringFlag(flags, "embedding-model")
	require.NotNil(t, model)
	assert.Equal(t, "text-embedding-3-small", model.Value)
	assert.Contains(t, model.EnvVars, "EMBEDDINGS_MODEL_NAME")

	chat := findStringFlag(flags, "chat-model")
	require.NotNil(t, chat)
	assert.Equal(t, "gpt-4.1-mini", chat.Value)
	assert.Contains(t, chat.EnvVars, "OPENAI_MODEL")

	key := findStringFlag(flags, "openai-api-key")
	require.NotNil(t, key)
	assert.Empty(t, key.Value)
	assert.Contains(t, key.EnvVars, "OPENAI_API_KEY")
}

func TestAIConfigFromFlags(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range aiFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{
		"--openai-api-key", "sk-test",
		"--embedding-model", "text-embedding-3-large",
	}))
	c := cli.NewContext(cli.NewApp(), set, nil)

	cfg := aiConfigFromFlags(c)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4.1-mini", cfg.ChatModel)
	assert.NoError(t, cfg.Validate())
}

func TestSetupLoggerRejectsInvalidLevel(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "verbose", "")
	c := cli.NewContext(cli.NewApp(), set, nil)

	err := setupLogger(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSetupLoggerAcceptsLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		c := cli.NewContext(cli.NewApp(), set, nil)
		assert.NoError(t, setupLogger(c))
	}
}
