package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", config.LLM.Mode)
	assert.Equal(t, 7, config.Research.MaxAgeDays)
	assert.Equal(t, 500, config.Research.MinContentLength)
	assert.Equal(t, time.Second, config.Crawler.RequestDelay)
	assert.Equal(t, 24*time.Hour, config.Chat.TempChatTTL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrutor.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[llm]
mode = "claude"
api_key = "sk-test"
timeout = "60s"

[research]
max_age_days = 3
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", config.LLM.Mode)
	assert.Equal(t, "sk-test", config.LLM.APIKey)
	assert.Equal(t, 3, config.Research.MaxAgeDays)
	// Untouched sections keep their defaults
	assert.Equal(t, 2, config.Research.ResultsPerQuery)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/scrutor.toml")
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad llm mode", "[llm]\nmode = \"openai\"\n"},
		{"zero max age", "[research]\nmax_age_days = -1\n"},
		{"bad timeout", "[llm]\nmode = \"gemini\"\ntimeout = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scrutor.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.toml), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCRUTOR_LLM_MODE", "claude")
	t.Setenv("SCRUTOR_LLM_API_KEY", "sk-env")
	t.Setenv("SCRUTOR_MAX_AGE_DAYS", "14")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "claude", config.LLM.Mode)
	assert.Equal(t, "sk-env", config.LLM.APIKey)
	assert.Equal(t, 14, config.Research.MaxAgeDays)
}
