package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "https://graph.facebook.com", config.Graph.BaseURL)
	assert.Equal(t, "v20.0", config.Graph.APIVersion)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.True(t, config.BypassActive(), "no provider token means bypass mode")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "praeco.toml")
	content := `
environment = "production"

[logging]
level = "debug"

[graph]
api_version = "v21.0"
rate_limit = 5

[pipeboard]
api_token = "pb-secret"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "v21.0", config.Graph.APIVersion)
	assert.Equal(t, 5, config.Graph.RateLimit)
	assert.False(t, config.BypassActive())
}

func TestLoadFromFileMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "v20.0", config.Graph.APIVersion)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PIPEBOARD_API_TOKEN", "env-token")
	t.Setenv("META_GRAPH_API_VERSION", "v22.0")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "env-token", config.Pipeboard.APIToken)
	assert.Equal(t, "v22.0", config.Graph.APIVersion)
	assert.False(t, config.BypassActive())
}

func TestValidateRejectsBadLevel(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "loud"

	assert.Error(t, config.Validate())
}
