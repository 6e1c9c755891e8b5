package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadHTTPDefaults(t *testing.T) {
	c, err := LoadHTTP("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", c.Bind)
	assert.Equal(t, "info", c.Logging.Level)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, "https://hotels.cloudbeds.com/api/v1.3", c.Cloudbeds.APIBase)
	assert.Zero(t, c.Cloudbeds.Timeout)
	assert.Equal(t, StorageNone, c.Storage.Type)
	assert.EqualValues(t, 100, c.RecordProbability)
	assert.Same(t, HTTP, c)
}

func TestLoadHTTPFile(t *testing.T) {
	path := writeConfig(t, `
bind: 127.0.0.1:3333
metrics:
  enabled: false
cloudbeds:
  api_key: from-file
  api_base: http://localhost:8080
  timeout: 15s
storage:
  type: stdout
record_probability: 25
`)

	c, err := LoadHTTP(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3333", c.Bind)
	assert.False(t, c.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9001", c.Metrics.Bind)
	assert.Equal(t, "from-file", c.Cloudbeds.APIKey)
	assert.Equal(t, "http://localhost:8080", c.Cloudbeds.APIBase)
	assert.Equal(t, 15*time.Second, c.Cloudbeds.Timeout)
	assert.Equal(t, StorageStdout, c.Storage.Type)
	assert.EqualValues(t, 25, c.RecordProbability)
}

func TestLoadHTTPEnvironment(t *testing.T) {
	t.Setenv("CLOUDBEDS_API_KEY", "env-key")
	t.Setenv("CLOUDBEDS_ACCESS_TOKEN", "env-token")
	t.Setenv("CLOUDBEDS_API_BASE", "http://upstream.local")
	t.Setenv("PROKSI_BIND", "127.0.0.1:7000")
	t.Setenv("PROKSI_METRICS__BIND", "127.0.0.1:7001")

	path := writeConfig(t, "cloudbeds:\n  api_key: from-file\n")

	c, err := LoadHTTP(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", c.Cloudbeds.APIKey)
	assert.Equal(t, "env-token", c.Cloudbeds.AccessToken)
	assert.Equal(t, "http://upstream.local", c.Cloudbeds.APIBase)
	assert.Equal(t, "127.0.0.1:7000", c.Bind)
	assert.Equal(t, "127.0.0.1:7001", c.Metrics.Bind)
}

func TestLoadHTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "probability out of range", content: "record_probability: 101\n"},
		{name: "unknown storage", content: "storage:\n  type: s3\n"},
		{name: "broken yaml", content: "bind: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHTTP(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadHTTP(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
