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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing default file yields defaults", func(t *testing.T) {
		// The default config file does not exist in the test working directory.
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("explicitly named missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("values from file override defaults", func(t *testing.T) {
		path := writeConfig(t, `
upstream:
  repository: acme/metadata
  branch: develop
fetch:
  batch_size: 5
  batch_delay_ms: 50
data:
  dir: out
  url: https://example.com/data
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "acme/metadata", cfg.Upstream.Repository)
		assert.Equal(t, "develop", cfg.Upstream.Branch)
		assert.Equal(t, 5, cfg.Fetch.BatchSize)
		assert.Equal(t, 50, cfg.Fetch.BatchDelayMS)
		assert.Equal(t, "out", cfg.Data.Dir)
		assert.Equal(t, "https://example.com/data", cfg.Data.URL)
	})

	t.Run("omitted fields fall back to defaults", func(t *testing.T) {
		path := writeConfig(t, "upstream:\n  branch: develop\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "develop", cfg.Upstream.Branch)
		assert.Equal(t, "jenkins-infra/metadata-plugin-modernizer", cfg.Upstream.Repository)
		assert.Equal(t, 10, cfg.Fetch.BatchSize)
		assert.Equal(t, 200, cfg.Fetch.BatchDelayMS)
		assert.Equal(t, "public/data", cfg.Data.Dir)
	})

	t.Run("non-positive batch size falls back to default", func(t *testing.T) {
		path := writeConfig(t, "fetch:\n  batch_size: 0\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Fetch.BatchSize)
	})

	t.Run("zero batch delay is kept", func(t *testing.T) {
		path := writeConfig(t, "fetch:\n  batch_size: 3\n  batch_delay_ms: 0\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Fetch.BatchDelayMS)
	})

	t.Run("malformed YAML is an error", func(t *testing.T) {
		path := writeConfig(t, "upstream: [not\n")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})
}

func TestConfigHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 200*time.Millisecond, cfg.BatchDelay())
	assert.Equal(t, "public/data", cfg.DataSource())

	cfg.Data.URL = "https://example.com/data"
	assert.Equal(t, "https://example.com/data", cfg.DataSource())
}
