package bundle

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/sample"
)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	data := sample.Data()

	err := Write(dir, data)
	require.NoError(t, err)

	for _, name := range []string{PluginsFile, RecipesFile, SummaryFile} {
		payload, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, json.Valid(payload), "%s must contain valid JSON", name)
		assert.Contains(t, string(payload), "\n  ", "%s must be indented", name)
	}

	var plugins []domain.PluginReport
	payload, err := os.ReadFile(filepath.Join(dir, PluginsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &plugins))
	assert.Len(t, plugins, len(data.Plugins))

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"), "leftover temp file %s", entry.Name())
	}
	assert.Len(t, entries, 3)
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := sample.Data()
	require.NoError(t, Write(dir, data))

	loader := NewLoader(dir, zerolog.Nop())
	loaded := loader.Load(context.Background())
	assert.Equal(t, data, loaded)
}
