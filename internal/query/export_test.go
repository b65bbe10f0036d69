package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCSV(t *testing.T) {
	headers := []string{"a", "b", "c"}

	t.Run("plain values", func(t *testing.T) {
		out := MarshalCSV(headers, []map[string]any{
			{"a": "x", "b": 3, "c": 1.5},
		})
		assert.Equal(t, "a,b,c\nx,3,1.5", string(out))
	})

	t.Run("fields with commas and quotes are quoted", func(t *testing.T) {
		out := MarshalCSV(headers, []map[string]any{
			{"a": "x,y", "b": `say "hi"`, "c": "plain"},
		})
		assert.Equal(t, `a,b,c`+"\n"+`"x,y","say ""hi""",plain`, string(out))
	})

	t.Run("object fields are JSON-stringified", func(t *testing.T) {
		out := MarshalCSV([]string{"a"}, []map[string]any{
			{"a": map[string]any{"k": "v"}},
		})
		assert.Equal(t, "a\n\"{\"\"k\"\":\"\"v\"\"}\"", string(out))
	})

	t.Run("missing keys become empty fields", func(t *testing.T) {
		out := MarshalCSV(headers, []map[string]any{{"a": "x"}})
		assert.Equal(t, "a,b,c\nx,,", string(out))
	})

	t.Run("no records yields only the header", func(t *testing.T) {
		out := MarshalCSV(headers, nil)
		assert.Equal(t, "a,b,c", string(out))
	})
}

func TestRowsCSV(t *testing.T) {
	rows := []Row{
		{
			PluginName:      "credentials",
			MigrationCount:  2,
			SuccessCount:    2,
			LatestMigration: "2025-08-15",
			PRsMerged:       1,
			PRsOpen:         1,
			LatestRecipe:    "Migrate To JUnit5",
		},
	}

	out := string(RowsCSV(rows))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "pluginName,migrationCount,successCount,failCount,latestMigration,prsMerged,prsOpen,latestRecipe", lines[0])
	assert.Equal(t, "credentials,2,2,0,2025-08-15,1,1,Migrate To JUnit5", lines[1])
}

func TestRowsJSON(t *testing.T) {
	rows := []Row{{PluginName: "credentials", MigrationCount: 2}}

	out, err := RowsJSON(rows)
	require.NoError(t, err)
	assert.True(t, json.Valid(out))
	assert.Contains(t, string(out), `"pluginName": "credentials"`)
	assert.Contains(t, string(out), `"migrationCount": 2`)

	var decoded []Row
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, rows, decoded)
}
