package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed export file names.
const (
	CSVFileName  = "plugin-modernizer-data.csv"
	JSONFileName = "plugin-modernizer-data.json"
)

// rowHeaders is the column order of exported flat rows; it matches the Row
// field order and json tags.
var rowHeaders = []string{
	"pluginName", "migrationCount", "successCount", "failCount",
	"latestMigration", "prsMerged", "prsOpen", "latestRecipe",
}

// RowsCSV serializes rows as CSV in the fixed column order.
func RowsCSV(rows []Row) []byte {
	records := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, map[string]any{
			"pluginName":      r.PluginName,
			"migrationCount":  r.MigrationCount,
			"successCount":    r.SuccessCount,
			"failCount":       r.FailCount,
			"latestMigration": r.LatestMigration,
			"prsMerged":       r.PRsMerged,
			"prsOpen":         r.PRsOpen,
			"latestRecipe":    r.LatestRecipe,
		})
	}
	return MarshalCSV(rowHeaders, records)
}

// RowsJSON serializes rows as pretty-printed JSON.
func RowsJSON(rows []Row) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

// MarshalCSV serializes records under the given header order. Fields
// containing a comma or quote are quoted with internal quotes doubled;
// object-valued fields are JSON-stringified before quoting. The rules differ
// from encoding/csv (which also quotes newlines and honors locale-style
// options), so they are spelled out here to keep exports byte-stable.
func MarshalCSV(headers []string, records []map[string]any) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, record := range records {
		b.WriteByte('\n')
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvField(record[h]))
		}
	}
	return []byte(b.String())
}

func csvField(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		s = ""
	case string:
		s = val
	case bool, int, int64, float64:
		s = fmt.Sprintf("%v", val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			s = fmt.Sprintf("%v", val)
		} else {
			s = string(encoded)
		}
	}
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
