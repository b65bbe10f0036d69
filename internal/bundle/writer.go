// Package bundle persists and loads the three aggregate JSON documents that
// form the interchange boundary between the aggregation run and the
// presentation side.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
)

// File names of the three bundles.
const (
	PluginsFile = "plugins.json"
	RecipesFile = "recipes.json"
	SummaryFile = "summary.json"
)

// Write persists the three bundles under dir as pretty-printed JSON. Each
// file is written to a temporary file first and renamed into place, so a
// reader never observes a partial write.
func Write(dir string, data *domain.AppData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFile(dir, PluginsFile, data.Plugins); err != nil {
		return err
	}
	if err := writeFile(dir, RecipesFile, data.Recipes); err != nil {
		return err
	}
	return writeFile(dir, SummaryFile, data.Summary)
}

func writeFile(dir, name string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
