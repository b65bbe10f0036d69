package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/bundle"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/config"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the filtered plugin table as CSV and JSON files",
	Long: `Loads the dashboard bundles, applies the given filters and sort order,
and writes the resulting row set to ` + query.CSVFileName + ` and
` + query.JSONFileName + ` in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		pr, _ := cmd.Flags().GetString("pr")
		sortKey, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")

		loader := bundle.NewLoader(cfg.DataSource(), logger)
		data := loader.Load(cmd.Context())

		rows := query.Filter(query.Rows(data), query.Filters{
			Search: search,
			Status: query.StatusFilter(status),
			PR:     query.PRFilter(pr),
		})
		rows = query.Sort(rows, query.SortKey(sortKey), desc)

		if err := os.WriteFile(query.CSVFileName, query.RowsCSV(rows), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", query.CSVFileName, err)
		}
		payload, err := query.RowsJSON(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		if err := os.WriteFile(query.JSONFileName, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", query.JSONFileName, err)
		}

		logger.Info().Int("rows", len(rows)).
			Str("csv", query.CSVFileName).
			Str("json", query.JSONFileName).
			Msg("export complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("search", "", "Substring filter on plugin name or latest recipe")
	exportCmd.Flags().String("status", "all", "Migration status filter: all, success, fail")
	exportCmd.Flags().String("pr", "all", "Pull request filter: all, open, merged")
	exportCmd.Flags().String("sort", "pluginName", "Row field to sort by")
	exportCmd.Flags().Bool("desc", false, "Sort descending")
}
