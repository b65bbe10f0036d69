package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/bundle"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/config"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Opens the interactive terminal data explorer",
	Long: `Loads the three dashboard bundles (falling back to the built-in sample
dataset when they cannot be loaded) and opens a searchable, sortable,
paginated table of per-plugin modernization status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		loader := bundle.NewLoader(cfg.DataSource(), logger)
		data := loader.Load(cmd.Context())

		program := tea.NewProgram(ui.NewModel(data), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("explorer failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
