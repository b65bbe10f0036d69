// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plugin-modernizer-stats",
	Short: "Aggregates and explores Jenkins plugin modernization telemetry.",
	Long: `plugin-modernizer-stats pulls per-plugin migration reports from the
metadata repository, aggregates them into the three dashboard bundles
(plugins, recipes, summary), and provides a terminal explorer and export
commands over the aggregated data.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML configuration file")
}

// newLogger builds the console logger shared by all commands. Logs go to
// standard error so export output on stdout stays clean.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
