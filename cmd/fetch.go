package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/bundle"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/config"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/gateway"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches migration reports and writes the dashboard bundles",
	Long: `Discovers every plugin with migration data in the upstream metadata
repository, fetches all plugin and recipe reports in rate-limited batches,
derives the ecosystem summary, and writes plugins.json, recipes.json and
summary.json to the data directory. Individual report failures are logged
and skipped; discovery or write failures abort the run with no output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		// Optional: anonymous requests work, just with a lower rate limit.
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			logger.Warn().Msg("GITHUB_TOKEN is not set, using anonymous rate limits")
		}

		fetcher, err := gateway.NewGitHubGateway(cfg.Upstream.Repository, cfg.Upstream.Branch, token, logger)
		if err != nil {
			return fmt.Errorf("failed to create gateway: %w", err)
		}

		aggregator := usecase.NewAggregator(fetcher, cfg.Fetch.BatchSize, cfg.BatchDelay(), logger)
		data, err := aggregator.Run(cmd.Context())
		if err != nil {
			return err
		}

		if err := bundle.Write(cfg.Data.Dir, data); err != nil {
			return err
		}
		logger.Info().Str("dir", cfg.Data.Dir).Msg("bundles written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
