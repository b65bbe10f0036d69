// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/gateway"
)

// Aggregator is the use case for producing the three data bundles.
// It orchestrates discovery, batched fetching, and summary derivation.
type Aggregator struct {
	fetcher    gateway.Fetcher
	batchSize  int
	batchDelay time.Duration
	logger     zerolog.Logger
}

// NewAggregator creates a new Aggregator instance. batchSize bounds the
// number of concurrent plugin fetches; batchDelay is the pause between
// batches to stay under the upstream rate limit.
func NewAggregator(fetcher gateway.Fetcher, batchSize int, batchDelay time.Duration, logger zerolog.Logger) *Aggregator {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Aggregator{
		fetcher:    fetcher,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		logger:     logger,
	}
}

// Run performs one full aggregation pass: discover plugins, fetch every
// report, and derive the ecosystem summary. Discovery and recipe-listing
// failures abort the run; individual report failures are logged and the run
// proceeds with whatever subset succeeded.
func (a *Aggregator) Run(ctx context.Context) (*domain.AppData, error) {
	a.logger.Info().Msg("starting aggregation run")

	pluginNames, err := a.fetcher.DiscoverPlugins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover plugins: %w", err)
	}

	plugins := a.fetchPluginReports(ctx, pluginNames)
	a.logger.Info().Int("fetched", len(plugins)).Int("discovered", len(pluginNames)).Msg("plugin reports fetched")

	recipes, err := a.fetchRecipeReports(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info().Int("count", len(recipes)).Msg("recipe reports fetched")

	var parsed PartialSummary
	if text, err := a.fetcher.FetchSummary(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("could not fetch summary document")
	} else {
		parsed = ParseSummary(text)
	}

	summary := BuildSummary(plugins, recipes, parsed)
	a.logChangeSizes(plugins)

	a.logger.Info().
		Int("plugins", summary.TotalPlugins).
		Int("migrations", summary.TotalMigrations).
		Float64("success_rate", summary.SuccessRate).
		Msg("aggregation complete")

	return &domain.AppData{Plugins: plugins, Recipes: recipes, Summary: summary}, nil
}

// fetchPluginReports retrieves plugin reports in bounded-size batches. All
// fetches within a batch run concurrently; batches run strictly
// sequentially with a short pause between them.
func (a *Aggregator) fetchPluginReports(ctx context.Context, names []string) []domain.PluginReport {
	reports := make([]domain.PluginReport, 0, len(names))

	for start := 0; start < len(names); start += a.batchSize {
		end := min(start+a.batchSize, len(names))
		batch := names[start:end]

		// Indexed slots keep the batch free of shared mutable state.
		results := make([]*domain.PluginReport, len(batch))
		eg, egCtx := errgroup.WithContext(ctx)
		for i, name := range batch {
			i, name := i, name
			eg.Go(func() error {
				report, err := a.fetcher.FetchPluginReport(egCtx, name)
				if err != nil {
					a.logger.Warn().Str("plugin", name).Err(err).Msg("failed to fetch plugin report")
					return nil
				}
				results[i] = report
				return nil
			})
		}
		// Item failures are logged above, never returned.
		_ = eg.Wait()

		for _, r := range results {
			if r != nil {
				reports = append(reports, *r)
			}
		}
		a.logger.Debug().Int("progress", end).Int("total", len(names)).Msg("plugin fetch progress")

		if end < len(names) && a.batchDelay > 0 {
			time.Sleep(a.batchDelay)
		}
	}
	return reports
}

func (a *Aggregator) fetchRecipeReports(ctx context.Context) ([]domain.RecipeReport, error) {
	files, err := a.fetcher.ListRecipeFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe reports: %w", err)
	}

	recipes := make([]domain.RecipeReport, 0, len(files))
	for _, name := range files {
		report, err := a.fetcher.FetchRecipeReport(ctx, name)
		if err != nil {
			a.logger.Warn().Str("recipe", name).Err(err).Msg("failed to fetch recipe report")
			continue
		}
		recipes = append(recipes, *report)
	}
	return recipes, nil
}

// BuildSummary combines the fetched reports and the parsed partial summary
// into one complete SummaryStats. Parsed values take precedence when present
// and non-zero; computed values are the reconstruction fallback. A parsed
// value of zero therefore falls back to the computed one, matching the
// upstream truthiness rule.
func BuildSummary(plugins []domain.PluginReport, recipes []domain.RecipeReport, parsed PartialSummary) domain.SummaryStats {
	var totalMigrations, failedMigrations int
	var openPRs, closedPRs, mergedPRs int
	prSeen := make(map[string]struct{})

	for _, p := range plugins {
		for _, m := range p.Migrations {
			totalMigrations++
			if m.MigrationStatus == domain.StatusFail {
				failedMigrations++
			}
			// One logical PR may be referenced by several migration
			// records; only the first sighting counts.
			if m.PullRequestURL == "" {
				continue
			}
			if _, ok := prSeen[m.PullRequestURL]; ok {
				continue
			}
			prSeen[m.PullRequestURL] = struct{}{}
			switch m.PullRequestStatus {
			case domain.PRStatusOpen:
				openPRs++
			case domain.PRStatusClosed:
				closedPRs++
			case domain.PRStatusMerged:
				mergedPRs++
			}
		}
	}

	var successRate float64
	if totalMigrations > 0 {
		successRate, _ = stats.Round(100*float64(totalMigrations-failedMigrations)/float64(totalMigrations), 2)
	}

	failures := make([]domain.RecipeFailures, 0)
	for _, r := range recipes {
		if r.FailureCount > 0 {
			failures = append(failures, domain.RecipeFailures{Recipe: r.RecipeID, Failures: r.FailureCount})
		}
	}
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Failures > failures[j].Failures
	})

	return domain.SummaryStats{
		TotalMigrations:  pickInt(parsed.TotalMigrations, totalMigrations),
		FailedMigrations: pickInt(parsed.FailedMigrations, failedMigrations),
		SuccessRate:      pickFloat(parsed.SuccessRate, successRate),
		TotalPRs:         pickInt(parsed.TotalPRs, len(prSeen)),
		OpenPRs:          pickInt(parsed.OpenPRs, openPRs),
		ClosedPRs:        pickInt(parsed.ClosedPRs, closedPRs),
		MergedPRs:        pickInt(parsed.MergedPRs, mergedPRs),
		TotalPlugins:     len(plugins),
		FailuresByRecipe: failures,
	}
}

func pickInt(parsed *int, computed int) int {
	if parsed != nil && *parsed != 0 {
		return *parsed
	}
	return computed
}

func pickFloat(parsed *float64, computed float64) float64 {
	if parsed != nil && *parsed != 0 {
		return *parsed
	}
	return computed
}

// logChangeSizes records the median diff size across all migrations as a
// run statistic.
func (a *Aggregator) logChangeSizes(plugins []domain.PluginReport) {
	var sizes []float64
	for _, p := range plugins {
		for _, m := range p.Migrations {
			sizes = append(sizes, float64(m.Additions+m.Deletions))
		}
	}
	if len(sizes) == 0 {
		return
	}
	median, err := stats.Median(sizes)
	if err != nil {
		return
	}
	a.logger.Info().Float64("median_change_size", median).Msg("migration change sizes")
}
