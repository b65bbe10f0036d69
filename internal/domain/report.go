// Package domain contains the core data structures and domain logic for the application.
package domain

// Migration status values as they appear in the upstream reports.
// An empty status means the outcome is unknown.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Pull request status values as they appear in the upstream reports.
const (
	PRStatusOpen   = "open"
	PRStatusClosed = "closed"
	PRStatusMerged = "merged"
)

// Migration is one application of one modernization recipe to one plugin
// at one point in time. MigrationID is stable across plugins (it names the
// recipe); Key and Timestamp are unique within one plugin's history but a
// PullRequestURL may recur across migrations belonging to the same logical PR.
type Migration struct {
	PluginVersion                string         `json:"pluginVersion"`
	JenkinsBaseline              string         `json:"jenkinsBaseline"`
	TargetBaseline               string         `json:"targetBaseline"`
	EffectiveBaseline            string         `json:"effectiveBaseline"`
	JenkinsVersion               string         `json:"jenkinsVersion"`
	MigrationName                string         `json:"migrationName"`
	MigrationDescription         string         `json:"migrationDescription"`
	Tags                         []string       `json:"tags"`
	MigrationID                  string         `json:"migrationId"`
	MigrationStatus              string         `json:"migrationStatus"`
	PullRequestURL               string         `json:"pullRequestUrl"`
	PullRequestStatus            string         `json:"pullRequestStatus"`
	DryRun                       bool           `json:"dryRun"`
	Additions                    int            `json:"additions"`
	Deletions                    int            `json:"deletions"`
	ChangedFiles                 int            `json:"changedFiles"`
	Key                          string         `json:"key"`
	Path                         string         `json:"path"`
	CheckRuns                    map[string]any `json:"checkRuns"`
	CheckRunsSummary             string         `json:"checkRunsSummary"`
	DefaultBranch                string         `json:"defaultBranch"`
	DefaultBranchLatestCommitSha string         `json:"defaultBranchLatestCommitSha"`
	// Timestamp is an ISO-like string with ':' replaced by '-'. The format
	// is fixed-width, so lexical comparison orders chronologically.
	Timestamp string `json:"timestamp"`
}

// PluginReport is one plugin's full migration history. Insertion order of
// Migrations is not meaningful; consumers re-sort by timestamp.
type PluginReport struct {
	PluginName       string      `json:"pluginName"`
	PluginRepository string      `json:"pluginRepository"`
	Migrations       []Migration `json:"migrations"`
}

// RecipePlugin records one application of a recipe to a plugin.
type RecipePlugin struct {
	PluginName string `json:"pluginName"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
}

// RecipeReport is one recipe's rollup across all plugins.
// SuccessCount + FailureCount may be less than TotalApplications, the gap
// being applications with an unknown status.
type RecipeReport struct {
	RecipeID          string         `json:"recipeId"`
	TotalApplications int            `json:"totalApplications"`
	SuccessCount      int            `json:"successCount"`
	FailureCount      int            `json:"failureCount"`
	Plugins           []RecipePlugin `json:"plugins"`
}

// RecipeFailures is one entry of SummaryStats.FailuresByRecipe.
type RecipeFailures struct {
	Recipe   string `json:"recipe"`
	Failures int    `json:"failures"`
}

// SummaryStats is the ecosystem-wide rollup. FailuresByRecipe contains only
// recipes with at least one failure, sorted descending by failure count;
// that ordering is consumed directly by the "top failing recipes" views.
type SummaryStats struct {
	TotalMigrations  int              `json:"totalMigrations"`
	FailedMigrations int              `json:"failedMigrations"`
	SuccessRate      float64          `json:"successRate"`
	TotalPRs         int              `json:"totalPRs"`
	OpenPRs          int              `json:"openPRs"`
	ClosedPRs        int              `json:"closedPRs"`
	MergedPRs        int              `json:"mergedPRs"`
	TotalPlugins     int              `json:"totalPlugins"`
	FailuresByRecipe []RecipeFailures `json:"failuresByRecipe"`
}

// AppData is the aggregate root: an immutable snapshot of the three bundles
// for the lifetime of one load.
type AppData struct {
	Plugins []PluginReport `json:"plugins"`
	Recipes []RecipeReport `json:"recipes"`
	Summary SummaryStats   `json:"summary"`
}
