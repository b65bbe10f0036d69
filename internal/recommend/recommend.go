// Package recommend derives actionable next steps from a plugin's
// migration history.
package recommend

import (
	"fmt"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
)

// Severity ranks a recommendation.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Recommendation is one actionable next step for a plugin.
type Recommendation struct {
	Text     string   `json:"text"`
	URL      string   `json:"url,omitempty"`
	Severity Severity `json:"severity"`
}

const recipePrefix = "io.jenkins.tools.pluginmodernizer."

// recipeRules maps failed recipes to fixed-text recommendations. The slice
// order is the emission order; membership is tested by presence of the
// recipe id among the plugin's failed migrations, not by count.
var recipeRules = []struct {
	recipeID string
	text     string
	severity Severity
}{
	{recipePrefix + "SetupJenkinsfile", "Set up a Jenkinsfile for CI/CD", SeverityHigh},
	{recipePrefix + "UpgradeNextMajorParentVersion", "Upgrade to the latest parent POM version", SeverityHigh},
	{recipePrefix + "MigrateToJUnit5", "Migrate test suite from JUnit 4 to JUnit 5", SeverityMedium},
	{recipePrefix + "MigrateCommonsLang2ToLang3AndCommonText", "Replace deprecated Commons Lang 2 usage with Lang 3", SeverityMedium},
	{recipePrefix + "UpgradeToRecommendCoreVersion", "Upgrade to the recommended Jenkins core version", SeverityMedium},
	{recipePrefix + "SetupDependabot", "Enable Dependabot for dependency updates", SeverityLow},
	{recipePrefix + "AddCodeOwner", "Add a CODEOWNERS file", SeverityLow},
}

// Steps computes the ordered recommendation list for one plugin. All
// applicable rules fire, in fixed priority order: open pull requests first,
// then the failed-recipe table, then a single celebratory entry when nothing
// else fired and every migration (of at least one) succeeded. A plugin with
// no migrations yields no recommendations.
func Steps(plugin *domain.PluginReport) []Recommendation {
	var steps []Recommendation

	var openPRs int
	var firstOpenURL string
	failedRecipes := make(map[string]struct{})
	allSucceeded := true
	for _, m := range plugin.Migrations {
		if m.PullRequestStatus == domain.PRStatusOpen {
			openPRs++
			if firstOpenURL == "" {
				firstOpenURL = m.PullRequestURL
			}
		}
		if m.MigrationStatus == domain.StatusFail {
			failedRecipes[m.MigrationID] = struct{}{}
		}
		if m.MigrationStatus != domain.StatusSuccess {
			allSucceeded = false
		}
	}

	if openPRs > 0 {
		text := fmt.Sprintf("Review and merge %d open pull request", openPRs)
		if openPRs > 1 {
			text += "s"
		}
		steps = append(steps, Recommendation{Text: text, URL: firstOpenURL, Severity: SeverityHigh})
	}

	for _, rule := range recipeRules {
		if _, ok := failedRecipes[rule.recipeID]; ok {
			steps = append(steps, Recommendation{Text: rule.text, Severity: rule.severity})
		}
	}

	if len(steps) == 0 && len(plugin.Migrations) > 0 && allSucceeded {
		steps = append(steps, Recommendation{
			Text:     "This plugin is fully modernized, great work!",
			Severity: SeverityLow,
		})
	}

	return steps
}
