// Package sample generates the deterministic synthetic dataset used when
// the live bundles cannot be loaded. The same seed always yields the same
// dataset, so offline behavior is reproducible and testable.
package sample

import (
	"fmt"
	"math/rand"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/query"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/usecase"
)

const seed = 20250723

const recipePrefix = "io.jenkins.tools.pluginmodernizer."

var recipeIDs = []string{
	recipePrefix + "SetupJenkinsfile",
	recipePrefix + "UpgradeNextMajorParentVersion",
	recipePrefix + "UpgradeParent6Version",
	recipePrefix + "MigrateToJUnit5",
	recipePrefix + "MigrateToJava25",
	recipePrefix + "UpgradeToRecommendCoreVersion",
	recipePrefix + "SwitchToRenovate",
	recipePrefix + "AutoMergeWorkflows",
	recipePrefix + "RemoveOldJavaVersionForModernJenkins",
	recipePrefix + "AddCodeOwner",
	recipePrefix + "SetupDependabot",
	recipePrefix + "UpgradeBomVersion",
	recipePrefix + "MigrateCommonsLang2ToLang3AndCommonText",
	recipePrefix + "UpgradeToLatestJava11CoreVersion",
	recipePrefix + "SetupRenovate",
	recipePrefix + "UpgradeParent5Version",
	recipePrefix + "FixJellyIssues",
}

var pluginNames = []string{
	"credentials", "git", "pipeline-model-definition", "workflow-cps",
	"kubernetes", "docker-workflow", "blueocean", "junit",
	"matrix-auth", "ssh-credentials", "github", "gradle",
	"maven-invoker-plugin", "configuration-as-code", "ldap",
	"active-directory", "artifactory", "sonar", "checkstyle",
	"cobertura", "jacoco", "findbugs", "pmd", "warnings-ng",
	"badge", "build-blocker-plugin", "cloudbees-folder",
	"ec2", "amazon-ecs", "azure-vm-agents", "timestamper",
	"ansicolor", "rebuild", "conditional-buildstep", "parameterized-trigger",
	"copyartifact", "email-ext", "slack", "mattermost",
	"jira", "bitbucket", "gitlab-plugin", "gerrit-trigger",
	"dashboard-view", "build-monitor-plugin", "view-job-filters",
	"role-strategy", "authorize-project", "script-security",
}

var months = []string{
	"2025-06", "2025-07", "2025-08", "2025-09", "2025-10",
	"2025-11", "2025-12", "2026-01", "2026-02",
}

// Data generates the synthetic AppData. Calls are independent and always
// return an identical dataset.
func Data() *domain.AppData {
	rng := rand.New(rand.NewSource(seed))
	plugins := generatePlugins(rng)
	recipes := generateRecipes(plugins)
	summary := usecase.BuildSummary(plugins, recipes, usecase.PartialSummary{})
	return &domain.AppData{Plugins: plugins, Recipes: recipes, Summary: summary}
}

func generatePlugins(rng *rand.Rand) []domain.PluginReport {
	plugins := make([]domain.PluginReport, 0, len(pluginNames))
	for _, name := range pluginNames {
		count := rng.Intn(6) + 1
		order := rng.Perm(len(recipeIDs))

		migrations := make([]domain.Migration, 0, count)
		for i := 0; i < count; i++ {
			recipeID := recipeIDs[order[i]]
			display := query.RecipeDisplayName(recipeID)
			status := randomStatus(rng)
			timestamp := randomTimestamp(rng, months[rng.Intn(len(months))])

			m := domain.Migration{
				PluginVersion:        fmt.Sprintf("%d.%d", rng.Intn(5)+1, rng.Intn(20)),
				TargetBaseline:       "2.361",
				EffectiveBaseline:    "2.361",
				JenkinsVersion:       "2.361",
				MigrationName:        display,
				MigrationDescription: fmt.Sprintf("Apply %s recipe to %s", display, name),
				Tags:                 []string{"chore"},
				MigrationID:          recipeID,
				MigrationStatus:      status,
				Additions:            rng.Intn(200),
				Deletions:            rng.Intn(100),
				ChangedFiles:         rng.Intn(15) + 1,
				Key:                  timestamp + ".json",
				CheckRuns:            map[string]any{},
				CheckRunsSummary:     status,
				DefaultBranch:        "main",
				Timestamp:            timestamp,
			}
			if status == domain.StatusSuccess {
				m.PullRequestURL = fmt.Sprintf("https://github.com/jenkinsci/%s/pull/%d", name, rng.Intn(50)+1)
				m.PullRequestStatus = randomPRStatus(rng)
			}
			migrations = append(migrations, m)
		}

		plugins = append(plugins, domain.PluginReport{
			PluginName:       name,
			PluginRepository: fmt.Sprintf("https://github.com/jenkinsci/%s.git", name),
			Migrations:       migrations,
		})
	}
	return plugins
}

func generateRecipes(plugins []domain.PluginReport) []domain.RecipeReport {
	recipes := make([]domain.RecipeReport, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		report := domain.RecipeReport{RecipeID: id, Plugins: []domain.RecipePlugin{}}
		for _, p := range plugins {
			for _, m := range p.Migrations {
				if m.MigrationID != id {
					continue
				}
				report.Plugins = append(report.Plugins, domain.RecipePlugin{
					PluginName: p.PluginName,
					Status:     m.MigrationStatus,
					Timestamp:  m.Timestamp,
				})
				switch m.MigrationStatus {
				case domain.StatusSuccess:
					report.SuccessCount++
				case domain.StatusFail:
					report.FailureCount++
				}
			}
		}
		report.TotalApplications = len(report.Plugins)
		recipes = append(recipes, report)
	}
	return recipes
}

func randomStatus(rng *rand.Rand) string {
	if rng.Float64() > 0.25 {
		return domain.StatusSuccess
	}
	return domain.StatusFail
}

func randomPRStatus(rng *rand.Rand) string {
	switch r := rng.Float64(); {
	case r < 0.15:
		return domain.PRStatusOpen
	case r < 0.20:
		return domain.PRStatusClosed
	default:
		return domain.PRStatusMerged
	}
}

func randomTimestamp(rng *rand.Rand, yearMonth string) string {
	return fmt.Sprintf("%s-%02dT%02d-%02d-%02d",
		yearMonth, rng.Intn(28)+1, rng.Intn(24), rng.Intn(60), rng.Intn(60))
}
