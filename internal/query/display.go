package query

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
)

// RecipeDisplayName derives a human-readable label from a fully qualified
// recipe identifier: the last dot-separated segment, with a space inserted
// before every upper-case rune that follows a lower-case one, so that
// "MigrateToJUnit5" becomes "Migrate To JUnit5". Re-applying the function to
// its own output is a no-op. Display-only; there is no round-trip guarantee.
func RecipeDisplayName(recipeID string) string {
	parts := strings.Split(recipeID, ".")
	name := parts[len(parts)-1]

	var b strings.Builder
	b.Grow(len(name) + 4)
	prev := rune(0)
	for _, r := range name {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// DateCount is one timeline bucket.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Timeline groups all migrations ecosystem-wide by the date portion of
// their timestamp, returned date-ascending.
func Timeline(data *domain.AppData) []DateCount {
	counts := make(map[string]int)
	for _, p := range data.Plugins {
		for _, m := range p.Migrations {
			if m.Timestamp == "" {
				continue
			}
			counts[datePart(m.Timestamp)]++
		}
	}

	timeline := make([]DateCount, 0, len(counts))
	for date, count := range counts {
		timeline = append(timeline, DateCount{Date: date, Count: count})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})
	return timeline
}

// PluginByName looks up a plugin report, or nil when unknown.
func PluginByName(data *domain.AppData, name string) *domain.PluginReport {
	for i := range data.Plugins {
		if data.Plugins[i].PluginName == name {
			return &data.Plugins[i]
		}
	}
	return nil
}

// RecipeByID looks up a recipe report, or nil when unknown.
func RecipeByID(data *domain.AppData, id string) *domain.RecipeReport {
	for i := range data.Recipes {
		if data.Recipes[i].RecipeID == id {
			return &data.Recipes[i]
		}
	}
	return nil
}

// PluginsWithFailures returns the plugins that have at least one failed migration.
func PluginsWithFailures(data *domain.AppData) []domain.PluginReport {
	var failed []domain.PluginReport
	for _, p := range data.Plugins {
		for _, m := range p.Migrations {
			if m.MigrationStatus == domain.StatusFail {
				failed = append(failed, p)
				break
			}
		}
	}
	return failed
}

// UniqueRecipeIDs returns the recipe identifiers in report order.
func UniqueRecipeIDs(data *domain.AppData) []string {
	ids := make([]string, 0, len(data.Recipes))
	for _, r := range data.Recipes {
		ids = append(ids, r.RecipeID)
	}
	return ids
}
