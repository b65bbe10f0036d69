// Package query provides pure, reentrant functions over a loaded AppData
// snapshot: flat row projection, filtering, sorting, pagination, display
// helpers, and export serialization. Nothing here mutates its input.
package query

import (
	"sort"
	"strings"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
)

// PageSize is the fixed number of rows per page.
const PageSize = 20

// Row is the flattened per-plugin projection consumed by the explorer views.
type Row struct {
	PluginName      string `json:"pluginName"`
	MigrationCount  int    `json:"migrationCount"`
	SuccessCount    int    `json:"successCount"`
	FailCount       int    `json:"failCount"`
	LatestMigration string `json:"latestMigration"`
	PRsMerged       int    `json:"prsMerged"`
	PRsOpen         int    `json:"prsOpen"`
	LatestRecipe    string `json:"latestRecipe"`
}

// Rows flattens every plugin into one Row. "Latest" is determined by
// descending timestamp string comparison.
func Rows(data *domain.AppData) []Row {
	rows := make([]Row, 0, len(data.Plugins))
	for _, p := range data.Plugins {
		row := Row{PluginName: p.PluginName, MigrationCount: len(p.Migrations)}
		var latest *domain.Migration
		for i := range p.Migrations {
			m := &p.Migrations[i]
			switch m.MigrationStatus {
			case domain.StatusSuccess:
				row.SuccessCount++
			case domain.StatusFail:
				row.FailCount++
			}
			switch m.PullRequestStatus {
			case domain.PRStatusMerged:
				row.PRsMerged++
			case domain.PRStatusOpen:
				row.PRsOpen++
			}
			if latest == nil || m.Timestamp > latest.Timestamp {
				latest = m
			}
		}
		if latest != nil {
			row.LatestMigration = datePart(latest.Timestamp)
			row.LatestRecipe = RecipeDisplayName(latest.MigrationID)
		}
		rows = append(rows, row)
	}
	return rows
}

// StatusFilter selects rows by migration-status class.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusSuccess StatusFilter = "success" // every migration succeeded
	StatusFail    StatusFilter = "fail"    // at least one failure
)

// PRFilter selects rows by pull-request-status class.
type PRFilter string

const (
	PRAll    PRFilter = "all"
	PROpen   PRFilter = "open"
	PRMerged PRFilter = "merged"
)

// Filters is the combined filter state of the explorer.
type Filters struct {
	Search string
	Status StatusFilter
	PR     PRFilter
}

// Filter returns the rows matching f. Search is a case-insensitive
// substring match against the plugin name and the latest recipe display name.
func Filter(rows []Row, f Filters) []Row {
	result := make([]Row, 0, len(rows))
	q := strings.ToLower(f.Search)
	for _, r := range rows {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.PluginName), q) &&
			!strings.Contains(strings.ToLower(r.LatestRecipe), q) {
			continue
		}
		if f.Status == StatusSuccess && r.FailCount > 0 {
			continue
		}
		if f.Status == StatusFail && r.FailCount == 0 {
			continue
		}
		if f.PR == PROpen && r.PRsOpen == 0 {
			continue
		}
		if f.PR == PRMerged && r.PRsMerged == 0 {
			continue
		}
		result = append(result, r)
	}
	return result
}

// SortKey names a Row field to sort by.
type SortKey string

const (
	ByPluginName      SortKey = "pluginName"
	ByMigrationCount  SortKey = "migrationCount"
	BySuccessCount    SortKey = "successCount"
	ByFailCount       SortKey = "failCount"
	ByLatestMigration SortKey = "latestMigration"
	ByPRsMerged       SortKey = "prsMerged"
	ByPRsOpen         SortKey = "prsOpen"
	ByLatestRecipe    SortKey = "latestRecipe"
)

// SortKeys is the fixed column order of the explorer table.
var SortKeys = []SortKey{
	ByPluginName, ByMigrationCount, BySuccessCount, ByFailCount,
	ByPRsMerged, ByPRsOpen, ByLatestRecipe, ByLatestMigration,
}

// Sort returns a copy of rows ordered by the given key. String fields use
// lexical comparison, numeric fields numeric comparison. The sort is stable:
// ties keep the insertion order of the input.
func Sort(rows []Row, key SortKey, desc bool) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		less := rowLess(sorted[i], sorted[j], key)
		if desc {
			return rowLess(sorted[j], sorted[i], key)
		}
		return less
	})
	return sorted
}

func rowLess(a, b Row, key SortKey) bool {
	switch key {
	case ByMigrationCount:
		return a.MigrationCount < b.MigrationCount
	case BySuccessCount:
		return a.SuccessCount < b.SuccessCount
	case ByFailCount:
		return a.FailCount < b.FailCount
	case ByPRsMerged:
		return a.PRsMerged < b.PRsMerged
	case ByPRsOpen:
		return a.PRsOpen < b.PRsOpen
	case ByLatestMigration:
		return a.LatestMigration < b.LatestMigration
	case ByLatestRecipe:
		return a.LatestRecipe < b.LatestRecipe
	default:
		return a.PluginName < b.PluginName
	}
}

// TotalPages reports the number of pages needed for n rows.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Page returns the zero-indexed page of rows, clamped to valid bounds.
func Page(rows []Row, page int) []Row {
	total := TotalPages(len(rows))
	if total == 0 {
		return nil
	}
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}
	start := page * PageSize
	end := min(start+PageSize, len(rows))
	return rows[start:end]
}

// PageWindow returns up to five page indices centered on the current page,
// clamped to valid bounds, for the pagination buttons.
func PageWindow(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	start := page - 2
	if start > totalPages-5 {
		start = totalPages - 5
	}
	if start < 0 {
		start = 0
	}
	var window []int
	for p := start; p < totalPages && len(window) < 5; p++ {
		window = append(window, p)
	}
	return window
}

func datePart(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}
