package usecase

import (
	"regexp"
	"strconv"
)

// PartialSummary holds the fields extracted from the free-text summary
// document. Every field is independently optional; a nil pointer means the
// corresponding pattern did not match.
type PartialSummary struct {
	TotalMigrations  *int
	FailedMigrations *int
	SuccessRate      *float64
	TotalPRs         *int
	OpenPRs          *int
	ClosedPRs        *int
	MergedPRs        *int
}

// The summary document is human-maintained markdown: bold-labeled key
// metrics and a table of PR counts. Matching is deliberately loose about
// whitespace and surrounding formatting.
var (
	totalMigrationsRe  = regexp.MustCompile(`Total Migrations\*\*:\s*(\d+)`)
	failedMigrationsRe = regexp.MustCompile(`Failed Migrations\*\*:\s*(\d+)`)
	successRateRe      = regexp.MustCompile(`Success Rate\*\*:\s*([\d.]+)%`)
	totalPRsRe         = regexp.MustCompile(`Total PRs\s*\|\s*(\d+)`)
	openPRsRe          = regexp.MustCompile(`Open PRs\s*\|\s*(\d+)`)
	closedPRsRe        = regexp.MustCompile(`Closed PRs\s*\|\s*(\d+)`)
	mergedPRsRe        = regexp.MustCompile(`Merged PRs\s*\|\s*(\d+)`)
)

// ParseSummary extracts the numeric fields from the free-text summary.
// It is a pure function and never fails: unmatched input simply yields an
// empty partial result.
func ParseSummary(text string) PartialSummary {
	var s PartialSummary
	s.TotalMigrations = matchInt(totalMigrationsRe, text)
	s.FailedMigrations = matchInt(failedMigrationsRe, text)
	s.TotalPRs = matchInt(totalPRsRe, text)
	s.OpenPRs = matchInt(openPRsRe, text)
	s.ClosedPRs = matchInt(closedPRsRe, text)
	s.MergedPRs = matchInt(mergedPRsRe, text)

	if m := successRateRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			s.SuccessRate = &v
		}
	}
	return s
}

func matchInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}
