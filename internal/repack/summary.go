package repack

import (
	"fmt"
	"strings"
)

// maxReportedProblems caps how many offending file names a summary carries;
// full detail always goes to the log.
const maxReportedProblems = 5

// Summary aggregates the outcome of a batch operation. One bad container
// never aborts a batch; it lands in Skipped or Failed instead.
type Summary struct {
	Moved     int
	Extracted int
	Updated   int
	Removed   int
	Skipped   int
	Failed    int
	Problems  []string
}

func (s *Summary) addProblem(path string) {
	if len(s.Problems) < maxReportedProblems {
		s.Problems = append(s.Problems, path)
	}
}

// String renders the human-readable aggregate, e.g.
// "moved 2 file(s), extracted 1 asset(s), skipped 1".
func (s Summary) String() string {
	parts := make([]string, 0, 6)
	if s.Moved > 0 {
		parts = append(parts, fmt.Sprintf("moved %d file(s)", s.Moved))
	}
	if s.Extracted > 0 {
		parts = append(parts, fmt.Sprintf("extracted %d asset(s)", s.Extracted))
	}
	if s.Updated > 0 {
		parts = append(parts, fmt.Sprintf("updated %d file(s)", s.Updated))
	}
	if s.Removed > 0 {
		parts = append(parts, fmt.Sprintf("removed %d file(s)", s.Removed))
	}
	if s.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d", s.Skipped))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", s.Failed))
	}
	if len(parts) == 0 {
		return "no changes made"
	}
	return strings.Join(parts, ", ")
}
