package models

import (
	"sort"
	"strings"
)

// RepositorySignals holds structural facts about one repository, gathered by
// the scanner independently of any AI judgment.
type RepositorySignals struct {
	CommitCount     int      `json:"commit_count"`
	PrimaryLanguage string   `json:"primary_language"`
	TestFileCount   int      `json:"test_file_count"`
	TotalFileCount  int      `json:"total_file_count"`
	TestFrameworks  []string `json:"test_frameworks"`
	HasCI           bool     `json:"has_ci"`
}

// Normalize returns a cleaned copy: negative counts floored to zero,
// inconsistent test/total counts (more test files than files) treated as no
// test files, frameworks lowercased, deduplicated and sorted, and a missing
// language mapped to "unknown".
func (s RepositorySignals) Normalize() RepositorySignals {
	out := s

	if out.CommitCount < 0 {
		out.CommitCount = 0
	}
	if out.TotalFileCount < 0 {
		out.TotalFileCount = 0
	}
	if out.TestFileCount < 0 || out.TestFileCount > out.TotalFileCount {
		out.TestFileCount = 0
	}
	if out.PrimaryLanguage == "" {
		out.PrimaryLanguage = "unknown"
	}

	seen := make(map[string]bool, len(s.TestFrameworks))
	frameworks := make([]string, 0, len(s.TestFrameworks))
	for _, fw := range s.TestFrameworks {
		fw = strings.ToLower(strings.TrimSpace(fw))
		if fw == "" || seen[fw] {
			continue
		}
		seen[fw] = true
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	out.TestFrameworks = frameworks

	return out
}

// TestRatio returns the test-file share of all files, and false when the
// ratio is undefined (no files at all).
func (s RepositorySignals) TestRatio() (float64, bool) {
	if s.TotalFileCount == 0 {
		return 0, false
	}
	return float64(s.TestFileCount) / float64(s.TotalFileCount), true
}
