package scoring

import (
	"sort"

	"github.com/repograde/repograde/internal/metrics"
	"github.com/repograde/repograde/internal/models"
)

// topLabelLimit caps the common-strengths/improvements/frameworks lists.
const topLabelLimit = 5

// Summarize folds per-repository results into batch distribution statistics.
// Failures are counted but excluded from score and verdict distributions.
// A result that is neither a clean success nor a clean failure is an
// InvariantViolationError.
func Summarize(results []models.RepoResult) (*models.BatchSummary, error) {
	var successes []*models.EvaluationOutcome
	failed := 0

	for _, r := range results {
		hasOutcome := r.Outcome != nil
		hasError := r.ErrorMsg != ""
		switch {
		case hasOutcome && hasError:
			return nil, &InvariantViolationError{URL: r.URL, Detail: "both outcome and error description present"}
		case !hasOutcome && !hasError:
			return nil, &InvariantViolationError{URL: r.URL, Detail: "neither outcome nor error description present"}
		case hasOutcome:
			successes = append(successes, r.Outcome)
		default:
			failed++
		}
	}

	summary := &models.BatchSummary{
		TotalRepositories:     len(results),
		SuccessfulEvaluations: len(successes),
		FailedEvaluations:     failed,
		ScoreDistribution:     map[string]int{},
		LevelDistribution:     map[models.Level]int{},
		VerdictDistribution:   map[models.Verdict]int{},
		CommonStrengths:       []string{},
		CommonImprovements:    []string{},
		TopFrameworks:         []string{},
	}

	if len(results) > 0 {
		summary.SuccessRate = float64(len(successes)) / float64(len(results))
	}

	if len(successes) == 0 {
		return summary, nil
	}

	scores := make([]float64, 0, len(successes))
	var strengths, improvements, frameworks []string

	for _, bucket := range models.ScoreBuckets() {
		summary.ScoreDistribution[bucket] = 0
	}

	for _, o := range successes {
		scores = append(scores, float64(o.OverallScore))
		summary.ScoreDistribution[models.BucketFor(o.OverallScore)]++
		summary.LevelDistribution[o.Level]++
		summary.VerdictDistribution[o.Verdict]++
		strengths = append(strengths, o.Strengths...)
		improvements = append(improvements, o.Improvements...)
		frameworks = append(frameworks, o.Signals.TestFrameworks...)
	}

	summary.AverageScore = metrics.Mean(scores)
	summary.ScoreStdDev = metrics.StdDev(scores)
	lo, hi := metrics.MinMax(scores)
	summary.MinScore = int(lo)
	summary.MaxScore = int(hi)
	summary.CommonStrengths = mostCommon(strengths, topLabelLimit)
	summary.CommonImprovements = mostCommon(improvements, topLabelLimit)
	summary.TopFrameworks = mostCommon(frameworks, topLabelLimit)

	return summary, nil
}

// mostCommon returns the labels sorted by descending frequency, ties broken
// by first-seen order, truncated to limit.
func mostCommon(labels []string, limit int) []string {
	counts := make(map[string]int, len(labels))
	firstSeen := make(map[string]int, len(labels))
	var unique []string

	for i, label := range labels {
		if _, ok := counts[label]; !ok {
			firstSeen[label] = i
			unique = append(unique, label)
		}
		counts[label]++
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}
	if unique == nil {
		unique = []string{}
	}
	return unique
}
