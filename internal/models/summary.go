package models

// Fixed score-distribution bucket labels. Every successful outcome falls in
// exactly one bucket.
const (
	BucketExpert       = "Expert (85-100)"
	BucketAdvanced     = "Advanced (70-84)"
	BucketIntermediate = "Intermediate (50-69)"
	BucketBeginner     = "Beginner (0-49)"
)

// ScoreBuckets returns the bucket labels in descending score order.
func ScoreBuckets() []string {
	return []string{BucketExpert, BucketAdvanced, BucketIntermediate, BucketBeginner}
}

// BucketFor maps an overall score to its distribution bucket label.
func BucketFor(score int) string {
	switch {
	case score >= 85:
		return BucketExpert
	case score >= 70:
		return BucketAdvanced
	case score >= 50:
		return BucketIntermediate
	default:
		return BucketBeginner
	}
}

// BatchSummary is the derived, read-only aggregate over a batch of
// per-repository results. It is recomputed fresh from the results each time
// and never persisted on its own.
type BatchSummary struct {
	TotalRepositories     int             `json:"total_repositories"`
	SuccessfulEvaluations int             `json:"successful_evaluations"`
	FailedEvaluations     int             `json:"failed_evaluations"`
	SuccessRate           float64         `json:"success_rate"`
	AverageScore          float64         `json:"average_qa_maturity_score"`
	ScoreStdDev           float64         `json:"score_std_dev"`
	MinScore              int             `json:"min_qa_maturity_score"`
	MaxScore              int             `json:"max_qa_maturity_score"`
	ScoreDistribution     map[string]int  `json:"score_distribution"`
	LevelDistribution     map[Level]int   `json:"qa_level_distribution"`
	VerdictDistribution   map[Verdict]int `json:"verdict_distribution"`
	CommonStrengths       []string        `json:"common_strengths"`
	CommonImprovements    []string        `json:"common_improvement_areas"`
	TopFrameworks         []string        `json:"top_frameworks"`
}
