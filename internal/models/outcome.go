package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Level is the ordinal maturity label derived from the overall score.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

var levelRank = map[Level]int{
	LevelBeginner:     0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

func (l Level) String() string { return string(l) }

// AtLeast returns true if l is at or above the target level.
func (l Level) AtLeast(target Level) bool {
	return levelRank[l] >= levelRank[target]
}

// Verdict is the final pass/fail classification for one repository.
type Verdict string

const (
	VerdictPass            Verdict = "PASS"
	VerdictConditionalPass Verdict = "CONDITIONAL_PASS"
	VerdictFail            Verdict = "FAIL"
)

func (v Verdict) String() string { return string(v) }

// EvaluationOutcome is the complete result of evaluating one repository.
// It is constructed once all category scores and signals are known and never
// mutated afterwards.
type EvaluationOutcome struct {
	URL          string                `json:"url"`
	Timestamp    time.Time             `json:"timestamp"`
	Signals      RepositorySignals     `json:"signals"`
	Categories   map[Category]ScoreSet `json:"categories"`
	OverallScore int                   `json:"overall_qa_maturity_score"`
	Level        Level                 `json:"qa_level"`
	Verdict      Verdict               `json:"final_verdict"`
	VerdictReason string               `json:"final_verdict_reason"`
	Strengths    []string              `json:"strengths"`
	Improvements []string              `json:"improvement_areas"`
}

// CategoryAverages returns the per-category mean sub-score.
func (o *EvaluationOutcome) CategoryAverages() map[Category]float64 {
	return CategoryAverages(o.Categories)
}

// Export flattens the outcome into the stable field-by-name map shape that
// downstream reporters serialize.
func (o *EvaluationOutcome) Export() map[string]any {
	out := map[string]any{
		"url":                       o.URL,
		"commit_count":              o.Signals.CommitCount,
		"primary_language":          o.Signals.PrimaryLanguage,
		"test_file_count":           o.Signals.TestFileCount,
		"total_file_count":          o.Signals.TotalFileCount,
		"test_frameworks":           o.Signals.TestFrameworks,
		"overall_qa_maturity_score": o.OverallScore,
		"qa_level":                  o.Level.String(),
		"final_verdict":             o.Verdict.String(),
		"final_verdict_reason":      o.VerdictReason,
		"strengths":                 o.Strengths,
		"improvement_areas":         o.Improvements,
	}
	for _, cat := range Categories() {
		set := o.Categories[cat]
		scores := make(map[string]int, len(cat.Dimensions()))
		for _, dim := range cat.Dimensions() {
			scores[dim] = set.Value(dim)
		}
		out[cat.String()] = scores
	}
	return out
}

// RepoResult pairs a repository URL with either a successful outcome or an
// error description. Exactly one of the two must be set.
type RepoResult struct {
	URL      string             `json:"url"`
	Outcome  *EvaluationOutcome `json:"outcome,omitempty"`
	ErrorMsg string             `json:"error_message,omitempty"`
}

// Success builds a RepoResult for a completed evaluation.
func Success(outcome *EvaluationOutcome) RepoResult {
	return RepoResult{URL: outcome.URL, Outcome: outcome}
}

// Failure builds a RepoResult recording why a repository could not be scored.
func Failure(url string, err error) RepoResult {
	return RepoResult{URL: url, ErrorMsg: err.Error()}
}

// IsSuccess reports whether the evaluation completed.
func (r RepoResult) IsSuccess() bool {
	return r.Outcome != nil && r.ErrorMsg == ""
}

// Export returns the reporter-facing map for the result: the flattened
// outcome for successes, URL plus error description for failures.
func (r RepoResult) Export() map[string]any {
	if r.Outcome != nil {
		out := r.Outcome.Export()
		if r.ErrorMsg != "" {
			out["error_message"] = r.ErrorMsg
		}
		return out
	}
	return map[string]any{
		"url":           r.URL,
		"error_message": r.ErrorMsg,
	}
}

// UnmarshalJSON restores an outcome, re-normalizing category score sets whose
// category is carried by the map key rather than the serialized value.
func (o *EvaluationOutcome) UnmarshalJSON(data []byte) error {
	type alias EvaluationOutcome
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding evaluation outcome: %w", err)
	}
	for cat, set := range decoded.Categories {
		set.Category = cat
		set.normalize()
		decoded.Categories[cat] = set
	}
	*o = EvaluationOutcome(decoded)
	return nil
}
