package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullScoreSet(cat Category, value int) ScoreSet {
	raw := make(map[string]int, 5)
	for _, dim := range cat.Dimensions() {
		raw[dim] = value
	}
	return NewScoreSet(cat, raw)
}

func sampleOutcome() *EvaluationOutcome {
	categories := make(map[Category]ScoreSet, 5)
	for _, cat := range Categories() {
		categories[cat] = fullScoreSet(cat, 8)
	}
	return &EvaluationOutcome{
		URL:       "https://github.com/example/repo",
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Signals: RepositorySignals{
			CommitCount:     20,
			PrimaryLanguage: "go",
			TestFileCount:   10,
			TotalFileCount:  40,
			TestFrameworks:  []string{"testing", "testify"},
			HasCI:           true,
		},
		Categories:    categories,
		OverallScore:  80,
		Level:         LevelAdvanced,
		Verdict:       VerdictPass,
		VerdictReason: "Strong QA skills demonstrated across all areas (Score: 80)",
		Strengths:     []string{"Test Automation"},
		Improvements:  []string{},
	}
}

func TestLevel_AtLeast(t *testing.T) {
	assert.True(t, LevelExpert.AtLeast(LevelAdvanced))
	assert.True(t, LevelAdvanced.AtLeast(LevelAdvanced))
	assert.False(t, LevelBeginner.AtLeast(LevelIntermediate))
}

func TestEvaluationOutcome_Export(t *testing.T) {
	out := sampleOutcome().Export()

	assert.Equal(t, "https://github.com/example/repo", out["url"])
	assert.Equal(t, 80, out["overall_qa_maturity_score"])
	assert.Equal(t, "Advanced", out["qa_level"])
	assert.Equal(t, "PASS", out["final_verdict"])
	assert.Equal(t, 20, out["commit_count"])

	scores, ok := out["test_automation"].(map[string]int)
	require.True(t, ok, "category scores must export as a sub-mapping")
	assert.Equal(t, 8, scores["test_coverage_score"])
	assert.Len(t, scores, 5)
}

func TestRepoResult_Discriminant(t *testing.T) {
	success := Success(sampleOutcome())
	assert.True(t, success.IsSuccess())
	assert.Equal(t, "https://github.com/example/repo", success.URL)

	failure := Failure("https://github.com/example/broken", errors.New("clone failed"))
	assert.False(t, failure.IsSuccess())
	assert.Equal(t, "clone failed", failure.ErrorMsg)

	export := failure.Export()
	assert.Equal(t, "clone failed", export["error_message"])
	_, hasScore := export["overall_qa_maturity_score"]
	assert.False(t, hasScore, "failures must not export score fields")
}

func TestEvaluationOutcome_JSONRoundTrip(t *testing.T) {
	original := sampleOutcome()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded EvaluationOutcome
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.URL, decoded.URL)
	assert.Equal(t, original.OverallScore, decoded.OverallScore)
	assert.Equal(t, original.Verdict, decoded.Verdict)

	set := decoded.Categories[CategoryTestAutomation]
	assert.Equal(t, CategoryTestAutomation, set.Category)
	assert.InDelta(t, 8.0, set.Average(), 1e-9)
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, BucketExpert},
		{85, BucketExpert},
		{84, BucketAdvanced},
		{70, BucketAdvanced},
		{69, BucketIntermediate},
		{50, BucketIntermediate},
		{49, BucketBeginner},
		{0, BucketBeginner},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.score), "score %d", tt.score)
	}
}
