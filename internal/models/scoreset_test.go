package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoreSet_DefaultsAndClamping(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]int
		wantAvg float64
	}{
		{
			name:    "missing dimensions default to zero",
			raw:     map[string]int{"test_coverage_score": 10},
			wantAvg: 2.0,
		},
		{
			name:    "nil raw map is all zeros",
			raw:     nil,
			wantAvg: 0.0,
		},
		{
			name: "values above range clamp to 10",
			raw: map[string]int{
				"test_coverage_score":        99,
				"test_organization_score":    10,
				"framework_usage_score":      10,
				"assertion_quality_score":    10,
				"test_data_management_score": 10,
			},
			wantAvg: 10.0,
		},
		{
			name: "values below range clamp to 0",
			raw: map[string]int{
				"test_coverage_score": -5,
			},
			wantAvg: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewScoreSet(CategoryTestAutomation, tt.raw)
			assert.InDelta(t, tt.wantAvg, set.Average(), 1e-9)
		})
	}
}

func TestNewScoreSet_DropsUnknownDimensions(t *testing.T) {
	set := NewScoreSet(CategoryCIPipeline, map[string]int{
		"pipeline_configuration_score": 8,
		"not_a_real_dimension":         10,
	})

	assert.Equal(t, 8, set.Value("pipeline_configuration_score"))
	assert.Equal(t, 0, set.Value("not_a_real_dimension"))
	assert.InDelta(t, 1.6, set.Average(), 1e-9)
}

func TestScoreSet_JSONRoundTrip(t *testing.T) {
	set := NewScoreSet(CategoryQualityProcess, map[string]int{
		"testing_strategy_score":      7,
		"bug_tracking_score":          6,
		"code_review_process_score":   5,
		"documentation_quality_score": 4,
		"collaboration_score":         3,
	})

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var raw map[string]int
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 5)
	assert.Equal(t, 7, raw["testing_strategy_score"])
	assert.Equal(t, 3, raw["collaboration_score"])
}

func TestCategory_Dimensions(t *testing.T) {
	for _, cat := range Categories() {
		assert.Len(t, cat.Dimensions(), 5, "category %s", cat)
		assert.True(t, cat.Valid())
	}
	assert.False(t, Category("made_up").Valid())
	assert.Nil(t, Category("made_up").Dimensions())
}

func TestCategoryAverages(t *testing.T) {
	sets := map[Category]ScoreSet{
		CategoryTestAutomation: NewScoreSet(CategoryTestAutomation, map[string]int{
			"test_coverage_score":        8,
			"test_organization_score":    8,
			"framework_usage_score":      8,
			"assertion_quality_score":    8,
			"test_data_management_score": 8,
		}),
		CategoryCIPipeline: NewScoreSet(CategoryCIPipeline, nil),
	}

	avgs := CategoryAverages(sets)
	assert.InDelta(t, 8.0, avgs[CategoryTestAutomation], 1e-9)
	assert.InDelta(t, 0.0, avgs[CategoryCIPipeline], 1e-9)
}
