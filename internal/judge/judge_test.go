package judge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repograde/repograde/internal/models"
)

// validPayload builds a complete score submission for a category, the way
// tool arguments arrive after JSON decoding (numbers as float64).
func validPayload(category models.Category, score float64) map[string]any {
	payload := map[string]any{"reasoning": "solid coverage"}
	for _, dim := range category.Dimensions() {
		payload[dim] = score
	}
	return payload
}

func TestDecodeScorePayload(t *testing.T) {
	assessment, err := decodeScorePayload(models.CategoryTestAutomation, validPayload(models.CategoryTestAutomation, 7))
	require.NoError(t, err)

	assert.Equal(t, "solid coverage", assessment.Reasoning)
	assert.InDelta(t, 7.0, assessment.Scores.Average(), 0.001)
}

func TestDecodeScorePayloadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing dimension", map[string]any{"reasoning": "r", "test_coverage_score": 5.0}},
		{"out of range", validPayloadWith(t, "test_coverage_score", 15.0)},
		{"missing reasoning", dropKey(validPayload(models.CategoryTestAutomation, 5), "reasoning")},
		{"extra key", validPayloadWith(t, "bonus_score", 5.0)},
		{"non-integer score", validPayloadWith(t, "test_coverage_score", 3.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeScorePayload(models.CategoryTestAutomation, tt.payload)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "score submission rejected")
		})
	}
}

func validPayloadWith(t *testing.T, key string, value float64) map[string]any {
	t.Helper()
	payload := validPayload(models.CategoryTestAutomation, 5)
	payload[key] = value
	return payload
}

func dropKey(payload map[string]any, key string) map[string]any {
	delete(payload, key)
	return payload
}

func TestDecodeScorePayloadText(t *testing.T) {
	content := "Here are my scores:\n```json\n" +
		`{"reasoning": "ok", "test_coverage_score": 6, "test_organization_score": 7,` +
		` "framework_usage_score": 4, "assertion_quality_score": 5, "test_data_management_score": 3}` +
		"\n```\nDone."

	assessment, ok := decodeScorePayloadText(models.CategoryTestAutomation, content)
	require.True(t, ok)
	assert.Equal(t, "ok", assessment.Reasoning)
	assert.Equal(t, 6, assessment.Scores.Value("test_coverage_score"))
}

func TestDecodeScorePayloadTextDefaultsMissingDimensions(t *testing.T) {
	content := "```json\n" +
		`{"reasoning": "partial", "test_coverage_score": 6, "test_organization_score": 7,` +
		` "framework_usage_score": 4, "assertion_quality_score": 5}` +
		"\n```"

	assessment, ok := decodeScorePayloadText(models.CategoryTestAutomation, content)
	require.True(t, ok)
	assert.Equal(t, 0, assessment.Scores.Value("test_data_management_score"))
	assert.InDelta(t, 4.4, assessment.Scores.Average(), 0.001)
}

func TestDecodeScorePayloadTextClampsOutOfRange(t *testing.T) {
	content := `{"reasoning": "hot take", "test_coverage_score": 15, "test_organization_score": -2,` +
		` "framework_usage_score": 4, "assertion_quality_score": 5, "test_data_management_score": 3}`

	assessment, ok := decodeScorePayloadText(models.CategoryTestAutomation, content)
	require.True(t, ok)
	assert.Equal(t, 10, assessment.Scores.Value("test_coverage_score"))
	assert.Equal(t, 0, assessment.Scores.Value("test_organization_score"))
}

func TestDecodeScorePayloadTextToleratesMissingReasoning(t *testing.T) {
	content := `{"test_coverage_score": 6, "test_organization_score": 7,` +
		` "framework_usage_score": 4, "assertion_quality_score": 5, "test_data_management_score": 3}`

	assessment, ok := decodeScorePayloadText(models.CategoryTestAutomation, content)
	require.True(t, ok)
	assert.Empty(t, assessment.Reasoning)
	assert.Equal(t, 6, assessment.Scores.Value("test_coverage_score"))
}

func TestDecodeScorePayloadTextNoJSON(t *testing.T) {
	_, ok := decodeScorePayloadText(models.CategoryTestAutomation, "no scores here")
	assert.False(t, ok)
}

func TestBuildPromptListsDimensions(t *testing.T) {
	for _, cat := range models.Categories() {
		prompt := buildPrompt(cat, "EXCERPT_SENTINEL")
		assert.Contains(t, prompt, "EXCERPT_SENTINEL")
		assert.Contains(t, prompt, submitScoresToolName)
		for _, dim := range cat.Dimensions() {
			assert.Contains(t, prompt, dim, "category %s", cat)
		}
	}
}

func TestScorePayloadSchemaCompiles(t *testing.T) {
	for _, cat := range models.Categories() {
		require.NotNil(t, scoreSchemas[cat], "schema for %s", cat)
	}
}

func TestNewCopilotJudgeRequiresModel(t *testing.T) {
	_, err := NewCopilotJudge(CopilotOptions{})
	require.Error(t, err)

	j, err := NewCopilotJudge(CopilotOptions{Model: "claude-sonnet-4"})
	require.NoError(t, err)
	require.NotNil(t, j)
}

func TestMockJudge(t *testing.T) {
	m := &MockJudge{Fixed: 8}

	assessment, err := m.Assess(t.Context(), models.CategoryCIPipeline, "")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, assessment.Scores.Average(), 0.001)
	assert.Equal(t, []models.Category{models.CategoryCIPipeline}, m.Calls)

	m.Overrides = map[models.Category]map[string]int{
		models.CategoryCIPipeline: {"pipeline_configuration_score": 10},
	}
	assessment, err = m.Assess(t.Context(), models.CategoryCIPipeline, "")
	require.NoError(t, err)
	assert.Equal(t, 10, assessment.Scores.Value("pipeline_configuration_score"))
}

func TestMockJudgeError(t *testing.T) {
	m := &MockJudge{Err: assert.AnError}
	_, err := m.Assess(t.Context(), models.CategoryCIPipeline, "")
	require.Error(t, err)

	var ae *AssessmentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, models.CategoryCIPipeline, ae.Category)
	assert.True(t, strings.Contains(ae.Error(), "ci_pipeline"))
}
