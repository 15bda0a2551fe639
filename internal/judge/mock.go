package judge

import (
	"context"
	"fmt"

	"github.com/repograde/repograde/internal/models"
)

// MockJudge returns canned scores without calling a model. Useful for tests
// and for dry runs where no copilot CLI is available.
type MockJudge struct {
	// Fixed is the score assigned to every dimension when no override is
	// present.
	Fixed int

	// Overrides replaces the fixed score for specific categories.
	Overrides map[models.Category]map[string]int

	// Err, when set, is returned from every Assess call.
	Err error

	// Calls records the categories assessed, in order. Not synchronized;
	// inspect only after all assessments complete.
	Calls []models.Category
}

// Assess implements [Judge].
func (m *MockJudge) Assess(_ context.Context, category models.Category, _ string) (*Assessment, error) {
	m.Calls = append(m.Calls, category)

	if m.Err != nil {
		return nil, &AssessmentError{Category: category, Err: m.Err}
	}
	if !category.Valid() {
		return nil, &AssessmentError{Category: category, Err: fmt.Errorf("unknown category %q", category)}
	}

	values := m.Overrides[category]
	if values == nil {
		values = map[string]int{}
		for _, dim := range category.Dimensions() {
			values[dim] = m.Fixed
		}
	}

	return &Assessment{
		Scores:    models.NewScoreSet(category, values),
		Reasoning: fmt.Sprintf("mock assessment for %s", category),
	}, nil
}
