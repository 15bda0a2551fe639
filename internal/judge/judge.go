// Package judge produces per-category sub-scores for a repository by asking
// an AI model to assess an excerpt of repository content. Scores are
// validated against a JSON schema before being accepted.
package judge

import (
	"context"
	"fmt"

	"github.com/repograde/repograde/internal/models"
)

// Assessment is one category judgment: the clamped sub-scores plus the
// model's free-text reasoning.
type Assessment struct {
	Scores    models.ScoreSet
	Reasoning string
}

// Judge scores one category of QA maturity from a repository excerpt.
// Implementations must be safe for concurrent use.
type Judge interface {
	Assess(ctx context.Context, category models.Category, excerpt string) (*Assessment, error)
}

// AssessmentError wraps a failure to obtain a usable judgment for one
// category.
type AssessmentError struct {
	Category models.Category
	Err      error
}

func (e *AssessmentError) Error() string {
	return fmt.Sprintf("assessing %s: %v", e.Category, e.Err)
}

func (e *AssessmentError) Unwrap() error {
	return e.Err
}
