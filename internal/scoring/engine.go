// Package scoring turns per-category AI assessment scores and repository
// signals into an overall maturity score, a level, a verdict with a
// human-readable justification, and strength/improvement insights. Every
// function here is pure: no I/O, no shared state.
package scoring

import (
	"fmt"
	"strings"

	"github.com/repograde/repograde/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Engine evaluates category averages and signals against one fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine validates the config and returns a ready engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Aggregate combines category averages (each 0-10) into a 0-100 overall
// score: weighted sum scaled by 10 and truncated, not rounded. A weighted
// category missing from the input is a ConfigurationError. Summation runs in
// canonical category order so float association cannot flip a borderline
// truncation between runs.
func (e *Engine) Aggregate(averages map[models.Category]float64) (int, error) {
	weighted := 0.0
	for _, cat := range models.Categories() {
		weight, ok := e.cfg.Weights[cat]
		if !ok {
			continue
		}
		avg, ok := averages[cat]
		if !ok {
			return 0, configErrorf("weighted category %q missing from category averages", cat)
		}
		weighted += avg * weight
	}
	return int(weighted * 10), nil
}

// Classify maps an overall score to its maturity level using descending
// threshold lookup. Boundary scores belong to the higher level. The zero
// threshold guarantees a fallback, so Classify never fails.
func (e *Engine) Classify(overallScore int) models.Level {
	for _, lt := range e.cfg.Levels {
		if overallScore >= lt.Min {
			return lt.Level
		}
	}
	return e.cfg.Levels[len(e.cfg.Levels)-1].Level
}

// Decide determines the final verdict and its justification.
//
// A score below the conditional threshold fails outright. Otherwise the
// starting verdict is taken from the score band and each minimum-requirement
// check may append a reason and downgrade PASS to CONDITIONAL_PASS; a
// CONDITIONAL_PASS is never downgraded further by these checks.
func (e *Engine) Decide(averages map[models.Category]float64, overallScore int, signals models.RepositorySignals) (models.Verdict, string, error) {
	var reasons []string
	var verdict models.Verdict

	switch {
	case overallScore >= e.cfg.PassScore:
		verdict = models.VerdictPass
	case overallScore >= e.cfg.ConditionalScore:
		verdict = models.VerdictConditionalPass
	default:
		verdict = models.VerdictFail
		reasons = append(reasons, fmt.Sprintf("Overall QA score (%d) is below minimum threshold", overallScore))
	}

	if verdict != models.VerdictFail {
		req := e.cfg.Requirements[verdict]

		downgrade := func() {
			if verdict == models.VerdictPass {
				verdict = models.VerdictConditionalPass
			}
		}

		if signals.TestFileCount < req.MinTestFiles {
			reasons = append(reasons, fmt.Sprintf("Insufficient test files (%d < %d)", signals.TestFileCount, req.MinTestFiles))
			downgrade()
		}

		if signals.CommitCount < req.MinCommitCount {
			reasons = append(reasons, fmt.Sprintf("Insufficient commit history (%d < %d)", signals.CommitCount, req.MinCommitCount))
			downgrade()
		}

		for _, cat := range req.RequiredCategories {
			avg, ok := averages[cat]
			if !ok {
				return "", "", configErrorf("%s requirement references category %q not present in category averages", verdict, cat)
			}
			if avg < req.MinCategoryScore {
				reasons = append(reasons, fmt.Sprintf("Low %s score (%.1f)", cat, avg))
				downgrade()
			}
		}
	}

	reason := buildReason(verdict, reasons, overallScore)
	return verdict, reason, nil
}

func buildReason(verdict models.Verdict, reasons []string, overallScore int) string {
	if len(reasons) == 0 {
		switch verdict {
		case models.VerdictPass:
			return fmt.Sprintf("Strong QA skills demonstrated across all areas (Score: %d)", overallScore)
		default:
			return fmt.Sprintf("Good QA foundation with room for improvement (Score: %d)", overallScore)
		}
	}

	reason := strings.Join(reasons, "; ")
	if verdict == models.VerdictConditionalPass {
		reason += fmt.Sprintf(" (Score: %d)", overallScore)
	}
	return reason
}

// Insight thresholds: a category average at or above the strength threshold
// is a strength, below the improvement threshold an improvement area, and
// anything in between produces neither.
const (
	strengthThreshold    = 7.5
	improvementThreshold = 5.0
)

// Fixed labels for signal-derived insights.
const (
	insightNoTests         = "Test Coverage - No test files found"
	insightHighTestRatio   = "High Test Coverage Ratio"
	insightMultiFrameworks = "Multiple Testing Frameworks"
	insightNoFrameworks    = "Testing Framework Usage"
	insightFewCommits      = "Version Control Practices"
	insightActiveHistory   = "Active Development History"
)

// highTestRatio is the test-file share above which coverage counts as a
// strength.
const highTestRatio = 0.3

var titleCaser = cases.Title(language.English)

// humanizeCategory turns "test_automation" into "Test Automation".
func humanizeCategory(cat models.Category) string {
	return titleCaser.String(strings.ReplaceAll(cat.String(), "_", " "))
}

// Insights derives strength and improvement labels from category averages
// and repository signals. Categories are visited in canonical order, then
// the signal-derived insights in a fixed order. No deduplication is done;
// the label spaces are disjoint in practice.
func (e *Engine) Insights(averages map[models.Category]float64, signals models.RepositorySignals) (strengths, improvements []string) {
	strengths = []string{}
	improvements = []string{}

	for _, cat := range models.Categories() {
		avg, ok := averages[cat]
		if !ok {
			continue
		}
		switch {
		case avg >= strengthThreshold:
			strengths = append(strengths, humanizeCategory(cat))
		case avg < improvementThreshold:
			improvements = append(improvements, humanizeCategory(cat))
		}
	}

	if signals.TestFileCount == 0 {
		improvements = append(improvements, insightNoTests)
	} else if ratio, ok := signals.TestRatio(); ok && ratio > highTestRatio {
		strengths = append(strengths, insightHighTestRatio)
	}

	if len(signals.TestFrameworks) >= 2 {
		strengths = append(strengths, insightMultiFrameworks)
	} else if len(signals.TestFrameworks) == 0 {
		improvements = append(improvements, insightNoFrameworks)
	}

	if signals.CommitCount < 5 {
		improvements = append(improvements, insightFewCommits)
	} else if signals.CommitCount > 50 {
		strengths = append(strengths, insightActiveHistory)
	}

	return strengths, improvements
}
