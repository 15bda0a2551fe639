package scoring

import (
	"math"
	"sort"

	"github.com/repograde/repograde/internal/models"
)

// weightSumTolerance absorbs float accumulation noise when checking that
// category weights sum to 1.0.
const weightSumTolerance = 1e-9

// LevelThreshold maps a minimum overall score to a maturity level.
type LevelThreshold struct {
	Level models.Level `yaml:"level"`
	Min   int          `yaml:"min"`
}

// Requirement is the minimum bar a repository must clear to keep a verdict
// from being downgraded.
type Requirement struct {
	MinTestFiles       int               `yaml:"min_test_files"`
	MinCommitCount     int               `yaml:"min_commit_count"`
	RequiredCategories []models.Category `yaml:"required_categories"`
	MinCategoryScore   float64           `yaml:"min_category_score"`
}

// Config carries every scoring constant as injectable state, so tests and
// deployments can substitute alternative weight/threshold sets.
type Config struct {
	// Weights is the aggregation weight per weighted category. Weights must
	// sum to 1.0. Categories may be tracked without being weighted:
	// repository_structure is assessed and drives verdict requirements but
	// carries no aggregate weight.
	Weights map[models.Category]float64 `yaml:"weights"`

	// Levels are descending score thresholds; the first satisfied wins.
	Levels []LevelThreshold `yaml:"levels"`

	// PassScore and ConditionalScore are the verdict entry thresholds.
	PassScore        int `yaml:"pass_score"`
	ConditionalScore int `yaml:"conditional_score"`

	Requirements map[models.Verdict]Requirement `yaml:"requirements"`
}

// Default returns the standard scoring configuration.
func Default() Config {
	return Config{
		Weights: map[models.Category]float64{
			models.CategoryTestAutomation:  0.30,
			models.CategoryTechnicalSkills: 0.25,
			models.CategoryQualityProcess:  0.25,
			models.CategoryCIPipeline:      0.20,
		},
		Levels: []LevelThreshold{
			{Level: models.LevelExpert, Min: 85},
			{Level: models.LevelAdvanced, Min: 70},
			{Level: models.LevelIntermediate, Min: 50},
			{Level: models.LevelBeginner, Min: 0},
		},
		PassScore:        70,
		ConditionalScore: 50,
		Requirements: map[models.Verdict]Requirement{
			models.VerdictPass: {
				MinTestFiles:   5,
				MinCommitCount: 10,
				RequiredCategories: []models.Category{
					models.CategoryTestAutomation,
					models.CategoryRepositoryStructure,
				},
				MinCategoryScore: 6.0,
			},
			models.VerdictConditionalPass: {
				MinTestFiles:       3,
				MinCommitCount:     5,
				RequiredCategories: []models.Category{models.CategoryTestAutomation},
				MinCategoryScore:   4.0,
			},
		},
	}
}

// Validate checks the configuration invariants. All failures are
// ConfigurationError values.
func (c Config) Validate() error {
	if len(c.Weights) == 0 {
		return configErrorf("no category weights configured")
	}

	sum := 0.0
	for cat, w := range c.Weights {
		if !cat.Valid() {
			return configErrorf("weight references unknown category %q", cat)
		}
		if w < 0 {
			return configErrorf("category %q has negative weight %v", cat, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return configErrorf("category weights sum to %v, want 1.0", sum)
	}

	if len(c.Levels) == 0 {
		return configErrorf("no level thresholds configured")
	}
	if !sort.SliceIsSorted(c.Levels, func(i, j int) bool {
		return c.Levels[i].Min > c.Levels[j].Min
	}) {
		return configErrorf("level thresholds must be in descending score order")
	}
	if c.Levels[len(c.Levels)-1].Min != 0 {
		return configErrorf("lowest level threshold must be 0 so every score classifies")
	}

	if c.ConditionalScore >= c.PassScore {
		return configErrorf("conditional score (%d) must be below pass score (%d)", c.ConditionalScore, c.PassScore)
	}

	for verdict, req := range c.Requirements {
		for _, cat := range req.RequiredCategories {
			if !cat.Valid() {
				return configErrorf("%s requirement references unknown category %q", verdict, cat)
			}
		}
	}

	return nil
}
