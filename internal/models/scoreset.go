package models

import "encoding/json"

const (
	// SubScoreMin and SubScoreMax bound every individual sub-score. Values
	// outside the range are clamped at construction, never rejected, since
	// the judge's output carries no hard guarantee of staying in bounds.
	SubScoreMin = 0
	SubScoreMax = 10
)

// ScoreSet holds the five sub-scores for one category. Construct it with
// NewScoreSet so that every dimension is present and in range; a zero-value
// ScoreSet has no category and averages to 0.
type ScoreSet struct {
	Category Category
	values   map[string]int
}

// NewScoreSet builds a ScoreSet for the given category from a raw
// dimension-to-value mapping. Missing dimensions default to 0, unknown
// dimensions are dropped, and values are clamped to [0, 10].
func NewScoreSet(category Category, raw map[string]int) ScoreSet {
	dims := category.Dimensions()
	values := make(map[string]int, len(dims))
	for _, dim := range dims {
		values[dim] = clampSubScore(raw[dim])
	}
	return ScoreSet{Category: category, values: values}
}

func clampSubScore(v int) int {
	if v < SubScoreMin {
		return SubScoreMin
	}
	if v > SubScoreMax {
		return SubScoreMax
	}
	return v
}

// Value returns the sub-score for a dimension, 0 when the dimension is not
// part of the category.
func (s ScoreSet) Value(dimension string) int {
	return s.values[dimension]
}

// Average returns the arithmetic mean of the category's sub-scores in [0, 10].
func (s ScoreSet) Average() float64 {
	dims := s.Category.Dimensions()
	if len(dims) == 0 {
		return 0
	}
	sum := 0
	for _, dim := range dims {
		sum += s.values[dim]
	}
	return float64(sum) / float64(len(dims))
}

// MarshalJSON exports the sub-scores as an object keyed by dimension name,
// matching the shape downstream reporters consume.
func (s ScoreSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(s.Category.Dimensions()))
	for _, dim := range s.Category.Dimensions() {
		out[dim] = s.values[dim]
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a ScoreSet's values from an exported object. The
// category is not part of the serialized form and must be set by the caller.
func (s *ScoreSet) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.values = make(map[string]int, len(raw))
	for k, v := range raw {
		s.values[k] = clampSubScore(v)
	}
	return nil
}

// normalize re-derives the value map against the category's dimension list.
// Used after deserialization, where UnmarshalJSON cannot know the category.
func (s *ScoreSet) normalize() {
	*s = NewScoreSet(s.Category, s.values)
}

// CategoryAverages computes the per-category average for every tracked
// category in the given set collection.
func CategoryAverages(sets map[Category]ScoreSet) map[Category]float64 {
	avgs := make(map[Category]float64, len(sets))
	for cat, set := range sets {
		avgs[cat] = set.Average()
	}
	return avgs
}
