package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{"both empty", []string{}, []string{}, 0},
		{"identical single", []string{"math"}, []string{"math"}, 1},
		{"case insensitive", []string{"Math"}, []string{"MATH"}, 1},
		{"disjoint", []string{"math"}, []string{"history"}, 0},
		{"half overlap", []string{"math", "physics"}, []string{"math", "history"}, 1.0 / 3.0},
		{"one side empty", []string{"math"}, []string{}, 0},
		{"duplicates collapse", []string{"math", "math"}, []string{"math"}, 1},
		{"blank elements ignored", []string{"  ", "math"}, []string{"math"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	pairs := [][2][]string{
		{{"math", "physics"}, {"math"}},
		{{"a", "b", "c"}, {"c", "d"}},
		{{}, {"x"}},
	}
	for _, pair := range pairs {
		assert.Equal(t, Jaccard(pair[0], pair[1]), Jaccard(pair[1], pair[0]))
	}
}

func TestSmartJaccardDirectMatches(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.SmartJaccard([]string{"math", "physics"}, []string{"math", "chemistry"})
	assert.Equal(t, []string{"math"}, result.DirectMatches)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
}

func TestSmartJaccardSynonymMatch(t *testing.T) {
	engine := NewDefaultEngine()

	// "calculus" is listed under "mathematics", which "math" also expands
	// to, so the terms meet through the thesaurus without matching directly.
	result := engine.SmartJaccard([]string{"math"}, []string{"calculus"})
	assert.Empty(t, result.DirectMatches)
	assert.Contains(t, result.SynonymMatches, "math")
	assert.Greater(t, result.Score, 0.0)
	assert.InDelta(t, SynonymMatchWeight, result.Score, 1e-9)
}

func TestSmartJaccardBothEmpty(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.SmartJaccard(nil, nil)
	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.DirectMatches)
	assert.Empty(t, result.SynonymMatches)
}

func TestSmartJaccardLargerSetDenominator(t *testing.T) {
	engine := NewDefaultEngine()

	// A fully-contained small set must not score a perfect match.
	result := engine.SmartJaccard(
		[]string{"history"},
		[]string{"history", "geography", "economics", "philosophy"},
	)
	assert.InDelta(t, 0.25, result.Score, 1e-9)
}

func TestSmartJaccardScoreCapped(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.SmartJaccard([]string{"math", "physics"}, []string{"math", "physics"})
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected []string
	}{
		{"preserves a casing", []string{"Math", "Physics"}, []string{"math"}, []string{"Math"}},
		{"no overlap", []string{"math"}, []string{"history"}, []string{}},
		{"dedupes", []string{"math", "MATH"}, []string{"math"}, []string{"math"}},
		{"trims for display", []string{"  Math  "}, []string{"math"}, []string{"Math"}},
		{"empty inputs", nil, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Intersection(tt.a, tt.b))
		})
	}
}
