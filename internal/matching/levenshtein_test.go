package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		s1       string
		s2       string
		expected float64
	}{
		{"identical", "hello", "hello", 1},
		{"empty vs non-empty", "", "x", 0},
		{"both empty", "", "", 1},
		{"case insensitive", "Hello", "HELLO", 1},
		{"substring shortcut", "math", "mathematics", 4.0 / 11.0},
		{"one edit", "chemistry", "chemistri", 1 - 1.0/9.0},
		{"completely different", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.s1, tt.s2), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	assert.Equal(t, Similarity("physics", "physic"), Similarity("physic", "physics"))
	assert.Equal(t, Similarity("biology", "geology"), Similarity("geology", "biology"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"classic kitten", "kitten", "sitting", 3},
		{"empty left", "", "abc", 3},
		{"empty right", "abc", "", 3},
		{"equal", "same", "same", 0},
		{"single substitution", "cat", "car", 1},
		{"unicode runes", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b))
		})
	}
}
