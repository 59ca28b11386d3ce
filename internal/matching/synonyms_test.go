package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandKnownSubject(t *testing.T) {
	idx := DefaultSynonymIndex()

	expanded := idx.Expand("math")
	assert.True(t, expanded["math"], "term itself is always included")
	assert.True(t, expanded["mathematics"], "canonical key joins the expansion")
	assert.True(t, expanded["calculus"], "whole family joins the expansion")
	assert.True(t, expanded["algebra"])
}

func TestExpandNormalizesInput(t *testing.T) {
	idx := DefaultSynonymIndex()

	expanded := idx.Expand("  MATH  ")
	assert.True(t, expanded["mathematics"])
	assert.False(t, expanded["  MATH  "])
}

func TestExpandUnknownTerm(t *testing.T) {
	idx := DefaultSynonymIndex()

	expanded := idx.Expand("underwater basket weaving")
	assert.True(t, expanded["underwater basket weaving"])
	assert.Len(t, expanded, 1)
}

func TestExpandBlankTerm(t *testing.T) {
	idx := DefaultSynonymIndex()
	assert.Empty(t, idx.Expand("   "))
}

func TestExpandCrossesCategoryBoundaries(t *testing.T) {
	// The merged-index scan lets one term pull in families from more than
	// one thesaurus. "pro" is a synonym of the expert skill level, and is
	// also contained in "probability" and "programming", so the math and
	// computer-science families ride along.
	idx := DefaultSynonymIndex()

	expanded := idx.Expand("pro")
	assert.True(t, expanded["expert"])
	assert.True(t, expanded["mathematics"])
	assert.True(t, expanded["computer science"])
}

func TestExpandWithCustomTables(t *testing.T) {
	idx := NewSynonymIndex(
		map[string][]string{"alchemy": {"transmutation", "Philosophy of Matter"}},
		nil,
		nil,
	)

	expanded := idx.Expand("transmutation")
	assert.True(t, expanded["alchemy"])
	assert.True(t, expanded["philosophy of matter"], "synonyms are normalized at build time")
}

func TestExpandMany(t *testing.T) {
	idx := DefaultSynonymIndex()

	expanded := idx.ExpandMany([]string{"math", "physics"})
	assert.True(t, expanded["mathematics"])
	assert.True(t, expanded["mechanics"])

	single := idx.Expand("math")
	for term := range single {
		assert.True(t, expanded[term], "union must contain every per-term expansion")
	}
}
