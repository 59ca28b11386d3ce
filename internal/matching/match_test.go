package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func fullProfile() *ProfileData {
	return &ProfileData{
		Subjects:      []string{"math", "physics"},
		Interests:     []string{"chess"},
		SkillLevel:    strPtr("INTERMEDIATE"),
		StudyStyle:    strPtr("VISUAL"),
		AvailableDays: []string{"Mon", "Wed"},
	}
}

func TestCalculateMatchScoreIdenticalProfiles(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.CalculateMatchScore(fullProfile(), fullProfile(), DefaultWeights())

	require.False(t, result.MatchDataInsufficient)
	require.NotNil(t, result.MatchScore)
	assert.Contains(t, []string{TierLabelGood, TierLabelExcellent}, result.MatchTier)

	foundSubjects := false
	for _, reason := range result.MatchReasons {
		if reason == "You share 2 subjects: math, physics" {
			foundSubjects = true
		}
	}
	assert.True(t, foundSubjects, "reasons must mention the shared subjects, got %v", result.MatchReasons)
}

func TestCalculateMatchScoreSparseProfile(t *testing.T) {
	engine := NewDefaultEngine()

	sparse := &ProfileData{Age: intPtr(20)}
	result := engine.CalculateMatchScore(sparse, fullProfile(), DefaultWeights())

	assert.True(t, result.MatchDataInsufficient)
	assert.Nil(t, result.MatchScore)
	assert.Equal(t, TierLabelInsufficient, result.MatchTier)
	assert.Empty(t, result.MatchReasons)
	assert.NotEmpty(t, result.MissingFieldsA, "caller needs the missing fields to prompt completion")
	assert.Contains(t, result.MissingFieldsA, "subjects")
}

func TestCalculateMatchScoreNoTopicalFields(t *testing.T) {
	engine := NewDefaultEngine()

	// Three filled fields each, but neither side says what they study.
	a := &ProfileData{
		AvailableDays:  []string{"Mon"},
		AvailableHours: []string{"evening"},
		Timezone:       strPtr("UTC+1"),
	}
	b := &ProfileData{
		AvailableDays: []string{"Mon"},
		SkillLevel:    strPtr("BEGINNER"),
		School:        strPtr("MIT"),
	}

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	assert.True(t, result.MatchDataInsufficient)
	assert.Nil(t, result.MatchScore)
}

func TestCalculateMatchScoreSecondGate(t *testing.T) {
	engine := NewDefaultEngine()

	// Both sides pass the filled-field gate, and one has subjects, but the
	// profiles share no comparable topical component: subjects/interests are
	// only present on one side each, so neither is active.
	a := &ProfileData{
		Subjects:      []string{"math"},
		AvailableDays: []string{"Mon"},
		Timezone:      strPtr("UTC+1"),
	}
	b := &ProfileData{
		Interests:  []string{"chess"},
		SkillLevel: strPtr("BEGINNER"),
		School:     strPtr("MIT"),
	}

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	assert.True(t, result.MatchDataInsufficient)
}

func TestCalculateMatchScoreInactiveComponentsExcluded(t *testing.T) {
	engine := NewDefaultEngine()

	a := fullProfile()
	b := fullProfile()
	a.Languages = []string{"english"} // only one side has languages

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	require.NotNil(t, result.MatchScore)

	languages := result.ComponentScores[ComponentLanguages]
	require.NotNil(t, languages)
	assert.False(t, languages.BothHaveData)
	assert.Equal(t, 0.0, languages.Score)
	assert.Equal(t, DefaultWeights().Languages, languages.Weight, "weight is preserved on inactive components")

	// A field only one side filled must not drag the score down.
	base := engine.CalculateMatchScore(fullProfile(), fullProfile(), DefaultWeights())
	assert.Equal(t, *base.MatchScore, *result.MatchScore)
}

func TestCalculateMatchScoreConfidenceAdjustment(t *testing.T) {
	engine := NewDefaultEngine()

	// Exactly two active components (subjects + interests), both perfect.
	a := &ProfileData{
		Subjects:   []string{"math"},
		Interests:  []string{"chess"},
		SkillLevel: strPtr("BEGINNER"),
	}
	b := &ProfileData{
		Subjects:  []string{"math"},
		Interests: []string{"chess"},
		School:    strPtr("MIT"),
	}

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	require.NotNil(t, result.MatchScore)

	// raw 100, two active components: factor 0.85 + 0.05*2 = 0.95.
	assert.Equal(t, 95, *result.MatchScore)
}

func TestCalculateMatchScoreFullConfidenceAtThreeActive(t *testing.T) {
	engine := NewDefaultEngine()

	// Three active components: the factor formula reaches exactly 1.0.
	a := &ProfileData{
		Subjects:  []string{"math"},
		Interests: []string{"chess"},
		Goals:     []string{"pass finals"},
	}
	b := &ProfileData{
		Subjects:  []string{"math"},
		Interests: []string{"chess"},
		Goals:     []string{"pass finals"},
	}

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	require.NotNil(t, result.MatchScore)
	assert.Equal(t, 100, *result.MatchScore)
}

func TestCalculateMatchScoreWeightOverride(t *testing.T) {
	engine := NewDefaultEngine()

	a := &ProfileData{
		Subjects:  []string{"math"},
		Interests: []string{"running"},
		Goals:     []string{"exam prep"},
	}
	b := &ProfileData{
		Subjects:  []string{"math"},
		Interests: []string{"chess"},
		Goals:     []string{"have fun"},
	}

	// With subjects weighted to near-exclusivity the perfect subject match
	// should dominate the two mismatched components.
	heavy := DefaultWeights()
	heavy.Subjects = 10

	defaultResult := engine.CalculateMatchScore(a, b, DefaultWeights())
	heavyResult := engine.CalculateMatchScore(a, b, heavy)
	require.NotNil(t, defaultResult.MatchScore)
	require.NotNil(t, heavyResult.MatchScore)
	assert.Greater(t, *heavyResult.MatchScore, *defaultResult.MatchScore)
}

func TestCalculateMatchScoreReasonsRankedAndCapped(t *testing.T) {
	engine := NewDefaultEngine()

	profile := &ProfileData{
		Subjects:       []string{"math"},
		Interests:      []string{"chess"},
		Goals:          []string{"exam prep"},
		AvailableDays:  []string{"Mon"},
		AvailableHours: []string{"evening"},
		Languages:      []string{"english"},
		SkillLevel:     strPtr("ADVANCED"),
		StudyStyle:     strPtr("VISUAL"),
		School:         strPtr("MIT"),
		Timezone:       strPtr("UTC-5"),
		Role:           strPtr("student"),
	}

	result := engine.CalculateMatchScore(profile, profile, DefaultWeights())
	require.NotNil(t, result.MatchScore)
	assert.LessOrEqual(t, len(result.MatchReasons), 5)
	// Subjects carry the heaviest weight, so they lead the explanation.
	require.NotEmpty(t, result.MatchReasons)
	assert.Equal(t, "You share 1 subjects: math", result.MatchReasons[0])
}

func TestCalculateMatchScoreTiers(t *testing.T) {
	tests := []struct {
		score int
		tier  string
	}{
		{100, TierLabelExcellent},
		{85, TierLabelExcellent},
		{84, TierLabelGood},
		{70, TierLabelGood},
		{69, TierLabelFair},
		{50, TierLabelFair},
		{49, TierLabelLow},
		{0, TierLabelLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.tier, tierForScore(tt.score), "score %d", tt.score)
	}
}

func TestCalculateMatchScoreSummary(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.CalculateMatchScore(fullProfile(), fullProfile(), DefaultWeights())
	require.NotNil(t, result.Summary)

	assert.Equal(t, 5, result.Summary.TotalComponents)
	assert.Equal(t, 5, result.Summary.MatchedComponents)
	assert.LessOrEqual(t, len(result.Summary.TopReasons), 3)
	assert.LessOrEqual(t, len(result.Summary.YourMissingFields), 3)
	assert.NotEmpty(t, result.Summary.Compatibility)
}

func TestCalculateMatchScoreDoesNotMutateInput(t *testing.T) {
	engine := NewDefaultEngine()

	a := fullProfile()
	b := fullProfile()
	engine.CalculateMatchScore(a, b, DefaultWeights())

	assert.Equal(t, fullProfile(), a)
	assert.Equal(t, fullProfile(), b)
}

func TestCalculateMatchScoreSynonymReason(t *testing.T) {
	engine := NewDefaultEngine()

	a := fullProfile()
	b := fullProfile()
	a.Subjects = []string{"math"}
	b.Subjects = []string{"calculus"}

	result := engine.CalculateMatchScore(a, b, DefaultWeights())
	require.NotNil(t, result.MatchScore)

	subjects := result.ComponentScores[ComponentSubjects]
	require.NotNil(t, subjects)
	assert.InDelta(t, SynonymMatchWeight, subjects.Score, 1e-9)
	assert.Contains(t, subjects.MatchItems, "math")
}
