// internal/matching/weights.go
// Weight table and tuning constants for the match aggregator.
// The weights are passed by value into CalculateMatchScore so callers can
// override them per call without touching a shared default.

package matching

// Engine constants. These are part of the behavioral contract and should not
// be changed without re-validating scores against recorded match results.
const (
	// MinFieldsForMatching is the minimum number of qualifying profile
	// fields each side must have before a score is attempted.
	MinFieldsForMatching = 3

	// MaxLocationDistanceKm is the distance beyond which location
	// contributes nothing.
	MaxLocationDistanceKm = 500.0

	// SynonymMatchWeight is the value of a synonym-mediated tag match
	// relative to a direct one.
	SynonymMatchWeight = 0.7

	// Tier cutoffs on the final 0-100 score.
	TierExcellent = 85
	TierGood      = 70
	TierFair      = 50

	// MinActiveComponents is the second-gate floor: fewer active
	// components than this yields an insufficient-data result.
	MinActiveComponents = 2

	// fullConfidenceComponents is the active-component count at which no
	// confidence penalty applies. Note the factor formula already reaches
	// 1.0 at 3 active components; the threshold is kept at 4 to match the
	// documented intent.
	fullConfidenceComponents = 4

	maxMatchReasons = 5
)

// Match tier labels.
const (
	TierLabelExcellent    = "excellent"
	TierLabelGood         = "good"
	TierLabelFair         = "fair"
	TierLabelLow          = "low"
	TierLabelInsufficient = "insufficient"
)

// Weights is the per-component weight table. The default sums to 1.00 but
// that is not required: the aggregator renormalizes over active components.
type Weights struct {
	Subjects            float64 `json:"subjects"`
	Interests           float64 `json:"interests"`
	Goals               float64 `json:"goals"`
	AvailableDays       float64 `json:"available_days"`
	AvailableHours      float64 `json:"available_hours"`
	SkillLevel          float64 `json:"skill_level"`
	Location            float64 `json:"location"`
	Languages           float64 `json:"languages"`
	Role                float64 `json:"role"`
	StudyStyle          float64 `json:"study_style"`
	StrengthsWeaknesses float64 `json:"strengths_weaknesses"`
	School              float64 `json:"school"`
	Timezone            float64 `json:"timezone"`
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Subjects:            0.24,
		Interests:           0.15,
		Goals:               0.12,
		AvailableDays:       0.09,
		AvailableHours:      0.06,
		SkillLevel:          0.06,
		Location:            0.06,
		Languages:           0.06,
		Role:                0.04,
		StudyStyle:          0.04,
		StrengthsWeaknesses: 0.03,
		School:              0.03,
		Timezone:            0.02,
	}
}
