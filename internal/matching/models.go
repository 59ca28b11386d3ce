// internal/matching/models.go
// Data structures for the partner matching and smart search engine.
// Everything in this package is a plain value object: the engine never
// mutates its inputs and never talks to storage or the network.

package matching

import "time"

// ProfileData is the read-only input to the matching engine. Every field is
// optional; a field counts as "present" only when it is non-nil, non-blank
// after trimming and, for slices, holds at least one non-blank element.
type ProfileData struct {
	// Set-valued attributes (order-irrelevant, compared case-insensitively)
	Subjects       []string `json:"subjects,omitempty" db:"subjects"`
	Interests      []string `json:"interests,omitempty" db:"interests"`
	Goals          []string `json:"goals,omitempty" db:"goals"`
	AvailableDays  []string `json:"available_days,omitempty" db:"available_days"`
	AvailableHours []string `json:"available_hours,omitempty" db:"available_hours"`
	Languages      []string `json:"languages,omitempty" db:"languages"`
	Strengths      []string `json:"strengths,omitempty" db:"strengths"`
	Weaknesses     []string `json:"weaknesses,omitempty" db:"weaknesses"`

	// Categorical attributes
	SkillLevel *string `json:"skill_level,omitempty" db:"skill_level"` // BEGINNER..EXPERT
	StudyStyle *string `json:"study_style,omitempty" db:"study_style"` // VISUAL..MIXED
	Role       *string `json:"role,omitempty" db:"role"`

	// Scalar text
	School        *string `json:"school,omitempty" db:"school"`
	Timezone      *string `json:"timezone,omitempty" db:"timezone"`
	Bio           *string `json:"bio,omitempty" db:"bio"`
	AboutYourself *string `json:"about_yourself,omitempty" db:"about_yourself"`

	// Numeric
	Age *int `json:"age,omitempty" db:"age"`

	// Geographic
	LocationLat     *float64 `json:"location_lat,omitempty" db:"location_lat"`
	LocationLng     *float64 `json:"location_lng,omitempty" db:"location_lng"`
	LocationCity    *string  `json:"location_city,omitempty" db:"location_city"`
	LocationCountry *string  `json:"location_country,omitempty" db:"location_country"`

	// Metadata
	LastStudyDate       *time.Time `json:"last_study_date,omitempty" db:"last_study_date"`
	IsLookingForPartner *bool      `json:"is_looking_for_partner,omitempty" db:"is_looking_for_partner"`
}

// ComponentScore is the result of comparing one attribute family between two
// profiles. Constructed fresh per comparison, never persisted.
type ComponentScore struct {
	Score         float64  `json:"score"`          // [0,1]
	Weight        float64  `json:"weight"`         // from the weight table
	WeightedScore float64  `json:"weighted_score"` // Score * Weight
	Details       string   `json:"details"`        // human-readable explanation
	MatchItems    []string `json:"match_items"`    // the specific matching values
	BothHaveData  bool     `json:"both_have_data"` // false means the component is inactive
}

// MatchDetail restates one component in a fixed, UI-friendly shape.
type MatchDetail struct {
	Score      int      `json:"score"` // percentage 0-100
	Items      []string `json:"items"`
	ItemCount  int      `json:"item_count"`
	HasData    bool     `json:"has_data"`
	Details    string   `json:"details"`
}

// MatchSummary is the coarse, human-facing digest of a match result.
type MatchSummary struct {
	MatchedComponents  int      `json:"matched_components"`
	TotalComponents    int      `json:"total_components"`
	TopReasons         []string `json:"top_reasons"`
	YourMissingFields  []string `json:"your_missing_fields"`
	TheirMissingFields []string `json:"their_missing_fields"`
	Compatibility      string   `json:"compatibility"`
}

// MatchResult is the aggregate output of CalculateMatchScore for one ordered
// pair of profiles. MatchScore is nil when there is not enough data to score.
type MatchResult struct {
	MatchScore            *int                       `json:"match_score"`
	MatchDataInsufficient bool                       `json:"match_data_insufficient"`
	MatchReasons          []string                   `json:"match_reasons"`
	MatchDetails          map[string]MatchDetail     `json:"match_details"`
	ComponentScores       map[string]*ComponentScore `json:"component_scores"`
	MatchTier             string                     `json:"match_tier"` // excellent | good | fair | low | insufficient
	MissingFieldsA        []string                   `json:"missing_fields_a"`
	MissingFieldsB        []string                   `json:"missing_fields_b"`
	Summary               *MatchSummary              `json:"summary"`
}

// SmartJaccardResult carries the synonym-aware similarity between two tag
// sets, distinguishing exact overlaps from thesaurus-mediated ones.
type SmartJaccardResult struct {
	Score          float64  `json:"score"`
	DirectMatches  []string `json:"direct_matches"`
	SynonymMatches []string `json:"synonym_matches"`
}

// LocationScore is the result of the geographic proximity scorer.
type LocationScore struct {
	Score       float64 `json:"score"`
	DistanceKm  float64 `json:"distance_km"`
	SameCity    bool    `json:"same_city"`
	SameCountry bool    `json:"same_country"`
}

// TimezoneScore is the result of the timezone proximity scorer.
type TimezoneScore struct {
	Score       float64 `json:"score"`
	OffsetHours float64 `json:"offset_hours"`
}

// SearchResult is the outcome of SmartSearch against one candidate entity.
type SearchResult struct {
	Matches      bool     `json:"matches"`
	Score        int      `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
}

// SearchableEntity is the field bundle RelevanceScore ranks against.
type SearchableEntity struct {
	Name              string   `json:"name"`
	Subject           string   `json:"subject"`
	Description       string   `json:"description"`
	CustomDescription string   `json:"custom_description"`
	SkillLevel        string   `json:"skill_level"`
	Tags              []string `json:"tags"`
}

// ScoredCandidate pairs a profile with its computed match score for the
// selection utilities. Score is nil for insufficient-data results and sorts
// below every real score.
type ScoredCandidate struct {
	UserID  int64        `json:"user_id"`
	Profile *ProfileData `json:"profile,omitempty"`
	Score   *int         `json:"score"`
	Result  *MatchResult `json:"result,omitempty"`
}
