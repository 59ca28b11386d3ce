package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillLevelCloseness(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"equal", "BEGINNER", "BEGINNER", 1},
		{"adjacent", "BEGINNER", "INTERMEDIATE", 0.7},
		{"two apart", "BEGINNER", "ADVANCED", 0.4},
		{"three apart", "BEGINNER", "EXPERT", 0},
		{"case insensitive", "beginner", "Beginner", 1},
		{"unrecognized", "WIZARD", "BEGINNER", 0},
		{"empty", "", "BEGINNER", 0},
		{"symmetric", "EXPERT", "ADVANCED", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SkillLevelCloseness(tt.a, tt.b), 1e-9)
		})
	}
}

func TestStudyStyleCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical", "VISUAL", "VISUAL", 1},
		{"compatible pair", "VISUAL", "MIXED", 0.7},
		{"compatible pair 2", "VISUAL", "READING_WRITING", 0.7},
		{"different but workable", "VISUAL", "AUDITORY", 0.3},
		{"empty side", "", "VISUAL", 0},
		{"lowercase input", "visual", "mixed", 0.7},
		{"solo and independent", "SOLO", "INDEPENDENT", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StudyStyleCompatibility(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLocationProximitySameCity(t *testing.T) {
	// Same city short-circuits everything, even wildly different coordinates.
	lat1, lng1 := 40.7128, -74.0060
	lat2, lng2 := 51.5074, -0.1278

	loc := LocationProximity(&lat1, &lng1, &lat2, &lng2, "Lagos", "lagos", "Nigeria", "Nigeria")
	assert.Equal(t, 1.0, loc.Score)
	assert.Equal(t, 0.0, loc.DistanceKm)
	assert.True(t, loc.SameCity)
	assert.True(t, loc.SameCountry)
}

func TestLocationProximityDistanceTiers(t *testing.T) {
	tests := []struct {
		name     string
		lat2     float64
		lng2     float64
		expected float64
	}{
		{"same point", 6.5244, 3.3792, 0.9},
		{"within 50km", 6.60, 3.40, 0.9},
		{"roughly 80km away", 7.15, 3.35, 0.7},
		{"roughly 150km away", 7.80, 3.90, 0.5},
		{"beyond 500km", 12.0, 9.0, 0},
	}

	lat1, lng1 := 6.5244, 3.3792 // Lagos
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := LocationProximity(&lat1, &lng1, &tt.lat2, &tt.lng2, "Lagos", "Ibadan", "", "")
			assert.InDelta(t, tt.expected, loc.Score, 1e-9)
		})
	}
}

func TestLocationProximityLinearTail(t *testing.T) {
	// Between 200 and 500 km the score decays linearly from 0.3 to 0.
	lat1, lng1 := 0.0, 0.0
	lat2, lng2 := 0.0, 3.147 // ~350 km along the equator

	loc := LocationProximity(&lat1, &lng1, &lat2, &lng2, "", "", "", "")
	assert.Greater(t, loc.Score, 0.0)
	assert.Less(t, loc.Score, 0.3)
	assert.InDelta(t, 350, loc.DistanceKm, 5)
}

func TestLocationProximityCountryFallback(t *testing.T) {
	loc := LocationProximity(nil, nil, nil, nil, "Lagos", "Abuja", "Nigeria", "NIGERIA")
	assert.Equal(t, 0.4, loc.Score)
	assert.True(t, loc.SameCountry)
	assert.False(t, loc.SameCity)
}

func TestLocationProximityNoData(t *testing.T) {
	loc := LocationProximity(nil, nil, nil, nil, "", "", "", "")
	assert.Equal(t, 0.0, loc.Score)
}

func TestTimezoneProximity(t *testing.T) {
	tests := []struct {
		name          string
		tz1           string
		tz2           string
		expectedScore float64
	}{
		{"identical", "Africa/Lagos", "Africa/Lagos", 1},
		{"identical offsets", "UTC+5", "GMT+5", 1 - 0.0/12},
		{"three hours apart", "UTC+2", "UTC+5", 1 - 3.0/12},
		{"opposite sides", "UTC-6", "UTC+6", 0},
		{"unparseable neutral", "Eastern", "UTC+1", 0.5},
		{"both unparseable", "Eastern", "Pacific", 0.5},
		{"negative offsets", "UTC-5", "UTC-8", 1 - 3.0/12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := TimezoneProximity(tt.tz1, tt.tz2)
			assert.InDelta(t, tt.expectedScore, tz.Score, 1e-9)
		})
	}
}

func TestExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, ExactMatch("MIT", "mit"))
	assert.Equal(t, 1.0, ExactMatch("  MIT ", "MIT"))
	assert.Equal(t, 0.0, ExactMatch("MIT", "Harvard"))
	assert.Equal(t, 0.0, ExactMatch("", "MIT"))
}
