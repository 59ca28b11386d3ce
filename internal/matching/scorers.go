// internal/matching/scorers.go
// Independent per-attribute scorers. Each returns a score in [0,1] and
// degrades to 0 (or a documented neutral value) on absent or unrecognized
// input rather than erroring.

package matching

import (
	"math"
	"strconv"
	"strings"
)

// skillLevelRanks maps the recognized levels to ordinal positions.
var skillLevelRanks = map[string]int{
	"BEGINNER":     0,
	"INTERMEDIATE": 1,
	"ADVANCED":     2,
	"EXPERT":       3,
}

// SkillLevelCloseness scores ordinal distance between two skill levels:
// equal 1.0, adjacent 0.7, two apart 0.4, three apart or unrecognized 0.
func SkillLevelCloseness(a, b string) float64 {
	rankA, okA := skillLevelRanks[strings.ToUpper(strings.TrimSpace(a))]
	rankB, okB := skillLevelRanks[strings.ToUpper(strings.TrimSpace(b))]
	if !okA || !okB {
		return 0
	}

	switch gap := absInt(rankA - rankB); gap {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0
	}
}

// studyStyleCompatible lists, per style, the other styles that pair well
// with it. Hand-authored; identical styles score 1.0 before this is
// consulted and anything absent from the list scores 0.3.
var studyStyleCompatible = map[string][]string{
	"VISUAL":          {"MIXED", "READING_WRITING"},
	"AUDITORY":        {"MIXED", "COLLABORATIVE"},
	"KINESTHETIC":     {"MIXED", "COLLABORATIVE"},
	"READING_WRITING": {"MIXED", "VISUAL", "INDEPENDENT"},
	"COLLABORATIVE":   {"MIXED", "AUDITORY", "KINESTHETIC"},
	"INDEPENDENT":     {"MIXED", "READING_WRITING", "SOLO"},
	"SOLO":            {"MIXED", "INDEPENDENT"},
	"MIXED":           {"VISUAL", "AUDITORY", "KINESTHETIC", "READING_WRITING", "COLLABORATIVE", "INDEPENDENT", "SOLO"},
}

// StudyStyleCompatibility scores two study styles: identical 1.0, listed as
// compatible 0.7, different-but-not-incompatible 0.3, absent 0.
func StudyStyleCompatibility(a, b string) float64 {
	styleA := strings.ToUpper(strings.TrimSpace(a))
	styleB := strings.ToUpper(strings.TrimSpace(b))
	if styleA == "" || styleB == "" {
		return 0
	}
	if styleA == styleB {
		return 1.0
	}
	for _, compatible := range studyStyleCompatible[styleA] {
		if compatible == styleB {
			return 0.7
		}
	}
	return 0.3
}

const earthRadiusKm = 6371.0

// LocationProximity scores geographic closeness. Same city short-circuits
// to a perfect score regardless of coordinates; otherwise great-circle
// distance maps through a tiered decay, and matching countries without
// coordinates are worth a flat 0.4.
func LocationProximity(lat1, lng1, lat2, lng2 *float64, city1, city2, country1, country2 string) LocationScore {
	normCity1 := strings.ToLower(strings.TrimSpace(city1))
	normCity2 := strings.ToLower(strings.TrimSpace(city2))
	normCountry1 := strings.ToLower(strings.TrimSpace(country1))
	normCountry2 := strings.ToLower(strings.TrimSpace(country2))

	sameCountry := normCountry1 != "" && normCountry1 == normCountry2

	if normCity1 != "" && normCity1 == normCity2 {
		return LocationScore{Score: 1.0, DistanceKm: 0, SameCity: true, SameCountry: sameCountry}
	}

	if lat1 != nil && lng1 != nil && lat2 != nil && lng2 != nil {
		distance := haversineDistance(*lat1, *lng1, *lat2, *lng2)
		return LocationScore{
			Score:       distanceScore(distance),
			DistanceKm:  distance,
			SameCountry: sameCountry,
		}
	}

	if sameCountry {
		return LocationScore{Score: 0.4, SameCountry: true}
	}
	return LocationScore{}
}

// distanceScore maps kilometers to a decaying score. Proximity matters far
// more at short range, hence tiers up close and a linear tail to 500 km.
func distanceScore(km float64) float64 {
	switch {
	case km <= 50:
		return 0.9
	case km <= 100:
		return 0.7
	case km <= 200:
		return 0.5
	case km <= MaxLocationDistanceKm:
		return 0.3 * (MaxLocationDistanceKm - km) / (MaxLocationDistanceKm - 200)
	default:
		return 0
	}
}

// haversineDistance computes great-circle distance in kilometers.
func haversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// TimezoneProximity scores two timezone strings. Identical strings are a
// perfect match; otherwise a leading signed hour offset is parsed from each
// ("UTC+5", "GMT-3", "+05:30") and the gap decays over 12 hours. If either
// string cannot be parsed the result is a neutral 0.5, not a penalty.
func TimezoneProximity(tz1, tz2 string) TimezoneScore {
	t1 := strings.TrimSpace(tz1)
	t2 := strings.TrimSpace(tz2)
	if t1 != "" && strings.EqualFold(t1, t2) {
		return TimezoneScore{Score: 1.0, OffsetHours: 0}
	}

	offset1, ok1 := parseUTCOffset(t1)
	offset2, ok2 := parseUTCOffset(t2)
	if !ok1 || !ok2 {
		return TimezoneScore{Score: 0.5}
	}

	gap := math.Abs(offset1 - offset2)
	score := 1 - gap/12
	if score < 0 {
		score = 0
	}
	return TimezoneScore{Score: score, OffsetHours: gap}
}

// parseUTCOffset extracts the first signed integer hour offset from a
// timezone string. Fractional parts after a colon are ignored.
func parseUTCOffset(tz string) (float64, bool) {
	for i, r := range tz {
		if r != '+' && r != '-' {
			continue
		}
		j := i + 1
		for j < len(tz) && tz[j] >= '0' && tz[j] <= '9' {
			j++
		}
		if j == i+1 {
			continue
		}
		hours, err := strconv.Atoi(tz[i:j])
		if err != nil {
			return 0, false
		}
		return float64(hours), true
	}
	return 0, false
}

// ExactMatch scores trimmed, case-insensitive string equality as 1 or 0.
func ExactMatch(a, b string) float64 {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	if strings.EqualFold(a, b) {
		return 1
	}
	return 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
