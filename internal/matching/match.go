// internal/matching/match.go
// The match aggregator: combines every component scorer into a single
// 0-100 compatibility score with data-sufficiency gates, renormalized
// weighting over active components, a confidence adjustment for sparse
// comparisons, and a tiered, explainable result.

package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Component keys used in ComponentScores and MatchDetails.
const (
	ComponentSubjects            = "subjects"
	ComponentInterests           = "interests"
	ComponentGoals               = "goals"
	ComponentAvailableDays       = "available_days"
	ComponentAvailableHours      = "available_hours"
	ComponentSkillLevel          = "skill_level"
	ComponentLocation            = "location"
	ComponentLanguages           = "languages"
	ComponentRole                = "role"
	ComponentStudyStyle          = "study_style"
	ComponentStrengthsWeaknesses = "strengths_weaknesses"
	ComponentSchool              = "school"
	ComponentTimezone            = "timezone"
)

// matchableFields are the profile fields that count toward the
// minimum-data gate, with display names for missing-field reports.
var matchableFields = []struct {
	name    string
	present func(*ProfileData) bool
}{
	{"subjects", func(p *ProfileData) bool { return hasItems(p.Subjects) }},
	{"interests", func(p *ProfileData) bool { return hasItems(p.Interests) }},
	{"goals", func(p *ProfileData) bool { return hasItems(p.Goals) }},
	{"available_days", func(p *ProfileData) bool { return hasItems(p.AvailableDays) }},
	{"available_hours", func(p *ProfileData) bool { return hasItems(p.AvailableHours) }},
	{"skill_level", func(p *ProfileData) bool { return hasText(p.SkillLevel) }},
	{"study_style", func(p *ProfileData) bool { return hasText(p.StudyStyle) }},
	{"school", func(p *ProfileData) bool { return hasText(p.School) }},
	{"timezone", func(p *ProfileData) bool { return hasText(p.Timezone) }},
}

// CalculateMatchScore compares two profiles and produces a full MatchResult.
// It never errors: sparse input degrades to an insufficient-data result with
// MatchScore nil, which is a normal outcome rather than a failure.
func (e *Engine) CalculateMatchScore(a, b *ProfileData, weights Weights) *MatchResult {
	missingA := missingFields(a)
	missingB := missingFields(b)

	// First gate: both sides need a minimum amount of profile data, and at
	// least one side must say something about what they study or care about.
	filledA := len(matchableFields) - len(missingA)
	filledB := len(matchableFields) - len(missingB)
	hasTopic := hasItems(a.Subjects) || hasItems(a.Interests) ||
		hasItems(b.Subjects) || hasItems(b.Interests)
	if filledA < MinFieldsForMatching || filledB < MinFieldsForMatching || !hasTopic {
		return insufficientResult(missingA, missingB)
	}

	components := e.scoreComponents(a, b, weights)

	// Second gate: enough components must be active, and at least one of
	// the topical components must be among them. "Has three fields" is not
	// the same as "has three comparable fields".
	active := activeComponents(components)
	topicalActive := components[ComponentSubjects].BothHaveData ||
		components[ComponentInterests].BothHaveData
	if len(active) < MinActiveComponents || !topicalActive {
		return insufficientResult(missingA, missingB)
	}

	// Weights renormalize over active components only, so a field neither
	// side filled in cannot drag the score down through the denominator.
	var weightedSum, weightSum float64
	for _, c := range active {
		weightedSum += c.WeightedScore
		weightSum += c.Weight
	}
	rawScore := 0.0
	if weightSum > 0 {
		rawScore = 100 * weightedSum / weightSum
	}

	// Scores built on few signals are pulled toward the middle.
	if len(active) < fullConfidenceComponents {
		rawScore *= 0.85 + 0.05*float64(len(active))
	}

	score := int(math.Round(rawScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	tier := tierForScore(score)
	reasons := rankedReasons(active)

	result := &MatchResult{
		MatchScore:      &score,
		MatchReasons:    reasons,
		MatchDetails:    buildDetails(components),
		ComponentScores: components,
		MatchTier:       tier,
		MissingFieldsA:  missingA,
		MissingFieldsB:  missingB,
	}
	result.Summary = buildSummary(result, active)
	return result
}

// scoreComponents builds a ComponentScore for every attribute family. A
// component where either side lacks data keeps its weight but is marked
// inactive with score 0.
func (e *Engine) scoreComponents(a, b *ProfileData, weights Weights) map[string]*ComponentScore {
	components := make(map[string]*ComponentScore, 13)

	components[ComponentSubjects] = e.smartSetComponent(a.Subjects, b.Subjects, weights.Subjects, "subjects")
	components[ComponentInterests] = e.smartSetComponent(a.Interests, b.Interests, weights.Interests, "interests")
	components[ComponentGoals] = e.smartSetComponent(a.Goals, b.Goals, weights.Goals, "study goals")

	components[ComponentAvailableDays] = plainSetComponent(a.AvailableDays, b.AvailableDays, weights.AvailableDays, "available days")
	components[ComponentAvailableHours] = plainSetComponent(a.AvailableHours, b.AvailableHours, weights.AvailableHours, "available hours")
	components[ComponentLanguages] = plainSetComponent(a.Languages, b.Languages, weights.Languages, "languages")

	components[ComponentSkillLevel] = skillLevelComponent(a, b, weights.SkillLevel)
	components[ComponentStudyStyle] = studyStyleComponent(a, b, weights.StudyStyle)
	components[ComponentLocation] = locationComponent(a, b, weights.Location)
	components[ComponentTimezone] = timezoneComponent(a, b, weights.Timezone)
	components[ComponentStrengthsWeaknesses] = strengthsComponent(a, b, weights.StrengthsWeaknesses)

	components[ComponentSchool] = exactComponent(a.School, b.School, weights.School, "school", "You attend the same school")
	components[ComponentRole] = exactComponent(a.Role, b.Role, weights.Role, "role", "You have the same role")

	return components
}

func (e *Engine) smartSetComponent(a, b []string, weight float64, label string) *ComponentScore {
	if !hasItems(a) || !hasItems(b) {
		return inactiveComponent(weight)
	}

	result := e.SmartJaccard(a, b)
	items := Intersection(a, b)
	items = append(items, result.SynonymMatches...)

	details := ""
	switch {
	case len(result.DirectMatches) > 0 && len(result.SynonymMatches) > 0:
		details = fmt.Sprintf("You share %d %s (%s) plus %d related ones", len(result.DirectMatches), label, strings.Join(items[:len(result.DirectMatches)], ", "), len(result.SynonymMatches))
	case len(result.DirectMatches) > 0:
		details = fmt.Sprintf("You share %d %s: %s", len(result.DirectMatches), label, strings.Join(items, ", "))
	case len(result.SynonymMatches) > 0:
		details = fmt.Sprintf("You have %d related %s: %s", len(result.SynonymMatches), label, strings.Join(result.SynonymMatches, ", "))
	default:
		details = fmt.Sprintf("No overlapping %s", label)
	}

	return activeComponent(result.Score, weight, details, items)
}

func plainSetComponent(a, b []string, weight float64, label string) *ComponentScore {
	if !hasItems(a) || !hasItems(b) {
		return inactiveComponent(weight)
	}

	score := Jaccard(a, b)
	items := Intersection(a, b)
	details := fmt.Sprintf("No overlapping %s", label)
	if len(items) > 0 {
		details = fmt.Sprintf("You share %d %s: %s", len(items), label, strings.Join(items, ", "))
	}
	return activeComponent(score, weight, details, items)
}

func skillLevelComponent(a, b *ProfileData, weight float64) *ComponentScore {
	if !hasText(a.SkillLevel) || !hasText(b.SkillLevel) {
		return inactiveComponent(weight)
	}

	score := SkillLevelCloseness(*a.SkillLevel, *b.SkillLevel)
	items := []string{}
	details := "Your skill levels are far apart"
	switch {
	case score >= 1:
		items = []string{strings.ToUpper(strings.TrimSpace(*a.SkillLevel))}
		details = fmt.Sprintf("You are both at the %s level", strings.ToLower(items[0]))
	case score >= 0.7:
		items = []string{strings.ToUpper(strings.TrimSpace(*a.SkillLevel)), strings.ToUpper(strings.TrimSpace(*b.SkillLevel))}
		details = "Your skill levels are adjacent"
	case score >= 0.4:
		details = "Your skill levels are two steps apart"
	}
	return activeComponent(score, weight, details, items)
}

func studyStyleComponent(a, b *ProfileData, weight float64) *ComponentScore {
	if !hasText(a.StudyStyle) || !hasText(b.StudyStyle) {
		return inactiveComponent(weight)
	}

	score := StudyStyleCompatibility(*a.StudyStyle, *b.StudyStyle)
	items := []string{}
	details := "Your study styles differ"
	switch {
	case score >= 1:
		items = []string{strings.ToUpper(strings.TrimSpace(*a.StudyStyle))}
		details = fmt.Sprintf("You both prefer the %s style", strings.ToLower(items[0]))
	case score >= 0.7:
		items = []string{strings.ToUpper(strings.TrimSpace(*a.StudyStyle)), strings.ToUpper(strings.TrimSpace(*b.StudyStyle))}
		details = "Your study styles complement each other"
	}
	return activeComponent(score, weight, details, items)
}

func locationComponent(a, b *ProfileData, weight float64) *ComponentScore {
	hasLocA := hasText(a.LocationCity) || hasText(a.LocationCountry) || (a.LocationLat != nil && a.LocationLng != nil)
	hasLocB := hasText(b.LocationCity) || hasText(b.LocationCountry) || (b.LocationLat != nil && b.LocationLng != nil)
	if !hasLocA || !hasLocB {
		return inactiveComponent(weight)
	}

	loc := LocationProximity(
		a.LocationLat, a.LocationLng, b.LocationLat, b.LocationLng,
		derefString(a.LocationCity), derefString(b.LocationCity),
		derefString(a.LocationCountry), derefString(b.LocationCountry),
	)

	items := []string{}
	details := "You are far apart"
	switch {
	case loc.SameCity:
		items = []string{strings.TrimSpace(*a.LocationCity)}
		details = fmt.Sprintf("You are both in %s", items[0])
	case loc.Score > 0 && a.LocationLat != nil && a.LocationLng != nil && b.LocationLat != nil && b.LocationLng != nil:
		items = []string{fmt.Sprintf("~%.0f km apart", loc.DistanceKm)}
		details = fmt.Sprintf("You are about %.0f km apart", loc.DistanceKm)
	case loc.SameCountry && loc.Score > 0:
		items = []string{strings.TrimSpace(derefString(a.LocationCountry))}
		details = fmt.Sprintf("You are both in %s", items[0])
	}
	return activeComponent(loc.Score, weight, details, items)
}

func timezoneComponent(a, b *ProfileData, weight float64) *ComponentScore {
	if !hasText(a.Timezone) || !hasText(b.Timezone) {
		return inactiveComponent(weight)
	}

	tz := TimezoneProximity(*a.Timezone, *b.Timezone)
	items := []string{}
	details := "Your timezones are far apart"
	switch {
	case tz.Score >= 1:
		items = []string{strings.TrimSpace(*a.Timezone)}
		details = "You are in the same timezone"
	case tz.Score > 0.5:
		items = []string{fmt.Sprintf("%.0fh offset", tz.OffsetHours)}
		details = fmt.Sprintf("Your timezones are %.0f hours apart", tz.OffsetHours)
	case tz.Score == 0.5:
		details = "Timezone compatibility unknown"
	}
	return activeComponent(tz.Score, weight, details, items)
}

// strengthsComponent scores complementarity: one side's strengths against
// the other's weaknesses, averaged over both directions.
func strengthsComponent(a, b *ProfileData, weight float64) *ComponentScore {
	hasA := hasItems(a.Strengths) || hasItems(a.Weaknesses)
	hasB := hasItems(b.Strengths) || hasItems(b.Weaknesses)
	if !hasA || !hasB {
		return inactiveComponent(weight)
	}

	score := (Jaccard(a.Strengths, b.Weaknesses) + Jaccard(a.Weaknesses, b.Strengths)) / 2
	items := Intersection(a.Strengths, b.Weaknesses)
	items = append(items, Intersection(a.Weaknesses, b.Strengths)...)

	details := "Your strengths and weaknesses do not overlap"
	if len(items) > 0 {
		details = fmt.Sprintf("You can help each other with: %s", strings.Join(items, ", "))
	}
	return activeComponent(score, weight, details, items)
}

func exactComponent(a, b *string, weight float64, label, matchDetails string) *ComponentScore {
	if !hasText(a) || !hasText(b) {
		return inactiveComponent(weight)
	}

	score := ExactMatch(*a, *b)
	items := []string{}
	details := fmt.Sprintf("Different %s", label)
	if score >= 1 {
		items = []string{strings.TrimSpace(*a)}
		details = matchDetails
	}
	return activeComponent(score, weight, details, items)
}

func activeComponent(score, weight float64, details string, items []string) *ComponentScore {
	if items == nil {
		items = []string{}
	}
	return &ComponentScore{
		Score:         score,
		Weight:        weight,
		WeightedScore: score * weight,
		Details:       details,
		MatchItems:    items,
		BothHaveData:  true,
	}
}

func inactiveComponent(weight float64) *ComponentScore {
	return &ComponentScore{Weight: weight, MatchItems: []string{}}
}

func activeComponents(components map[string]*ComponentScore) []*ComponentScore {
	active := make([]*ComponentScore, 0, len(components))
	for _, c := range components {
		if c.BothHaveData {
			active = append(active, c)
		}
	}
	return active
}

// rankedReasons extracts the details of every active component that matched
// something, ordered by weighted contribution, capped at maxMatchReasons.
func rankedReasons(active []*ComponentScore) []string {
	matched := make([]*ComponentScore, 0, len(active))
	for _, c := range active {
		if c.Score > 0 && len(c.MatchItems) > 0 {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].WeightedScore > matched[j].WeightedScore
	})

	reasons := make([]string, 0, maxMatchReasons)
	for _, c := range matched {
		if len(reasons) >= maxMatchReasons {
			break
		}
		reasons = append(reasons, c.Details)
	}
	return reasons
}

func buildDetails(components map[string]*ComponentScore) map[string]MatchDetail {
	details := make(map[string]MatchDetail, len(components))
	for key, c := range components {
		details[key] = MatchDetail{
			Score:     int(math.Round(c.Score * 100)),
			Items:     c.MatchItems,
			ItemCount: len(c.MatchItems),
			HasData:   c.BothHaveData,
			Details:   c.Details,
		}
	}
	return details
}

func buildSummary(result *MatchResult, active []*ComponentScore) *MatchSummary {
	matched := 0
	for _, c := range active {
		if c.Score > 0 {
			matched++
		}
	}

	topReasons := result.MatchReasons
	if len(topReasons) > 3 {
		topReasons = topReasons[:3]
	}

	return &MatchSummary{
		MatchedComponents:  matched,
		TotalComponents:    len(active),
		TopReasons:         topReasons,
		YourMissingFields:  topMissing(result.MissingFieldsA),
		TheirMissingFields: topMissing(result.MissingFieldsB),
		Compatibility:      compatibilityLabel(result.MatchTier),
	}
}

func insufficientResult(missingA, missingB []string) *MatchResult {
	result := &MatchResult{
		MatchDataInsufficient: true,
		MatchReasons:          []string{},
		MatchDetails:          map[string]MatchDetail{},
		ComponentScores:       map[string]*ComponentScore{},
		MatchTier:             TierLabelInsufficient,
		MissingFieldsA:        missingA,
		MissingFieldsB:        missingB,
	}
	result.Summary = &MatchSummary{
		TopReasons:         []string{},
		YourMissingFields:  topMissing(missingA),
		TheirMissingFields: topMissing(missingB),
		Compatibility:      compatibilityLabel(TierLabelInsufficient),
	}
	return result
}

func tierForScore(score int) string {
	switch {
	case score >= TierExcellent:
		return TierLabelExcellent
	case score >= TierGood:
		return TierLabelGood
	case score >= TierFair:
		return TierLabelFair
	default:
		return TierLabelLow
	}
}

func compatibilityLabel(tier string) string {
	switch tier {
	case TierLabelExcellent:
		return "Highly compatible"
	case TierLabelGood:
		return "Very compatible"
	case TierLabelFair:
		return "Somewhat compatible"
	case TierLabelLow:
		return "Low compatibility"
	default:
		return "Not enough information"
	}
}

// MissingFields lists the matchable fields a profile has not filled in.
// Useful for profile completion prompts.
func MissingFields(p *ProfileData) []string {
	return missingFields(p)
}

// MatchableFieldCount is the number of fields considered when deciding
// whether a profile has enough data to be matched.
func MatchableFieldCount() int {
	return len(matchableFields)
}

func missingFields(p *ProfileData) []string {
	missing := []string{}
	for _, field := range matchableFields {
		if !field.present(p) {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func topMissing(missing []string) []string {
	if len(missing) > 3 {
		return missing[:3]
	}
	return missing
}

// hasText reports presence for an optional string: non-nil and non-blank
// after trimming.
func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// hasItems reports presence for a set-valued attribute: at least one
// non-blank element.
func hasItems(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

func derefString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
