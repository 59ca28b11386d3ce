// internal/matching/search.go
// Free-text search scoring: tiered term matching (exact, substring, word
// boundary, fuzzy), synonym-expanded multi-term search, and an additive
// relevance score for ordering result sets.

package matching

import (
	"math"
	"strings"
)

// SearchOptions tunes SmartSearch. The zero value disables synonym
// expansion and fuzzy fallback; DefaultSearchOptions enables both.
type SearchOptions struct {
	ExpandSynonyms bool
	FuzzyMatch     bool
	MinScore       int
}

// DefaultMinSearchScore is the score below which a candidate does not match.
const DefaultMinSearchScore = 20

// DefaultSearchOptions returns the options used by the browse flows.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{ExpandSynonyms: true, FuzzyMatch: true, MinScore: DefaultMinSearchScore}
}

// MatchScore rates how well a single search term matches a target text on a
// 0-100 scale: exact 100, containment 90/80, word-boundary hits up to 70,
// edit-distance fallback up to 60.
func MatchScore(searchTerm, targetText string) int {
	search := strings.ToLower(strings.TrimSpace(searchTerm))
	target := strings.ToLower(strings.TrimSpace(targetText))
	if search == "" || target == "" {
		return 0
	}

	if search == target {
		return 100
	}
	if strings.Contains(target, search) {
		return 90
	}
	if strings.Contains(search, target) {
		return 80
	}

	// Word-boundary scoring: full word hits are worth twice partial ones.
	searchWords := strings.Fields(search)
	targetWords := strings.Fields(target)
	points := 0
	for _, sw := range searchWords {
		best := 0
		for _, tw := range targetWords {
			if sw == tw {
				best = 2
				break
			}
			if strings.Contains(tw, sw) || strings.Contains(sw, tw) {
				best = 1
			}
		}
		points += best
	}
	if points > 0 {
		score := 40 + points*10
		if score > 70 {
			score = 70
		}
		return score
	}

	sim := Similarity(search, target)
	switch {
	case sim > 0.7:
		return int(math.Round(sim * 60))
	case sim > 0.5:
		return int(math.Round(sim * 40))
	default:
		return 0
	}
}

// SmartSearch scores a free-text query against a candidate's text fields.
// An empty query matches everything. Query tokens are optionally expanded
// through the synonym index, scored against the concatenated fields and
// averaged; when the average falls short and fuzzy matching is on, a
// token-vs-word similarity scan gives typos a second chance.
func (e *Engine) SmartSearch(query string, targetFields []string, opts SearchOptions) SearchResult {
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinSearchScore
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return SearchResult{Matches: true, Score: 100, MatchedTerms: []string{}}
	}

	tokens := strings.Fields(strings.ToLower(trimmed))
	terms := tokens
	if opts.ExpandSynonyms {
		expanded := e.index.ExpandMany(tokens)
		terms = make([]string, 0, len(expanded))
		for term := range expanded {
			terms = append(terms, term)
		}
	}

	haystack := strings.ToLower(strings.Join(targetFields, " "))

	total := 0
	matchedTerms := []string{}
	for _, term := range terms {
		s := MatchScore(term, haystack)
		if s > 0 {
			matchedTerms = append(matchedTerms, term)
		}
		total += s
	}
	score := 0
	if len(terms) > 0 {
		score = total / len(terms)
	}

	if score < opts.MinScore && opts.FuzzyMatch {
		if fuzzyScore, term, ok := fuzzyScan(tokens, haystack); ok {
			return SearchResult{Matches: true, Score: fuzzyScore, MatchedTerms: []string{term}}
		}
	}

	return SearchResult{
		Matches:      score >= opts.MinScore,
		Score:        score,
		MatchedTerms: matchedTerms,
	}
}

// fuzzyScan looks for the first query token resembling any haystack word
// closely enough to rescue a near-miss search.
func fuzzyScan(tokens []string, haystack string) (int, string, bool) {
	words := strings.Fields(haystack)
	for _, token := range tokens {
		for _, word := range words {
			if sim := Similarity(token, word); sim > 0.7 {
				return int(math.Round(sim * 50)), token, true
			}
		}
	}
	return 0, "", false
}

// Field weights for RelevanceScore. Name dominates, with a bonus for an
// exact name hit; descriptions and skill level trail behind.
const (
	relevanceNameWeight       = 10
	relevanceNameExactBonus   = 5
	relevanceSubjectWeight    = 8
	relevanceTagWeight        = 7
	relevanceDescWeight       = 6
	relevanceCustomDescWeight = 5
	relevanceSkillWeight      = 4
)

// RelevanceScore ranks an entity against a query by summing weighted field
// hits over the synonym-expanded query terms. The result is additive and
// unbounded: use it to order results, never as an absolute score.
func (e *Engine) RelevanceScore(query string, entity SearchableEntity) int {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(tokens) == 0 {
		return 0
	}
	expanded := e.index.ExpandMany(tokens)

	name := strings.ToLower(entity.Name)
	subject := strings.ToLower(entity.Subject)
	description := strings.ToLower(entity.Description)
	customDescription := strings.ToLower(entity.CustomDescription)
	skillLevel := strings.ToLower(entity.SkillLevel)
	tags := make([]string, len(entity.Tags))
	for i, tag := range entity.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := 0
	for term := range expanded {
		if name != "" && strings.Contains(name, term) {
			score += relevanceNameWeight
			if name == term {
				score += relevanceNameExactBonus
			}
		}
		if subject != "" && strings.Contains(subject, term) {
			score += relevanceSubjectWeight
		}
		for _, tag := range tags {
			if tag != "" && strings.Contains(tag, term) {
				score += relevanceTagWeight
				break
			}
		}
		if description != "" && strings.Contains(description, term) {
			score += relevanceDescWeight
		}
		if customDescription != "" && strings.Contains(customDescription, term) {
			score += relevanceCustomDescWeight
		}
		if skillLevel != "" && strings.Contains(skillLevel, term) {
			score += relevanceSkillWeight
		}
	}
	return score
}
