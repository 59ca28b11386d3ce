// internal/matching/terms.go
// Set similarity between free-text tag lists: plain Jaccard for simple
// overlap, and a synonym-aware variant that credits thesaurus-mediated
// matches at a discount.

package matching

import "strings"

// Jaccard computes |A∩B| / |A∪B| over lowercased, trimmed, deduplicated
// sets. Two empty sets score 0, not 1: absence of data is never a match.
func Jaccard(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for term := range setA {
		if setB[term] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SmartJaccard scores two tag sets with synonym awareness. Direct matches
// count full, synonym-mediated matches count SynonymMatchWeight, and the
// denominator is the larger set size so a small fully-contained set cannot
// inflate the score.
func (e *Engine) SmartJaccard(a, b []string) SmartJaccardResult {
	setA := normalizeSetOrdered(a)
	setB := normalizeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return SmartJaccardResult{Score: 0, DirectMatches: []string{}, SynonymMatches: []string{}}
	}

	direct := []string{}
	remainingA := []string{}
	for _, term := range setA {
		if setB[term] {
			direct = append(direct, term)
		} else {
			remainingA = append(remainingA, term)
		}
	}

	directSet := make(map[string]bool, len(direct))
	for _, term := range direct {
		directSet[term] = true
	}
	remainingB := []string{}
	for term := range setB {
		if !directSet[term] {
			remainingB = append(remainingB, term)
		}
	}

	// Each leftover term from a counts at most once, even if its expansion
	// touches several terms in b.
	synonym := []string{}
	for _, termA := range remainingA {
		expandedA := e.index.Expand(termA)
		for _, termB := range remainingB {
			if setsIntersect(expandedA, e.index.Expand(termB)) {
				synonym = append(synonym, termA)
				break
			}
		}
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	score := (float64(len(direct)) + float64(len(synonym))*SynonymMatchWeight) / float64(larger)
	if score > 1 {
		score = 1
	}

	return SmartJaccardResult{Score: score, DirectMatches: direct, SynonymMatches: synonym}
}

// Intersection returns the case-insensitive intersection of two tag lists,
// preserving the original casing from a for display.
func Intersection(a, b []string) []string {
	setB := normalizeSet(b)
	seen := make(map[string]bool)
	result := []string{}
	for _, item := range a {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" || seen[normalized] {
			continue
		}
		if setB[normalized] {
			seen[normalized] = true
			result = append(result, strings.TrimSpace(item))
		}
	}
	return result
}

// normalizeSet lowercases, trims and deduplicates a tag list into a set.
func normalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

// normalizeSetOrdered is normalizeSet preserving first-seen order.
func normalizeSetOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func setsIntersect(a, b map[string]bool) bool {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	for term := range small {
		if large[term] {
			return true
		}
	}
	return false
}
