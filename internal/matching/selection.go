// internal/matching/selection.go
// Pure list operations over scored candidates: ranking, thresholding, and
// score-weighted random sampling for the discovery feed.

package matching

import (
	"math/rand"
	"sort"
)

// SortByMatchScore sorts candidates by score descending, stably. A nil
// score sorts as -1, below every real score.
func SortByMatchScore(candidates []*ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return effectiveScore(candidates[i]) > effectiveScore(candidates[j])
	})
}

// FilterByMinScore drops candidates with a nil score or a score below the
// threshold.
func FilterByMinScore(candidates []*ScoredCandidate, minScore int) []*ScoredCandidate {
	filtered := make([]*ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score != nil && *c.Score >= minScore {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// WeightedRandomSelect draws count candidates without replacement, with
// probability proportional to (score+1)^2 so high scorers dominate but even
// a zero-score candidate keeps a nonzero chance of surfacing. When count
// covers the whole list the input is returned as-is. A nil rng falls back
// to the shared package source.
func WeightedRandomSelect(candidates []*ScoredCandidate, count int, rng *rand.Rand) []*ScoredCandidate {
	if len(candidates) <= count {
		return candidates
	}

	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}

	pool := make([]*ScoredCandidate, len(candidates))
	copy(pool, candidates)
	weights := make([]float64, len(pool))
	totalWeight := 0.0
	for i, c := range pool {
		w := float64(effectiveScore(c)+1) * float64(effectiveScore(c)+1)
		if w < 1 {
			w = 1
		}
		weights[i] = w
		totalWeight += w
	}

	selected := make([]*ScoredCandidate, 0, count)
	for len(selected) < count && len(pool) > 0 {
		// Roulette wheel: walk the cumulative weights until the draw lands.
		target := draw() * totalWeight
		chosen := len(pool) - 1
		cumulative := 0.0
		for i, w := range weights {
			cumulative += w
			if target < cumulative {
				chosen = i
				break
			}
		}

		selected = append(selected, pool[chosen])
		totalWeight -= weights[chosen]
		pool = append(pool[:chosen], pool[chosen+1:]...)
		weights = append(weights[:chosen], weights[chosen+1:]...)
	}
	return selected
}

func effectiveScore(c *ScoredCandidate) int {
	if c.Score == nil {
		return -1
	}
	return *c.Score
}
