// internal/partners/search.go
// Free-text partner search over study profiles

package partners

import (
	"context"
	"sort"
	"strings"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
	"github.com/studycircleapp/studycircle-backend/internal/profile"
)

func (s *service) Search(ctx context.Context, userID int64, params *SearchParams) ([]*SearchHit, error) {
	limit := params.Limit
	if limit <= 0 || limit > s.config.DiscoverFeedSize {
		limit = s.config.DiscoverFeedSize
	}

	candidates, err := s.repo.FindCandidates(ctx, userID, &CandidateFilters{
		Limit: s.config.CandidatePool,
	})
	if err != nil {
		return nil, err
	}

	opts := matching.SearchOptions{
		ExpandSynonyms: params.ExpandSynonyms,
		FuzzyMatch:     params.FuzzyMatch,
		MinScore:       params.MinScore,
	}
	if opts.MinScore <= 0 {
		opts.MinScore = matching.DefaultMinSearchScore
	}

	mode := "plain"
	if params.ExpandSynonyms {
		mode = "synonym"
	}
	RecordSearch(mode)

	hits := []*SearchHit{}
	for _, candidate := range candidates {
		result := s.engine.SmartSearch(params.Query, searchFields(candidate), opts)
		if !result.Matches {
			continue
		}

		hits = append(hits, &SearchHit{
			UserID:       candidate.UserID,
			DisplayName:  candidate.DisplayName,
			Score:        result.Score,
			MatchedTerms: result.MatchedTerms,
			Relevance:    s.engine.RelevanceScore(params.Query, searchableEntity(candidate)),
		})
	}

	// Relevance decides the order, the raw search score breaks ties
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Relevance != hits[j].Relevance {
			return hits[i].Relevance > hits[j].Relevance
		}
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	return hits, nil
}

// searchFields flattens profile text the way a user would describe it
func searchFields(p *profile.StudyProfile) []string {
	fields := []string{p.DisplayName}
	fields = append(fields, p.Subjects...)
	fields = append(fields, p.Interests...)
	fields = append(fields, p.Goals...)

	if p.Bio != nil {
		fields = append(fields, *p.Bio)
	}
	if p.About != nil {
		fields = append(fields, *p.About)
	}
	if p.School != nil {
		fields = append(fields, *p.School)
	}
	if p.SkillLevel != nil {
		fields = append(fields, *p.SkillLevel)
	}

	return fields
}

func searchableEntity(p *profile.StudyProfile) matching.SearchableEntity {
	entity := matching.SearchableEntity{
		Name:    p.DisplayName,
		Subject: strings.Join(p.Subjects, " "),
		Tags:    append(append([]string{}, p.Interests...), p.Goals...),
	}

	if p.Bio != nil {
		entity.Description = *p.Bio
	}
	if p.About != nil {
		entity.CustomDescription = *p.About
	}
	if p.SkillLevel != nil {
		entity.SkillLevel = *p.SkillLevel
	}

	return entity
}
