// internal/partners/recommendations.go
// Daily pick generation for everyone currently looking for a partner

package partners

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
)

type pickGenerator struct {
	repo    Repository
	engine  *matching.Engine
	weights matching.Weights
	config  *Config
}

func newPickGenerator(repo Repository, engine *matching.Engine, weights matching.Weights, config *Config) *pickGenerator {
	return &pickGenerator{
		repo:    repo,
		engine:  engine,
		weights: weights,
		config:  config,
	}
}

// GenerateForAllSeekers creates one batch of picks per user per day.
// Individual failures are logged and skipped so one bad profile doesn't
// stall the whole run.
func (g *pickGenerator) GenerateForAllSeekers(ctx context.Context) error {
	seekers, err := g.repo.GetActiveSeekerIDs(ctx)
	if err != nil {
		return err
	}

	generated := 0
	for _, userID := range seekers {
		hasToday, err := g.repo.HasTodayPicks(ctx, userID)
		if err != nil || hasToday {
			continue
		}

		count, err := g.generateForUser(ctx, userID)
		if err != nil {
			log.Printf("daily picks skipped for user %d: %v", userID, err)
			continue
		}
		generated += count
	}

	if generated > 0 {
		RecordDailyPicks(generated)
	}

	return nil
}

func (g *pickGenerator) generateForUser(ctx context.Context, userID int64) (int, error) {
	me, err := g.repo.GetCandidateProfile(ctx, userID)
	if err != nil {
		return 0, err
	}

	candidates, err := g.repo.FindCandidates(ctx, userID, &CandidateFilters{
		ExcludeConnected: true,
		ExcludeDeclined:  true,
		Limit:            g.config.CandidatePool,
	})
	if err != nil {
		return 0, err
	}

	myData := me.ToMatchingProfile()

	scored := make([]*matching.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		result := g.engine.CalculateMatchScore(myData, candidate.ToMatchingProfile(), g.weights)
		scored = append(scored, &matching.ScoredCandidate{
			UserID: candidate.UserID,
			Score:  result.MatchScore,
			Result: result,
		})
	}

	scored = matching.FilterByMinScore(scored, g.config.MinMatchScore)
	matching.SortByMatchScore(scored)
	picked := matching.WeightedRandomSelect(scored, g.config.DailyPicksCount, nil)

	expiresAt := time.Now().Add(24 * time.Hour)

	created := 0
	for _, c := range picked {
		if c.Score == nil {
			continue
		}

		pick := &DailyPick{
			UserID:            userID,
			RecommendedUserID: c.UserID,
			Score:             *c.Score,
			ExpiresAt:         &expiresAt,
		}

		if len(c.Result.MatchReasons) > 0 {
			pick.Reason = &c.Result.MatchReasons[0]
		}

		if breakdown, err := json.Marshal(c.Result.ComponentScores); err == nil {
			pick.Breakdown = breakdown
		}

		if err := g.repo.CreateDailyPick(ctx, pick); err != nil {
			log.Printf("failed to store daily pick for user %d: %v", userID, err)
			continue
		}
		created++
	}

	return created, nil
}
