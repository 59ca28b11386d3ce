// internal/partners/service.go

package partners

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
)

var (
	ErrRequestNotFound    = errors.New("partner request not found")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrProfileNotFound    = errors.New("study profile not found")
	ErrAlreadyRequested   = errors.New("partner request already sent")
	ErrCannotRequestSelf  = errors.New("cannot send partner request to yourself")
	ErrAlreadyConnected   = errors.New("already connected with this user")
	ErrUnauthorized       = errors.New("unauthorized to perform this action")
)

// Service defines partner matching operations
type Service interface {
	// Scoring
	GetMatchScore(ctx context.Context, userID, targetID int64) (*matching.MatchResult, error)

	// Feeds
	Discover(ctx context.Context, userID int64, params *DiscoverParams) ([]*DiscoverResult, error)
	Search(ctx context.Context, userID int64, params *SearchParams) ([]*SearchHit, error)

	// Partner requests
	SendPartnerRequest(ctx context.Context, userID int64, dto *SendPartnerRequestDTO) (*PartnerRequest, error)
	RespondToRequest(ctx context.Context, requestID, userID int64, dto *RespondPartnerRequestDTO) (*PartnerRequest, error)
	GetPartnerRequests(ctx context.Context, userID int64, requestType string) ([]*PartnerRequest, error)

	// Connections
	GetConnections(ctx context.Context, userID int64, active bool) ([]*Connection, error)
	Disconnect(ctx context.Context, connectionID, userID int64) error
	RecordSession(ctx context.Context, connectionID, userID int64) error

	// Daily picks
	GetDailyPicks(ctx context.Context, userID int64, limit int) ([]*DailyPick, error)
	MarkPickSeen(ctx context.Context, userID, pickID int64) error
	GenerateDailyPicks(ctx context.Context) error
	CleanupExpiredPicks(ctx context.Context) error
}

// Config holds tunables for feeds and recommendations
type Config struct {
	DiscoverFeedSize int
	DailyPicksCount  int
	MinMatchScore    int
	CandidatePool    int
	FeedCacheTTL     time.Duration
}

type service struct {
	repo    Repository
	engine  *matching.Engine
	weights matching.Weights
	redis   *redis.Client
	config  *Config
}

// NewService creates the partners service. The Redis client is optional;
// without it the discover feed is recomputed on every request.
func NewService(repo Repository, engine *matching.Engine, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:    repo,
		engine:  engine,
		weights: matching.DefaultWeights(),
		redis:   redisClient,
		config:  config,
	}
}

func (s *service) GetMatchScore(ctx context.Context, userID, targetID int64) (*matching.MatchResult, error) {
	a, err := s.repo.GetCandidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetCandidateProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	result := s.engine.CalculateMatchScore(a.ToMatchingProfile(), b.ToMatchingProfile(), s.weights)

	if result.MatchDataInsufficient {
		RecordInsufficientData()
	} else if result.MatchScore != nil {
		RecordMatchScore(*result.MatchScore)
	}

	return result, nil
}

func (s *service) Discover(ctx context.Context, userID int64, params *DiscoverParams) ([]*DiscoverResult, error) {
	limit := params.Limit
	if limit <= 0 || limit > s.config.DiscoverFeedSize {
		limit = s.config.DiscoverFeedSize
	}

	cacheKey := fmt.Sprintf("partners:discover:%d", userID)

	if !params.Refresh {
		if cached := s.readCachedFeed(ctx, cacheKey); cached != nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	me, err := s.repo.GetCandidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.FindCandidates(ctx, userID, &CandidateFilters{
		ExcludeConnected: true,
		ExcludeDeclined:  true,
		Limit:            s.config.CandidatePool,
	})
	if err != nil {
		return nil, err
	}

	myData := me.ToMatchingProfile()

	scored := make([]*matching.ScoredCandidate, 0, len(candidates))
	names := make(map[int64]string, len(candidates))
	for _, candidate := range candidates {
		result := s.engine.CalculateMatchScore(myData, candidate.ToMatchingProfile(), s.weights)
		names[candidate.UserID] = candidate.DisplayName
		scored = append(scored, &matching.ScoredCandidate{
			UserID: candidate.UserID,
			Score:  result.MatchScore,
			Result: result,
		})
	}

	scored = matching.FilterByMinScore(scored, s.config.MinMatchScore)
	matching.SortByMatchScore(scored)

	// A weighted draw from the top of the ranking keeps the feed fresh
	// without burying the strongest matches
	pool := scored
	if len(pool) > limit*3 {
		pool = pool[:limit*3]
	}
	picked := matching.WeightedRandomSelect(pool, limit, nil)
	matching.SortByMatchScore(picked)

	feed := make([]*DiscoverResult, 0, len(picked))
	for _, c := range picked {
		feed = append(feed, &DiscoverResult{
			UserID:      c.UserID,
			DisplayName: names[c.UserID],
			Score:       c.Score,
			Tier:        c.Result.MatchTier,
			Reasons:     c.Result.MatchReasons,
			Result:      c.Result,
		})
	}

	RecordDiscoverFeed(len(feed))
	s.writeCachedFeed(ctx, cacheKey, feed)

	return feed, nil
}

func (s *service) readCachedFeed(ctx context.Context, key string) []*DiscoverResult {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}

	var feed []*DiscoverResult
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil
	}

	return feed
}

func (s *service) writeCachedFeed(ctx context.Context, key string, feed []*DiscoverResult) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, key, data, s.config.FeedCacheTTL).Err(); err != nil {
		log.Printf("failed to cache discover feed: %v", err)
	}
}

func (s *service) invalidateFeed(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, fmt.Sprintf("partners:discover:%d", userID))
}

// Partner requests

func (s *service) SendPartnerRequest(ctx context.Context, userID int64, dto *SendPartnerRequestDTO) (*PartnerRequest, error) {
	if userID == dto.ReceiverID {
		return nil, ErrCannotRequestSelf
	}

	connected, err := s.repo.IsConnected(ctx, userID, dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	hasPending, err := s.repo.HasPendingRequest(ctx, userID, dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, ErrAlreadyRequested
	}

	request := &PartnerRequest{
		SenderID:   userID,
		ReceiverID: dto.ReceiverID,
		Status:     "pending",
	}

	if dto.Message != "" {
		request.Message = &dto.Message
	}
	if dto.Subject != "" {
		request.Subject = &dto.Subject
	}

	if err := s.repo.CreatePartnerRequest(ctx, request); err != nil {
		return nil, err
	}

	RecordPartnerRequest("pending")

	return request, nil
}

func (s *service) RespondToRequest(ctx context.Context, requestID, userID int64, dto *RespondPartnerRequestDTO) (*PartnerRequest, error) {
	request, err := s.repo.GetPartnerRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != userID {
		return nil, ErrUnauthorized
	}

	if request.Status != "pending" {
		return nil, errors.New("request already responded")
	}

	now := time.Now()
	request.Status = dto.Status
	request.RespondedAt = &now

	if dto.ResponseMessage != "" {
		request.ResponseMessage = &dto.ResponseMessage
	}

	if dto.Status == "declined" && dto.DeclinedReason != "" {
		request.DeclinedReason = &dto.DeclinedReason
	}

	if err := s.repo.UpdatePartnerRequest(ctx, request); err != nil {
		return nil, err
	}

	RecordPartnerRequest(dto.Status)

	if dto.Status == "accepted" {
		if _, err := s.createConnection(ctx, request.SenderID, request.ReceiverID); err != nil {
			log.Printf("failed to create connection for request %d: %v", request.ID, err)
		}
	}

	return request, nil
}

func (s *service) GetPartnerRequests(ctx context.Context, userID int64, requestType string) ([]*PartnerRequest, error) {
	return s.repo.GetUserPartnerRequests(ctx, userID, requestType)
}

// Connections

func (s *service) createConnection(ctx context.Context, user1ID, user2ID int64) (*Connection, error) {
	conn := &Connection{
		User1ID:  user1ID,
		User2ID:  user2ID,
		IsActive: true,
	}

	// Attach the score the pair had at connection time
	if result, err := s.GetMatchScore(ctx, user1ID, user2ID); err == nil && result.MatchScore != nil {
		conn.MatchScore = result.MatchScore
	}

	if err := s.repo.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}

	RecordConnection()

	// Connected users drop out of each other's discover feed
	s.invalidateFeed(ctx, user1ID)
	s.invalidateFeed(ctx, user2ID)

	return conn, nil
}

func (s *service) GetConnections(ctx context.Context, userID int64, active bool) ([]*Connection, error) {
	return s.repo.GetUserConnections(ctx, userID, active)
}

func (s *service) Disconnect(ctx context.Context, connectionID, userID int64) error {
	conn, err := s.repo.GetConnection(ctx, connectionID)
	if err != nil {
		return err
	}

	if conn.User1ID != userID && conn.User2ID != userID {
		return ErrUnauthorized
	}

	now := time.Now()
	conn.IsActive = false
	conn.DisconnectedBy = &userID
	conn.DisconnectedAt = &now

	return s.repo.UpdateConnection(ctx, conn)
}

func (s *service) RecordSession(ctx context.Context, connectionID, userID int64) error {
	conn, err := s.repo.GetConnection(ctx, connectionID)
	if err != nil {
		return err
	}

	if conn.User1ID != userID && conn.User2ID != userID {
		return ErrUnauthorized
	}

	return s.repo.RecordSession(ctx, connectionID)
}

// Daily picks

func (s *service) GetDailyPicks(ctx context.Context, userID int64, limit int) ([]*DailyPick, error) {
	if limit <= 0 || limit > s.config.DailyPicksCount {
		limit = s.config.DailyPicksCount
	}
	return s.repo.GetUserDailyPicks(ctx, userID, limit, false)
}

func (s *service) MarkPickSeen(ctx context.Context, userID, pickID int64) error {
	picks, err := s.repo.GetUserDailyPicks(ctx, userID, s.config.DailyPicksCount, false)
	if err != nil {
		return err
	}

	for _, pick := range picks {
		if pick.ID == pickID {
			return s.repo.MarkPickSeen(ctx, pickID)
		}
	}

	return ErrUnauthorized
}

func (s *service) GenerateDailyPicks(ctx context.Context) error {
	gen := newPickGenerator(s.repo, s.engine, s.weights, s.config)
	return gen.GenerateForAllSeekers(ctx)
}

func (s *service) CleanupExpiredPicks(ctx context.Context) error {
	return s.repo.DeleteExpiredPicks(ctx)
}
