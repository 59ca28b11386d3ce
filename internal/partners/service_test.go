package partners

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
	"github.com/studycircleapp/studycircle-backend/internal/profile"
)

type fakeRepository struct {
	profiles    map[int64]*profile.StudyProfile
	requests    map[int64]*PartnerRequest
	connections []*Connection
	picks       []*DailyPick
	nextID      int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles: map[int64]*profile.StudyProfile{},
		requests: map[int64]*PartnerRequest{},
		nextID:   1,
	}
}

func (f *fakeRepository) CreatePartnerRequest(ctx context.Context, req *PartnerRequest) error {
	req.ID = f.nextID
	f.nextID++
	req.CreatedAt = time.Now()
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepository) GetPartnerRequest(ctx context.Context, id int64) (*PartnerRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRepository) UpdatePartnerRequest(ctx context.Context, req *PartnerRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepository) GetUserPartnerRequests(ctx context.Context, userID int64, requestType string) ([]*PartnerRequest, error) {
	result := []*PartnerRequest{}
	for _, req := range f.requests {
		switch requestType {
		case "sent":
			if req.SenderID == userID {
				result = append(result, req)
			}
		case "received":
			if req.ReceiverID == userID {
				result = append(result, req)
			}
		default:
			if req.SenderID == userID || req.ReceiverID == userID {
				result = append(result, req)
			}
		}
	}
	return result, nil
}

func (f *fakeRepository) HasPendingRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	for _, req := range f.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID && req.Status == "pending" {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) CreateConnection(ctx context.Context, conn *Connection) error {
	conn.ID = f.nextID
	f.nextID++
	conn.ConnectedAt = time.Now()
	f.connections = append(f.connections, conn)
	return nil
}

func (f *fakeRepository) GetConnection(ctx context.Context, id int64) (*Connection, error) {
	for _, conn := range f.connections {
		if conn.ID == id {
			return conn, nil
		}
	}
	return nil, ErrConnectionNotFound
}

func (f *fakeRepository) GetUserConnections(ctx context.Context, userID int64, active bool) ([]*Connection, error) {
	result := []*Connection{}
	for _, conn := range f.connections {
		if (conn.User1ID == userID || conn.User2ID == userID) && conn.IsActive == active {
			result = append(result, conn)
		}
	}
	return result, nil
}

func (f *fakeRepository) UpdateConnection(ctx context.Context, conn *Connection) error {
	return nil
}

func (f *fakeRepository) IsConnected(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	for _, conn := range f.connections {
		if !conn.IsActive {
			continue
		}
		if (conn.User1ID == user1ID && conn.User2ID == user2ID) ||
			(conn.User1ID == user2ID && conn.User2ID == user1ID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) RecordSession(ctx context.Context, connectionID int64) error {
	conn, err := f.GetConnection(ctx, connectionID)
	if err != nil {
		return err
	}
	conn.SessionCount++
	return nil
}

func (f *fakeRepository) CreateDailyPick(ctx context.Context, pick *DailyPick) error {
	pick.ID = f.nextID
	f.nextID++
	f.picks = append(f.picks, pick)
	return nil
}

func (f *fakeRepository) GetUserDailyPicks(ctx context.Context, userID int64, limit int, excludeSeen bool) ([]*DailyPick, error) {
	result := []*DailyPick{}
	for _, pick := range f.picks {
		if pick.UserID != userID {
			continue
		}
		if excludeSeen && pick.IsSeen {
			continue
		}
		result = append(result, pick)
	}
	return result, nil
}

func (f *fakeRepository) MarkPickSeen(ctx context.Context, pickID int64) error {
	for _, pick := range f.picks {
		if pick.ID == pickID {
			pick.IsSeen = true
			return nil
		}
	}
	return nil
}

func (f *fakeRepository) DeleteExpiredPicks(ctx context.Context) error { return nil }

func (f *fakeRepository) HasTodayPicks(ctx context.Context, userID int64) (bool, error) {
	for _, pick := range f.picks {
		if pick.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) GetCandidateProfile(ctx context.Context, userID int64) (*profile.StudyProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeRepository) FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*profile.StudyProfile, error) {
	result := []*profile.StudyProfile{}
	for id, p := range f.profiles {
		if id == userID || !p.IsLookingForPartner {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeRepository) GetActiveSeekerIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	for id, p := range f.profiles {
		if p.IsLookingForPartner {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func strPtr(s string) *string { return &s }

func studyProfile(userID int64, name string, subjects ...string) *profile.StudyProfile {
	return &profile.StudyProfile{
		UserID:              userID,
		DisplayName:         name,
		Subjects:            pq.StringArray(subjects),
		Interests:           pq.StringArray{"chess"},
		AvailableDays:       pq.StringArray{"Mon", "Wed"},
		SkillLevel:          strPtr("INTERMEDIATE"),
		StudyStyle:          strPtr("VISUAL"),
		IsLookingForPartner: true,
	}
}

func newTestService(repo Repository) Service {
	return NewService(repo, matching.NewDefaultEngine(), nil, &Config{
		DiscoverFeedSize: 10,
		DailyPicksCount:  3,
		MinMatchScore:    0,
		CandidatePool:    50,
		FeedCacheTTL:     time.Hour,
	})
}

func TestGetMatchScore(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Ada", "math", "physics")
	repo.profiles[2] = studyProfile(2, "Grace", "math", "physics")
	svc := newTestService(repo)

	result, err := svc.GetMatchScore(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, result.MatchDataInsufficient)
	require.NotNil(t, result.MatchScore)
	assert.Greater(t, *result.MatchScore, 0)
}

func TestGetMatchScoreMissingProfile(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Ada", "math")
	svc := newTestService(repo)

	_, err := svc.GetMatchScore(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSendPartnerRequestToSelf(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 1})
	assert.ErrorIs(t, err, ErrCannotRequestSelf)
}

func TestSendPartnerRequestDuplicatePending(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	require.NoError(t, err)

	_, err = svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	assert.ErrorIs(t, err, ErrAlreadyRequested)
}

func TestSendPartnerRequestAlreadyConnected(t *testing.T) {
	repo := newFakeRepository()
	repo.connections = append(repo.connections, &Connection{ID: 1, User1ID: 1, User2ID: 2, IsActive: true})
	svc := newTestService(repo)

	_, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestRespondToRequestOnlyReceiverMayRespond(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	req, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	require.NoError(t, err)

	_, err = svc.RespondToRequest(context.Background(), req.ID, 3, &RespondPartnerRequestDTO{Status: "accepted"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRespondToRequestAcceptCreatesConnection(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Ada", "math")
	repo.profiles[2] = studyProfile(2, "Grace", "math")
	svc := newTestService(repo)

	req, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	require.NoError(t, err)

	responded, err := svc.RespondToRequest(context.Background(), req.ID, 2, &RespondPartnerRequestDTO{Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, "accepted", responded.Status)
	assert.NotNil(t, responded.RespondedAt)
	require.Len(t, repo.connections, 1)
	assert.Equal(t, int64(1), repo.connections[0].User1ID)
	assert.Equal(t, int64(2), repo.connections[0].User2ID)
	assert.NotNil(t, repo.connections[0].MatchScore)
}

func TestRespondToRequestDecline(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	req, err := svc.SendPartnerRequest(context.Background(), 1, &SendPartnerRequestDTO{ReceiverID: 2})
	require.NoError(t, err)

	responded, err := svc.RespondToRequest(context.Background(), req.ID, 2, &RespondPartnerRequestDTO{
		Status:         "declined",
		DeclinedReason: "different schedule",
	})
	require.NoError(t, err)

	assert.Equal(t, "declined", responded.Status)
	assert.Equal(t, "different schedule", *responded.DeclinedReason)
	assert.Empty(t, repo.connections)

	_, err = svc.RespondToRequest(context.Background(), req.ID, 2, &RespondPartnerRequestDTO{Status: "accepted"})
	assert.Error(t, err)
}

func TestDiscoverReturnsRankedFeed(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Ada", "math", "physics")
	repo.profiles[2] = studyProfile(2, "Grace", "math", "physics")
	repo.profiles[3] = studyProfile(3, "Linus", "history")
	svc := newTestService(repo)

	feed, err := svc.Discover(context.Background(), 1, &DiscoverParams{})
	require.NoError(t, err)

	require.Len(t, feed, 2)
	for i := 1; i < len(feed); i++ {
		require.NotNil(t, feed[i-1].Score)
		require.NotNil(t, feed[i].Score)
		assert.GreaterOrEqual(t, *feed[i-1].Score, *feed[i].Score)
	}
	// Identical subjects beat a disjoint profile
	assert.Equal(t, int64(2), feed[0].UserID)
}

func TestDiscoverWithoutProfile(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Discover(context.Background(), 1, &DiscoverParams{})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDisconnectRequiresMembership(t *testing.T) {
	repo := newFakeRepository()
	repo.connections = append(repo.connections, &Connection{ID: 7, User1ID: 1, User2ID: 2, IsActive: true})
	svc := newTestService(repo)

	err := svc.Disconnect(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.Disconnect(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, repo.connections[0].IsActive)
	assert.Equal(t, int64(1), *repo.connections[0].DisconnectedBy)
}

func TestRecordSessionIncrementsCount(t *testing.T) {
	repo := newFakeRepository()
	repo.connections = append(repo.connections, &Connection{ID: 7, User1ID: 1, User2ID: 2, IsActive: true})
	svc := newTestService(repo)

	require.NoError(t, svc.RecordSession(context.Background(), 7, 2))
	assert.Equal(t, 1, repo.connections[0].SessionCount)

	assert.ErrorIs(t, svc.RecordSession(context.Background(), 7, 9), ErrUnauthorized)
}

func TestMarkPickSeenRejectsForeignPick(t *testing.T) {
	repo := newFakeRepository()
	repo.picks = append(repo.picks, &DailyPick{ID: 5, UserID: 1, RecommendedUserID: 2, Score: 80})
	svc := newTestService(repo)

	assert.ErrorIs(t, svc.MarkPickSeen(context.Background(), 2, 5), ErrUnauthorized)

	require.NoError(t, svc.MarkPickSeen(context.Background(), 1, 5))
	assert.True(t, repo.picks[0].IsSeen)
}

func TestSearchRanksNameHitsAboveSubjectHits(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Searcher", "chemistry")
	repo.profiles[2] = studyProfile(2, "Ada", "math", "physics")
	repo.profiles[3] = studyProfile(3, "Mathilda", "history")
	repo.profiles[4] = studyProfile(4, "Linus", "biology")
	svc := newTestService(repo)

	hits, err := svc.Search(context.Background(), 1, &SearchParams{Query: "math"})
	require.NoError(t, err)

	require.Len(t, hits, 2)
	// Name matches outrank subject matches
	assert.Equal(t, int64(3), hits[0].UserID)
	assert.Equal(t, int64(2), hits[1].UserID)
	assert.Greater(t, hits[0].Relevance, hits[1].Relevance)
	assert.Contains(t, hits[1].MatchedTerms, "math")
}

func TestSearchEmptyQueryReturnsEveryone(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Searcher", "chemistry")
	repo.profiles[2] = studyProfile(2, "Ada", "math")
	repo.profiles[3] = studyProfile(3, "Grace", "physics")
	svc := newTestService(repo)

	hits, err := svc.Search(context.Background(), 1, &SearchParams{Query: "  "})
	require.NoError(t, err)

	assert.Len(t, hits, 2)
	for _, hit := range hits {
		assert.Equal(t, 100, hit.Score)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Searcher", "chemistry")
	for i := int64(2); i <= 6; i++ {
		repo.profiles[i] = studyProfile(i, "Peer", "math")
	}
	svc := newTestService(repo)

	hits, err := svc.Search(context.Background(), 1, &SearchParams{Query: "math", Limit: 3})
	require.NoError(t, err)

	assert.Len(t, hits, 3)
}

func TestGenerateDailyPicks(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles[1] = studyProfile(1, "Ada", "math", "physics")
	repo.profiles[2] = studyProfile(2, "Grace", "math", "physics")
	svc := newTestService(repo)

	require.NoError(t, svc.GenerateDailyPicks(context.Background()))

	assert.NotEmpty(t, repo.picks)
	for _, pick := range repo.picks {
		assert.NotEqual(t, pick.UserID, pick.RecommendedUserID)
		assert.Greater(t, pick.Score, 0)
		assert.NotNil(t, pick.ExpiresAt)
	}

	// A second run the same day is a no-op
	before := len(repo.picks)
	require.NoError(t, svc.GenerateDailyPicks(context.Background()))
	assert.Equal(t, before, len(repo.picks))
}
