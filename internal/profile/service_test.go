package profile

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	profiles map[int64]*StudyProfile
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: map[int64]*StudyProfile{}, nextID: 1}
}

func (f *fakeRepository) CreateProfile(ctx context.Context, p *StudyProfile) error {
	p.ID = f.nextID
	f.nextID++
	copied := *p
	f.profiles[p.UserID] = &copied
	return nil
}

func (f *fakeRepository) GetProfileByUserID(ctx context.Context, userID int64) (*StudyProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, p *StudyProfile) error {
	if _, ok := f.profiles[p.UserID]; !ok {
		return ErrProfileNotFound
	}
	copied := *p
	f.profiles[p.UserID] = &copied
	return nil
}

func (f *fakeRepository) TouchLastStudyDate(ctx context.Context, userID int64) error {
	return nil
}

func (f *fakeRepository) SetLookingForPartner(ctx context.Context, userID int64, looking bool) error {
	p, ok := f.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.IsLookingForPartner = looking
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, &Config{MaxSubjects: 5, MaxInterests: 5})
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSetupProfileCreatesProfile(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	p, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		DisplayName: strPtr("Ada"),
		Subjects:    []string{"math", "physics"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, pq.StringArray{"math", "physics"}, p.Subjects)
	assert.True(t, p.IsLookingForPartner)
	assert.Greater(t, p.CompletionPercentage, 0)
}

func TestSetupProfileRejectsDuplicate(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{DisplayName: strPtr("Ada")})
	require.NoError(t, err)

	_, err = svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{DisplayName: strPtr("Ada")})
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)
}

func TestSetupProfileDefaultsDisplayName(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	p, err := svc.SetupProfile(context.Background(), 42, &UpdateProfileRequest{})
	require.NoError(t, err)

	assert.Equal(t, "user42", p.DisplayName)
}

func TestSetupProfileEnforcesLimits(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		Subjects: []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.ErrorIs(t, err, ErrTooManySubjects)

	_, err = svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		Interests: []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.ErrorIs(t, err, ErrTooManyInterests)
}

func TestUpdateProfileLeavesOmittedFieldsUnchanged(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		DisplayName: strPtr("Ada"),
		Subjects:    []string{"math"},
		SkillLevel:  strPtr("BEGINNER"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{
		SkillLevel: strPtr("ADVANCED"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.DisplayName)
	assert.Equal(t, pq.StringArray{"math"}, updated.Subjects)
	assert.Equal(t, "ADVANCED", *updated.SkillLevel)
}

func TestUpdateProfileEmptySliceClearsField(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		Subjects: []string{"math"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{
		Subjects: []string{},
	})
	require.NoError(t, err)

	assert.Empty(t, updated.Subjects)
}

func TestGetCompletionSparseProfile(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		DisplayName: strPtr("Ada"),
		Age:         intPtr(20),
	})
	require.NoError(t, err)

	status, err := svc.GetCompletion(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, status.CanBeMatched)
	assert.Contains(t, status.MissingFields, "subjects")
	assert.Contains(t, status.MissingFields, "interests")
}

func TestGetCompletionMatchableProfile(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.SetupProfile(context.Background(), 1, &UpdateProfileRequest{
		DisplayName: strPtr("Ada"),
		Subjects:    []string{"math"},
		Interests:   []string{"chess"},
		SkillLevel:  strPtr("INTERMEDIATE"),
		StudyStyle:  strPtr("VISUAL"),
	})
	require.NoError(t, err)

	status, err := svc.GetCompletion(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, status.CanBeMatched)
	assert.NotContains(t, status.MissingFields, "subjects")
}

func TestToMatchingProfileMapsFields(t *testing.T) {
	lat, lng := 6.5, 3.4
	p := &StudyProfile{
		UserID:              1,
		DisplayName:         "Ada",
		Subjects:            pq.StringArray{"math"},
		Interests:           pq.StringArray{"chess"},
		SkillLevel:          strPtr("EXPERT"),
		LocationCity:        strPtr("Lagos"),
		LocationLat:         &lat,
		LocationLng:         &lng,
		IsLookingForPartner: true,
	}

	data := p.ToMatchingProfile()

	assert.Equal(t, []string{"math"}, data.Subjects)
	assert.Equal(t, []string{"chess"}, data.Interests)
	assert.Equal(t, "EXPERT", *data.SkillLevel)
	assert.Equal(t, "Lagos", *data.LocationCity)
	assert.Equal(t, lat, *data.LocationLat)
	assert.True(t, *data.IsLookingForPartner)
}

func TestCompletionPercentageEmptyAndFull(t *testing.T) {
	empty := &StudyProfile{}
	assert.Equal(t, 0, completionPercentage(empty))

	full := &StudyProfile{
		DisplayName:    "Ada",
		Bio:            strPtr("hi"),
		Age:            intPtr(20),
		Subjects:       pq.StringArray{"math"},
		Interests:      pq.StringArray{"chess"},
		Goals:          pq.StringArray{"pass exams"},
		AvailableDays:  pq.StringArray{"Mon"},
		AvailableHours: pq.StringArray{"evening"},
		Languages:      pq.StringArray{"english"},
		SkillLevel:     strPtr("EXPERT"),
		StudyStyle:     strPtr("VISUAL"),
		Role:           strPtr("STUDENT"),
		School:         strPtr("MIT"),
		LocationCity:   strPtr("Lagos"),
		Timezone:       strPtr("UTC+1"),
	}
	assert.Equal(t, 100, completionPercentage(full))
}
