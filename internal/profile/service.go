// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrTooManySubjects      = errors.New("too many subjects")
	ErrTooManyInterests     = errors.New("too many interests")
)

// Service defines profile operations
type Service interface {
	SetupProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*StudyProfile, error)
	GetProfile(ctx context.Context, userID int64) (*StudyProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*StudyProfile, error)
	GetCompletion(ctx context.Context, userID int64) (*CompletionStatus, error)
	RecordStudySession(ctx context.Context, userID int64) error
	SetLookingForPartner(ctx context.Context, userID int64, looking bool) error
}

// Config holds profile limits
type Config struct {
	MaxSubjects  int
	MaxInterests int
}

type service struct {
	repo   Repository
	config *Config
}

// NewService creates the profile service
func NewService(repo Repository, config *Config) Service {
	return &service{repo: repo, config: config}
}

func (s *service) SetupProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*StudyProfile, error) {
	if _, err := s.repo.GetProfileByUserID(ctx, userID); err == nil {
		return nil, ErrProfileAlreadyExists
	} else if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	if err := s.checkLimits(req); err != nil {
		return nil, err
	}

	p := &StudyProfile{UserID: userID, IsLookingForPartner: true}
	applyRequest(p, req)

	if p.DisplayName == "" {
		p.DisplayName = fmt.Sprintf("user%d", userID)
	}

	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	p.CompletionPercentage = completionPercentage(p)
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*StudyProfile, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.CompletionPercentage = completionPercentage(p)
	return p, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*StudyProfile, error) {
	if err := s.checkLimits(req); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyRequest(p, req)

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	p.CompletionPercentage = completionPercentage(p)
	return p, nil
}

func (s *service) GetCompletion(ctx context.Context, userID int64) (*CompletionStatus, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := p.ToMatchingProfile()
	missing := matching.MissingFields(data)
	filled := matching.MatchableFieldCount() - len(missing)

	hasTopic := len(data.Subjects) > 0 || len(data.Interests) > 0

	return &CompletionStatus{
		Percentage:    completionPercentage(p),
		MissingFields: missing,
		CanBeMatched:  filled >= matching.MinFieldsForMatching && hasTopic,
	}, nil
}

func (s *service) RecordStudySession(ctx context.Context, userID int64) error {
	return s.repo.TouchLastStudyDate(ctx, userID)
}

func (s *service) SetLookingForPartner(ctx context.Context, userID int64, looking bool) error {
	return s.repo.SetLookingForPartner(ctx, userID, looking)
}

func (s *service) checkLimits(req *UpdateProfileRequest) error {
	if len(req.Subjects) > s.config.MaxSubjects {
		return ErrTooManySubjects
	}
	if len(req.Interests) > s.config.MaxInterests {
		return ErrTooManyInterests
	}
	return nil
}

// applyRequest copies the request fields onto the profile. Nil pointers and
// nil slices mean "leave unchanged"; an empty slice clears the field.
func applyRequest(p *StudyProfile, req *UpdateProfileRequest) {
	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.About != nil {
		p.About = req.About
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Subjects != nil {
		p.Subjects = pq.StringArray(req.Subjects)
	}
	if req.Interests != nil {
		p.Interests = pq.StringArray(req.Interests)
	}
	if req.Goals != nil {
		p.Goals = pq.StringArray(req.Goals)
	}
	if req.AvailableDays != nil {
		p.AvailableDays = pq.StringArray(req.AvailableDays)
	}
	if req.AvailableHours != nil {
		p.AvailableHours = pq.StringArray(req.AvailableHours)
	}
	if req.Languages != nil {
		p.Languages = pq.StringArray(req.Languages)
	}
	if req.Strengths != nil {
		p.Strengths = pq.StringArray(req.Strengths)
	}
	if req.Weaknesses != nil {
		p.Weaknesses = pq.StringArray(req.Weaknesses)
	}
	if req.SkillLevel != nil {
		p.SkillLevel = req.SkillLevel
	}
	if req.StudyStyle != nil {
		p.StudyStyle = req.StudyStyle
	}
	if req.Role != nil {
		p.Role = req.Role
	}
	if req.School != nil {
		p.School = req.School
	}
	if req.LocationCity != nil {
		p.LocationCity = req.LocationCity
	}
	if req.LocationCountry != nil {
		p.LocationCountry = req.LocationCountry
	}
	if req.LocationLat != nil {
		p.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		p.LocationLng = req.LocationLng
	}
	if req.Timezone != nil {
		p.Timezone = req.Timezone
	}
	if req.IsLookingForPartner != nil {
		p.IsLookingForPartner = *req.IsLookingForPartner
	}
}

// completionPercentage scores the profile against the fields shown on the
// profile screen, not just the matchable ones
func completionPercentage(p *StudyProfile) int {
	checks := []bool{
		p.DisplayName != "",
		p.Bio != nil && *p.Bio != "",
		p.Age != nil,
		len(p.Subjects) > 0,
		len(p.Interests) > 0,
		len(p.Goals) > 0,
		len(p.AvailableDays) > 0,
		len(p.AvailableHours) > 0,
		len(p.Languages) > 0,
		p.SkillLevel != nil && *p.SkillLevel != "",
		p.StudyStyle != nil && *p.StudyStyle != "",
		p.Role != nil && *p.Role != "",
		p.School != nil && *p.School != "",
		p.LocationCity != nil && *p.LocationCity != "",
		p.Timezone != nil && *p.Timezone != "",
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}

	return filled * 100 / len(checks)
}
