// internal/profile/models.go

package profile

import (
	"time"

	"github.com/lib/pq"

	"github.com/studycircleapp/studycircle-backend/internal/matching"
)

// StudyProfile represents a user's study profile
type StudyProfile struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Username    string  `json:"username" db:"username"`
	DisplayName string  `json:"display_name" db:"display_name"`
	Bio         *string `json:"bio,omitempty" db:"bio"`
	About       *string `json:"about,omitempty" db:"about"`
	Age         *int    `json:"age,omitempty" db:"age"`

	// Study fields
	Subjects       pq.StringArray `json:"subjects" db:"subjects"`
	Interests      pq.StringArray `json:"interests" db:"interests"`
	Goals          pq.StringArray `json:"goals" db:"goals"`
	AvailableDays  pq.StringArray `json:"available_days" db:"available_days"`
	AvailableHours pq.StringArray `json:"available_hours" db:"available_hours"`
	Languages      pq.StringArray `json:"languages" db:"languages"`
	Strengths      pq.StringArray `json:"strengths" db:"strengths"`
	Weaknesses     pq.StringArray `json:"weaknesses" db:"weaknesses"`
	SkillLevel     *string        `json:"skill_level,omitempty" db:"skill_level"`
	StudyStyle     *string        `json:"study_style,omitempty" db:"study_style"`
	Role           *string        `json:"role,omitempty" db:"role"`
	School         *string        `json:"school,omitempty" db:"school"`

	// Location
	LocationCity    *string  `json:"location_city,omitempty" db:"location_city"`
	LocationCountry *string  `json:"location_country,omitempty" db:"location_country"`
	LocationLat     *float64 `json:"location_lat,omitempty" db:"location_lat"`
	LocationLng     *float64 `json:"location_lng,omitempty" db:"location_lng"`
	Timezone        *string  `json:"timezone,omitempty" db:"timezone"`

	// Activity
	IsLookingForPartner bool       `json:"is_looking_for_partner" db:"is_looking_for_partner"`
	LastStudyDate       *time.Time `json:"last_study_date,omitempty" db:"last_study_date"`

	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateProfileRequest is the payload for profile setup and updates
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Bio         *string  `json:"bio" validate:"omitempty,max=500"`
	About       *string  `json:"about" validate:"omitempty,max=1000"`
	Age         *int     `json:"age" validate:"omitempty,min=13,max=120"`
	Subjects    []string `json:"subjects" validate:"omitempty,dive,min=1,max=50"`
	Interests   []string `json:"interests" validate:"omitempty,dive,min=1,max=50"`
	Goals       []string `json:"goals" validate:"omitempty,max=10,dive,min=1,max=100"`

	AvailableDays  []string `json:"available_days" validate:"omitempty,max=7,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	AvailableHours []string `json:"available_hours" validate:"omitempty,max=24"`
	Languages      []string `json:"languages" validate:"omitempty,max=10,dive,min=2,max=40"`
	Strengths      []string `json:"strengths" validate:"omitempty,max=10,dive,min=1,max=50"`
	Weaknesses     []string `json:"weaknesses" validate:"omitempty,max=10,dive,min=1,max=50"`

	SkillLevel *string `json:"skill_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	StudyStyle *string `json:"study_style" validate:"omitempty,oneof=VISUAL AUDITORY KINESTHETIC READING_WRITING COLLABORATIVE INDEPENDENT SOLO MIXED"`
	Role       *string `json:"role" validate:"omitempty,oneof=STUDENT TUTOR BOTH"`
	School     *string `json:"school" validate:"omitempty,max=150"`

	LocationCity    *string  `json:"location_city" validate:"omitempty,max=100"`
	LocationCountry *string  `json:"location_country" validate:"omitempty,max=100"`
	LocationLat     *float64 `json:"location_lat" validate:"omitempty,latitude"`
	LocationLng     *float64 `json:"location_lng" validate:"omitempty,longitude"`
	Timezone        *string  `json:"timezone" validate:"omitempty,max=30"`

	IsLookingForPartner *bool `json:"is_looking_for_partner"`
}

// CompletionStatus reports how complete a profile is and what's missing
type CompletionStatus struct {
	Percentage    int      `json:"percentage"`
	MissingFields []string `json:"missing_fields"`
	CanBeMatched  bool     `json:"can_be_matched"`
}

// ToMatchingProfile converts a stored profile into the form the match
// engine works with
func (p *StudyProfile) ToMatchingProfile() *matching.ProfileData {
	looking := p.IsLookingForPartner

	return &matching.ProfileData{
		Subjects:            []string(p.Subjects),
		Interests:           []string(p.Interests),
		Goals:               []string(p.Goals),
		AvailableDays:       []string(p.AvailableDays),
		AvailableHours:      []string(p.AvailableHours),
		Languages:           []string(p.Languages),
		Strengths:           []string(p.Strengths),
		Weaknesses:          []string(p.Weaknesses),
		SkillLevel:          p.SkillLevel,
		StudyStyle:          p.StudyStyle,
		Role:                p.Role,
		School:              p.School,
		Timezone:            p.Timezone,
		Bio:                 p.Bio,
		AboutYourself:       p.About,
		Age:                 p.Age,
		LocationLat:         p.LocationLat,
		LocationLng:         p.LocationLng,
		LocationCity:        p.LocationCity,
		LocationCountry:     p.LocationCountry,
		LastStudyDate:       p.LastStudyDate,
		IsLookingForPartner: &looking,
	}
}
