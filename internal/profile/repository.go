// internal/profile/repository.go
// Database access for study profiles

package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines data access for study profiles
type Repository interface {
	CreateProfile(ctx context.Context, p *StudyProfile) error
	GetProfileByUserID(ctx context.Context, userID int64) (*StudyProfile, error)
	UpdateProfile(ctx context.Context, p *StudyProfile) error
	TouchLastStudyDate(ctx context.Context, userID int64) error
	SetLookingForPartner(ctx context.Context, userID int64, looking bool) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL-backed profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProfile(ctx context.Context, p *StudyProfile) error {
	query := `
		INSERT INTO study_profiles (
			user_id, display_name, bio, about, age,
			subjects, interests, goals, available_days, available_hours,
			languages, strengths, weaknesses,
			skill_level, study_style, role, school,
			location_city, location_country, location_lat, location_lng, timezone,
			is_looking_for_partner
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21, $22,
			$23
		)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.DisplayName, p.Bio, p.About, p.Age,
		p.Subjects, p.Interests, p.Goals, p.AvailableDays, p.AvailableHours,
		p.Languages, p.Strengths, p.Weaknesses,
		p.SkillLevel, p.StudyStyle, p.Role, p.School,
		p.LocationCity, p.LocationCountry, p.LocationLat, p.LocationLng, p.Timezone,
		p.IsLookingForPartner,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*StudyProfile, error) {
	var p StudyProfile
	query := `
		SELECT sp.*, u.username
		FROM study_profiles sp
		JOIN users u ON sp.user_id = u.id
		WHERE sp.user_id = $1
	`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *StudyProfile) error {
	query := `
		UPDATE study_profiles SET
			display_name = $2, bio = $3, about = $4, age = $5,
			subjects = $6, interests = $7, goals = $8,
			available_days = $9, available_hours = $10,
			languages = $11, strengths = $12, weaknesses = $13,
			skill_level = $14, study_style = $15, role = $16, school = $17,
			location_city = $18, location_country = $19,
			location_lat = $20, location_lng = $21, timezone = $22,
			is_looking_for_partner = $23,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.DisplayName, p.Bio, p.About, p.Age,
		p.Subjects, p.Interests, p.Goals,
		p.AvailableDays, p.AvailableHours,
		p.Languages, p.Strengths, p.Weaknesses,
		p.SkillLevel, p.StudyStyle, p.Role, p.School,
		p.LocationCity, p.LocationCountry,
		p.LocationLat, p.LocationLng, p.Timezone,
		p.IsLookingForPartner,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrProfileNotFound
	}

	return err
}

func (r *postgresRepository) TouchLastStudyDate(ctx context.Context, userID int64) error {
	query := `UPDATE study_profiles SET last_study_date = NOW(), updated_at = CURRENT_TIMESTAMP WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *postgresRepository) SetLookingForPartner(ctx context.Context, userID int64, looking bool) error {
	query := `UPDATE study_profiles SET is_looking_for_partner = $2, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, looking)
	return err
}
