package partners

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/studycircleapp/studycircle-backend/internal/profile"
)

// Repository defines data access for the partners module
type Repository interface {
	// Partner requests
	CreatePartnerRequest(ctx context.Context, req *PartnerRequest) error
	GetPartnerRequest(ctx context.Context, id int64) (*PartnerRequest, error)
	UpdatePartnerRequest(ctx context.Context, req *PartnerRequest) error
	GetUserPartnerRequests(ctx context.Context, userID int64, requestType string) ([]*PartnerRequest, error)
	HasPendingRequest(ctx context.Context, senderID, receiverID int64) (bool, error)

	// Connections
	CreateConnection(ctx context.Context, conn *Connection) error
	GetConnection(ctx context.Context, id int64) (*Connection, error)
	GetUserConnections(ctx context.Context, userID int64, active bool) ([]*Connection, error)
	UpdateConnection(ctx context.Context, conn *Connection) error
	IsConnected(ctx context.Context, user1ID, user2ID int64) (bool, error)
	RecordSession(ctx context.Context, connectionID int64) error

	// Daily picks
	CreateDailyPick(ctx context.Context, pick *DailyPick) error
	GetUserDailyPicks(ctx context.Context, userID int64, limit int, excludeSeen bool) ([]*DailyPick, error)
	MarkPickSeen(ctx context.Context, pickID int64) error
	DeleteExpiredPicks(ctx context.Context) error
	HasTodayPicks(ctx context.Context, userID int64) (bool, error)

	// Candidate profiles for matching
	GetCandidateProfile(ctx context.Context, userID int64) (*profile.StudyProfile, error)
	FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*profile.StudyProfile, error)
	GetActiveSeekerIDs(ctx context.Context) ([]int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL-backed partners repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Partner request methods

func (r *postgresRepository) CreatePartnerRequest(ctx context.Context, req *PartnerRequest) error {
	query := `
		INSERT INTO partner_requests (sender_id, receiver_id, message, subject, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		req.SenderID, req.ReceiverID, req.Message, req.Subject, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *postgresRepository) GetPartnerRequest(ctx context.Context, id int64) (*PartnerRequest, error) {
	var req PartnerRequest
	query := `SELECT * FROM partner_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *postgresRepository) UpdatePartnerRequest(ctx context.Context, req *PartnerRequest) error {
	query := `
		UPDATE partner_requests
		SET status = $2, response_message = $3, declined_reason = $4,
		    responded_at = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	_, err := r.db.ExecContext(
		ctx, query,
		req.ID, req.Status, req.ResponseMessage, req.DeclinedReason, req.RespondedAt,
	)

	return err
}

func (r *postgresRepository) GetUserPartnerRequests(ctx context.Context, userID int64, requestType string) ([]*PartnerRequest, error) {
	var condition string
	switch requestType {
	case "sent":
		condition = "pr.sender_id = $1"
	case "received":
		condition = "pr.receiver_id = $1"
	default:
		condition = "(pr.sender_id = $1 OR pr.receiver_id = $1)"
	}

	query := fmt.Sprintf(`
		SELECT pr.* FROM partner_requests pr
		WHERE %s
		ORDER BY pr.created_at DESC
	`, condition)

	requests := []*PartnerRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *postgresRepository) HasPendingRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM partner_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		)
	`
	err := r.db.GetContext(ctx, &exists, query, senderID, receiverID)
	return exists, err
}

// Connection methods

func (r *postgresRepository) CreateConnection(ctx context.Context, conn *Connection) error {
	query := `
		INSERT INTO connections (user1_id, user2_id, match_score, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, connected_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		conn.User1ID, conn.User2ID, conn.MatchScore,
	).Scan(&conn.ID, &conn.ConnectedAt)
}

func (r *postgresRepository) GetConnection(ctx context.Context, id int64) (*Connection, error) {
	var conn Connection
	query := `SELECT * FROM connections WHERE id = $1`

	err := r.db.GetContext(ctx, &conn, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &conn, nil
}

func (r *postgresRepository) GetUserConnections(ctx context.Context, userID int64, active bool) ([]*Connection, error) {
	query := `
		SELECT c.* FROM connections c
		WHERE (c.user1_id = $1 OR c.user2_id = $1) AND c.is_active = $2
		ORDER BY c.connected_at DESC
	`

	connections := []*Connection{}
	if err := r.db.SelectContext(ctx, &connections, query, userID, active); err != nil {
		return nil, err
	}

	return connections, nil
}

func (r *postgresRepository) UpdateConnection(ctx context.Context, conn *Connection) error {
	query := `
		UPDATE connections
		SET is_active = $2, disconnected_by = $3, disconnected_at = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, conn.ID, conn.IsActive, conn.DisconnectedBy, conn.DisconnectedAt)
	return err
}

func (r *postgresRepository) IsConnected(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE ((user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1))
			AND is_active = TRUE
		)
	`
	err := r.db.GetContext(ctx, &exists, query, user1ID, user2ID)
	return exists, err
}

func (r *postgresRepository) RecordSession(ctx context.Context, connectionID int64) error {
	query := `
		UPDATE connections
		SET session_count = session_count + 1, last_session_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, connectionID)
	return err
}

// Daily pick methods

func (r *postgresRepository) CreateDailyPick(ctx context.Context, pick *DailyPick) error {
	query := `
		INSERT INTO daily_picks (user_id, recommended_user_id, score, reason, breakdown, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		pick.UserID, pick.RecommendedUserID, pick.Score,
		pick.Reason, pick.Breakdown, pick.ExpiresAt,
	).Scan(&pick.ID, &pick.CreatedAt)
}

func (r *postgresRepository) GetUserDailyPicks(ctx context.Context, userID int64, limit int, excludeSeen bool) ([]*DailyPick, error) {
	query := `
		SELECT dp.* FROM daily_picks dp
		WHERE dp.user_id = $1
		AND (dp.expires_at IS NULL OR dp.expires_at > NOW())
	`
	if excludeSeen {
		query += ` AND dp.is_seen = FALSE`
	}
	query += ` ORDER BY dp.score DESC LIMIT $2`

	picks := []*DailyPick{}
	if err := r.db.SelectContext(ctx, &picks, query, userID, limit); err != nil {
		return nil, err
	}

	return picks, nil
}

func (r *postgresRepository) MarkPickSeen(ctx context.Context, pickID int64) error {
	query := `UPDATE daily_picks SET is_seen = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, pickID)
	return err
}

func (r *postgresRepository) DeleteExpiredPicks(ctx context.Context) error {
	query := `DELETE FROM daily_picks WHERE expires_at IS NOT NULL AND expires_at < NOW()`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *postgresRepository) HasTodayPicks(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM daily_picks
			WHERE user_id = $1 AND created_at >= date_trunc('day', NOW())
		)
	`
	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}

// Candidate profile methods

const candidateColumns = `
	sp.id, sp.user_id, u.username, sp.display_name, sp.bio, sp.about, sp.age,
	sp.subjects, sp.interests, sp.goals, sp.available_days, sp.available_hours,
	sp.languages, sp.strengths, sp.weaknesses,
	sp.skill_level, sp.study_style, sp.role, sp.school,
	sp.location_city, sp.location_country, sp.location_lat, sp.location_lng, sp.timezone,
	sp.is_looking_for_partner, sp.last_study_date, sp.created_at, sp.updated_at
`

func (r *postgresRepository) GetCandidateProfile(ctx context.Context, userID int64) (*profile.StudyProfile, error) {
	var p profile.StudyProfile
	query := fmt.Sprintf(`
		SELECT %s FROM study_profiles sp
		JOIN users u ON sp.user_id = u.id
		WHERE sp.user_id = $1
	`, candidateColumns)

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*profile.StudyProfile, error) {
	var conditions []string
	args := []interface{}{userID}

	conditions = append(conditions, "sp.user_id != $1")
	conditions = append(conditions, "sp.is_looking_for_partner = TRUE")

	if filters.ExcludeConnected {
		conditions = append(conditions, `
			NOT EXISTS (
				SELECT 1 FROM connections c
				WHERE ((c.user1_id = $1 AND c.user2_id = sp.user_id)
					OR (c.user2_id = $1 AND c.user1_id = sp.user_id))
				AND c.is_active = TRUE
			)`)
	}

	if filters.ExcludeDeclined {
		conditions = append(conditions, `
			NOT EXISTS (
				SELECT 1 FROM partner_requests pr
				WHERE pr.sender_id = $1 AND pr.receiver_id = sp.user_id
				AND pr.status = 'declined'
			)`)
	}

	if filters.Role != "" {
		args = append(args, filters.Role)
		conditions = append(conditions, fmt.Sprintf("sp.role = $%d", len(args)))
	}

	if len(filters.Subjects) > 0 {
		args = append(args, pq.StringArray(filters.Subjects))
		conditions = append(conditions, fmt.Sprintf("sp.subjects && $%d", len(args)))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s FROM study_profiles sp
		JOIN users u ON sp.user_id = u.id
		WHERE %s
		ORDER BY sp.updated_at DESC
		LIMIT $%d
	`, candidateColumns, strings.Join(conditions, " AND "), len(args))

	candidates := []*profile.StudyProfile{}
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *postgresRepository) GetActiveSeekerIDs(ctx context.Context) ([]int64, error) {
	query := `
		SELECT sp.user_id FROM study_profiles sp
		WHERE sp.is_looking_for_partner = TRUE
	`

	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}

	return ids, nil
}
