package partners

import (
	"encoding/json"
	"time"
)

// PartnerRequest is an invitation to study together
type PartnerRequest struct {
	ID              int64      `json:"id" db:"id"`
	SenderID        int64      `json:"sender_id" db:"sender_id"`
	ReceiverID      int64      `json:"receiver_id" db:"receiver_id"`
	Message         *string    `json:"message,omitempty" db:"message"`
	Subject         *string    `json:"subject,omitempty" db:"subject"`
	Status          string     `json:"status" db:"status"`
	DeclinedReason  *string    `json:"declined_reason,omitempty" db:"declined_reason"`
	ResponseMessage *string    `json:"response_message,omitempty" db:"response_message"`
	RespondedAt     *time.Time `json:"responded_at,omitempty" db:"responded_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	// Joined fields
	Sender   *PartnerSummary `json:"sender,omitempty"`
	Receiver *PartnerSummary `json:"receiver,omitempty"`
}

// Connection links two users who agreed to study together
type Connection struct {
	ID              int64      `json:"id" db:"id"`
	User1ID         int64      `json:"user1_id" db:"user1_id"`
	User2ID         int64      `json:"user2_id" db:"user2_id"`
	MatchScore      *int       `json:"match_score,omitempty" db:"match_score"`
	SessionCount    int        `json:"session_count" db:"session_count"`
	LastSessionAt   *time.Time `json:"last_session_at,omitempty" db:"last_session_at"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	DisconnectedBy  *int64     `json:"disconnected_by,omitempty" db:"disconnected_by"`
	DisconnectedAt  *time.Time `json:"disconnected_at,omitempty" db:"disconnected_at"`
	ConnectedAt     time.Time  `json:"connected_at" db:"connected_at"`
	ConnectedUser   *PartnerSummary `json:"connected_user,omitempty"`
}

// DailyPick is a precomputed recommendation shown once per day
type DailyPick struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"user_id" db:"user_id"`
	RecommendedUserID int64           `json:"recommended_user_id" db:"recommended_user_id"`
	Score             int             `json:"score" db:"score"`
	Reason            *string         `json:"reason,omitempty" db:"reason"`
	Breakdown         json.RawMessage `json:"breakdown,omitempty" db:"breakdown"`
	IsSeen            bool            `json:"is_seen" db:"is_seen"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	RecommendedUser   *PartnerSummary `json:"recommended_user,omitempty"`
}
