// internal/partners/dto.go
package partners

import "github.com/studycircleapp/studycircle-backend/internal/matching"

// DTOs for API requests/responses

type SendPartnerRequestDTO struct {
	ReceiverID int64  `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"omitempty,max=500"`
	Subject    string `json:"subject" validate:"omitempty,max=100"`
}

type RespondPartnerRequestDTO struct {
	Status          string `json:"status" validate:"required,oneof=accepted declined"`
	ResponseMessage string `json:"response_message,omitempty" validate:"omitempty,max=500"`
	DeclinedReason  string `json:"declined_reason,omitempty" validate:"omitempty,max=200"`
}

type DiscoverParams struct {
	Limit   int  `json:"limit"`
	Refresh bool `json:"refresh"`
}

type SearchParams struct {
	Query          string `json:"query"`
	ExpandSynonyms bool   `json:"expand_synonyms"`
	FuzzyMatch     bool   `json:"fuzzy_match"`
	MinScore       int    `json:"min_score"`
	Limit          int    `json:"limit"`
}

type CandidateFilters struct {
	ExcludeConnected bool     `json:"exclude_connected"`
	ExcludeDeclined  bool     `json:"exclude_declined"`
	Role             string   `json:"role"`
	Subjects         []string `json:"subjects"`
	Limit            int      `json:"limit"`
}

// Supporting types

// PartnerSummary is the short form of a user shown in lists
type PartnerSummary struct {
	ID          int64    `json:"id" db:"id"`
	Username    string   `json:"username" db:"username"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Bio         *string  `json:"bio,omitempty" db:"bio"`
	School      *string  `json:"school,omitempty" db:"school"`
	SkillLevel  *string  `json:"skill_level,omitempty" db:"skill_level"`
}

// DiscoverResult is one entry of the discover feed
type DiscoverResult struct {
	UserID      int64                 `json:"user_id"`
	DisplayName string                `json:"display_name"`
	Score       *int                  `json:"score"`
	Tier        string                `json:"tier,omitempty"`
	Reasons     []string              `json:"reasons,omitempty"`
	Result      *matching.MatchResult `json:"result,omitempty"`
}

// SearchHit is one entry of a partner search response
type SearchHit struct {
	UserID       int64    `json:"user_id"`
	DisplayName  string   `json:"display_name"`
	Score        int      `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
	Relevance    int      `json:"relevance"`
}
