package dto

import (
	"time"

	"github.com/google/uuid"
)

type GroupSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	InviteCode  string    `json:"invite_code,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupDetail is a group page: summary, leaderboard over members and the
// caller's standing within it.
type GroupDetail struct {
	Group       GroupSummary       `json:"group"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	MyRank      *int               `json:"my_rank"`
	// AdminOnly is set when the caller created the group but opted out
	// of the competition.
	AdminOnly bool `json:"admin_only,omitempty"`
}

// GroupSearchHit is a group discovery result from the search index.
type GroupSearchHit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}
