package dto

import "github.com/google/uuid"

// LeaderboardEntry is one ranked row on a leaderboard.
// Rank uses standard competition ranking (ties share a rank, the next
// distinct score jumps to its 1-based position), Position is the plain
// 1-based index in the sorted order.
type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	TotalPoints float64   `json:"total_points"`
	Rank        int       `json:"rank"`
	Position    int       `json:"position"`
}

type LeaderboardResponse struct {
	Entries    []LeaderboardEntry `json:"entries"`
	TotalUsers int                `json:"total_users"`
}

// MyRankResponse carries the caller's standing; Rank is null when the
// caller is outside the requested scope.
type MyRankResponse struct {
	Rank        *int    `json:"rank"`
	Position    *int    `json:"position"`
	TotalPoints float64 `json:"total_points"`
}
