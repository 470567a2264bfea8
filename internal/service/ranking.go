package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hameema-git/ramzan-challange/internal/dto"
)

// ScoredUser is one participant with an aggregated point total, ready for
// ranking. Callers pre-filter by scope (global or group membership).
type ScoredUser struct {
	ID          uuid.UUID
	Name        string
	Location    string
	TotalPoints float64
}

// Rank sorts descending by points and assigns standard competition ranks:
// tied users share a rank and the next distinct score takes its 1-based
// position, so [100, 100, 80, 80, 80, 50] ranks as [1, 1, 3, 3, 3, 6].
// Equal scores tie-break by user ID ascending so the order is deterministic.
func Rank(users []ScoredUser) []dto.LeaderboardEntry {
	sorted := make([]ScoredUser, len(users))
	copy(sorted, users)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return strings.Compare(sorted[i].ID.String(), sorted[j].ID.String()) < 0
	})

	entries := make([]dto.LeaderboardEntry, 0, len(sorted))

	currentRank := 1
	var previousPoints *float64

	for i, u := range sorted {
		if previousPoints == nil || u.TotalPoints != *previousPoints {
			currentRank = i + 1
		}

		entries = append(entries, dto.LeaderboardEntry{
			UserID:      u.ID,
			Name:        u.Name,
			Location:    u.Location,
			TotalPoints: u.TotalPoints,
			Rank:        currentRank,
			Position:    i + 1,
		})

		points := u.TotalPoints
		previousPoints = &points
	}

	return entries
}

// FindEntry returns the entry for the given user, or nil when the user is
// outside the ranked scope. "No rank" is a valid outcome, not an error.
func FindEntry(entries []dto.LeaderboardEntry, userID uuid.UUID) *dto.LeaderboardEntry {
	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i]
		}
	}
	return nil
}
