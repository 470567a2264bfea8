package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredUsers(points ...float64) []ScoredUser {
	users := make([]ScoredUser, 0, len(points))
	for _, p := range points {
		users = append(users, ScoredUser{ID: uuid.New(), Name: "user", TotalPoints: p})
	}
	return users
}

func TestRank_CompetitionRanking(t *testing.T) {
	entries := Rank(scoredUsers(100, 100, 80, 80, 80, 50))

	ranks := make([]int, 0, len(entries))
	for _, e := range entries {
		ranks = append(ranks, e.Rank)
	}

	assert.Equal(t, []int{1, 1, 3, 3, 3, 6}, ranks)
}

func TestRank_PositionsAreSequential(t *testing.T) {
	entries := Rank(scoredUsers(10, 10, 10))

	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, 1, e.Rank)
	}
}

func TestRank_SortsDescending(t *testing.T) {
	entries := Rank(scoredUsers(5, 90, 42))

	require.Len(t, entries, 3)
	assert.Equal(t, 90.0, entries[0].TotalPoints)
	assert.Equal(t, 42.0, entries[1].TotalPoints)
	assert.Equal(t, 5.0, entries[2].TotalPoints)
}

func TestRank_TiesBreakByIDForStableOrder(t *testing.T) {
	users := scoredUsers(70, 70, 70)

	first := Rank(users)
	second := Rank([]ScoredUser{users[2], users[0], users[1]})

	for i := range first {
		assert.Equal(t, first[i].UserID, second[i].UserID)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestFindEntry_AbsentUserReturnsNil(t *testing.T) {
	entries := Rank(scoredUsers(10, 20))
	assert.Nil(t, FindEntry(entries, uuid.New()))
}

func TestFindEntry_PresentUser(t *testing.T) {
	users := scoredUsers(10, 20)
	entries := Rank(users)

	entry := FindEntry(entries, users[1].ID)
	require.NotNil(t, entry)
	assert.Equal(t, 20.0, entry.TotalPoints)
	assert.Equal(t, 1, entry.Rank)
}
