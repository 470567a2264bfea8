package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hameema-git/ramzan-challange/internal/dto"
	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
)

const (
	// GlobalLeaderboardCacheKey holds the JSON-encoded global standings;
	// record saves delete it so the next read rebuilds.
	GlobalLeaderboardCacheKey = "leaderboard:global"
	// LeaderboardEventsChannel is the pub/sub channel for live updates.
	LeaderboardEventsChannel = "leaderboard:events"

	leaderboardCacheTTL = 30 * time.Second
)

type LeaderboardService interface {
	// Global ranks every registered user by their cached running total.
	Global(ctx context.Context) (*dto.LeaderboardResponse, error)
	// Recomputed ranks every registered user from the sum of their
	// stored daily totals, bypassing the cached running total. Badges
	// rank from this source so a stale cache never mints a medal.
	Recomputed(ctx context.Context) (*dto.LeaderboardResponse, error)
	// MyRank reports the caller's standing; Rank and Position are null
	// when the caller is not on the board.
	MyRank(ctx context.Context, userID uuid.UUID) (*dto.MyRankResponse, error)
}

type leaderboardService struct {
	userRepo    repository.UserRepository
	recordRepo  repository.RecordRepository
	redisClient *redis.Client
}

func NewLeaderboardService(userRepo repository.UserRepository, recordRepo repository.RecordRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		userRepo:    userRepo,
		recordRepo:  recordRepo,
		redisClient: redisClient,
	}
}

func (s *leaderboardService) Global(ctx context.Context) (*dto.LeaderboardResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredUser, 0, len(users))
	for _, u := range users {
		scored = append(scored, ScoredUser{
			ID:          u.ID,
			Name:        u.Name,
			Location:    u.Location,
			TotalPoints: u.TotalPoints,
		})
	}

	response := &dto.LeaderboardResponse{
		Entries:    Rank(scored),
		TotalUsers: len(scored),
	}

	s.toCache(ctx, response)

	return response, nil
}

func (s *leaderboardService) Recomputed(ctx context.Context) (*dto.LeaderboardResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.recordRepo.SumByUser(ctx)
	if err != nil {
		return nil, err
	}

	summed := make(map[uuid.UUID]float64, len(totals))
	for _, t := range totals {
		summed[t.UserID] = t.TotalPoints
	}

	scored := make([]ScoredUser, 0, len(users))
	for _, u := range users {
		scored = append(scored, ScoredUser{
			ID:          u.ID,
			Name:        u.Name,
			Location:    u.Location,
			TotalPoints: summed[u.ID],
		})
	}

	return &dto.LeaderboardResponse{
		Entries:    Rank(scored),
		TotalUsers: len(scored),
	}, nil
}

func (s *leaderboardService) MyRank(ctx context.Context, userID uuid.UUID) (*dto.MyRankResponse, error) {
	board, err := s.Global(ctx)
	if err != nil {
		return nil, err
	}

	entry := FindEntry(board.Entries, userID)
	if entry == nil {
		// Registered but not on the board; report an empty standing.
		user, err := s.userRepo.FindByID(ctx, userID.String())
		if err != nil {
			return nil, apperror.ErrNotFound
		}
		return &dto.MyRankResponse{TotalPoints: user.TotalPoints}, nil
	}

	return &dto.MyRankResponse{
		Rank:        &entry.Rank,
		Position:    &entry.Position,
		TotalPoints: entry.TotalPoints,
	}, nil
}

func (s *leaderboardService) fromCache(ctx context.Context) *dto.LeaderboardResponse {
	if s.redisClient == nil {
		return nil
	}

	raw, err := s.redisClient.Get(ctx, GlobalLeaderboardCacheKey).Bytes()
	if err != nil {
		return nil
	}

	var response dto.LeaderboardResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil
	}

	return &response
}

func (s *leaderboardService) toCache(ctx context.Context, response *dto.LeaderboardResponse) {
	if s.redisClient == nil {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.redisClient.Set(ctx, GlobalLeaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache leaderboard", logger.Err(err))
	}
}
