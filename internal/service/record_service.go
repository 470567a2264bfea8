package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
	"github.com/hameema-git/ramzan-challange/pkg/monitoring"
)

const dateLayout = "2006-01-02"

// saveCooldown guards against double-submits of the record form.
const saveCooldown = 2 * time.Second

type RecordService interface {
	// Save computes the day's points, upserts the record for (user, date)
	// and resyncs the user's cached total in one transaction.
	Save(ctx context.Context, userID uuid.UUID, date string, input DailyActivityInput) (*model.DailyRecord, error)
	Get(ctx context.Context, userID uuid.UUID, date string) (*model.DailyRecord, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.DailyRecord, error)
}

// LeaderboardEvent is published after every successful save so live
// leaderboard subscribers can refresh.
type LeaderboardEvent struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	PointsToday float64   `json:"points_today"`
	TotalPoints float64   `json:"total_points"`
}

type recordService struct {
	repo        repository.RecordRepository
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

func NewRecordService(repo repository.RecordRepository, userRepo repository.UserRepository, redisClient *redis.Client) RecordService {
	return &recordService{
		repo:        repo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (s *recordService) Save(ctx context.Context, userID uuid.UUID, date string, input DailyActivityInput) (*model.DailyRecord, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "date must be in YYYY-MM-DD format", apperror.ErrInvalidInput)
	}
	if day.After(time.Now()) {
		return nil, apperror.New(http.StatusBadRequest, "cannot record a future date", apperror.ErrInvalidInput)
	}

	// Reject an empty form before taking the cooldown lock, so a
	// corrected resubmit is never locked out by the failed attempt.
	total := ComputeDailyPoints(input)
	if total == 0 {
		return nil, apperror.New(http.StatusUnprocessableEntity,
			"record only what you sincerely completed", apperror.ErrNothingRecorded)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "save_record", saveCooldown)
	if err != nil {
		logger.Log.Warn("rate limit check failed", logger.Err(err))
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	record := &model.DailyRecord{
		UserID:            userID,
		Date:              date,
		Pages:             input.Pages,
		Ayahs:             input.Ayahs,
		Surahs:            input.Surahs,
		Juz:               input.Juz,
		Minutes:           input.Minutes,
		FardPrayers:       model.StringList(input.FardPrayers),
		SunnahPrayers:     model.StringList(input.SunnahPrayers),
		DhikrManual:       input.DhikrManual,
		DhikrCounter:      input.DhikrCounter,
		TotalDhikr:        input.TotalDhikr(),
		SalahDhikrManual:  input.SalahDhikrManual,
		SalahDhikrCounter: input.SalahDhikrCounter,
		TotalSalahDhikr:   input.TotalSalahDhikr(),
		ZakahCount:        input.ZakahCount,
		HelpCount:         input.HelpCount,
		LearningMinutes:   input.LearningMinutes,
		DuaCount:          input.DuaCount,
		Fasted:            input.Fasted,
		TotalPointsToday:  total,
	}

	streak, lastDate := nextStreak(user, date)
	if err := s.repo.Save(ctx, record, streak, lastDate); err != nil {
		return nil, err
	}

	monitoring.RecordsSaved.Inc()

	// Re-read the user so the event carries the resynced total.
	if fresh, err := s.userRepo.FindByID(ctx, userID.String()); err == nil {
		user = fresh
	}
	s.notifySaved(ctx, user, record)

	return record, nil
}

func (s *recordService) Get(ctx context.Context, userID uuid.UUID, date string) (*model.DailyRecord, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "date must be in YYYY-MM-DD format", apperror.ErrInvalidInput)
	}

	record, err := s.repo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "no record for that date", apperror.ErrNotFound)
		}
		return nil, err
	}

	return record, nil
}

func (s *recordService) List(ctx context.Context, userID uuid.UUID) ([]model.DailyRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

// nextStreak advances the consecutive-day streak. Re-saving the last
// recorded day leaves it alone; backfilling an older day never resets it.
func nextStreak(user *model.User, date string) (int, string) {
	if user.LastRecordedDate == nil {
		return 1, date
	}

	last := *user.LastRecordedDate
	switch {
	case date == last:
		return user.Streak, last
	case date < last:
		return user.Streak, last
	default:
		lastDay, err := time.Parse(dateLayout, last)
		if err == nil && lastDay.AddDate(0, 0, 1).Format(dateLayout) == date {
			return user.Streak + 1, date
		}
		return 1, date
	}
}

// notifySaved invalidates the cached global leaderboard and publishes a
// live-feed event. Both are best effort.
func (s *recordService) notifySaved(ctx context.Context, user *model.User, record *model.DailyRecord) {
	if s.redisClient == nil {
		return
	}

	if err := s.redisClient.Del(ctx, GlobalLeaderboardCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate leaderboard cache", logger.Err(err))
	}

	event := LeaderboardEvent{
		UserID:      user.ID,
		Name:        user.Name,
		Date:        record.Date,
		PointsToday: record.TotalPointsToday,
		TotalPoints: user.TotalPoints,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.redisClient.Publish(ctx, LeaderboardEventsChannel, payload).Err(); err != nil {
		logger.Log.Warn("failed to publish leaderboard event", logger.Err(err))
	}
}
