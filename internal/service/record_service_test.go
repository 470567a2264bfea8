package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
)

func newRecordService(t *testing.T) (RecordService, repository.UserRepository, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	svc := NewRecordService(recordRepo, userRepo, nil)

	return svc, userRepo, db
}

func TestSave_RejectsEmptyDay(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "amina", "cairo")

	_, err := svc.Save(context.Background(), user.ID, "2026-02-18", DailyActivityInput{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Code)
}

// captureRedisHook answers commands in-process so cooldown behaviour
// can be observed without a redis server.
type captureRedisHook struct {
	commands []string
}

func (h *captureRedisHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *captureRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands = append(h.commands, cmd.Name())
		switch c := cmd.(type) {
		case *redis.BoolCmd:
			c.SetVal(true)
		case *redis.IntCmd:
			c.SetVal(1)
		case *redis.StatusCmd:
			c.SetVal("OK")
		}
		return nil
	}
}

func (h *captureRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestSave_EmptyDayDoesNotConsumeCooldown(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	hook := &captureRedisHook{}
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	rdb.AddHook(hook)

	svc := NewRecordService(recordRepo, userRepo, rdb)
	user := createTestUser(t, db, "amina", "cairo")
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{})
	require.Error(t, err)
	assert.Empty(t, hook.commands, "an empty form must not take the cooldown lock")

	// The corrected resubmit goes straight through.
	record, err := svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{Pages: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, record.TotalPointsToday)
	assert.Contains(t, hook.commands, "setnx")
}

func TestSave_ComputesAndStoresPoints(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "bilal", "lahore")

	record, err := svc.Save(context.Background(), user.ID, "2026-02-18", DailyActivityInput{
		Pages:  5,
		Fasted: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 25.0, record.TotalPointsToday)
	assert.Equal(t, user.ID.String()+"_2026-02-18", record.Key())
}

func TestSave_ResaveOverwritesInsteadOfAccumulating(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "dawud", "jakarta")
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{Pages: 10})
	require.NoError(t, err)

	_, err = svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{Pages: 3})
	require.NoError(t, err)

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 6.0, fresh.TotalPoints)

	records, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSave_IdenticalResaveIsIdempotent(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "esra", "istanbul")
	ctx := context.Background()

	input := DailyActivityInput{Juz: 1, DuaCount: 2}

	first, err := svc.Save(ctx, user.ID, "2026-02-18", input)
	require.NoError(t, err)
	second, err := svc.Save(ctx, user.ID, "2026-02-18", input)
	require.NoError(t, err)

	assert.Equal(t, first.TotalPointsToday, second.TotalPointsToday)

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.TotalPointsToday, fresh.TotalPoints)
}

func TestSave_TotalSumsAcrossDates(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "farah", "amman")
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{Pages: 10})
	require.NoError(t, err)
	_, err = svc.Save(ctx, user.ID, "2026-02-19", DailyActivityInput{Fasted: true})
	require.NoError(t, err)

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 35.0, fresh.TotalPoints)
}

func TestSave_StreakGrowsOnConsecutiveDays(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "ghazi", "dubai")
	ctx := context.Background()

	for _, date := range []string{"2026-02-18", "2026-02-19", "2026-02-20"} {
		_, err := svc.Save(ctx, user.ID, date, DailyActivityInput{Ayahs: 1})
		require.NoError(t, err)
	}

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.Streak)
}

func TestSave_StreakResetsAfterGap(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "huda", "rabat")
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, "2026-02-15", DailyActivityInput{Ayahs: 1})
	require.NoError(t, err)
	_, err = svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{Ayahs: 1})
	require.NoError(t, err)

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Streak)
}

func TestSave_BackfillKeepsStreakAndLastDate(t *testing.T) {
	svc, userRepo, db := newRecordService(t)
	user := createTestUser(t, db, "idris", "kuala lumpur")
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, "2026-02-19", DailyActivityInput{Ayahs: 1})
	require.NoError(t, err)
	_, err = svc.Save(ctx, user.ID, "2026-02-10", DailyActivityInput{Ayahs: 1})
	require.NoError(t, err)

	fresh, err := userRepo.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	require.NotNil(t, fresh.LastRecordedDate)
	assert.Equal(t, "2026-02-19", *fresh.LastRecordedDate)
}

func TestSave_RejectsFutureDate(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "jamil", "doha")

	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.Save(context.Background(), user.ID, future, DailyActivityInput{Ayahs: 1})
	require.Error(t, err)
}

func TestSave_RejectsMalformedDate(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "karima", "tunis")

	_, err := svc.Save(context.Background(), user.ID, "18-02-2026", DailyActivityInput{Ayahs: 1})
	require.Error(t, err)
}

func TestGet_MissingDateReturnsNotFound(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "latif", "karachi")

	_, err := svc.Get(context.Background(), user.ID, "2026-02-18")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestGetAndSaveRoundTrip(t *testing.T) {
	svc, _, db := newRecordService(t)
	user := createTestUser(t, db, "mona", "riyadh")
	ctx := context.Background()

	saved, err := svc.Save(ctx, user.ID, "2026-02-18", DailyActivityInput{
		FardPrayers:   []string{"Fajr", "Maghrib"},
		SunnahPrayers: []string{"Witr"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, user.ID, "2026-02-18")
	require.NoError(t, err)
	assert.Equal(t, saved.TotalPointsToday, got.TotalPointsToday)
	assert.Equal(t, []string{"Fajr", "Maghrib"}, []string(got.FardPrayers))
}
