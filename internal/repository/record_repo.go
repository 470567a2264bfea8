package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hameema-git/ramzan-challange/internal/model"
)

// UserTotals is an aggregated per-user sum of stored daily totals
// (the recomputed-sum ranking source).
type UserTotals struct {
	UserID      uuid.UUID
	TotalPoints float64
}

type RecordRepository interface {
	// Save upserts the record for its (user, date) pair and, in the same
	// transaction, resyncs the owner's cached total from the sum of all
	// their daily totals. streak and lastDate are written as computed by
	// the caller.
	Save(ctx context.Context, record *model.DailyRecord, streak int, lastDate string) error
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*model.DailyRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DailyRecord, error)
	// SumByUser returns every user's summed total_points_today.
	SumByUser(ctx context.Context) ([]UserTotals, error)
	// SumByUsers is SumByUser restricted to the given user IDs.
	SumByUsers(ctx context.Context, userIDs []string) ([]UserTotals, error)
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Save(ctx context.Context, record *model.DailyRecord, streak int, lastDate string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			UpdateAll: true,
		}).Create(record).Error; err != nil {
			return err
		}

		// Full recompute keeps a re-save of identical inputs idempotent.
		var total float64
		if err := tx.Model(&model.DailyRecord{}).
			Where("user_id = ?", record.UserID).
			Select("COALESCE(SUM(total_points_today), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", record.UserID).
			Updates(map[string]interface{}{
				"total_points":       total,
				"streak":             streak,
				"last_recorded_date": lastDate,
			}).Error
	})
}

func (r *recordRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*model.DailyRecord, error) {
	var record model.DailyRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *recordRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DailyRecord, error) {
	records := make([]model.DailyRecord, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordRepository) SumByUser(ctx context.Context) ([]UserTotals, error) {
	totals := make([]UserTotals, 0)
	if err := r.db.WithContext(ctx).
		Model(&model.DailyRecord{}).
		Select("user_id, COALESCE(SUM(total_points_today), 0) AS total_points").
		Group("user_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *recordRepository) SumByUsers(ctx context.Context, userIDs []string) ([]UserTotals, error) {
	totals := make([]UserTotals, 0, len(userIDs))
	if len(userIDs) == 0 {
		return totals, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&model.DailyRecord{}).
		Select("user_id, COALESCE(SUM(total_points_today), 0) AS total_points").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	return totals, nil
}
