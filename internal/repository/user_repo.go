package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIdentity(ctx context.Context, name, location string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	// DeleteCascade removes the user together with their daily records,
	// their group memberships and the groups they created.
	DeleteCascade(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByIdentity(ctx context.Context, name, location string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("name = ? AND location = ?", name, location).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.DailyRecord{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}

		// Groups the user created go away with their membership rows.
		var ownedIDs []string
		if err := tx.Model(&model.Group{}).Where("created_by = ?", id).Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}
		if len(ownedIDs) > 0 {
			if err := tx.Where("group_id IN ?", ownedIDs).Delete(&model.GroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ownedIDs).Delete(&model.Group{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
}
