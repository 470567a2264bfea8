package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hameema-git/ramzan-challange/internal/model"
)

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group, creatorID uuid.UUID) error
	FindByID(ctx context.Context, id string) (*model.Group, error)
	FindByNormalizedName(ctx context.Context, name string) (*model.Group, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Group, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	Delete(ctx context.Context, id string) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group, creatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := &model.GroupMember{
			GroupID: group.ID,
			UserID:  creatorID,
		}
		return tx.Create(member).Error
	})
}

func (r *groupRepository) FindByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&group).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepository) FindByNormalizedName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).
		Where("normalized_name = ?", name).
		First(&group).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepository) FindByInviteCode(ctx context.Context, code string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("invite_code = ?", code).
		First(&group).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Group, error) {
	groups := make([]model.Group, 0)
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	member := &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}

	// Joining twice is a no-op.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Group{}).Error
	})
}
