package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	NormalizedName string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	InviteCode     string    `gorm:"size:20;uniqueIndex;not null" json:"invite_code"`

	// IncludeCreatorInCompetition excludes the creator from the group
	// leaderboard only when explicitly false; nil means competing.
	IncludeCreatorInCompetition *bool `json:"include_creator_in_competition,omitempty"`

	Members   []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// CreatorCompetes reports whether the creator takes part in ranking.
func (g *Group) CreatorCompetes() bool {
	return g.IncludeCreatorInCompetition == nil || *g.IncludeCreatorInCompetition
}

type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	GroupID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_group_user;not null" json:"group_id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_group_user;not null" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
