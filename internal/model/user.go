package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;uniqueIndex:idx_identity;not null" json:"name"`
	Location string    `gorm:"size:100;uniqueIndex:idx_identity;not null" json:"location"`

	// TotalPoints is the cached all-time total, resynced on every record save.
	TotalPoints      float64   `gorm:"default:0" json:"total_points"`
	Streak           int       `gorm:"default:0" json:"streak"`
	LastRecordedDate *string   `gorm:"size:10" json:"last_recorded_date,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
