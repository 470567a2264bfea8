package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is a string slice stored as a JSON column so the same model
// works on postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// DailyRecord holds one day's raw activity inputs for one user.
// Identity is the (user, date) pair; saving the same date again overwrites.
type DailyRecord struct {
	ID     uint      `gorm:"primaryKey" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_date;not null" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	// Date is a calendar date in YYYY-MM-DD form, matching the public
	// record key {userID}_{date}.
	Date string `gorm:"size:10;uniqueIndex:idx_user_date;not null" json:"date"`

	Pages   int     `gorm:"default:0" json:"pages"`
	Ayahs   int     `gorm:"default:0" json:"ayahs"`
	Surahs  int     `gorm:"default:0" json:"surahs"`
	Juz     int     `gorm:"default:0" json:"juz"`
	Minutes float64 `gorm:"default:0" json:"minutes"`

	FardPrayers   StringList `gorm:"type:text" json:"fard_prayers"`
	SunnahPrayers StringList `gorm:"type:text" json:"sunnah_prayers"`

	DhikrManual       int `gorm:"default:0" json:"dhikr_manual"`
	DhikrCounter      int `gorm:"default:0" json:"dhikr_counter"`
	TotalDhikr        int `gorm:"default:0" json:"total_dhikr"`
	SalahDhikrManual  int `gorm:"default:0" json:"salah_dhikr_manual"`
	SalahDhikrCounter int `gorm:"default:0" json:"salah_dhikr_counter"`
	TotalSalahDhikr   int `gorm:"default:0" json:"total_salah_dhikr"`

	ZakahCount      int     `gorm:"default:0" json:"zakah_count"`
	HelpCount       int     `gorm:"default:0" json:"help_count"`
	LearningMinutes float64 `gorm:"default:0" json:"learning_minutes"`
	DuaCount        int     `gorm:"default:0" json:"dua_count"`
	Fasted          bool    `gorm:"default:false" json:"fasted"`

	// TotalPointsToday is derived at save time and stored alongside the
	// raw inputs; it is never recomputed on read.
	TotalPointsToday float64 `gorm:"default:0" json:"total_points_today"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Key returns the public composite record key.
func (r *DailyRecord) Key() string {
	return fmt.Sprintf("%s_%s", r.UserID, r.Date)
}
