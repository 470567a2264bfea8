package service

// Fixed point weights for every activity category. These mirror the values
// shown to participants and must not drift between save and display.
const (
	PointsPerPage           = 2
	PointsPerAyah           = 1
	PointsPerSurah          = 10
	PointsPerJuz            = 20
	PointsPerReadingMinute  = 0.5
	PointsPerFardPrayer     = 5
	PointsPerSunnahPrayer   = 2.5
	PointsPerDhikr          = 0.1
	PointsPerSalahDhikr     = 0.1
	PointsPerZakahAct       = 15
	PointsPerHelpAct        = 5
	PointsPerLearningMinute = 0.5
	PointsPerDua            = 2
	PointsForFasting        = 15
)

// The recordable prayer sets.
var (
	FardPrayerNames   = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}
	SunnahPrayerNames = []string{"Tahajjud", "Taraweeh", "Duha", "Witr"}
)

// DailyActivityInput is one day's raw activity counters. Dhikr has two
// independent entry mechanisms (manual count and tap counter) that are
// summed; the same goes for post-salah dhikr.
type DailyActivityInput struct {
	Pages   int     `json:"pages" binding:"gte=0"`
	Ayahs   int     `json:"ayahs" binding:"gte=0"`
	Surahs  int     `json:"surahs" binding:"gte=0"`
	Juz     int     `json:"juz" binding:"gte=0"`
	Minutes float64 `json:"minutes" binding:"gte=0"`

	FardPrayers   []string `json:"fard_prayers" binding:"omitempty,dive,oneof=Fajr Dhuhr Asr Maghrib Isha"`
	SunnahPrayers []string `json:"sunnah_prayers" binding:"omitempty,dive,oneof=Tahajjud Taraweeh Duha Witr"`

	DhikrManual       int `json:"dhikr_manual" binding:"gte=0"`
	DhikrCounter      int `json:"dhikr_counter" binding:"gte=0"`
	SalahDhikrManual  int `json:"salah_dhikr_manual" binding:"gte=0"`
	SalahDhikrCounter int `json:"salah_dhikr_counter" binding:"gte=0"`

	ZakahCount      int     `json:"zakah_count" binding:"gte=0"`
	HelpCount       int     `json:"help_count" binding:"gte=0"`
	LearningMinutes float64 `json:"learning_minutes" binding:"gte=0"`
	DuaCount        int     `json:"dua_count" binding:"gte=0"`
	Fasted          bool    `json:"fasted"`
}

// TotalDhikr sums both dhikr entry mechanisms.
func (in DailyActivityInput) TotalDhikr() int {
	return in.DhikrManual + in.DhikrCounter
}

// TotalSalahDhikr sums both post-salah dhikr entry mechanisms.
func (in DailyActivityInput) TotalSalahDhikr() int {
	return in.SalahDhikrManual + in.SalahDhikrCounter
}

// ComputeDailyPoints converts one day's raw counters into a point total.
// It is a pure weighted sum; input validation belongs to the caller.
func ComputeDailyPoints(in DailyActivityInput) float64 {
	total := float64(in.Pages)*PointsPerPage +
		float64(in.Ayahs)*PointsPerAyah +
		float64(in.Surahs)*PointsPerSurah +
		float64(in.Juz)*PointsPerJuz +
		in.Minutes*PointsPerReadingMinute +
		float64(len(in.FardPrayers))*PointsPerFardPrayer +
		float64(len(in.SunnahPrayers))*PointsPerSunnahPrayer +
		float64(in.TotalDhikr())*PointsPerDhikr +
		float64(in.TotalSalahDhikr())*PointsPerSalahDhikr +
		float64(in.ZakahCount)*PointsPerZakahAct +
		float64(in.HelpCount)*PointsPerHelpAct +
		in.LearningMinutes*PointsPerLearningMinute +
		float64(in.DuaCount)*PointsPerDua

	if in.Fasted {
		total += PointsForFasting
	}

	return total
}
