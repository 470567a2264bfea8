package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDailyPoints_EmptyDayScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDailyPoints(DailyActivityInput{}))
}

func TestComputeDailyPoints_SingleCategories(t *testing.T) {
	tests := []struct {
		name  string
		input DailyActivityInput
		want  float64
	}{
		{"five pages", DailyActivityInput{Pages: 5}, 10},
		{"ten ayahs", DailyActivityInput{Ayahs: 10}, 10},
		{"one surah", DailyActivityInput{Surahs: 1}, 10},
		{"one juz", DailyActivityInput{Juz: 1}, 20},
		{"thirty reading minutes", DailyActivityInput{Minutes: 30}, 15},
		{"one fard prayer", DailyActivityInput{FardPrayers: []string{"Fajr"}}, 5},
		{"witr only", DailyActivityInput{SunnahPrayers: []string{"Witr"}}, 2.5},
		{"hundred dhikr manual", DailyActivityInput{DhikrManual: 100}, 10},
		{"hundred dhikr via counter", DailyActivityInput{DhikrCounter: 100}, 10},
		{"salah dhikr split across mechanisms", DailyActivityInput{SalahDhikrManual: 30, SalahDhikrCounter: 70}, 10},
		{"one zakah act", DailyActivityInput{ZakahCount: 1}, 15},
		{"two help acts", DailyActivityInput{HelpCount: 2}, 10},
		{"one learning hour", DailyActivityInput{LearningMinutes: 60}, 30},
		{"three duas", DailyActivityInput{DuaCount: 3}, 6},
		{"fasting", DailyActivityInput{Fasted: true}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDailyPoints(tt.input))
		})
	}
}

func TestComputeDailyPoints_FullDay(t *testing.T) {
	input := DailyActivityInput{
		Pages:            10,
		Ayahs:            5,
		Surahs:           1,
		Minutes:          20,
		FardPrayers:      []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"},
		SunnahPrayers:    []string{"Taraweeh", "Witr"},
		DhikrManual:      50,
		DhikrCounter:     50,
		SalahDhikrManual: 33,
		HelpCount:        1,
		LearningMinutes:  30,
		DuaCount:         2,
		Fasted:           true,
	}

	assert.InDelta(t, 127.3, ComputeDailyPoints(input), 1e-9)
}

func TestComputeDailyPoints_BothDhikrMechanismsSum(t *testing.T) {
	split := DailyActivityInput{DhikrManual: 40, DhikrCounter: 60}
	merged := DailyActivityInput{DhikrManual: 100}
	assert.Equal(t, ComputeDailyPoints(merged), ComputeDailyPoints(split))
}
