package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)
	assert.Equal(t, internal.Stats{}, stats)
	assert.Nil(t, stats.MostCommonType)
}

func TestCalculateStats(t *testing.T) {
	stats := CalculateStats([]internal.Workout{
		{Type: "Cardio", Duration: 30, Calories: 200},
		{Type: "Cardio", Duration: 45, Calories: 300},
	})
	assert.Equal(t, 2, stats.TotalWorkouts)
	assert.Equal(t, 75, stats.TotalDuration)
	assert.Equal(t, 500, stats.TotalCalories)
	assert.Equal(t, 38, stats.AverageDuration)
	assert.Equal(t, 250, stats.AverageCalories)
	require.NotNil(t, stats.MostCommonType)
	assert.Equal(t, "Cardio", *stats.MostCommonType)
}

func TestCalculateStatsTieGoesToFirstEncountered(t *testing.T) {
	stats := CalculateStats([]internal.Workout{
		{Type: "Yoga", Duration: 10, Calories: 10},
		{Type: "Chest", Duration: 10, Calories: 10},
		{Type: "Chest", Duration: 10, Calories: 10},
		{Type: "Yoga", Duration: 10, Calories: 10},
	})
	require.NotNil(t, stats.MostCommonType)
	// Chest reached two first; Yoga only ties it later.
	assert.Equal(t, "Chest", *stats.MostCommonType)

	stats = CalculateStats([]internal.Workout{
		{Type: "Yoga", Duration: 10, Calories: 10},
		{Type: "Chest", Duration: 10, Calories: 10},
	})
	assert.Equal(t, "Yoga", *stats.MostCommonType)
}

func TestCalculateStreak(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)
	now := time.Date(2026, time.October, 17, 20, 0, 0, 0, loc)
	at := func(daysAgo, hour int) internal.Workout {
		return internal.Workout{Date: time.Date(2026, time.October, 17-daysAgo, hour, 0, 0, 0, loc)}
	}

	tests := []struct {
		name     string
		workouts []internal.Workout
		want     int
	}{
		{"empty", nil, 0},
		{"one today", []internal.Workout{at(0, 9)}, 1},
		{"one yesterday", []internal.Workout{at(1, 9)}, 1},
		{"three days ending today", []internal.Workout{at(2, 7), at(1, 7), at(0, 7)}, 3},
		{"multiple per day count once", []internal.Workout{at(0, 7), at(0, 18), at(1, 7), at(1, 8)}, 2},
		{"gap stops the scan", []internal.Workout{at(0, 7), at(1, 7), at(3, 7), at(4, 7)}, 2},
		{"two days old is broken", []internal.Workout{at(2, 7), at(3, 7)}, 0},
		{"unsorted input", []internal.Workout{at(1, 7), at(4, 7), at(0, 7), at(2, 7)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.workouts, now))
		})
	}
}

func TestCalculateStreakUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)
	now := time.Date(2026, time.October, 17, 1, 0, 0, 0, loc)
	// 23:30 local on the 16th is already the 17th in UTC.
	late := internal.Workout{Date: time.Date(2026, time.October, 16, 23, 30, 0, 0, loc).UTC()}
	early := internal.Workout{Date: time.Date(2026, time.October, 16, 6, 0, 0, 0, loc)}
	assert.Equal(t, 1, CalculateStreak([]internal.Workout{late, early}, now))
}
