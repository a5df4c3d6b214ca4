package service

import (
	"math"
	"time"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// CalculateStats aggregates a workout history. The most common type is the
// first type whose running count overtakes the current leader, so ties go to
// whichever type reached the count first.
func CalculateStats(workouts []internal.Workout) internal.Stats {
	var stats internal.Stats
	if len(workouts) == 0 {
		return stats
	}

	typeCount := make(map[string]int)
	maxCount := 0
	for _, w := range workouts {
		stats.TotalDuration += w.Duration
		stats.TotalCalories += w.Calories
		if w.Type == "" {
			continue
		}
		typeCount[w.Type]++
		if typeCount[w.Type] > maxCount {
			maxCount = typeCount[w.Type]
			t := w.Type
			stats.MostCommonType = &t
		}
	}

	stats.TotalWorkouts = len(workouts)
	stats.AverageDuration = roundDiv(stats.TotalDuration, stats.TotalWorkouts)
	stats.AverageCalories = roundDiv(stats.TotalCalories, stats.TotalWorkouts)
	return stats
}

func roundDiv(total, n int) int {
	return int(math.Floor(float64(total)/float64(n) + 0.5))
}

// CalculateStreak counts consecutive calendar days with at least one workout,
// walking back from the most recent workout day. Days are taken in now's
// location. A most recent day older than yesterday means the streak is broken.
func CalculateStreak(workouts []internal.Workout, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}

	loc := now.Location()
	days := make(map[int64]struct{}, len(workouts))
	latest := int64(math.MinInt64)
	for _, w := range workouts {
		d := dayNumber(w.Date.In(loc))
		days[d] = struct{}{}
		if d > latest {
			latest = d
		}
	}

	if dayNumber(now)-latest > 1 {
		return 0
	}

	streak := 0
	for d := latest; ; d-- {
		if _, ok := days[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

// dayNumber maps the calendar date of t (in t's own location) to a day index.
// Going through UTC keeps DST transitions from skewing the count.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
