package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
	Name  string `json:"name"`
}

// Workout is one logged exercise session. Date is stamped when the logging
// session starts, not when it completes.
type Workout struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"` // minutes
	Calories  int       `json:"calories"`
	Gym       string    `json:"gym,omitempty"`
	Date      time.Time `json:"date"`
	Checklist []string  `json:"checklist,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// Clone returns a copy that shares no slices with w.
func (w Workout) Clone() Workout {
	if w.Checklist != nil {
		w.Checklist = append([]string(nil), w.Checklist...)
	}
	return w
}

type Gym struct {
	Name        string     `json:"name" yaml:"name"`
	Location    [2]float64 `json:"location" yaml:"location"` // lat, lng
	Description string     `json:"description" yaml:"description"`
	Hours       string     `json:"hours" yaml:"hours"`
	Facilities  []string   `json:"facilities" yaml:"facilities"`
}

type Stats struct {
	TotalWorkouts   int     `json:"total_workouts"`
	TotalDuration   int     `json:"total_duration"`
	TotalCalories   int     `json:"total_calories"`
	AverageDuration int     `json:"average_duration"`
	AverageCalories int     `json:"average_calories"`
	MostCommonType  *string `json:"most_common_type"`
}
