// Package events publishes workout lifecycle events to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

const (
	TypeWorkoutLogged  = "workout.logged"
	TypeWorkoutDeleted = "workout.deleted"
)

// WorkoutEvent is the JSON payload written for every lifecycle change.
type WorkoutEvent struct {
	Event      string    `json:"event"`
	WorkoutID  string    `json:"workout_id"`
	Type       string    `json:"type,omitempty"`
	Duration   int       `json:"duration,omitempty"`
	Calories   int       `json:"calories,omitempty"`
	Gym        string    `json:"gym,omitempty"`
	Date       time.Time `json:"date"`
	Checklist  []string  `json:"checklist,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Logged builds the event emitted after a workout is stored.
func Logged(w internal.Workout, at time.Time) WorkoutEvent {
	return WorkoutEvent{
		Event:      TypeWorkoutLogged,
		WorkoutID:  w.ID,
		Type:       w.Type,
		Duration:   w.Duration,
		Calories:   w.Calories,
		Gym:        w.Gym,
		Date:       w.Date,
		Checklist:  w.Checklist,
		OccurredAt: at.UTC(),
	}
}

// Deleted builds the event emitted after a workout is removed.
func Deleted(id string, at time.Time) WorkoutEvent {
	return WorkoutEvent{Event: TypeWorkoutDeleted, WorkoutID: id, OccurredAt: at.UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, evt WorkoutEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, WorkoutEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }
