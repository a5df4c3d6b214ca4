package storage

import (
	"context"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// WorkoutRepository persists the workout collection. List returns records in
// the order they were persisted.
type WorkoutRepository interface {
	SaveWorkout(ctx context.Context, w *internal.Workout) error
	ListWorkouts(ctx context.Context) ([]internal.Workout, error)
	GetWorkout(ctx context.Context, id string) (*internal.Workout, error)
	DeleteWorkout(ctx context.Context, id string) (bool, error)
	UpdateNotes(ctx context.Context, id, notes string) error
	Close() error
}
