package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// MemoryStorage is a process-local repository for tests and throwaway runs.
type MemoryStorage struct {
	mu       sync.RWMutex
	workouts []internal.Workout
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) SaveWorkout(ctx context.Context, w *internal.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.workouts {
		if existing.ID == w.ID {
			return fmt.Errorf("storage: workout %s already exists", w.ID)
		}
	}
	m.workouts = append(m.workouts, w.Clone())
	return nil
}

func (m *MemoryStorage) ListWorkouts(ctx context.Context) ([]internal.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]internal.Workout, len(m.workouts))
	for i, w := range m.workouts {
		out[i] = w.Clone()
	}
	return out, nil
}

func (m *MemoryStorage) GetWorkout(ctx context.Context, id string) (*internal.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.workouts {
		if w.ID == id {
			c := w.Clone()
			return &c, nil
		}
	}
	return nil, internal.ErrNotFound
}

func (m *MemoryStorage) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.workouts {
		if w.ID == id {
			m.workouts = append(m.workouts[:i], m.workouts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) UpdateNotes(ctx context.Context, id, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.workouts {
		if m.workouts[i].ID == id {
			m.workouts[i].Notes = notes
			return nil
		}
	}
	return internal.ErrNotFound
}

func (m *MemoryStorage) Close() error { return nil }

var _ WorkoutRepository = (*MemoryStorage)(nil)
