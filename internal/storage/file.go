package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// FileStorage keeps the whole collection in memory and rewrites the JSON file
// on every mutation.
type FileStorage struct {
	workouts     []*internal.Workout          // persisted order
	index        map[string]*internal.Workout // id -> Workout
	mu           sync.RWMutex
	workoutsFile string
	logger       internal.Logger
}

// NewFileStorage loads workoutsFile. An unreadable or corrupt file is logged
// and treated as an empty collection.
func NewFileStorage(workoutsFile string, logger internal.Logger) (*FileStorage, error) {
	if dir := filepath.Dir(workoutsFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	s := &FileStorage{
		index:        make(map[string]*internal.Workout),
		workoutsFile: workoutsFile,
		logger:       logger,
	}
	if err := s.loadWorkouts(); err != nil {
		logger.Errorf("storage: failed to load workouts, starting empty: %v", err)
		s.workouts = nil
		s.index = make(map[string]*internal.Workout)
	}
	return s, nil
}

func (s *FileStorage) loadWorkouts() error {
	file, err := os.Open(s.workoutsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var workouts []*internal.Workout
	if err := json.NewDecoder(file).Decode(&workouts); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range workouts {
		if w == nil || w.ID == "" {
			continue
		}
		if _, dup := s.index[w.ID]; dup {
			s.logger.Warnf("storage: dropping duplicate workout id %s", w.ID)
			continue
		}
		s.workouts = append(s.workouts, w)
		s.index[w.ID] = w
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// persist must be called with s.mu held.
func (s *FileStorage) persist() error {
	workouts := s.workouts
	if workouts == nil {
		workouts = make([]*internal.Workout, 0)
	}
	if err := atomicWriteFileJSON(s.workoutsFile, workouts); err != nil {
		s.logger.Errorf("storage: error saving workouts: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// --- WorkoutRepository ---
func (s *FileStorage) SaveWorkout(ctx context.Context, w *internal.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.index[w.ID]; dup {
		return fmt.Errorf("storage: workout %s already exists", w.ID)
	}
	stored := w.Clone()
	s.workouts = append(s.workouts, &stored)
	s.index[stored.ID] = &stored
	if err := s.persist(); err != nil {
		s.workouts = s.workouts[:len(s.workouts)-1]
		delete(s.index, stored.ID)
		return err
	}
	return nil
}

func (s *FileStorage) ListWorkouts(ctx context.Context) ([]internal.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Workout, len(s.workouts))
	for i, w := range s.workouts {
		out[i] = w.Clone()
	}
	return out, nil
}

func (s *FileStorage) GetWorkout(ctx context.Context, id string) (*internal.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.index[id]
	if !ok {
		return nil, internal.ErrNotFound
	}
	c := w.Clone()
	return &c, nil
}

func (s *FileStorage) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return false, nil
	}
	prev := s.workouts
	kept := make([]*internal.Workout, 0, len(prev))
	for _, w := range prev {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	removed := s.index[id]
	s.workouts = kept
	delete(s.index, id)
	if err := s.persist(); err != nil {
		s.workouts = prev
		s.index[id] = removed
		return false, err
	}
	return true, nil
}

func (s *FileStorage) UpdateNotes(ctx context.Context, id, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.index[id]
	if !ok {
		return internal.ErrNotFound
	}
	prev := w.Notes
	w.Notes = notes
	if err := s.persist(); err != nil {
		w.Notes = prev
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ WorkoutRepository = (*FileStorage)(nil)
