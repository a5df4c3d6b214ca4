// Package service holds the workout store operations and the pure aggregate
// and validation helpers they rely on.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
	"github.com/Pranav-Anand04/TerpFit/internal/events"
	"github.com/Pranav-Anand04/TerpFit/internal/observability"
	"github.com/Pranav-Anand04/TerpFit/internal/storage"
)

// WorkoutInput carries the caller-validated fields of a new workout. A zero
// Date is replaced with the current time.
type WorkoutInput struct {
	Type      string
	Duration  int
	Calories  int
	Gym       string
	Date      time.Time
	Checklist []string
	Notes     string
}

// WorkoutService is the workout store: CRUD over the repository plus derived
// aggregates. Reads degrade to empty results when the repository fails.
type WorkoutService struct {
	repo       storage.WorkoutRepository
	publisher  events.Publisher
	logger     internal.Logger
	maxHistory int
	policy     string
	now        func() time.Time

	mu sync.Mutex // serializes id assignment and eviction
}

type Option func(*WorkoutService)

func WithPublisher(p events.Publisher) Option {
	return func(s *WorkoutService) { s.publisher = p }
}

// WithHistoryLimit bounds the collection. max <= 0 disables the bound.
func WithHistoryLimit(max int, policy string) Option {
	return func(s *WorkoutService) {
		s.maxHistory = max
		s.policy = policy
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *WorkoutService) { s.now = now }
}

func NewWorkoutService(repo storage.WorkoutRepository, logger internal.Logger, opts ...Option) *WorkoutService {
	s := &WorkoutService{
		repo:      repo,
		publisher: events.NopPublisher{},
		logger:    logger,
		policy:    config.EvictDropOldest,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create assigns an id, stores the workout and enforces the history bound.
// Events are published once the store lock is released.
func (s *WorkoutService) Create(ctx context.Context, in WorkoutInput) (*internal.Workout, error) {
	w, evts, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, evt := range evts {
		s.publish(ctx, evt)
	}
	s.logger.Infof("service: logged workout %s (%s, %d min, %d cal)", w.ID, w.Type, w.Duration, w.Calories)
	return w, nil
}

func (s *WorkoutService) create(ctx context.Context, in WorkoutInput) (*internal.Workout, []events.WorkoutEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Without the current history neither the id nor the bound can be checked.
	existing, err := s.repo.ListWorkouts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading history before create: %v", internal.ErrPersistence, err)
	}

	if s.maxHistory > 0 && s.policy == config.EvictReject && len(existing) >= s.maxHistory {
		return nil, nil, fmt.Errorf("%w: limit is %d", internal.ErrHistoryFull, s.maxHistory)
	}

	now := s.now()
	w := &internal.Workout{
		ID:       s.newID(now, existing),
		Type:     in.Type,
		Duration: in.Duration,
		Calories: in.Calories,
		Gym:      in.Gym,
		Date:     in.Date,
		Notes:    in.Notes,
	}
	if w.Date.IsZero() {
		w.Date = now
	}
	if len(in.Checklist) > 0 {
		w.Checklist = append([]string(nil), in.Checklist...)
	}

	if err := s.repo.SaveWorkout(ctx, w); err != nil {
		if !errors.Is(err, internal.ErrPersistence) {
			err = fmt.Errorf("%w: %v", internal.ErrPersistence, err)
		}
		return nil, nil, err
	}
	observability.RecordWorkoutLogged()
	evts := []events.WorkoutEvent{events.Logged(*w, now)}

	if s.maxHistory > 0 && s.policy == config.EvictDropOldest {
		evts = append(evts, s.evict(ctx, existing, len(existing)+1-s.maxHistory)...)
	}
	return w, evts, nil
}

// evict drops the n oldest records of existing (the new record is never a
// candidate). Failures are logged; the new record stays stored either way.
func (s *WorkoutService) evict(ctx context.Context, existing []internal.Workout, n int) []events.WorkoutEvent {
	if n <= 0 {
		return nil
	}
	var evts []events.WorkoutEvent
	oldest := append([]internal.Workout(nil), existing...)
	sort.SliceStable(oldest, func(i, j int) bool {
		return oldest[i].Date.Before(oldest[j].Date)
	})
	for _, w := range oldest[:n] {
		removed, err := s.repo.DeleteWorkout(ctx, w.ID)
		if err != nil {
			s.logger.Errorf("service: evicting workout %s failed: %v", w.ID, err)
			continue
		}
		if removed {
			observability.RecordWorkoutEvicted()
			evts = append(evts, events.Deleted(w.ID, s.now()))
			s.logger.Infof("service: evicted workout %s to stay within %d records", w.ID, s.maxHistory)
		}
	}
	return evts
}

// newID derives the id from the creation timestamp and suffixes it on the
// rare millisecond collision.
func (s *WorkoutService) newID(now time.Time, existing []internal.Workout) string {
	taken := make(map[string]struct{}, len(existing))
	for _, w := range existing {
		taken[w.ID] = struct{}{}
	}
	base := strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for n := 1; ; n++ {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

func (s *WorkoutService) publish(ctx context.Context, evt events.WorkoutEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warnf("service: publishing %s for %s failed: %v", evt.Event, evt.WorkoutID, err)
	}
}

// ListAll returns every record in persisted order.
func (s *WorkoutService) ListAll(ctx context.Context) []internal.Workout {
	workouts, err := s.repo.ListWorkouts(ctx)
	if err != nil {
		s.logger.Warnf("service: reading workout history failed: %v", err)
		return []internal.Workout{}
	}
	return workouts
}

// ListNewestFirst is the display ordering: most recent date first.
func (s *WorkoutService) ListNewestFirst(ctx context.Context) []internal.Workout {
	workouts := s.ListAll(ctx)
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})
	return workouts
}

func (s *WorkoutService) GetByID(ctx context.Context, id string) (*internal.Workout, error) {
	w, err := s.repo.GetWorkout(ctx, id)
	if err != nil {
		if !errors.Is(err, internal.ErrNotFound) {
			s.logger.Warnf("service: reading workout %s failed: %v", id, err)
		}
		return nil, err
	}
	return w, nil
}

// Filter narrows the history; zero-valued fields do not constrain.
type Filter struct {
	Type string
	Gym  string
	From time.Time
	To   time.Time
}

// Match reports whether w passes every set constraint.
func (f Filter) Match(w internal.Workout) bool {
	if f.Type != "" && !strings.EqualFold(w.Type, f.Type) {
		return false
	}
	if f.Gym != "" && w.Gym != f.Gym {
		return false
	}
	if !f.From.IsZero() && w.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && w.Date.After(f.To) {
		return false
	}
	return true
}

func (s *WorkoutService) Filter(ctx context.Context, f Filter) []internal.Workout {
	out := []internal.Workout{}
	for _, w := range s.ListAll(ctx) {
		if f.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// FilterByDateRange is inclusive on both ends.
func (s *WorkoutService) FilterByDateRange(ctx context.Context, start, end time.Time) []internal.Workout {
	out := []internal.Workout{}
	for _, w := range s.ListAll(ctx) {
		if !w.Date.Before(start) && !w.Date.After(end) {
			out = append(out, w)
		}
	}
	return out
}

func (s *WorkoutService) FilterByGym(ctx context.Context, gym string) []internal.Workout {
	out := []internal.Workout{}
	for _, w := range s.ListAll(ctx) {
		if w.Gym == gym {
			out = append(out, w)
		}
	}
	return out
}

func (s *WorkoutService) FilterByType(ctx context.Context, workoutType string) []internal.Workout {
	return s.Filter(ctx, Filter{Type: workoutType})
}

// DeleteByID reports whether a record was removed. Unknown ids are a no-op.
func (s *WorkoutService) DeleteByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	removed, err := s.repo.DeleteWorkout(ctx, id)
	s.mu.Unlock()
	if err != nil {
		s.logger.Errorf("service: deleting workout %s failed: %v", id, err)
		return false, err
	}
	if removed {
		observability.RecordWorkoutDeleted()
		s.publish(ctx, events.Deleted(id, s.now()))
	}
	return removed, nil
}

func (s *WorkoutService) UpdateNotes(ctx context.Context, id, notes string) (*internal.Workout, error) {
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	return s.repo.GetWorkout(ctx, id)
}

func (s *WorkoutService) ComputeStats(ctx context.Context) internal.Stats {
	return CalculateStats(s.ListAll(ctx))
}

func (s *WorkoutService) ComputeStreak(ctx context.Context) int {
	return CalculateStreak(s.ListAll(ctx), s.now())
}
