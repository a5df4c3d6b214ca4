package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
	"github.com/Pranav-Anand04/TerpFit/internal/events"
	"github.com/Pranav-Anand04/TerpFit/internal/storage"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.WorkoutEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.WorkoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type failingRepo struct {
	storage.WorkoutRepository
}

func (failingRepo) SaveWorkout(context.Context, *internal.Workout) error {
	return errors.New("disk full")
}

func (failingRepo) ListWorkouts(context.Context) ([]internal.Workout, error) {
	return nil, errors.New("unreadable")
}

// fixedClock hands out the same instant on every call, which forces id
// collisions.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(opts ...Option) *WorkoutService {
	return NewWorkoutService(storage.NewMemoryStorage(), internal.NopLogger(), opts...)
}

func TestCreateAssignsIDAndIsRetrievable(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	svc := newTestService(WithClock(fixedClock(now)))

	before := svc.ComputeStats(ctx).TotalWorkouts
	w, err := svc.Create(ctx, WorkoutInput{Type: "Basketball", Duration: 60, Calories: 500})
	require.NoError(t, err)

	assert.Equal(t, strconv.FormatInt(now.UnixMilli(), 10), w.ID)
	assert.Equal(t, now, w.Date)
	assert.Equal(t, before+1, svc.ComputeStats(ctx).TotalWorkouts)

	got, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basketball", got.Type)
	assert.Equal(t, 60, got.Duration)
	assert.Equal(t, 500, got.Calories)
}

func TestCreateKeepsProvidedDate(t *testing.T) {
	started := time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)
	svc := newTestService(WithClock(fixedClock(started.Add(5 * time.Minute))))

	w, err := svc.Create(context.Background(), WorkoutInput{Type: "Yoga", Duration: 20, Calories: 90, Date: started})
	require.NoError(t, err)
	assert.Equal(t, started, w.Date)
}

func TestCreateIDsStayUniqueWithinAMillisecond(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithClock(fixedClock(time.UnixMilli(1700000000000))))

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		w, err := svc.Create(ctx, WorkoutInput{Type: "Cardio", Duration: 10, Calories: 10})
		require.NoError(t, err)
		require.False(t, seen[w.ID], "duplicate id %s", w.ID)
		seen[w.ID] = true
	}
	assert.True(t, seen["1700000000000"])
	assert.True(t, seen["1700000000000-4"])
}

func TestCreatePublishesLoggedEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(WithPublisher(pub))

	w, err := svc.Create(context.Background(), WorkoutInput{Type: "Chest", Duration: 40, Calories: 250, Checklist: []string{"Bench: 3x8"}})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeWorkoutLogged, pub.events[0].Event)
	assert.Equal(t, w.ID, pub.events[0].WorkoutID)
	assert.Equal(t, []string{"Bench: 3x8"}, pub.events[0].Checklist)
}

// saveFailingRepo reads fine but cannot write.
type saveFailingRepo struct {
	*storage.MemoryStorage
}

func (saveFailingRepo) SaveWorkout(context.Context, *internal.Workout) error {
	return errors.New("disk full")
}

// countingRepo fails reads and counts the writes that still get through.
type countingRepo struct {
	*storage.MemoryStorage
	saves int
}

func (r *countingRepo) ListWorkouts(context.Context) ([]internal.Workout, error) {
	return nil, errors.New("unreadable")
}

func (r *countingRepo) SaveWorkout(ctx context.Context, w *internal.Workout) error {
	r.saves++
	return r.MemoryStorage.SaveWorkout(ctx, w)
}

// blockingPublisher holds every Publish call until release is closed.
type blockingPublisher struct {
	entered chan struct{}
	release chan struct{}
}

func (p *blockingPublisher) Publish(context.Context, events.WorkoutEvent) error {
	p.entered <- struct{}{}
	<-p.release
	return nil
}

func (p *blockingPublisher) Close() error { return nil }

func TestCreateWrapsWriteFailure(t *testing.T) {
	svc := NewWorkoutService(saveFailingRepo{storage.NewMemoryStorage()}, internal.NopLogger())
	_, err := svc.Create(context.Background(), WorkoutInput{Type: "Cardio", Duration: 10, Calories: 10})
	require.ErrorIs(t, err, internal.ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCreateRefusesWhenHistoryIsUnreadable(t *testing.T) {
	for _, policy := range []string{config.EvictReject, config.EvictDropOldest} {
		t.Run(policy, func(t *testing.T) {
			repo := &countingRepo{MemoryStorage: storage.NewMemoryStorage()}
			svc := NewWorkoutService(repo, internal.NopLogger(), WithHistoryLimit(1, policy))

			_, err := svc.Create(context.Background(), WorkoutInput{Type: "Cardio", Duration: 10, Calories: 10})
			require.ErrorIs(t, err, internal.ErrPersistence)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestPublishDoesNotHoldTheStore(t *testing.T) {
	ctx := context.Background()
	pub := &blockingPublisher{entered: make(chan struct{}, 4), release: make(chan struct{})}
	tick := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex
	svc := newTestService(
		WithPublisher(pub),
		WithClock(func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			tick = tick.Add(time.Second)
			return tick
		}),
	)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10})
		done <- err
	}()
	<-pub.entered

	// The first Create is stuck publishing; the store itself must stay free.
	removed, err := svc.DeleteByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, svc.ListAll(ctx), 1)

	close(pub.release)
	require.NoError(t, <-done)
}

func TestReadsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(failingRepo{}, internal.NopLogger())

	assert.Empty(t, svc.ListAll(ctx))
	assert.Empty(t, svc.FilterByType(ctx, "cardio"))
	assert.Equal(t, internal.Stats{}, svc.ComputeStats(ctx))
	assert.Equal(t, 0, svc.ComputeStreak(ctx))
}

func TestDropOldestEviction(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	tick := base
	svc := newTestService(
		WithHistoryLimit(3, config.EvictDropOldest),
		WithClock(func() time.Time { tick = tick.Add(time.Hour); return tick }),
	)

	// Dates are out of insertion order so the oldest is not simply the first.
	dates := []time.Time{base.AddDate(0, 0, 2), base, base.AddDate(0, 0, 1)}
	for _, d := range dates {
		_, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10, Date: d})
		require.NoError(t, err)
	}

	// An even older date than everything stored must still survive.
	newest, err := svc.Create(ctx, WorkoutInput{Type: "Swim", Duration: 10, Calories: 10, Date: base.AddDate(0, 0, -5)})
	require.NoError(t, err)

	all := svc.ListAll(ctx)
	require.Len(t, all, 3)
	for _, w := range all {
		assert.NotEqual(t, base, w.Date, "oldest existing record should be evicted")
	}
	_, err = svc.GetByID(ctx, newest.ID)
	assert.NoError(t, err)
}

func TestRejectPolicy(t *testing.T) {
	ctx := context.Background()
	tick := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(
		WithHistoryLimit(2, config.EvictReject),
		WithClock(func() time.Time { tick = tick.Add(time.Second); return tick }),
	)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10})
	require.ErrorIs(t, err, internal.ErrHistoryFull)
	assert.Len(t, svc.ListAll(ctx), 2)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	tick := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	svc := newTestService(
		WithPublisher(pub),
		WithClock(func() time.Time { tick = tick.Add(time.Second); return tick }),
	)

	a, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10})
	require.NoError(t, err)
	b, err := svc.Create(ctx, WorkoutInput{Type: "Swim", Duration: 20, Calories: 20})
	require.NoError(t, err)

	removed, err := svc.DeleteByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, svc.ListAll(ctx), 2)

	removed, err = svc.DeleteByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	all := svc.ListAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	_, err = svc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, events.TypeWorkoutDeleted, last.Event)
	assert.Equal(t, a.ID, last.WorkoutID)
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2026, time.October, d, 10, 0, 0, 0, time.UTC) }
	tick := day(1)
	svc := newTestService(WithClock(func() time.Time { tick = tick.Add(time.Second); return tick }))

	inputs := []WorkoutInput{
		{Type: "Cardio", Duration: 30, Calories: 200, Gym: "Eppley Recreation Center", Date: day(3)},
		{Type: "Chest", Duration: 45, Calories: 300, Gym: "Ritchie Coliseum", Date: day(5)},
		{Type: "cardio", Duration: 20, Calories: 150, Date: day(7)},
	}
	for _, in := range inputs {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	assert.Len(t, svc.FilterByType(ctx, "CARDIO"), 2)
	assert.Empty(t, svc.FilterByType(ctx, "Legs"))

	byGym := svc.FilterByGym(ctx, "Ritchie Coliseum")
	require.Len(t, byGym, 1)
	assert.Equal(t, "Chest", byGym[0].Type)
	assert.Empty(t, svc.FilterByGym(ctx, "ritchie coliseum"))

	inRange := svc.FilterByDateRange(ctx, day(3), day(5))
	assert.Len(t, inRange, 2, "bounds are inclusive")
	assert.NotNil(t, svc.FilterByDateRange(ctx, day(20), day(21)))

	combined := svc.Filter(ctx, Filter{Type: "cardio", From: day(4)})
	require.Len(t, combined, 1)
	assert.Equal(t, day(7), combined[0].Date)

	newest := svc.ListNewestFirst(ctx)
	require.Len(t, newest, 3)
	assert.Equal(t, day(7), newest[0].Date)
	assert.Equal(t, day(3), newest[2].Date)
}

func TestUpdateNotes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	w, err := svc.Create(ctx, WorkoutInput{Type: "Yoga", Duration: 30, Calories: 100})
	require.NoError(t, err)

	updated, err := svc.UpdateNotes(ctx, w.ID, "felt great")
	require.NoError(t, err)
	assert.Equal(t, "felt great", updated.Notes)

	_, err = svc.UpdateNotes(ctx, "missing", "x")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestComputeStreakUsesClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 17, 18, 0, 0, 0, time.UTC)
	svc := newTestService(WithClock(fixedClock(now)))

	for _, d := range []int{0, 1, 2} {
		_, err := svc.Create(ctx, WorkoutInput{Type: "Run", Duration: 10, Calories: 10, Date: now.AddDate(0, 0, -d)})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, svc.ComputeStreak(ctx))
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr string
	}{
		{"45", 45, ""},
		{" 45 minutes", 45, ""},
		{"+30", 30, ""},
		{"12.5", 12, ""},
		{"0", 0, "must be greater than zero"},
		{"-3", 0, "must be greater than zero"},
		{"abc", 0, "not a number"},
		{"", 0, "not a number"},
		{"99999999999999999999", 0, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePositiveInt("duration", tt.input)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Reason)
			assert.Equal(t, "duration", verr.Field)
		})
	}
}

func TestValidateCreateWorkoutRequest(t *testing.T) {
	ok := &CreateWorkoutRequest{Type: "  Cardio ", Duration: 30, Calories: 200}
	require.NoError(t, ValidateCreateWorkoutRequest(ok))
	assert.Equal(t, "Cardio", ok.Type)

	bad := []*CreateWorkoutRequest{
		{Type: " ", Duration: 30, Calories: 200},
		{Type: "Cardio", Duration: 0, Calories: 200},
		{Type: "Cardio", Duration: 30, Calories: -1},
		{Type: "Cardio", Duration: 30, Calories: 200, Checklist: []string{"Squat", ""}},
	}
	for _, req := range bad {
		assert.Error(t, ValidateCreateWorkoutRequest(req))
	}
}

func TestParseDateBound(t *testing.T) {
	zero, err := ParseDateBound("", true)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	exact, err := ParseDateBound("2026-10-17T08:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 17, 8, 30, 0, 0, time.UTC), exact.UTC())

	start, err := ParseDateBound("2026-10-17", false)
	require.NoError(t, err)
	assert.Equal(t, 0, start.Hour())

	end, err := ParseDateBound("2026-10-17", true)
	require.NoError(t, err)
	assert.Equal(t, 17, end.Day())
	assert.Equal(t, 23, end.Hour())

	_, err = ParseDateBound("yesterday", false)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
