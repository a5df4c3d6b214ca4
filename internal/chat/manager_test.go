package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

func TestMain(m *testing.M) {
	// opencensus, pulled in through the genai client, starts its view worker
	// from init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func TestManagerSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	r, snap, err := m.BeginLogging(s.ID, "")
	require.NoError(t, err)
	assert.Equal(t, promptType, r.Text)
	assert.Equal(t, CollectingType, snap.State)

	_, snap, err = m.Send(context.Background(), s.ID, "Yoga")
	require.NoError(t, err)
	assert.Equal(t, "Yoga", snap.Draft.Type)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, CollectingDuration, got.State)

	_, _, err = m.BeginGymAssistance(s.ID, "Reckord Armory")
	require.NoError(t, err)
	got, _ = m.Get(s.ID)
	assert.Equal(t, Idle, got.State)
	assert.Equal(t, "Reckord Armory", got.GymContext)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	_, _, err = m.Send(context.Background(), s.ID, "hi")
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestManagerSnapshotsAreDetached(t *testing.T) {
	f := newFixture(t)
	f.asst.replies = []string{planReply}
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())
	s := m.Create()

	_, snap, err := m.Send(context.Background(), s.ID, "leg workout please")
	require.NoError(t, err)
	require.Len(t, snap.PendingChecklist, 2)
	snap.PendingChecklist[0] = "changed"

	got, _ := m.Get(s.ID)
	assert.Equal(t, "Squat: 3x10", got.PendingChecklist[0])
}

func TestManagerSerializesMessagesPerSession(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())
	s := m.Create()
	_, _, err := m.BeginLogging(s.ID, "")
	require.NoError(t, err)

	// Each message lands on a consistent state even when sent concurrently.
	var wg sync.WaitGroup
	for _, msg := range []string{"Run", "Run", "Run"} {
		wg.Add(1)
		go func(msg string) {
			defer wg.Done()
			_, _, _ = m.Send(context.Background(), s.ID, msg)
		}(msg)
	}
	wg.Wait()

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	// type, then two invalid durations
	assert.Equal(t, CollectingDuration, got.State)
	assert.Equal(t, "Run", got.Draft.Type)
}

func TestManagerSweepExpiresIdleSessions(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale := m.Create()
	now = now.Add(50 * time.Second)
	fresh := m.Create()
	now = now.Add(20 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	_, err := m.Get(stale.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestManagerGetDoesNotKeepSessionAlive(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	polled := m.Create()
	active := m.Create()
	for i := 0; i < 3; i++ {
		now = now.Add(30 * time.Second)
		_, err := m.Get(polled.ID)
		require.NoError(t, err)
		_, _, err = m.BeginLogging(active.ID, "")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, m.Sweep())
	_, err := m.Get(polled.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.ctl, time.Minute, internal.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
