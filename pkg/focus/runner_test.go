package focus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicks hands out a fresh unbuffered channel per start so a tick is
// only ever consumed by the loop that is current.
type manualTicks struct {
	mu       sync.Mutex
	ch       chan time.Time
	starts   int
	releases int
}

func (m *manualTicks) source(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ch = make(chan time.Time)
	m.starts++
	return m.ch, func() {
		m.mu.Lock()
		m.releases++
		m.mu.Unlock()
	}
}

func (m *manualTicks) tick(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	ch := m.ch
	m.mu.Unlock()
	select {
	case ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("tick was not consumed")
	}
}

func (m *manualTicks) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts, m.releases
}

func next(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
	return Snapshot{}
}

func newTestRunner(ticks *manualTicks) (*Runner, chan Snapshot, chan Completion) {
	changes := make(chan Snapshot, 4096)
	done := make(chan Completion, 4)
	r := NewRunner(
		WithTickSource(ticks.source),
		OnChange(func(s Snapshot) { changes <- s }),
		OnComplete(func(c Completion) { done <- c }),
	)
	return r, changes, done
}

func TestRunnerCountsDownToExpiry(t *testing.T) {
	ticks := &manualTicks{}
	r, changes, done := newTestRunner(ticks)
	defer r.Close()

	_, err := r.SelectSubject(&Subject{ID: "bio", Name: "Biology"})
	require.NoError(t, err)
	next(t, changes)

	snap, err := r.SelectMode(ModePomodoro)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 1500, next(t, changes).RemainingSeconds)

	var last Snapshot
	for i := 0; i < 1500; i++ {
		ticks.tick(t)
		last = next(t, changes)
	}
	assert.Equal(t, StateExpired, last.State)
	assert.Equal(t, 0, last.RemainingSeconds)

	select {
	case c := <-done:
		assert.Equal(t, 25, c.Minutes)
		require.NotNil(t, c.Subject)
		assert.Equal(t, "bio", c.Subject.ID)
	case <-time.After(time.Second):
		t.Fatal("completion not delivered")
	}

	starts, releases := ticks.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, releases)
}

func TestRunnerPauseReleasesTicks(t *testing.T) {
	ticks := &manualTicks{}
	r, changes, _ := newTestRunner(ticks)
	defer r.Close()

	_, err := r.SelectMode(ModePomodoro)
	require.NoError(t, err)
	next(t, changes)
	for i := 0; i < 3; i++ {
		ticks.tick(t)
		next(t, changes)
	}

	snap, err := r.Toggle()
	require.NoError(t, err)
	assert.Equal(t, StatePaused, snap.State)
	_, releases := ticks.counts()
	assert.Equal(t, 1, releases)

	// A tick racing the pause must not be applied.
	ticks.mu.Lock()
	stale := ticks.ch
	ticks.mu.Unlock()
	select {
	case stale <- time.Now():
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 1497, r.Snapshot().RemainingSeconds)

	snap, err = r.Toggle()
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	next(t, changes)
	next(t, changes)
	ticks.tick(t)
	assert.Equal(t, 1496, next(t, changes).RemainingSeconds)

	starts, _ := ticks.counts()
	assert.Equal(t, 2, starts)
}

func TestRunnerResetRestoresDuration(t *testing.T) {
	ticks := &manualTicks{}
	r, changes, _ := newTestRunner(ticks)
	defer r.Close()

	_, err := r.SelectMode(ModeCustom)
	require.NoError(t, err)
	next(t, changes)
	ticks.tick(t)
	next(t, changes)

	snap, err := r.Reset()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 2700, snap.RemainingSeconds)

	_, releases := ticks.counts()
	assert.Equal(t, 1, releases)
}

func TestRunnerSelectSubjectKeepsTicking(t *testing.T) {
	ticks := &manualTicks{}
	r, changes, _ := newTestRunner(ticks)
	defer r.Close()

	_, err := r.SelectMode(ModePomodoro)
	require.NoError(t, err)
	next(t, changes)

	snap, err := r.SelectSubject(&Subject{ID: "ict", Name: "ICT"})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	next(t, changes)

	ticks.tick(t)
	assert.Equal(t, 1499, next(t, changes).RemainingSeconds)

	starts, releases := ticks.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, releases)
}

func TestRunnerCloseReleasesAndRejects(t *testing.T) {
	ticks := &manualTicks{}
	r, changes, _ := newTestRunner(ticks)

	_, err := r.SelectMode(ModePomodoro)
	require.NoError(t, err)
	next(t, changes)

	r.Close()
	r.Close()
	_, releases := ticks.counts()
	assert.Equal(t, 1, releases)

	_, err = r.Toggle()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 1500, r.Snapshot().RemainingSeconds)

	_, err = r.Current()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunnerRejectsUnknownMode(t *testing.T) {
	ticks := &manualTicks{}
	r, _, _ := newTestRunner(ticks)
	defer r.Close()

	snap, err := r.SelectMode("marathon")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, StateIdle, snap.State)

	starts, _ := ticks.counts()
	assert.Equal(t, 0, starts)
}
