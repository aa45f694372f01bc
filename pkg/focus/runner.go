package focus

import (
	"errors"
	"sync"
	"time"
)

var ErrClosed = errors.New("focus runner closed")

// TickSource starts a periodic tick and returns its channel plus a release func.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

// SystemTicks is the wall-clock tick source.
func SystemTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

type Option func(*Runner)

func WithTickSource(ts TickSource) Option {
	return func(r *Runner) { r.ticks = ts }
}

func WithInterval(d time.Duration) Option {
	return func(r *Runner) { r.interval = d }
}

// OnChange is called with the new snapshot after every command and tick.
func OnChange(fn func(Snapshot)) Option {
	return func(r *Runner) { r.onChange = fn }
}

// OnComplete is called once per expiry, after the OnChange for the final tick.
func OnComplete(fn func(Completion)) Option {
	return func(r *Runner) { r.onComplete = fn }
}

// Runner owns a Timer and drives it from a tick source. The tick source only
// exists while the timer is running; every other transition releases it.
// Callbacks run outside the runner's lock.
type Runner struct {
	mu       sync.Mutex
	timer    *Timer
	ticks    TickSource
	interval time.Duration

	gen     uint64
	stop    chan struct{}
	release func()
	closed  bool
	pending *Completion

	onChange   func(Snapshot)
	onComplete func(Completion)
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timer:    NewTimer(),
		ticks:    SystemTicks,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.timer.OnExpire(func(c Completion) { r.pending = &c })
	return r
}

func (r *Runner) SelectMode(m Mode) (Snapshot, error) {
	return r.apply(true, func(t *Timer) error { return t.SelectMode(m) })
}

func (r *Runner) Toggle() (Snapshot, error) {
	return r.apply(false, func(t *Timer) error { t.Toggle(); return nil })
}

func (r *Runner) Reset() (Snapshot, error) {
	return r.apply(false, func(t *Timer) error { t.Reset(); return nil })
}

func (r *Runner) SelectSubject(s *Subject) (Snapshot, error) {
	return r.apply(false, func(t *Timer) error { t.SelectSubject(s); return nil })
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Snapshot()
}

// Current is Snapshot for callers that must not read a closed runner.
func (r *Runner) Current() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Snapshot{}, ErrClosed
	}
	return r.timer.Snapshot(), nil
}

// Close releases the tick source. No tick is applied after Close returns.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.stop != nil {
		r.stopLocked()
	}
}

func (r *Runner) apply(restart bool, fn func(*Timer) error) (Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if err := fn(r.timer); err != nil {
		snap := r.timer.Snapshot()
		r.mu.Unlock()
		return snap, err
	}

	running := r.timer.State() == StateRunning
	if r.stop != nil && (!running || restart) {
		r.stopLocked()
	}
	if running && r.stop == nil {
		r.startLocked()
	}
	snap := r.timer.Snapshot()
	r.mu.Unlock()

	r.notify(snap, nil)
	return snap, nil
}

func (r *Runner) startLocked() {
	ch, release := r.ticks(r.interval)
	r.gen++
	r.stop = make(chan struct{})
	r.release = release
	go r.loop(r.gen, ch, r.stop)
}

func (r *Runner) stopLocked() {
	close(r.stop)
	r.release()
	r.stop = nil
	r.release = nil
	r.gen++
}

func (r *Runner) loop(gen uint64, ch <-chan time.Time, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-ch:
			if !ok || !r.tick(gen) {
				return
			}
		}
	}
}

// tick applies one tick if gen is still current and reports whether the loop should continue.
func (r *Runner) tick(gen uint64) bool {
	r.mu.Lock()
	if r.closed || r.gen != gen {
		r.mu.Unlock()
		return false
	}
	r.timer.Tick()
	snap := r.timer.Snapshot()
	done := r.pending
	r.pending = nil
	running := snap.State == StateRunning
	if !running {
		r.stopLocked()
	}
	r.mu.Unlock()

	r.notify(snap, done)
	return running
}

func (r *Runner) notify(snap Snapshot, done *Completion) {
	if r.onChange != nil {
		r.onChange(snap)
	}
	if done != nil && r.onComplete != nil {
		r.onComplete(*done)
	}
}
