package focus

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModePomodoro Mode = "pomodoro"
	ModeLong     Mode = "long"
	ModeCustom   Mode = "custom"
)

var ErrUnknownMode = errors.New("unknown timer mode")

// Seconds is the fixed duration of the mode, or 0 for an unknown mode.
func (m Mode) Seconds() int {
	switch m {
	case ModePomodoro:
		return 25 * 60
	case ModeLong:
		return 50 * 60
	case ModeCustom:
		return 45 * 60
	}
	return 0
}

func (m Mode) Minutes() int { return m.Seconds() / 60 }

func (m Mode) Label() string {
	switch m {
	case ModePomodoro:
		return "Pomodoro (25 min)"
	case ModeLong:
		return "Long Session (50 min)"
	case ModeCustom:
		return "Custom (45 min)"
	}
	return string(m)
}

func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if m.Seconds() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateExpired State = "expired"
)

// Subject identifies what the focus session is being spent on.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Completion is emitted once when a running timer reaches zero.
type Completion struct {
	Mode    Mode     `json:"mode"`
	Minutes int      `json:"minutes"`
	Subject *Subject `json:"subject,omitempty"`
}

type Snapshot struct {
	Mode             Mode     `json:"mode"`
	State            State    `json:"state"`
	RemainingSeconds int      `json:"remaining_seconds"`
	Subject          *Subject `json:"subject,omitempty"`
}

// Timer is the focus-session state machine. It has no clock of its own:
// something else calls Tick once per elapsed second while it is running.
// A Timer is not safe for concurrent use; see Runner.
type Timer struct {
	mode      Mode
	state     State
	remaining int
	subject   *Subject
	onExpire  func(Completion)
}

// NewTimer returns an idle pomodoro timer with the full 25 minutes left.
func NewTimer() *Timer {
	return &Timer{
		mode:      ModePomodoro,
		state:     StateIdle,
		remaining: ModePomodoro.Seconds(),
	}
}

// OnExpire registers the callback fired when the countdown reaches zero.
func (t *Timer) OnExpire(fn func(Completion)) {
	t.onExpire = fn
}

// SelectMode loads the mode's duration and starts counting immediately.
func (t *Timer) SelectMode(m Mode) error {
	if m.Seconds() == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	t.mode = m
	t.remaining = m.Seconds()
	t.state = StateRunning
	return nil
}

// Toggle flips between running and paused. An idle timer starts; an expired
// one stays expired until a mode is selected or it is reset.
func (t *Timer) Toggle() {
	switch t.state {
	case StateRunning:
		t.state = StatePaused
	case StatePaused, StateIdle:
		t.state = StateRunning
	}
}

// Reset stops the countdown and restores the current mode's full duration.
func (t *Timer) Reset() {
	t.state = StateIdle
	t.remaining = t.mode.Seconds()
}

// SelectSubject changes the subject credited on completion without touching the countdown.
func (t *Timer) SelectSubject(s *Subject) {
	if s == nil {
		t.subject = nil
		return
	}
	cp := *s
	t.subject = &cp
}

// Tick advances the countdown by one second. It reports whether the timer expired on this tick.
func (t *Timer) Tick() bool {
	if t.state != StateRunning {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return false
	}

	t.state = StateExpired
	if t.onExpire != nil {
		t.onExpire(Completion{
			Mode:    t.mode,
			Minutes: t.mode.Minutes(),
			Subject: t.Subject(),
		})
	}
	return true
}

func (t *Timer) State() State          { return t.state }
func (t *Timer) Mode() Mode            { return t.mode }
func (t *Timer) RemainingSeconds() int { return t.remaining }

func (t *Timer) Subject() *Subject {
	if t.subject == nil {
		return nil
	}
	cp := *t.subject
	return &cp
}

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Mode:             t.mode,
		State:            t.state,
		RemainingSeconds: t.remaining,
		Subject:          t.Subject(),
	}
}
