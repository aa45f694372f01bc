package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModePomodoro, ModeLong, ModeCustom} {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("short")
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, 1500, ModePomodoro.Seconds())
	assert.Equal(t, 3000, ModeLong.Seconds())
	assert.Equal(t, 2700, ModeCustom.Seconds())
	assert.Equal(t, 45, ModeCustom.Minutes())
}

func TestNewTimerIsIdlePomodoro(t *testing.T) {
	timer := NewTimer()
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, ModePomodoro, timer.Mode())
	assert.Equal(t, 1500, timer.RemainingSeconds())

	assert.False(t, timer.Tick())
	assert.Equal(t, 1500, timer.RemainingSeconds())
}

func TestPomodoroRunsToExpiry(t *testing.T) {
	timer := NewTimer()
	var completions []Completion
	timer.OnExpire(func(c Completion) { completions = append(completions, c) })
	timer.SelectSubject(&Subject{ID: "phy", Name: "Physics"})

	require.NoError(t, timer.SelectMode(ModePomodoro))
	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, 1500, timer.RemainingSeconds())

	expired := 0
	for i := 0; i < 1500; i++ {
		if timer.Tick() {
			expired++
		}
	}
	assert.Equal(t, 1, expired)
	assert.Equal(t, StateExpired, timer.State())
	assert.Equal(t, 0, timer.RemainingSeconds())

	for i := 0; i < 10; i++ {
		assert.False(t, timer.Tick())
	}
	assert.Equal(t, 0, timer.RemainingSeconds())

	require.Len(t, completions, 1)
	assert.Equal(t, ModePomodoro, completions[0].Mode)
	assert.Equal(t, 25, completions[0].Minutes)
	require.NotNil(t, completions[0].Subject)
	assert.Equal(t, "Physics", completions[0].Subject.Name)
}

func TestResetRestoresModeDuration(t *testing.T) {
	timer := NewTimer()
	require.NoError(t, timer.SelectMode(ModeLong))
	for i := 0; i < 125; i++ {
		timer.Tick()
	}
	assert.Equal(t, 3000-125, timer.RemainingSeconds())

	timer.Reset()
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, 3000, timer.RemainingSeconds())
	assert.Equal(t, ModeLong, timer.Mode())
}

func TestToggle(t *testing.T) {
	timer := NewTimer()

	timer.Toggle()
	assert.Equal(t, StateRunning, timer.State())

	timer.Tick()
	timer.Toggle()
	assert.Equal(t, StatePaused, timer.State())
	assert.False(t, timer.Tick())
	assert.Equal(t, 1499, timer.RemainingSeconds())

	timer.Toggle()
	assert.Equal(t, StateRunning, timer.State())
}

func TestToggleDoesNothingOnceExpired(t *testing.T) {
	timer := NewTimer()
	require.NoError(t, timer.SelectMode(ModePomodoro))
	for timer.State() == StateRunning {
		timer.Tick()
	}
	timer.Toggle()
	assert.Equal(t, StateExpired, timer.State())

	require.NoError(t, timer.SelectMode(ModeCustom))
	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, 2700, timer.RemainingSeconds())
}

func TestSelectSubjectKeepsCountdown(t *testing.T) {
	timer := NewTimer()
	require.NoError(t, timer.SelectMode(ModePomodoro))
	timer.Tick()
	timer.Tick()

	timer.SelectSubject(&Subject{ID: "chem", Name: "Chemistry"})
	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, 1498, timer.RemainingSeconds())
	assert.Equal(t, "Chemistry", timer.Subject().Name)

	timer.SelectSubject(nil)
	assert.Nil(t, timer.Subject())
}

func TestSelectUnknownModeKeepsState(t *testing.T) {
	timer := NewTimer()
	err := timer.SelectMode("sprint")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, 1500, timer.RemainingSeconds())
}

func TestExpiryWithoutSubject(t *testing.T) {
	timer := NewTimer()
	var got *Completion
	timer.OnExpire(func(c Completion) { got = &c })
	require.NoError(t, timer.SelectMode(ModePomodoro))
	for i := 0; i < 1500; i++ {
		timer.Tick()
	}
	require.NotNil(t, got)
	assert.Nil(t, got.Subject)
}
