package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"exam-prep-be/pkg/focus"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	color.NoColor = true

	line := render(focus.Snapshot{
		Mode:             focus.ModePomodoro,
		State:            focus.StatePaused,
		RemainingSeconds: 754,
		Subject:          &focus.Subject{Name: "Physics"},
	})
	assert.Equal(t, "Pomodoro (25 min)  12:34  [paused]  Physics", line)
}

func TestHandle(t *testing.T) {
	runner := focus.NewRunner(focus.WithTickSource(func(_ time.Duration) (<-chan time.Time, func()) {
		return make(chan time.Time), func() {}
	}))
	defer runner.Close()

	quit, err := handle(runner, "p")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, focus.StateRunning, runner.Snapshot().State)

	_, err = handle(runner, "m long")
	require.NoError(t, err)
	assert.Equal(t, focus.ModeLong, runner.Snapshot().Mode)
	assert.Equal(t, 50*60, runner.Snapshot().RemainingSeconds)

	_, err = handle(runner, "m sprint")
	assert.ErrorIs(t, err, focus.ErrUnknownMode)

	_, err = handle(runner, "jump")
	assert.Error(t, err)

	quit, err = handle(runner, "q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestRunKeepsCountingAfterInputCloses(t *testing.T) {
	color.NoColor = true
	quiet = true

	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() {
		errc <- run(strings.NewReader(""), &out, focus.ModePomodoro, "Physics", focus.WithInterval(time.Microsecond))
	}()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("run did not return after the session ended")
	}
	assert.Contains(t, out.String(), "25 minutes of focus done on Physics")
	assert.Contains(t, out.String(), "\033[2K\r")
	assert.NotContains(t, out.String(), "[paused]")
}

func TestRunReturnsOnQuit(t *testing.T) {
	color.NoColor = true
	quiet = true

	var out bytes.Buffer
	ticks := func(time.Duration) (<-chan time.Time, func()) { return make(chan time.Time), func() {} }
	require.NoError(t, run(strings.NewReader("p\nq\n"), &out, focus.ModeLong, "", focus.WithTickSource(ticks)))

	assert.Contains(t, out.String(), "[paused]")
	assert.NotContains(t, out.String(), "focus done")
}
