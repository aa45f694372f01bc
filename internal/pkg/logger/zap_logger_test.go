package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("FOCUS", "Mode selected", map[string]interface{}{"mode": "pomodoro"})
	l.Debug("FOCUS", "Tick", nil)
	l.Error("SESSION", "Record failed", map[string]interface{}{"error": errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "Mode selected", entries[0].Message)
	assert.Equal(t, "FOCUS", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"mode": "pomodoro"}, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap(), "error_ref")
}

func TestIsolatedLoggerWritesFile(t *testing.T) {
	path := t.TempDir() + "/ws.log"
	l := NewIsolatedLogger(path)
	l.Info("WS", "client connected", nil)
	assert.NoError(t, l.Sync())
	assert.FileExists(t, path)
}
