package logger

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := Level()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		levelVar.Set(prev)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "level=WARN")
}

func TestDebugThroughL(t *testing.T) {
	buf := capture(t)
	SetLevel("DEBUG")

	L().Debug("complexes", slog.Int("count", 3))
	Debugf("lines %d", 2)

	assert.Contains(t, buf.String(), "count=3")
	assert.Contains(t, buf.String(), "lines 2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" Info ":  slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetLevelUnknownFallsBackToInfo(t *testing.T) {
	capture(t)
	SetLevel("error")
	SetLevel("loud")
	assert.Equal(t, slog.LevelInfo, Level())
}
