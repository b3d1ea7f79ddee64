package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// captureLogr returns a logr sink that records formatted lines.
func captureLogr(lines *[]string) Logger {
	l := funcr.New(func(prefix, args string) {
		*lines = append(*lines, strings.TrimSpace(prefix+" "+args))
	}, funcr.Options{Verbosity: 1})
	return FromLogr(l)
}

func TestLogrLogger_Levels(t *testing.T) {
	var lines []string
	l := captureLogr(&lines)

	l.Debug("debug %d", 1)
	l.Info("info %s", "two")
	l.Warn("warn %s", "three")
	l.Error("error %s", "four")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"debug 1"`)
	assert.Contains(t, lines[0], `"level"=1`)
	assert.Contains(t, lines[1], `"info two"`)
	assert.Contains(t, lines[2], `"warn three"`)
	assert.Contains(t, lines[2], `"warn"=true`)
	assert.Contains(t, lines[3], `"error four"`)
}

func TestLogrLogger_Named(t *testing.T) {
	var lines []string
	l := captureLogr(&lines).Named("sampler")

	l.Info("hello")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "sampler")
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	assert.Equal(t, l, l.Named("anything"))
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "info msg"}, l.Messages[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "warn msg"}, l.Messages[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, l.Messages[3])
}

func TestBufferLogger_HasLevelAndContains(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("error"))

	l.Named("display").Error("display write failed: %s", "i2c nack")

	assert.True(t, l.HasLevel("error"))
	assert.True(t, l.Contains("error", "i2c nack"))
	assert.False(t, l.Contains("warn", "i2c nack"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}

func TestNew_WritesToRotatingFile(t *testing.T) {
	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	defer func() { isTerminal = original }()
	t.Setenv("JOURNAL_STREAM", "")
	t.Setenv("INVOCATION_ID", "")

	path := filepath.Join(t.TempDir(), "logs", "wifimon.log")

	l, closer, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	l.Named("daemon").Info("cycle %d done", 7)
	l.Debug("sampled")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cycle 7 done")
	assert.Contains(t, string(data), `"logger":"daemon"`)
	assert.Contains(t, string(data), "sampled")
}

func TestNew_WarnSurvivesWarnLevel(t *testing.T) {
	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	defer func() { isTerminal = original }()
	t.Setenv("JOURNAL_STREAM", "")
	t.Setenv("INVOCATION_ID", "")

	path := filepath.Join(t.TempDir(), "wifimon.log")

	l, closer, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)

	l.Info("routine")
	l.Named("recovery").Named("journal").Warn("reconfigure failed: %s", "FAIL")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "routine")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "reconfigure failed: FAIL")
	assert.Contains(t, out, `"logger":"recovery/journal"`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	defer func() { isTerminal = original }()
	t.Setenv("JOURNAL_STREAM", "")
	t.Setenv("INVOCATION_ID", "")

	path := filepath.Join(t.TempDir(), "wifimon.log")

	l, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestNew_UnwritableFile(t *testing.T) {
	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	defer func() { isTerminal = original }()
	t.Setenv("JOURNAL_STREAM", "")
	t.Setenv("INVOCATION_ID", "")

	// A regular file can't be used as a directory.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, _, err := New(Options{File: filepath.Join(blocker, "wifimon.log")})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
