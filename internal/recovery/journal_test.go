package recovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wmerrors "github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/exec"
)

func TestEntry_Format(t *testing.T) {
	e := Entry{
		Time:   time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
		Reason: "offline",
		Result: exec.Result{
			Argv:     []string{"wpa_cli", "-i", "wlan0", "reconfigure"},
			Stdout:   "Selected interface 'wlan0'\nOK\n",
			Duration: 120 * time.Millisecond,
		},
	}

	want := "2024-03-09T14:05:00Z offline: wpa_cli -i wlan0 reconfigure -> exit 0 (120ms)\n" +
		"    Selected interface 'wlan0'\n" +
		"    OK\n"
	assert.Equal(t, want, e.Format())
}

func TestEntry_FormatLaunchError(t *testing.T) {
	e := Entry{
		Time:   time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
		Reason: "degraded-no-gateway",
		Result: exec.Result{
			Argv:      []string{"wpa_cli"},
			ExitCode:  -1,
			LaunchErr: exec.ErrNotFound,
			Truncated: true,
		},
	}

	out := e.Format()
	assert.Contains(t, out, "-> launch failed")
	assert.Contains(t, out, "[output truncated]")
	assert.Contains(t, out, "executable file not found")
}

func TestFileJournal_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "restart.log")

	j, err := OpenJournal(path, 0)
	require.NoError(t, err)

	e := Entry{Time: time.Now(), Reason: "offline", Result: exec.Result{Argv: []string{"wpa_cli"}, Stdout: "OK\n"}}
	require.NoError(t, j.Record(e))
	require.NoError(t, j.Record(e))
	require.NoError(t, j.Close())

	// Reopening appends instead of truncating
	j, err = OpenJournal(path, 0)
	require.NoError(t, err)
	require.NoError(t, j.Record(e))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "offline: wpa_cli -> exit 0"))
}

func TestOpenJournal_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := OpenJournal(filepath.Join(blocker, "restart.log"), 1)

	require.Error(t, err)
	assert.True(t, wmerrors.IsCode(err, wmerrors.ErrRecovery))
}
