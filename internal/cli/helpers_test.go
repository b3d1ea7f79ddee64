package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/exec"
	fakeexec "github.com/rileyhilliard/wifimon/internal/exec/testing"
)

const (
	iwconfigHome = `wlan0     IEEE 802.11  ESSID:"HomeNet"
          Link Quality=58/70  Signal level=-52 dBm`
	routeHome = "default via 192.168.1.1 dev wlan0 proto dhcp metric 303\n"
)

func healthyRunner() *fakeexec.FakeRunner {
	return fakeexec.NewFakeRunner().
		OnStdout("iwconfig", iwconfigHome).
		OnStdout("hostname", "192.168.1.42\n").
		OnStdout("ip", routeHome)
}

// useRunner swaps the command runner for the duration of the test.
func useRunner(t *testing.T, r exec.Runner) {
	t.Helper()
	original := newRunner
	newRunner = func() exec.Runner { return r }
	t.Cleanup(func() { newRunner = original })
}

// useConfig writes content to a temp config and points --config at it.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	original := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = original })
	return path
}

func plainColors(t *testing.T) {
	t.Helper()
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
}
