package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	fakeexec "github.com/rileyhilliard/wifimon/internal/exec/testing"
)

func noTTY(t *testing.T) {
	t.Helper()
	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = original })
}

func TestInit_NonInteractiveWritesConfig(t *testing.T) {
	noTTY(t)
	plainColors(t)
	runner := healthyRunner()
	useRunner(t, runner)
	path := filepath.Join(t.TempDir(), "wifimon", "config.yaml")

	var out bytes.Buffer
	err := Init(InitOptions{
		Path:           path,
		Interface:      "wlan1",
		SSID:           "HomeNet",
		Display:        config.DisplayNone,
		NonInteractive: true,
		Out:            &out,
	})
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wlan1", cfg.Network.Interface)
	assert.Equal(t, "HomeNet", cfg.Network.SSID)
	assert.Equal(t, config.DisplayNone, cfg.Display.Driver)
	assert.Equal(t, config.LEDsGPIO, cfg.LEDs.Driver)

	assert.True(t, runner.Called("iwconfig wlan1"), "checks the chosen interface")
	assert.Contains(t, out.String(), "iwconfig wlan1 answered")
	assert.Contains(t, out.String(), "Created "+path)
}

func TestInit_WarnsWhenInterfaceDoesNotAnswer(t *testing.T) {
	noTTY(t)
	plainColors(t)
	useRunner(t, fakeexec.NewFakeRunner())
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	require.NoError(t, Init(InitOptions{Path: path, NonInteractive: true, Out: &out}))

	assert.Contains(t, out.String(), "iwconfig wlan0 didn't answer")
	assert.FileExists(t, path)
}

func TestInit_ExistingConfig(t *testing.T) {
	noTTY(t)
	useRunner(t, healthyRunner())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	err := Init(InitOptions{Path: path, NonInteractive: true, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "already exists")

	err = Init(InitOptions{Path: path, NonInteractive: true, Overwrite: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# wifimon configuration")
}

func TestInit_NoTTYNeverPrompts(t *testing.T) {
	noTTY(t)
	useRunner(t, healthyRunner())
	path := filepath.Join(t.TempDir(), "config.yaml")

	// Not asking for non-interactive, but stdin isn't a terminal.
	require.NoError(t, Init(InitOptions{Path: path, Out: &bytes.Buffer{}}))
	assert.FileExists(t, path)
}

func TestInit_RejectsInvalidDriver(t *testing.T) {
	noTTY(t)
	useRunner(t, healthyRunner())
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := Init(InitOptions{Path: path, Display: "ssd9999", NonInteractive: true, Out: &bytes.Buffer{}})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.NoFileExists(t, path)
}
