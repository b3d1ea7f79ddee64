package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"run", "status", "watch", "init", "service", "doctor", "completion", "version"} {
		assert.True(t, names[want], "missing %q", want)
	}
}

func TestServiceCommandHasActions(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range serviceCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"install", "uninstall", "start", "stop", "restart", "status"} {
		assert.True(t, names[want], "missing %q", want)
	}
}

func withFlags(t *testing.T, cfg string, dbg, verb bool) {
	t.Helper()
	oc, od, ov := cfgFile, debug, verbose
	cfgFile, debug, verbose = cfg, dbg, verb
	t.Cleanup(func() { cfgFile, debug, verbose = oc, od, ov })
}

func TestServiceArgs(t *testing.T) {
	withFlags(t, "", false, false)
	assert.Equal(t, []string{"run"}, serviceArgs())

	withFlags(t, "wifimon.yaml", true, false)
	abs, err := filepath.Abs("wifimon.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "--config", abs, "--debug"}, serviceArgs())
}

func TestLogLevel(t *testing.T) {
	withFlags(t, "", false, false)
	assert.Equal(t, "warn", logLevel("warn"))

	withFlags(t, "", false, true)
	assert.Equal(t, "info", logLevel("warn"))

	withFlags(t, "", true, true)
	assert.Equal(t, "debug", logLevel("warn"))
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	withFlags(t, filepath.Join(t.TempDir(), "nope.yaml"), false, false)

	_, _, err := loadConfig()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadConfig_ReturnsPath(t *testing.T) {
	path := useConfig(t, "version: 1\nnetwork:\n  interface: wlan2\n")

	cfg, got, err := loadConfig()

	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "wlan2", cfg.Network.Interface)
}
