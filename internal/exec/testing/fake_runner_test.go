package testing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/exec"
)

// Compile-time interface check
var _ exec.Runner = (*FakeRunner)(nil)

func TestFakeRunner_FullCommandBeatsProgramName(t *testing.T) {
	f := NewFakeRunner().
		OnStdout("ip", "generic").
		OnStdout("ip route show default", "default via 10.0.0.1 dev wlan0")

	res := f.Run(context.Background(), []string{"ip", "route", "show", "default"}, time.Second)
	assert.Equal(t, "default via 10.0.0.1 dev wlan0", res.Stdout)

	res = f.Run(context.Background(), []string{"ip", "-4", "addr"}, time.Second)
	assert.Equal(t, "generic", res.Stdout)
}

func TestFakeRunner_UnknownCommandIsMissing(t *testing.T) {
	f := NewFakeRunner()

	res := f.Run(context.Background(), []string{"iwconfig", "wlan0"}, time.Second)

	require.Error(t, res.LaunchErr)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, []string{"iwconfig", "wlan0"}, res.Argv)
}

func TestFakeRunner_RecordsCalls(t *testing.T) {
	f := NewFakeRunner().OnStdout("hostname", "10.0.0.5\n")

	f.Run(context.Background(), []string{"hostname", "-I"}, 3*time.Second)
	f.Run(context.Background(), []string{"hostname", "-I"}, 3*time.Second)

	require.Len(t, f.Calls, 2)
	assert.Equal(t, 3*time.Second, f.Calls[0].Timeout)
	assert.Equal(t, 2, f.CallCount("hostname"))
	assert.Equal(t, 2, f.CallCount("hostname -I"))
	assert.False(t, f.Called("wpa_cli"))
}

func TestFakeRunner_QueueThenFallback(t *testing.T) {
	f := NewFakeRunner().
		Queue("wpa_cli", exec.Result{Stdout: "FAIL\n"}).
		OnStdout("wpa_cli", "OK\n")

	assert.Equal(t, "FAIL\n", f.Run(context.Background(), []string{"wpa_cli"}, 0).Stdout)
	assert.Equal(t, "OK\n", f.Run(context.Background(), []string{"wpa_cli"}, 0).Stdout)
}

func TestFakeRunner_OnFuncSeesContext(t *testing.T) {
	f := NewFakeRunner().OnFunc("sleep", func(ctx context.Context) exec.Result {
		<-ctx.Done()
		return exec.Result{ExitCode: -1, Canceled: true}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.Run(ctx, []string{"sleep", "10"}, 0)
	assert.True(t, res.Canceled)
}

func TestFakeRunner_Reset(t *testing.T) {
	f := NewFakeRunner().OnTimeout("iw")
	f.Run(context.Background(), []string{"iw"}, 0)

	f.Reset()

	assert.Empty(t, f.Calls)
	res := f.Run(context.Background(), []string{"iw"}, 0)
	assert.False(t, res.TimedOut)
	assert.Error(t, res.LaunchErr)
}
