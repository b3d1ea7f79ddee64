package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:        "future version",
			mutate:      func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr:     true,
			errContains: "from the future",
		},
		{
			name:        "poll interval too short",
			mutate:      func(c *Config) { c.PollInterval = 500 * time.Millisecond },
			wantErr:     true,
			errContains: "poll_interval",
		},
		{
			name:        "missing interface",
			mutate:      func(c *Config) { c.Network.Interface = " " },
			wantErr:     true,
			errContains: "network.interface is required",
		},
		{
			name:        "interface with a slash",
			mutate:      func(c *Config) { c.Network.Interface = "wlan0/1" },
			wantErr:     true,
			errContains: "not a valid interface name",
		},
		{
			name:        "zero sample timeout",
			mutate:      func(c *Config) { c.Network.SampleTimeout = 0 },
			wantErr:     true,
			errContains: "sample_timeout",
		},
		{
			name:        "empty route command",
			mutate:      func(c *Config) { c.Network.RouteCommand = nil },
			wantErr:     true,
			errContains: "network.route_command",
		},
		{
			name:        "weak signal threshold out of range",
			mutate:      func(c *Config) { c.Health.WeakSignalDBM = 10 },
			wantErr:     true,
			errContains: "weak_signal_dbm",
		},
		{
			name:        "recovery without command",
			mutate:      func(c *Config) { c.Recovery.Command = []string{""} },
			wantErr:     true,
			errContains: "recovery.command",
		},
		{
			name: "disabled recovery skips its checks",
			mutate: func(c *Config) {
				c.Recovery.Enabled = false
				c.Recovery.Command = nil
				c.Recovery.AfterTicks = 0
			},
		},
		{
			name:        "after ticks zero",
			mutate:      func(c *Config) { c.Recovery.AfterTicks = 0 },
			wantErr:     true,
			errContains: "after_ticks",
		},
		{
			name:        "negative cooldown",
			mutate:      func(c *Config) { c.Recovery.Cooldown = -time.Second },
			wantErr:     true,
			errContains: "cooldown",
		},
		{
			name:   "no alternative is fine",
			mutate: func(c *Config) { c.Recovery.Alternative = nil },
		},
		{
			name:        "missing journal",
			mutate:      func(c *Config) { c.Recovery.Journal = "" },
			wantErr:     true,
			errContains: "journal",
		},
		{
			name:        "unknown display driver",
			mutate:      func(c *Config) { c.Display.Driver = "ssd1351" },
			wantErr:     true,
			errContains: "display.driver",
		},
		{
			name:        "bad i2c address",
			mutate:      func(c *Config) { c.Display.Address = 0x80 },
			wantErr:     true,
			errContains: "I2C address",
		},
		{
			name: "no display ignores address",
			mutate: func(c *Config) {
				c.Display.Driver = DisplayNone
				c.Display.Address = 0
			},
		},
		{
			name:        "duplicate led pins",
			mutate:      func(c *Config) { c.LEDs.Red = c.LEDs.Green },
			wantErr:     true,
			errContains: "both use",
		},
		{
			name:        "missing led pin",
			mutate:      func(c *Config) { c.LEDs.Yellow = "" },
			wantErr:     true,
			errContains: "leds.yellow",
		},
		{
			name:        "blink too fast",
			mutate:      func(c *Config) { c.LEDs.BlinkPeriod = 10 * time.Millisecond },
			wantErr:     true,
			errContains: "blink_period",
		},
		{
			name:        "unknown led driver",
			mutate:      func(c *Config) { c.LEDs.Driver = "pwm" },
			wantErr:     true,
			errContains: "leds.driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
