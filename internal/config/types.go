package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Display and LED driver names.
const (
	DisplaySH1106 = "sh1106"
	DisplayNone   = "none"
	LEDsGPIO      = "gpio"
	LEDsNone      = "none"
)

// Config represents the complete wifimon configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// PollInterval is the sleep between the end of one cycle and the start of the next.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	Network  NetworkConfig  `yaml:"network" mapstructure:"network"`
	Health   HealthConfig   `yaml:"health" mapstructure:"health"`
	Recovery RecoveryConfig `yaml:"recovery" mapstructure:"recovery"`
	Display  DisplayConfig  `yaml:"display" mapstructure:"display"`
	LEDs     LEDConfig      `yaml:"leds" mapstructure:"leds"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`

	// LockFile keeps a second daemon from driving the same hardware.
	// Empty disables the check.
	LockFile string `yaml:"lock_file" mapstructure:"lock_file"`
}

// NetworkConfig controls how the wireless state is sampled.
// Command argv entries may use ${IFACE}, replaced with Interface.
type NetworkConfig struct {
	// Interface is the wireless interface to watch.
	Interface string `yaml:"interface" mapstructure:"interface"`

	// SSID, when set, is the network we expect to be associated with.
	// Association with any other network counts as offline.
	SSID string `yaml:"ssid" mapstructure:"ssid"`

	// SampleTimeout bounds each sampling command.
	SampleTimeout time.Duration `yaml:"sample_timeout" mapstructure:"sample_timeout"`

	WirelessCommand []string `yaml:"wireless_command" mapstructure:"wireless_command"`
	AddressCommand  []string `yaml:"address_command" mapstructure:"address_command"`
	RouteCommand    []string `yaml:"route_command" mapstructure:"route_command"`

	// GatewayFallback reads the kernel routing table directly when the
	// route command fails.
	GatewayFallback bool `yaml:"gateway_fallback" mapstructure:"gateway_fallback"`
}

// HealthConfig tunes classification.
type HealthConfig struct {
	// StrictSignal reports a weak-signal degradation instead of healthy
	// when the signal is below WeakSignalDBM.
	StrictSignal  bool `yaml:"strict_signal" mapstructure:"strict_signal"`
	WeakSignalDBM int  `yaml:"weak_signal_dbm" mapstructure:"weak_signal_dbm"`
}

// RecoveryConfig controls the reconfigure trigger.
type RecoveryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// AfterTicks is how many consecutive no-gateway cycles must pass before
	// recovery fires. Offline fires on the first cycle.
	AfterTicks int `yaml:"after_ticks" mapstructure:"after_ticks"`

	// Cooldown is the minimum time between two attempts.
	Cooldown time.Duration `yaml:"cooldown" mapstructure:"cooldown"`

	// Timeout bounds each reconfigure command.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Settle is how long to wait after an attempt before sampling again.
	Settle time.Duration `yaml:"settle" mapstructure:"settle"`

	Command     []string `yaml:"command" mapstructure:"command"`
	Alternative []string `yaml:"alternative" mapstructure:"alternative"`

	// Journal is the append-only restart log.
	Journal string `yaml:"journal" mapstructure:"journal"`
}

// DisplayConfig selects the status display.
type DisplayConfig struct {
	Driver  string `yaml:"driver" mapstructure:"driver"`
	Bus     string `yaml:"bus" mapstructure:"bus"`
	Address int    `yaml:"address" mapstructure:"address"`
	Rotate  bool   `yaml:"rotate" mapstructure:"rotate"`
}

// LEDConfig selects the status LEDs. Pins are periph.io GPIO names.
type LEDConfig struct {
	Driver      string        `yaml:"driver" mapstructure:"driver"`
	Green       string        `yaml:"green" mapstructure:"green"`
	Yellow      string        `yaml:"yellow" mapstructure:"yellow"`
	Red         string        `yaml:"red" mapstructure:"red"`
	ActiveLow   bool          `yaml:"active_low" mapstructure:"active_low"`
	BlinkPeriod time.Duration `yaml:"blink_period" mapstructure:"blink_period"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults for a Raspberry Pi
// with an SH1106 OLED on I2C bus 1 and LEDs on GPIO17/27/22.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		PollInterval: 15 * time.Second,
		Network: NetworkConfig{
			Interface:       "wlan0",
			SampleTimeout:   3 * time.Second,
			WirelessCommand: []string{"iwconfig", "${IFACE}"},
			AddressCommand:  []string{"hostname", "-I"},
			RouteCommand:    []string{"ip", "route", "show", "default"},
		},
		Health: HealthConfig{
			StrictSignal:  false,
			WeakSignalDBM: -80,
		},
		Recovery: RecoveryConfig{
			Enabled:     true,
			AfterTicks:  3,
			Cooldown:    60 * time.Second,
			Timeout:     30 * time.Second,
			Settle:      15 * time.Second,
			Command:     []string{"wpa_cli", "-i", "${IFACE}", "reconfigure"},
			Alternative: []string{"nmcli", "device", "reapply", "${IFACE}"},
			Journal:     "/var/log/wifimon/restart.log",
		},
		Display: DisplayConfig{
			Driver:  DisplaySH1106,
			Bus:     "1",
			Address: 0x3C,
		},
		LEDs: LEDConfig{
			Driver:      LEDsGPIO,
			Green:       "GPIO17",
			Yellow:      "GPIO27",
			Red:         "GPIO22",
			BlinkPeriod: 600 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
		LockFile: "/run/wifimon/run.lock",
	}
}
