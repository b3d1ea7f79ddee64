package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// Limits enforced by Validate.
const (
	MinPollInterval  = time.Second
	MinBlinkPeriod   = 100 * time.Millisecond
	MinSignalDBM     = -120
	MaxSignalDBM     = 0
	minI2CAddress    = 0x03
	maxI2CAddress    = 0x77
	maxInterfaceName = 15
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but wifimon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade wifimon, or lower 'version' in the config file.")
	}

	if cfg.PollInterval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("poll_interval %s is too short", cfg.PollInterval),
			fmt.Sprintf("Use at least %s so sampling commands can finish.", MinPollInterval))
	}

	if err := validateNetwork(cfg.Network); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'network' section of your config.")
	}

	if err := validateHealth(cfg.Health); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'health' section of your config.")
	}

	if err := validateRecovery(cfg.Recovery); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'recovery' section of your config.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section of your config.")
	}

	if err := validateLEDs(cfg.LEDs); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'leds' section of your config.")
	}

	return nil
}

func validateNetwork(n NetworkConfig) error {
	if strings.TrimSpace(n.Interface) == "" {
		return fmt.Errorf("network.interface is required")
	}
	if strings.ContainsAny(n.Interface, " \t\n/") || len(n.Interface) > maxInterfaceName {
		return fmt.Errorf("network.interface '%s' is not a valid interface name", n.Interface)
	}
	if n.SampleTimeout <= 0 {
		return fmt.Errorf("network.sample_timeout must be positive")
	}

	commands := map[string][]string{
		"wireless_command": n.WirelessCommand,
		"address_command":  n.AddressCommand,
		"route_command":    n.RouteCommand,
	}
	for name, argv := range commands {
		if err := validateArgv("network."+name, argv); err != nil {
			return err
		}
	}
	return nil
}

func validateHealth(h HealthConfig) error {
	if h.WeakSignalDBM < MinSignalDBM || h.WeakSignalDBM > MaxSignalDBM {
		return fmt.Errorf("health.weak_signal_dbm %d is outside %d..%d dBm", h.WeakSignalDBM, MinSignalDBM, MaxSignalDBM)
	}
	return nil
}

func validateRecovery(r RecoveryConfig) error {
	if !r.Enabled {
		return nil
	}
	if err := validateArgv("recovery.command", r.Command); err != nil {
		return err
	}
	if len(r.Alternative) > 0 {
		if err := validateArgv("recovery.alternative", r.Alternative); err != nil {
			return err
		}
	}
	if r.AfterTicks < 1 {
		return fmt.Errorf("recovery.after_ticks must be at least 1")
	}
	if r.Cooldown < 0 {
		return fmt.Errorf("recovery.cooldown can't be negative")
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("recovery.timeout must be positive")
	}
	if r.Settle < 0 {
		return fmt.Errorf("recovery.settle can't be negative")
	}
	if strings.TrimSpace(r.Journal) == "" {
		return fmt.Errorf("recovery.journal is required when recovery is enabled")
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	switch d.Driver {
	case DisplayNone:
		return nil
	case DisplaySH1106:
	default:
		return fmt.Errorf("display.driver '%s' is not supported (use '%s' or '%s')", d.Driver, DisplaySH1106, DisplayNone)
	}
	if d.Address < minI2CAddress || d.Address > maxI2CAddress {
		return fmt.Errorf("display.address 0x%02X is not a valid 7-bit I2C address", d.Address)
	}
	return nil
}

func validateLEDs(l LEDConfig) error {
	if l.BlinkPeriod < MinBlinkPeriod {
		return fmt.Errorf("leds.blink_period must be at least %s", MinBlinkPeriod)
	}

	switch l.Driver {
	case LEDsNone:
		return nil
	case LEDsGPIO:
	default:
		return fmt.Errorf("leds.driver '%s' is not supported (use '%s' or '%s')", l.Driver, LEDsGPIO, LEDsNone)
	}

	pins := map[string]string{"green": l.Green, "yellow": l.Yellow, "red": l.Red}
	seen := make(map[string]string)
	for _, color := range []string{"green", "yellow", "red"} {
		pin := strings.TrimSpace(pins[color])
		if pin == "" {
			return fmt.Errorf("leds.%s pin is required", color)
		}
		if other, dup := seen[pin]; dup {
			return fmt.Errorf("leds.%s and leds.%s both use %s", other, color, pin)
		}
		seen[pin] = color
	}
	return nil
}

func validateArgv(name string, argv []string) error {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return fmt.Errorf("%s needs at least a program name", name)
	}
	return nil
}
