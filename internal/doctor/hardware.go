package doctor

import (
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
)

// DeviceCheck tries to reach one output device. A device that can't be reached is
// a warning: the daemon carries on with the no-op variant.
type DeviceCheck struct {
	Device  string // "display" or "leds"
	Driver  string
	Enabled bool
	Reach   func() error
}

func (c *DeviceCheck) Name() string     { return "device_" + c.Device }
func (c *DeviceCheck) Category() string { return CategoryHardware }

func (c *DeviceCheck) Run() CheckResult {
	if !c.Enabled {
		return pass(c.Name(), fmt.Sprintf("%s disabled (driver %s)", c.Device, c.Driver))
	}

	if err := c.Reach(); err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s (%s) unavailable: %s", c.Device, c.Driver, errors.Summary(err)),
		}
		var wmErr *errors.Error
		if errors.As(err, &wmErr) {
			result.Suggestion = wmErr.Suggestion
		}
		return result
	}

	return pass(c.Name(), fmt.Sprintf("%s (%s) reachable", c.Device, c.Driver))
}

func (c *DeviceCheck) Fix() error {
	return nil
}

// NewHardwareChecks checks the configured display and LEDs.
func NewHardwareChecks(cfg *config.Config) []Check {
	return []Check{
		&DeviceCheck{
			Device:  "display",
			Driver:  cfg.Display.Driver,
			Enabled: cfg.Display.Driver == config.DisplaySH1106,
			Reach:   func() error { return actuator.CheckDisplay(cfg.Display) },
		},
		&DeviceCheck{
			Device:  "leds",
			Driver:  cfg.LEDs.Driver,
			Enabled: cfg.LEDs.Driver == config.LEDsGPIO,
			Reach:   func() error { return actuator.CheckLEDs(cfg.LEDs) },
		},
	}
}
