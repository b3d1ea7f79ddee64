package actuator

import (
	"fmt"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
)

// CheckLEDs checks that the configured pins exist without driving them.
func CheckLEDs(cfg config.LEDConfig) error {
	if err := initHost(); err != nil {
		return err
	}
	for _, name := range []string{cfg.Green, cfg.Yellow, cfg.Red} {
		if gpioreg.ByName(name) == nil {
			return errors.New(errors.ErrDevice,
				fmt.Sprintf("GPIO pin %q not found", name),
				"Check the leds pins in your config use names like GPIO17.")
		}
	}
	return nil
}

// CheckDisplay opens the I2C bus and reads the panel's status byte. The
// panel contents are left alone, so it is safe while the daemon runs.
func CheckDisplay(cfg config.DisplayConfig) error {
	if err := initHost(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDevice,
			fmt.Sprintf("Couldn't open I2C bus %q", cfg.Bus),
			"Enable I2C (raspi-config, Interface Options) and check display.bus in your config.")
	}
	defer bus.Close()

	dev := &i2c.Dev{Bus: bus, Addr: uint16(cfg.Address)}
	status := make([]byte, 1)
	if err := dev.Tx(nil, status); err != nil {
		return errors.WrapWithCode(err, errors.ErrDevice,
			fmt.Sprintf("No display answered at 0x%02x on bus %q", cfg.Address, cfg.Bus),
			"Check the wiring and display.address (usually 0x3c).")
	}
	return nil
}
