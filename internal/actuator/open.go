package actuator

import (
	"sync"

	"periph.io/x/host/v3"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

var (
	hostOnce sync.Once
	hostErr  error
)

// initHost loads the periph.io host drivers once per process.
func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostErr = errors.WrapWithCode(err, errors.ErrDevice,
				"Couldn't initialize GPIO/I2C drivers",
				"Run on a supported board, or set leds.driver and display.driver to none.")
		}
	})
	return hostErr
}

// Open builds a Layer from config. Hardware that is missing or fails to
// initialize is replaced by its no-op variant for the life of the process;
// Open itself never fails.
func Open(cfg *config.Config, log logger.Logger) *Layer {
	if log == nil {
		log = logger.Noop()
	}
	return NewLayer(openLEDs(cfg.LEDs, log), openDisplay(cfg.Display, log), log)
}

func openLEDs(cfg config.LEDConfig, log logger.Logger) LEDs {
	if cfg.Driver != config.LEDsGPIO {
		return &NoopLEDs{}
	}
	if err := initHost(); err != nil {
		log.Warn("LEDs disabled: %s", errors.Summary(err))
		return &NoopLEDs{}
	}
	leds, err := OpenGPIOLEDs(cfg.Green, cfg.Yellow, cfg.Red, cfg.ActiveLow, cfg.BlinkPeriod, log)
	if err != nil {
		log.Warn("LEDs disabled: %s", errors.Summary(err))
		return &NoopLEDs{}
	}
	return leds
}

func openDisplay(cfg config.DisplayConfig, log logger.Logger) Display {
	if cfg.Driver != config.DisplaySH1106 {
		return NewLogDisplay(log)
	}
	if err := initHost(); err != nil {
		log.Warn("Display disabled: %s", errors.Summary(err))
		return NewLogDisplay(log)
	}
	d, err := OpenSH1106(cfg.Bus, uint16(cfg.Address), cfg.Rotate)
	if err != nil {
		log.Warn("Display disabled: %s", errors.Summary(err))
		return NewLogDisplay(log)
	}
	return d
}
