package actuator

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// DefaultBlinkPeriod is the on (and off) time of LEDYellowBlink.
const DefaultBlinkPeriod = 600 * time.Millisecond

// LEDs drives the green, yellow and red status LEDs.
type LEDs interface {
	// Name identifies the variant, e.g. "gpio" or "none".
	Name() string
	// Set shows mode. Setting the current mode again does nothing.
	Set(mode LEDMode) error
	// Close turns everything off and stops any blinking.
	Close() error
}

// GPIOLEDs drives three LEDs on GPIO pins.
type GPIOLEDs struct {
	green, yellow, red gpio.PinOut
	activeLow          bool
	period             time.Duration
	log                logger.Logger

	mu     sync.Mutex
	mode   LEDMode
	set    bool
	blink  *blinker
	closed bool
}

// OpenGPIOLEDs looks up the pins by periph name ("GPIO17"). host.Init must
// have been called.
func OpenGPIOLEDs(green, yellow, red string, activeLow bool, period time.Duration, log logger.Logger) (*GPIOLEDs, error) {
	pins := make([]gpio.PinOut, 0, 3)
	for _, name := range []string{green, yellow, red} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, errors.New(errors.ErrDevice,
				fmt.Sprintf("GPIO pin %q not found", name),
				"Check the leds pins in your config use names like GPIO17.")
		}
		pins = append(pins, p)
	}
	return NewGPIOLEDs(pins[0], pins[1], pins[2], activeLow, period, log), nil
}

// NewGPIOLEDs wraps already resolved pins.
func NewGPIOLEDs(green, yellow, red gpio.PinOut, activeLow bool, period time.Duration, log logger.Logger) *GPIOLEDs {
	if period <= 0 {
		period = DefaultBlinkPeriod
	}
	if log == nil {
		log = logger.Noop()
	}
	return &GPIOLEDs{
		green:     green,
		yellow:    yellow,
		red:       red,
		activeLow: activeLow,
		period:    period,
		log:       log,
	}
}

func (l *GPIOLEDs) Name() string { return "gpio" }

// Set lights exactly one LED for static modes. LEDYellowBlink starts the
// blinker, which is stopped by the next mode change.
func (l *GPIOLEDs) Set(mode LEDMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	if l.set && l.mode == mode {
		return nil
	}

	l.blink.stop()
	l.blink = nil

	green, yellow, red := false, false, false
	switch mode {
	case LEDGreen:
		green = true
	case LEDYellow:
		yellow = true
	case LEDRed:
		red = true
	}

	err := l.write(green, yellow, red)
	if mode == LEDYellowBlink {
		l.blink = startBlinker(l.period,
			func(lit bool) error { return l.out(l.yellow, lit) },
			func(err error) { l.log.Warn("LED blink failed: %s", errors.Summary(err)) })
	}

	// Remember the mode only once it's fully written, so a failed write is retried.
	l.mode, l.set = mode, err == nil
	return err
}

func (l *GPIOLEDs) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	l.blink.stop()
	l.blink = nil
	return l.write(false, false, false)
}

func (l *GPIOLEDs) write(green, yellow, red bool) error {
	var first error
	for _, w := range []struct {
		pin gpio.PinOut
		lit bool
	}{{l.green, green}, {l.yellow, yellow}, {l.red, red}} {
		if err := l.out(w.pin, w.lit); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return errors.WrapWithCode(first, errors.ErrDevice, "LED write failed", "")
	}
	return nil
}

func (l *GPIOLEDs) out(pin gpio.PinOut, lit bool) error {
	return pin.Out(gpio.Level(lit != l.activeLow))
}

// NoopLEDs is used when no LEDs are attached. It remembers the mode for status output.
type NoopLEDs struct {
	mu   sync.Mutex
	mode LEDMode
}

func (l *NoopLEDs) Name() string { return "none" }

func (l *NoopLEDs) Set(mode LEDMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = mode
	return nil
}

// Mode returns the last mode set.
func (l *NoopLEDs) Mode() LEDMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

func (l *NoopLEDs) Close() error {
	return l.Set(LEDOff)
}
