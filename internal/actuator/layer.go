package actuator

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// Layer applies Commands to the LEDs and the display. It never fails
// outward: device errors and panics are logged and the cycle goes on.
type Layer struct {
	leds    LEDs
	display Display
	log     logger.Logger

	mu      sync.Mutex
	last    Command
	applied bool
	closed  bool
}

// NewLayer creates a Layer over already opened devices.
func NewLayer(leds LEDs, display Display, log logger.Logger) *Layer {
	if log == nil {
		log = logger.Noop()
	}
	if leds == nil {
		leds = &NoopLEDs{}
	}
	if display == nil {
		display = NewLogDisplay(log)
	}
	return &Layer{leds: leds, display: display, log: log}
}

// Describe names the chosen variants, e.g. "leds=gpio display=sh1106".
func (l *Layer) Describe() string {
	return fmt.Sprintf("leds=%s display=%s", l.leds.Name(), l.display.Name())
}

// Apply shows cmd. Applying the command already shown does nothing.
func (l *Layer) Apply(cmd Command) {
	cmd = cmd.Normalize()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || (l.applied && l.last.Equal(cmd)) {
		return
	}

	ledErr := l.guard("leds", func() error { return l.leds.Set(cmd.LED) })
	displayErr := l.guard("display", func() error {
		return l.display.Frame(func(c *Canvas) error { return DrawStatus(c, cmd) })
	})

	// Failed writes aren't remembered, so the next Apply retries them.
	l.last = cmd
	l.applied = ledErr == nil && displayErr == nil
}

// Last returns the most recently applied command.
func (l *Layer) Last() (Command, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.applied
}

// Off turns every LED off and blanks the display.
func (l *Layer) Off() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.off()
}

func (l *Layer) off() {
	_ = l.guard("leds", func() error { return l.leds.Set(LEDOff) })
	_ = l.guard("display", l.display.Blank)
	l.last, l.applied = Command{}, false
}

// Close turns everything off and releases the devices. Later calls to
// Apply, Off and Close do nothing.
func (l *Layer) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.off()
	l.closed = true

	_ = l.guard("leds", l.leds.Close)
	_ = l.guard("display", l.display.Close)
}

// guard runs fn, converting a panic into an error, and logs any failure.
func (l *Layer) guard(device string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("%s panicked: %v\n%s", device, r, debug.Stack())
			err = errors.New(errors.ErrDevice, fmt.Sprintf("%s panicked: %v", device, r), "")
		}
	}()

	if err = fn(); err != nil {
		l.log.Warn("%s: %s", device, errors.Summary(err))
	}
	return err
}
