// Package actuator drives the status LEDs and the 128x64 display.
package actuator

import (
	"slices"
)

// MaxLines is how many text lines fit on the display.
const MaxLines = 4

// MaxBars is the strongest signal bar count.
const MaxBars = 4

// LEDMode selects what the three status LEDs show.
type LEDMode int

const (
	LEDOff LEDMode = iota
	LEDGreen
	LEDYellow
	LEDRed
	LEDYellowBlink
)

func (m LEDMode) String() string {
	switch m {
	case LEDOff:
		return "off"
	case LEDGreen:
		return "green"
	case LEDYellow:
		return "yellow"
	case LEDRed:
		return "red"
	case LEDYellowBlink:
		return "yellow-blink"
	default:
		return "unknown"
	}
}

// Command is everything the actuators show for one cycle.
type Command struct {
	LED   LEDMode
	Lines []string
	// Bars is the signal strength indicator, 0 to MaxBars.
	Bars int
	// Alert draws the warning triangle.
	Alert bool
	// Heartbeat draws the liveness dot. It toggles every cycle.
	Heartbeat bool
}

// Equal reports whether two commands render identically.
func (c Command) Equal(o Command) bool {
	return c.LED == o.LED &&
		c.Bars == o.Bars &&
		c.Alert == o.Alert &&
		c.Heartbeat == o.Heartbeat &&
		slices.Equal(c.Lines, o.Lines)
}

// Normalize clamps Bars and drops lines past MaxLines.
func (c Command) Normalize() Command {
	c.Bars = max(0, min(c.Bars, MaxBars))
	if len(c.Lines) > MaxLines {
		c.Lines = c.Lines[:MaxLines]
	}
	return c
}
