package actuator

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// Display is a 128x64 monochrome render surface.
type Display interface {
	// Name identifies the variant, e.g. "sh1106" or "log".
	Name() string
	// Frame clears the surface, runs draw, and commits the result. The
	// frame is committed even when draw fails or panics.
	Frame(draw func(*Canvas) error) error
	// Blank clears the surface.
	Blank() error
	// Close releases the device.
	Close() error
}

// renderFrame is the shared Frame implementation: clear, draw, always flush.
func renderFrame(c *Canvas, draw func(*Canvas) error, flush func(*Canvas) error) error {
	c.Clear()

	drawErr := safeDraw(c, draw)
	flushErr := flush(c)

	if drawErr != nil {
		return drawErr
	}
	return flushErr
}

func safeDraw(c *Canvas, draw func(*Canvas) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrDevice,
				fmt.Sprintf("Drawing the frame panicked: %v", r), "")
		}
	}()
	return draw(c)
}

// LogDisplay is used when no panel is attached. Each frame's text is
// logged at debug level when it changes.
type LogDisplay struct {
	canvas *Canvas
	log    logger.Logger
	last   string
}

// NewLogDisplay creates a display that renders off-screen and logs.
func NewLogDisplay(log logger.Logger) *LogDisplay {
	if log == nil {
		log = logger.Noop()
	}
	return &LogDisplay{
		canvas: NewCanvas(Width, Height),
		log:    log,
	}
}

func (d *LogDisplay) Name() string { return "log" }

// Frame renders into an off-screen canvas and logs the text drawn.
func (d *LogDisplay) Frame(draw func(*Canvas) error) error {
	return renderFrame(d.canvas, draw, func(c *Canvas) error {
		text := strings.Join(c.Texts(), " | ")
		if text != d.last {
			d.log.Debug("display: %s", text)
			d.last = text
		}
		return nil
	})
}

// Canvas returns the last rendered frame.
func (d *LogDisplay) Canvas() *Canvas {
	return d.canvas
}

func (d *LogDisplay) Blank() error {
	d.canvas.Clear()
	d.last = ""
	return nil
}

func (d *LogDisplay) Close() error {
	return d.Blank()
}
