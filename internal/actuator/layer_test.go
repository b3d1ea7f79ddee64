package actuator

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/logger"
)

// recordingLEDs counts Set calls and can fail or panic on demand.
type recordingLEDs struct {
	mu     sync.Mutex
	modes  []LEDMode
	err    error
	panics bool
	closed int
}

func (l *recordingLEDs) Name() string { return "recording" }

func (l *recordingLEDs) Set(mode LEDMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.panics {
		panic("gpio exploded")
	}
	l.modes = append(l.modes, mode)
	return l.err
}

func (l *recordingLEDs) Close() error {
	l.closed++
	return nil
}

// recordingDisplay keeps every committed frame's text.
type recordingDisplay struct {
	frames [][]string
	blanks int
	closed int
	err    error
}

func (d *recordingDisplay) Name() string { return "recording" }

func (d *recordingDisplay) Frame(draw func(*Canvas) error) error {
	c := NewCanvas(Width, Height)
	err := renderFrame(c, draw, func(c *Canvas) error {
		d.frames = append(d.frames, append([]string(nil), c.Texts()...))
		return nil
	})
	if err != nil {
		return err
	}
	return d.err
}

func (d *recordingDisplay) Blank() error {
	d.blanks++
	return nil
}

func (d *recordingDisplay) Close() error {
	d.closed++
	return nil
}

var healthyCmd = Command{
	LED:   LEDGreen,
	Lines: []string{"Mar-09-24 02:05 PM", "IP: 192.168.1.42", "GW: 192.168.1.1", "HomeNet -52dBm"},
	Bars:  3,
}

func TestLayer_Apply(t *testing.T) {
	leds, display := &recordingLEDs{}, &recordingDisplay{}
	layer := NewLayer(leds, display, nil)

	layer.Apply(healthyCmd)

	assert.Equal(t, []LEDMode{LEDGreen}, leds.modes)
	require.Len(t, display.frames, 1)
	assert.Equal(t, healthyCmd.Lines, display.frames[0])

	last, ok := layer.Last()
	assert.True(t, ok)
	assert.True(t, last.Equal(healthyCmd))
}

func TestLayer_ApplyIsIdempotent(t *testing.T) {
	leds, display := &recordingLEDs{}, &recordingDisplay{}
	layer := NewLayer(leds, display, nil)

	layer.Apply(healthyCmd)
	layer.Apply(healthyCmd)

	assert.Len(t, leds.modes, 1)
	assert.Len(t, display.frames, 1)

	next := healthyCmd
	next.Heartbeat = true
	layer.Apply(next)
	assert.Len(t, display.frames, 2)
}

func TestLayer_LEDPanicDoesNotEscape(t *testing.T) {
	log := logger.NewBufferLogger()
	leds, display := &recordingLEDs{panics: true}, &recordingDisplay{}
	layer := NewLayer(leds, display, log)

	assert.NotPanics(t, func() { layer.Apply(healthyCmd) })

	assert.Len(t, display.frames, 1, "display still updated")
	assert.True(t, log.Contains("error", "leds panicked: gpio exploded"))
}

func TestLayer_WriteFailureIsRetried(t *testing.T) {
	log := logger.NewBufferLogger()
	leds, display := &recordingLEDs{}, &recordingDisplay{err: errors.New("i2c: NACK")}
	layer := NewLayer(leds, display, log)

	layer.Apply(healthyCmd)
	assert.True(t, log.Contains("warn", "display: i2c: NACK"))

	display.err = nil
	layer.Apply(healthyCmd)

	assert.Len(t, display.frames, 2, "failed frame is redrawn")
	_, ok := layer.Last()
	assert.True(t, ok)
}

func TestLayer_NormalizesCommands(t *testing.T) {
	display := &recordingDisplay{}
	layer := NewLayer(&recordingLEDs{}, display, nil)

	layer.Apply(Command{Lines: []string{"1", "2", "3", "4", "5"}, Bars: -3})

	last, _ := layer.Last()
	assert.Len(t, last.Lines, MaxLines)
	assert.Equal(t, 0, last.Bars)
}

func TestLayer_Off(t *testing.T) {
	leds, display := &recordingLEDs{}, &recordingDisplay{}
	layer := NewLayer(leds, display, nil)
	layer.Apply(healthyCmd)

	layer.Off()

	assert.Equal(t, LEDOff, leds.modes[len(leds.modes)-1])
	assert.Equal(t, 1, display.blanks)
	_, ok := layer.Last()
	assert.False(t, ok)

	// After Off the same command is drawn again
	layer.Apply(healthyCmd)
	assert.Len(t, display.frames, 2)
}

func TestLayer_Close(t *testing.T) {
	leds, display := &recordingLEDs{}, &recordingDisplay{}
	layer := NewLayer(leds, display, nil)

	layer.Close()
	layer.Close()
	layer.Apply(healthyCmd)

	assert.Equal(t, 1, leds.closed)
	assert.Equal(t, 1, display.closed)
	assert.Equal(t, []LEDMode{LEDOff}, leds.modes)
	assert.Empty(t, display.frames)
}

func TestLayer_Defaults(t *testing.T) {
	layer := NewLayer(nil, nil, nil)

	assert.Equal(t, "leds=none display=log", layer.Describe())
	assert.NotPanics(t, func() {
		layer.Apply(healthyCmd)
		layer.Close()
	})
}

func TestCommand_Equal(t *testing.T) {
	a := healthyCmd
	b := healthyCmd
	b.Lines = append([]string(nil), healthyCmd.Lines...)
	assert.True(t, a.Equal(b))

	b.Lines[3] = "HomeNet -53dBm"
	assert.False(t, a.Equal(b))
}
