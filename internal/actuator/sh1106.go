package actuator

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// SH1106 control bytes.
const (
	sh1106Command = 0x00
	sh1106Data    = 0x40
)

// The SH1106 has 132 columns of RAM; a 128 pixel panel sits in the middle.
const sh1106ColumnOffset = 2

// SH1106 drives a 128x64 OLED over I2C.
type SH1106 struct {
	dev    *i2c.Dev
	closer io.Closer
	canvas *Canvas
}

// OpenSH1106 opens the I2C bus by name or number ("1", "/dev/i2c-1") and
// initializes the panel. host.Init must have been called.
func OpenSH1106(busName string, addr uint16, rotate bool) (*SH1106, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDevice,
			fmt.Sprintf("Couldn't open I2C bus %q", busName),
			"Enable I2C (raspi-config, Interface Options) and check display.bus in your config.")
	}

	d, err := NewSH1106(bus, bus, addr, rotate)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return d, nil
}

// NewSH1106 initializes a panel on an already open bus. closer, if not nil,
// is closed by Close.
func NewSH1106(bus i2c.Bus, closer io.Closer, addr uint16, rotate bool) (*SH1106, error) {
	d := &SH1106{
		dev:    &i2c.Dev{Bus: bus, Addr: addr},
		closer: closer,
		canvas: NewCanvas(Width, Height),
	}

	if err := d.command(initSequence(rotate)...); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDevice,
			fmt.Sprintf("No SH1106 display answered at address 0x%02X", addr),
			"Check the wiring, or run 'i2cdetect -y 1' to find the address.")
	}
	return d, nil
}

func initSequence(rotate bool) []byte {
	segRemap, comScan := byte(0xA1), byte(0xC8)
	if rotate {
		segRemap, comScan = 0xA0, 0xC0
	}
	return []byte{
		0xAE,       // display off
		0xD5, 0x80, // clock divide
		0xA8, 0x3F, // multiplex 64
		0xD3, 0x00, // display offset
		0x40,       // start line 0
		0xAD, 0x8B, // DC-DC on
		segRemap,
		comScan,
		0xDA, 0x12, // COM pins
		0x81, 0xCF, // contrast
		0xD9, 0x22, // pre-charge
		0xDB, 0x40, // VCOM deselect
		0xA4, // follow RAM
		0xA6, // not inverted
		0xAF, // display on
	}
}

func (d *SH1106) Name() string { return "sh1106" }

// Frame renders and pushes all eight pages to the panel.
func (d *SH1106) Frame(draw func(*Canvas) error) error {
	return renderFrame(d.canvas, draw, d.flush)
}

func (d *SH1106) Blank() error {
	d.canvas.Clear()
	return d.flush(d.canvas)
}

// Close blanks the panel, turns it off, and releases the bus.
func (d *SH1106) Close() error {
	blankErr := d.Blank()
	offErr := d.command(0xAE)

	var closeErr error
	if d.closer != nil {
		closeErr = d.closer.Close()
		d.closer = nil
	}

	for _, err := range []error{blankErr, offErr, closeErr} {
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrDevice, "Couldn't shut down the display", "")
		}
	}
	return nil
}

func (d *SH1106) flush(c *Canvas) error {
	pages := (c.height + 7) / 8
	for p := 0; p < pages; p++ {
		if err := d.command(
			0xB0|byte(p),
			sh1106ColumnOffset&0x0F,
			0x10|(sh1106ColumnOffset>>4),
		); err != nil {
			return d.writeErr(err)
		}

		buf := make([]byte, 0, c.width+1)
		buf = append(buf, sh1106Data)
		buf = append(buf, c.Page(p)...)
		if _, err := d.dev.Write(buf); err != nil {
			return d.writeErr(err)
		}
	}
	return nil
}

func (d *SH1106) command(cmds ...byte) error {
	buf := append([]byte{sh1106Command}, cmds...)
	_, err := d.dev.Write(buf)
	return err
}

func (d *SH1106) writeErr(err error) error {
	return errors.WrapWithCode(err, errors.ErrDevice, "Display write failed", "")
}
