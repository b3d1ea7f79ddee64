package actuator

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	wmerrors "github.com/rileyhilliard/wifimon/internal/errors"
)

// fakeBus records I2C writes.
type fakeBus struct {
	mu     sync.Mutex
	writes [][]byte
	addrs  []uint16
	failAt int // fail the nth write (1-based); 0 never fails
	closed bool
}

func (b *fakeBus) String() string { return "fake-i2c" }

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, append([]byte(nil), w...))
	b.addrs = append(b.addrs, addr)
	if b.failAt > 0 && len(b.writes) == b.failAt {
		return errors.New("i2c: NACK")
	}
	return nil
}

func (b *fakeBus) SetSpeed(f physic.Frequency) error { return nil }

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

// dataWrites returns the page payloads written after the init sequence.
func (b *fakeBus) dataWrites() [][]byte {
	var out [][]byte
	for _, w := range b.writes {
		if len(w) > 0 && w[0] == sh1106Data {
			out = append(out, w[1:])
		}
	}
	return out
}

func TestNewSH1106_SendsInitSequence(t *testing.T) {
	bus := &fakeBus{}

	d, err := NewSH1106(bus, bus, 0x3C, false)

	require.NoError(t, err)
	require.Len(t, bus.writes, 1)
	seq := bus.writes[0]
	assert.Equal(t, byte(sh1106Command), seq[0])
	assert.Equal(t, byte(0xAE), seq[1], "starts with display off")
	assert.Equal(t, byte(0xAF), seq[len(seq)-1], "ends with display on")
	assert.Contains(t, seq, byte(0xA1))
	assert.Contains(t, seq, byte(0xC8))
	assert.Equal(t, uint16(0x3C), bus.addrs[0])
	assert.Equal(t, "sh1106", d.Name())
}

func TestNewSH1106_Rotate(t *testing.T) {
	bus := &fakeBus{}

	_, err := NewSH1106(bus, nil, 0x3C, true)

	require.NoError(t, err)
	assert.Contains(t, bus.writes[0], byte(0xA0))
	assert.Contains(t, bus.writes[0], byte(0xC0))
}

func TestNewSH1106_NoAnswer(t *testing.T) {
	bus := &fakeBus{failAt: 1}

	_, err := NewSH1106(bus, bus, 0x3D, false)

	require.Error(t, err)
	assert.True(t, wmerrors.IsCode(err, wmerrors.ErrDevice))
	assert.Contains(t, err.Error(), "0x3D")
}

func TestSH1106_FrameWritesEveryPage(t *testing.T) {
	bus := &fakeBus{}
	d, err := NewSH1106(bus, bus, 0x3C, false)
	require.NoError(t, err)

	err = d.Frame(func(c *Canvas) error {
		c.Point(0, 0)
		c.Point(127, 63)
		return nil
	})
	require.NoError(t, err)

	pages := bus.dataWrites()
	require.Len(t, pages, 8)
	for i, p := range pages {
		assert.Len(t, p, Width, "page %d", i)
	}
	assert.Equal(t, byte(0x01), pages[0][0])
	assert.Equal(t, byte(0x80), pages[7][127])

	// Page address commands carry the column offset
	for p := 0; p < 8; p++ {
		assert.Contains(t, bus.writes, []byte{sh1106Command, 0xB0 | byte(p), 0x02, 0x10})
	}
}

func TestSH1106_FrameCommitsEvenWhenDrawFails(t *testing.T) {
	bus := &fakeBus{}
	d, err := NewSH1106(bus, bus, 0x3C, false)
	require.NoError(t, err)

	err = d.Frame(func(c *Canvas) error {
		c.Point(3, 0)
		return fmt.Errorf("ran out of room")
	})

	assert.EqualError(t, err, "ran out of room")
	pages := bus.dataWrites()
	require.Len(t, pages, 8)
	assert.Equal(t, byte(0x01), pages[0][3])
}

func TestSH1106_WriteFailure(t *testing.T) {
	bus := &fakeBus{}
	d, err := NewSH1106(bus, bus, 0x3C, false)
	require.NoError(t, err)
	bus.failAt = len(bus.writes) + 2 // first page payload

	err = d.Frame(func(*Canvas) error { return nil })

	require.Error(t, err)
	assert.True(t, wmerrors.IsCode(err, wmerrors.ErrDevice))
}

func TestSH1106_CloseBlanksAndReleases(t *testing.T) {
	bus := &fakeBus{}
	d, err := NewSH1106(bus, bus, 0x3C, false)
	require.NoError(t, err)
	require.NoError(t, d.Frame(func(c *Canvas) error { c.Rect(0, 0, Width, Height, true); return nil }))
	bus.writes = nil

	require.NoError(t, d.Close())

	for _, p := range bus.dataWrites() {
		assert.Equal(t, make([]byte, Width), p)
	}
	assert.Equal(t, []byte{sh1106Command, 0xAE}, bus.writes[len(bus.writes)-1])
	assert.True(t, bus.closed)
}
