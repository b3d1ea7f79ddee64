package actuator

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Panel dimensions.
const (
	Width  = 128
	Height = 64
)

// textAscent is the distance from the top of a text line to its baseline.
const textAscent = 10

var on = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Canvas is a 1-bit framebuffer in SH1106 page order: each byte holds a
// vertical run of 8 pixels, least significant bit on top.
//
// Canvas implements the tinygo drivers.Displayer interface so tinyfont can
// rasterize glyphs onto it.
type Canvas struct {
	width, height int
	pix           []byte
	font          *tinyfont.Font
	texts         []string
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]byte, width*((height+7)/8)),
		font:   &proggy.TinySZ8pt7b,
	}
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (int16, int16) {
	return int16(c.width), int16(c.height)
}

// SetPixel implements drivers.Displayer. Any non-black color lights the pixel.
// Out-of-bounds coordinates are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), col.R|col.G|col.B != 0)
}

// Display implements drivers.Displayer. Committing is the owning Display's job.
func (c *Canvas) Display() error {
	return nil
}

// Clear blanks every pixel and forgets drawn text.
func (c *Canvas) Clear() {
	clear(c.pix)
	c.texts = c.texts[:0]
}

// Pixel reports whether (x, y) is lit.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.pix[x+(y/8)*c.width]&(1<<(y%8)) != 0
}

// Lit counts lit pixels.
func (c *Canvas) Lit() int {
	n := 0
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

// Bytes returns the framebuffer in page order. The slice is shared.
func (c *Canvas) Bytes() []byte {
	return c.pix
}

// Page returns the 8-pixel-high stripe p.
func (c *Canvas) Page(p int) []byte {
	return c.pix[p*c.width : (p+1)*c.width]
}

// Texts returns the strings drawn since the last Clear, in order.
func (c *Canvas) Texts() []string {
	return c.texts
}

// Point lights a single pixel.
func (c *Canvas) Point(x, y int) {
	c.set(x, y, true)
}

// Text draws s with its top edge at y.
func (c *Canvas) Text(x, y int, s string) {
	c.texts = append(c.texts, s)
	if s == "" {
		return
	}
	tinyfont.WriteLine(c, c.font, int16(x), int16(y+textAscent), s, on)
}

// TextWithin draws s like Text, dropping trailing characters until the
// drawn text ends at or before maxX. Texts still records all of s.
func (c *Canvas) TextWithin(x, y, maxX int, s string) {
	c.texts = append(c.texts, s)
	fitted := c.fit(s, maxX-x)
	if fitted == "" {
		return
	}
	tinyfont.WriteLine(c, c.font, int16(x), int16(y+textAscent), fitted, on)
}

// fit returns the longest prefix of s whose glyph advances fit in width.
func (c *Canvas) fit(s string, width int) string {
	r := []rune(s)
	for len(r) > 0 {
		if _, w := tinyfont.LineWidth(c.font, string(r)); int(w) <= width {
			break
		}
		r = r[:len(r)-1]
	}
	return string(r)
}

// Line draws a one pixel wide line between two points (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.set(x0, y0, true)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Rect draws a w by h rectangle with its top-left corner at (x, y).
func (c *Canvas) Rect(x, y, w, h int, fill bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if fill {
		for row := y; row < y+h; row++ {
			for col := x; col < x+w; col++ {
				c.set(col, row, true)
			}
		}
		return
	}
	c.Line(x, y, x+w-1, y)
	c.Line(x, y+h-1, x+w-1, y+h-1)
	c.Line(x, y, x, y+h-1)
	c.Line(x+w-1, y, x+w-1, y+h-1)
}

// Polygon draws the closed outline through pts.
func (c *Canvas) Polygon(pts ...image.Point) {
	if len(pts) == 1 {
		c.Point(pts[0].X, pts[0].Y)
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.Line(a.X, a.Y, b.X, b.Y)
	}
}

// String renders the canvas as text, '#' for lit pixels. Trailing blank
// rows are dropped.
func (c *Canvas) String() string {
	var b strings.Builder
	last := -1
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.Pixel(x, y) {
				last = y
				break
			}
		}
	}
	for y := 0; y <= last; y++ {
		row := make([]byte, c.width)
		for x := range row {
			row[x] = '.'
			if c.Pixel(x, y) {
				row[x] = '#'
			}
		}
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) set(x, y int, lit bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := x + (y/8)*c.width
	if lit {
		c.pix[i] |= 1 << (y % 8)
	} else {
		c.pix[i] &^= 1 << (y % 8)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
