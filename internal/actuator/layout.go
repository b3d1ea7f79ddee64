package actuator

import "image"

// Top edge of each text line.
var lineTops = [MaxLines]int{2, 17, 32, 47}

// Signal bars, top right: four bars growing left to right.
const (
	barWidth  = 3
	barGap    = 1
	barStep   = 3
	barsLeft  = Width - MaxBars*(barWidth+barGap)
	barsFloor = 13
)

// The bars and the alert share the right-hand column beside the first
// two lines. Text on those lines stops short of it.
const (
	columnLines = 2
	columnLeft  = barsLeft - 2
)

// DrawStatus renders cmd with the fixed status layout.
func DrawStatus(c *Canvas, cmd Command) error {
	cmd = cmd.Normalize()

	for i, line := range cmd.Lines {
		if i < columnLines {
			c.TextWithin(0, lineTops[i], columnLeft, line)
			continue
		}
		c.Text(0, lineTops[i], line)
	}

	drawBars(c, cmd.Bars)

	if cmd.Alert {
		drawAlert(c)
	}

	if cmd.Heartbeat {
		c.Rect(Width-4, Height-4, 3, 3, true)
	}

	return nil
}

func drawBars(c *Canvas, bars int) {
	for i := 0; i < MaxBars; i++ {
		x := barsLeft + i*(barWidth+barGap)
		h := (i + 1) * barStep
		if i < bars {
			c.Rect(x, barsFloor-h+1, barWidth, h, true)
		} else {
			// Unlit bars keep a baseline tick so the meter stays readable at zero.
			c.Line(x, barsFloor, x+barWidth-1, barsFloor)
		}
	}
}

// drawAlert draws a warning triangle with an exclamation mark below the bars.
func drawAlert(c *Canvas) {
	const top, bottom = 17, 29
	mid := Width - 8 // spans barsLeft+1 to Width-1
	c.Polygon(
		image.Pt(mid, top),
		image.Pt(mid-7, bottom),
		image.Pt(mid+7, bottom),
	)
	c.Line(mid, top+4, mid, bottom-4)
	c.Point(mid, bottom-2)
}
