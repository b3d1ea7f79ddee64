package monitor

import (
	"strings"

	"github.com/rileyhilliard/wifimon/internal/actuator"
)

// RenderPreview draws what the 128x64 display shows for cmd, two pixel rows
// per terminal line using half blocks.
func RenderPreview(cmd actuator.Command) string {
	canvas := actuator.NewCanvas(actuator.Width, actuator.Height)
	if err := actuator.DrawStatus(canvas, cmd); err != nil {
		return ErrorTextStyle.Render(err.Error())
	}

	var b strings.Builder
	for y := 0; y < actuator.Height; y += 2 {
		for x := 0; x < actuator.Width; x++ {
			top, bottom := canvas.Pixel(x, y), canvas.Pixel(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if y+2 < actuator.Height {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
