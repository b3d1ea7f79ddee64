package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// Signal range drawn by the sparkline, in dBm.
const (
	SparkFloorDBM = -90.0
	SparkCeilDBM  = -30.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)
)

// StateColor is the color a health state is drawn in.
func StateColor(s health.State) lipgloss.Color {
	switch s {
	case health.Healthy:
		return ui.ColorSuccess
	case health.DegradedNoGateway, health.DegradedWeakSignal:
		return ui.ColorWarning
	case health.Reconfiguring:
		return ui.ColorSecondary
	default:
		return ui.ColorError
	}
}

// StateStyle renders a state name in its color.
func StateStyle(s health.State) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StateColor(s)).Bold(true)
}

// RenderLEDs draws the three LEDs with the one that mode lights filled.
func RenderLEDs(mode actuator.LEDMode) string {
	led := func(c lipgloss.Color, lit bool) string {
		if lit {
			return lipgloss.NewStyle().Foreground(c).Render(ui.SymbolComplete)
		}
		return LabelStyle.Render(ui.SymbolPending)
	}

	yellow := led(ui.ColorWarning, mode == actuator.LEDYellow || mode == actuator.LEDYellowBlink)
	if mode == actuator.LEDYellowBlink {
		yellow += LabelStyle.Render("~")
	}

	return led(ui.ColorSuccess, mode == actuator.LEDGreen) + " " +
		yellow + " " +
		led(ui.ColorError, mode == actuator.LEDRed)
}
