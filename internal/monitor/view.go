package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/network"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// render renders the complete watch view.
func (m Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.snapshot == nil {
		b.WriteString("  " + m.activity.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}

	b.WriteString(PanelStyle.Render(m.renderFacts()))
	b.WriteString("\n")
	b.WriteString("  " + m.activity.View())
	b.WriteString("\n")

	if m.showPreview {
		b.WriteString(PanelStyle.Render(RenderPreview(m.snapshot.Command)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title, the state and when it was sampled.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(ui.ColorInfo).Bold(true).Render("wifimon watch")
	stats := LabelStyle.Render(fmt.Sprintf(" | %s | every %s", m.iface, m.interval))

	if m.snapshot != nil {
		stats += LabelStyle.Render(" | ") + StateStyle(m.snapshot.State).Render(m.snapshot.State.String())
		stats += LabelStyle.Render(" | " + sinceText(time.Since(m.lastUpdate)))
	}
	return HeaderStyle.Render(title + stats)
}

// renderFacts renders the sampled values, the LEDs and the signal history.
func (m Model) renderFacts() string {
	snap := m.snapshot
	s := snap.Sample

	signal := "unknown"
	if s.SignalDBM != nil {
		signal = fmt.Sprintf("%d dBm", *s.SignalDBM)
	}

	rows := []ui.FactRow{
		{Label: "SSID", Value: s.SSIDOr(network.OfflineSSID)},
		{Label: "Signal", Value: signal + "  " + ui.RenderSparkline(
			m.history.Last(sparkWidth(m.width)), sparkWidth(m.width),
			SparkFloorDBM, SparkCeilDBM, StateColor(snap.State))},
		{Label: "IP", Value: s.IPOr("NA")},
		{Label: "Gateway", Value: s.GatewayOr("none")},
		{Label: "LEDs", Value: RenderLEDs(snap.Command.LED)},
	}
	if snap.NoGatewayTicks > 0 {
		rows = append(rows, ui.FactRow{Label: "No gateway", Value: fmt.Sprintf("%d cycles", snap.NoGatewayTicks)})
	}
	for _, fact := range network.Facts {
		if err, ok := s.Faults[fact]; ok {
			style := ErrorTextStyle
			rows = append(rows, ui.FactRow{Label: string(fact), Value: errors.Summary(err), Style: &style})
		}
	}

	return strings.TrimRight(ui.RenderFacts(rows), "\n")
}

// renderFooter renders the key hints.
func (m Model) renderFooter() string {
	return FooterStyle.Render("q quit  r sample now  p preview  ? help")
}

// renderHelp renders the keyboard shortcuts.
func (m Model) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Bold(true).Width(14)

	lines := []string{lipgloss.NewStyle().Foreground(ui.ColorInfo).Bold(true).Render("Keyboard Shortcuts"), ""}
	for _, binding := range helpBindings {
		lines = append(lines, keyStyle.Render(binding.Key)+LabelStyle.Render(binding.Desc))
	}
	lines = append(lines, "", LabelStyle.Render("Press ? to close"))

	return PanelStyle.Padding(1, 2).Render(strings.Join(lines, "\n"))
}

// sparkWidth sizes the sparkline to the terminal.
func sparkWidth(termWidth int) int {
	if termWidth <= 0 {
		return 30
	}
	return max(10, min(DefaultHistorySize, termWidth-30))
}

func sinceText(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs <= 0:
		return "just now"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}
