package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/network"
)

func plainColors(t *testing.T) {
	t.Helper()
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
}

func modelWith(t *testing.T, samples ...network.Sample) Model {
	t.Helper()
	m := NewModel(newTestCollector(samples...), "wlan0", 5*time.Second, time.Second)
	m, _ = update(t, m, snapshotMsg{snapshot: m.collector.Collect(t.Context()), time: time.Now()})
	return m
}

func TestView_Healthy(t *testing.T) {
	plainColors(t)

	view := modelWith(t, healthySample()).View()

	assert.Contains(t, view, "wifimon watch")
	assert.Contains(t, view, "healthy")
	assert.Contains(t, view, "HomeNet")
	assert.Contains(t, view, "-52 dBm")
	assert.Contains(t, view, "192.168.1.42")
	assert.Contains(t, view, "192.168.1.1")
	assert.NotContains(t, view, "No gateway")
}

func TestView_NoGatewayShowsTicksAndFault(t *testing.T) {
	plainColors(t)
	s := noGatewaySample()
	s.Faults = map[network.Fact]error{
		network.FactGateway: errors.New(errors.ErrSample, "route query timed out", "check the interface"),
	}

	view := modelWith(t, s).View()

	assert.Contains(t, view, "degraded-no-gateway")
	assert.Contains(t, view, "No gateway")
	assert.Contains(t, view, "1 cycles")
	assert.Contains(t, view, "route query timed out")
	assert.NotContains(t, view, "check the interface")
}

func TestView_Offline(t *testing.T) {
	plainColors(t)

	view := modelWith(t, network.Sample{Timestamp: t0}).View()

	assert.Contains(t, view, "offline")
	assert.Contains(t, view, "Offline")
	assert.Contains(t, view, "unknown")
}

func TestView_Preview(t *testing.T) {
	plainColors(t)
	m := modelWith(t, healthySample())
	m.showPreview = true

	assert.Contains(t, m.View(), "█")
}

func TestRenderPreview_Dimensions(t *testing.T) {
	out := RenderPreview(health.CommandFor(health.Healthy, healthySample(), t0, true))

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, actuator.Height/2)
	for _, line := range lines {
		assert.Equal(t, actuator.Width, len([]rune(line)))
	}
}

func TestRenderPreview_Blank(t *testing.T) {
	out := RenderPreview(actuator.Command{})

	assert.NotContains(t, out, "█")
	assert.NotContains(t, out, "▀")
	assert.NotContains(t, out, "▄")
}

func TestRenderLEDs(t *testing.T) {
	plainColors(t)

	assert.Equal(t, "● ○ ○", RenderLEDs(actuator.LEDGreen))
	assert.Equal(t, "○ ● ○", RenderLEDs(actuator.LEDYellow))
	assert.Equal(t, "○ ●~ ○", RenderLEDs(actuator.LEDYellowBlink))
	assert.Equal(t, "○ ○ ●", RenderLEDs(actuator.LEDRed))
	assert.Equal(t, "○ ○ ○", RenderLEDs(actuator.LEDOff))
}

func TestStateColor(t *testing.T) {
	for _, s := range health.States {
		assert.NotEmpty(t, string(StateColor(s)), s.String())
	}
	assert.Equal(t, StateColor(health.Offline), StateColor(health.State(99)))
}

func TestSparkWidth(t *testing.T) {
	assert.Equal(t, 30, sparkWidth(0))
	assert.Equal(t, 10, sparkWidth(35))
	assert.Equal(t, 50, sparkWidth(80))
	assert.Equal(t, DefaultHistorySize, sparkWidth(300))
}
