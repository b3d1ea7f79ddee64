package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
}

func TestRenderSparkline_Empty(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, -90, -30, ColorSuccess))
	assert.Empty(t, RenderSparkline([]float64{-50}, 0, -90, -30, ColorSuccess))
	assert.Empty(t, RenderSparkline([]float64{-50}, -5, -90, -30, ColorSuccess))
}

func TestRenderSparkline_FixedRange(t *testing.T) {
	plain(t)

	got := RenderSparkline([]float64{-100, -90, -60, -30, -20}, 10, -90, -30, ColorSuccess)

	assert.Equal(t, "▁▁▄██", got, "values outside the range clamp")
}

func TestRenderSparkline_DataRange(t *testing.T) {
	plain(t)

	assert.Equal(t, "▁▄█", RenderSparkline([]float64{0, 50, 100}, 10, 0, 0, ColorSuccess))
	assert.Equal(t, "▅▅▅", RenderSparkline([]float64{7, 7, 7}, 10, 0, 0, ColorSuccess))
}

func TestRenderSparkline_KeepsMostRecent(t *testing.T) {
	plain(t)

	got := RenderSparkline([]float64{0, 0, 0, 100, 100}, 2, 0, 100, ColorSuccess)

	assert.Equal(t, "██", got)
}
