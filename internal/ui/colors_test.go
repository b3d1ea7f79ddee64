package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles_RenderText(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"success": SuccessStyle(),
		"error":   ErrorStyle(),
		"warning": WarningStyle(),
		"info":    InfoStyle(),
		"muted":   MutedStyle(),
	}

	for name, style := range styles {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render(name), name)
		})
	}
}

func TestDisableColors(t *testing.T) {
	defer lipgloss.SetColorProfile(lipgloss.ColorProfile())

	lipgloss.SetColorProfile(termenv.ANSI)
	colored := ErrorStyle().Render("offline")
	assert.Contains(t, colored, "\x1b[")

	DisableColors()
	assert.Equal(t, "offline", ErrorStyle().Render("offline"))
}
