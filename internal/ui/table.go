package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FactRow is one label/value line of a fact table.
type FactRow struct {
	Label string
	Value string
	// Style, when set, colors the value.
	Style *lipgloss.Style
}

// RenderFacts renders rows as an aligned two-column list with muted labels.
func RenderFacts(rows []FactRow) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.Label))
	}

	labelStyle := MutedStyle()
	var b strings.Builder
	for _, row := range rows {
		value := row.Value
		if row.Style != nil {
			value = row.Style.Render(value)
		}
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(padRight(row.Label, width)))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
