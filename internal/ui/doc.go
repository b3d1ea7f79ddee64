// Package ui provides the terminal building blocks for wifimon's CLI output.
//
// # Components Overview
//
//	Activity         - Bubble Tea indicator for the watch view's background sampling
//	Sparkline        - Mini line graph for signal history
//	Fact table       - Aligned label/value rows for status output
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy link, green LED
//	ColorError     (red)    - Offline, red LED, failures
//	ColorWarning   (yellow) - Degraded link, yellow LED
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color or a
// non-terminal stdout).
package ui
