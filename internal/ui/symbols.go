package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Check passed
	SymbolFail     = "✗" // Check failed
	SymbolPending  = "○" // Not yet known
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Lit LED, reachable
	SymbolWarning  = "▲" // Degraded
)
