package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // cyan, headings
	colorAccent  = lipgloss.Color("#FFD700") // gold, warnings
	colorSuccess = lipgloss.Color("#00E676") // green, clean files
	colorDanger  = lipgloss.Color("#FF5252") // red, problems
	colorMuted   = lipgloss.Color("#8C8C8C") // gray, secondary text
)

// Status icons.
const (
	iconClean  = "✓"
	iconFailed = "✗"
	iconWarn   = "⚠"
	iconBullet = "•"
)

var (
	styleHeading = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleDanger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLine    = lipgloss.NewStyle().Foreground(colorAccent)
)
