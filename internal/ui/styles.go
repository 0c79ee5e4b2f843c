package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal #2DD4BF): paths, keys, highlights
// - Muted (gray): secondary info
// - No colored success/error - unicode symbols only

var (
	// Accent style for file paths and item keys
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)
