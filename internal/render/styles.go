package render

import "github.com/charmbracelet/lipgloss"

// Watch screen color palette
const (
	ColorBorder = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	// Semantic colors - neon style
	ColorUp   = lipgloss.Color("#39FF14") // Neon green
	ColorDown = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	// Accent
	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
)

// Base styles for the watch screen
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	DeviceNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StatusUpStyle = lipgloss.NewStyle().
			Foreground(ColorUp)

	StatusDownStyle = lipgloss.NewStyle().
			Foreground(ColorDown).
			Bold(true)

	// StatusDownDimStyle is the off phase of the DOWN blink.
	StatusDownDimStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Status indicator characters
const (
	StatusUpGlyph   = "◉" // Filled target - reachable
	StatusDownGlyph = "◌" // Dashed circle - unreachable
)
