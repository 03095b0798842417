package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oguzkaplan/studyterm/internal/schedule"
)

// Color palette — calm study tones, dark background
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// CourseColor maps a schedule category to its accent color.
func CourseColor(c schedule.Category) color.Color {
	switch c {
	case schedule.Comp100:
		return lipgloss.Color("#059669") // Emerald
	case schedule.Comp106:
		return lipgloss.Color("#0D9488") // Teal
	case schedule.Phys101:
		return lipgloss.Color("#7C3AED") // Violet
	case schedule.Math106:
		return lipgloss.Color("#2563EB") // Blue
	case schedule.Exam:
		return Accent
	case schedule.Busy:
		return TextDim
	case schedule.Free:
		return Success
	default:
		return Primary
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ModalBorder = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3)
)
