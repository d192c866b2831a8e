// Package tui provides the interactive terminal UI for kanjiview.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/kanjiview/internal/subject"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - section labels
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - characters
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - playing
	ColorText      = lipgloss.Color("#f1faee")
	ColorBg        = lipgloss.Color("#1a1a2e")
	ColorBorder    = lipgloss.Color("#3d5a80")

	ColorRadical    = lipgloss.Color("#00aaff")
	ColorKanji      = lipgloss.Color("#ff00aa")
	ColorVocabulary = lipgloss.Color("#aa00ff")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	CharacterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(1, 4).
			Margin(1, 0)

	BigCharStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Margin(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PlayingStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)
)

// KindColor returns the background colour used for a subject kind.
func KindColor(k subject.Kind) lipgloss.Color {
	switch k {
	case subject.KindRadical:
		return ColorRadical
	case subject.KindKanji:
		return ColorKanji
	default:
		return ColorVocabulary
	}
}
