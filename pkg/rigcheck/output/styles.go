package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// ANSI 256 palette.
const (
	ColorPrimary = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorGood    = lipgloss.Color("114")
	ColorWarning = lipgloss.Color("214")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("245")
	ColorText    = lipgloss.Color("255")
)

var (
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	FooterBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1)

	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText).MarginTop(1)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorText)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	BarStyle     = lipgloss.NewStyle().Foreground(ColorPrimary)
	BarEmpty     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// RatingColor returns the band's display color.
func RatingColor(r types.Rating) lipgloss.Color {
	switch r {
	case types.RatingExcellent:
		return ColorSuccess
	case types.RatingGood:
		return ColorGood
	case types.RatingFair:
		return ColorWarning
	default:
		return ColorDanger
	}
}

// RatingStyle renders a band name as a colored badge.
func RatingStyle(r types.Rating) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(RatingColor(r)).
		Padding(0, 1)
}
