// Package tuistyles holds the colors and lipgloss styles shared by the TUI packages.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

// Palette
var (
	ColorPrimary   = lipgloss.Color("#5A9BD5")
	ColorSecondary = lipgloss.Color("#A78BFA")
	ColorSuccess   = lipgloss.Color("#22C55E")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorDanger    = lipgloss.Color("#EF4444")
	ColorInfo      = lipgloss.Color("#38BDF8")

	ColorForeground = lipgloss.Color("#E5E7EB")
	ColorMuted      = lipgloss.Color("#9CA3AF")
	ColorBorder     = lipgloss.Color("#4B5563")
	ColorBar        = lipgloss.Color("#60A5FA")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				MarginBottom(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// MetricTrendStyle colors a change by its direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "↑"
	}
	return "↓"
}

// SeverityColor returns the banner color of an advisory tier
func SeverityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeverityError:
		return ColorDanger
	case domain.SeverityWarning:
		return ColorWarning
	default:
		return ColorInfo
	}
}

// ScoreColor grades a score: red below 40, amber below 70, green otherwise
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score < 40:
		return ColorDanger
	case score < 70:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
