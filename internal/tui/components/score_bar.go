package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finhealth/internal/output"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// ScoreBar displays a 0-100 health score as a progress bar
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a new score bar
func NewScoreBar(label string, score int) *ScoreBar {
	return &ScoreBar{
		Label: label,
		Score: score,
		Width: 30,
	}
}

// WithWidth sets the bar width
func (s *ScoreBar) WithWidth(width int) *ScoreBar {
	s.Width = width
	return s
}

// Render returns "[████░░░] Investment Score: 58/100". Out of range scores keep their
// value in the label while the bar is drawn empty or full.
func (s *ScoreBar) Render() string {
	filled := output.ScoreBarLength(s.Score, s.Width)
	empty := s.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ScoreColor(s.Score))
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	var content strings.Builder
	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")
	content.WriteString(tuistyles.MetricLabelStyle.Render(s.Label + ": "))
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ScoreColor(s.Score)).Bold(true).Render(output.FormatScore(s.Score)))

	return content.String()
}

// ScorePanel stacks score bars under a title
func ScorePanel(title string, bars []*ScoreBar) string {
	lines := []string{tuistyles.SectionTitleStyle.Render(title)}
	for _, b := range bars {
		lines = append(lines, b.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
