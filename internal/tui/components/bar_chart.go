package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/output"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// BarChart draws a horizontal bar per category, scaled to the largest one
type BarChart struct {
	Title    string
	Data     domain.CategoryMap
	Currency string
	Width    int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string, data domain.CategoryMap, currency string) *BarChart {
	return &BarChart{
		Title:    title,
		Data:     data,
		Currency: currency,
		Width:    30,
	}
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.SectionTitleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	bars := output.AssetBars(c.Data, c.Width)
	if len(bars) == 0 {
		content.WriteString(tuistyles.InfoStyle.Render("No data to display"))
		return content.String()
	}

	labelWidth := 0
	for _, b := range bars {
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBar)
	for i, b := range bars {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("%-*s ", labelWidth, b.Label))
		content.WriteString(barStyle.Render(strings.Repeat("█", b.Length)))
		content.WriteString(" ")
		content.WriteString(tuistyles.MetricLabelStyle.Render(output.FormatCurrency(b.Amount, c.Currency)))
	}
	return content.String()
}

// ShareChart lists each holding's share of the total, like the legend of a pie chart
type ShareChart struct {
	Title string
	Data  domain.CategoryMap
	Width int
}

// NewShareChart creates a new share chart
func NewShareChart(title string, data domain.CategoryMap) *ShareChart {
	return &ShareChart{
		Title: title,
		Data:  data,
		Width: 20,
	}
}

var sliceColors = []lipgloss.Color{
	tuistyles.ColorPrimary,
	tuistyles.ColorSecondary,
	tuistyles.ColorSuccess,
	tuistyles.ColorWarning,
	tuistyles.ColorInfo,
}

// Render returns one line per holding: a segment proportional to its share and the
// percentage to one decimal
func (c *ShareChart) Render() string {
	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.SectionTitleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	slices := output.PortfolioShares(c.Data)
	if len(slices) == 0 {
		content.WriteString(tuistyles.InfoStyle.Render("No holdings"))
		return content.String()
	}

	for i, s := range slices {
		if i > 0 {
			content.WriteString("\n")
		}
		cells := int(s.Percent.IntPart()) * c.Width / 100
		style := lipgloss.NewStyle().Foreground(sliceColors[i%len(sliceColors)])
		content.WriteString(style.Render(strings.Repeat("■", cells) + strings.Repeat(" ", c.Width-cells)))
		content.WriteString(fmt.Sprintf(" %5s%% %s", s.Percent.StringFixed(1), s.Label))
	}
	return content.String()
}
