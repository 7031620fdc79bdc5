package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// Banner renders an advisory with a border colored by its severity
func Banner(a domain.Advisory, width int) string {
	color := tuistyles.SeverityColor(a.Severity)

	tag := lipgloss.NewStyle().Foreground(color).Bold(true).Render(a.Severity.String())
	body := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(a.Message)

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		Width(width).
		Render(tag + " " + body)
}

// BannerList stacks banners, or a short note when there are none
func BannerList(advisories []domain.Advisory, width int) string {
	if len(advisories) == 0 {
		return tuistyles.InfoStyle.Render("No advisories. Keep it up.")
	}
	banners := make([]string, 0, len(advisories))
	for _, a := range advisories {
		banners = append(banners, Banner(a, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, banners...)
}
