package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finhealth/internal/tui/scenes"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneWhatIf:
		content = m.whatIfModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("Personal Financial Health Dashboard")

	breadcrumb := m.currentScene.String()
	if m.selectedClient != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedClient)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("d", "dashboard"),
		formatShortcut("w", "what-if"),
		formatShortcut("r", "reload"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if len(m.reports) > 0 {
		rejected := 0
		for _, r := range m.reports {
			if !r.OK() {
				rejected++
			}
		}
		summary := fmt.Sprintf("%d clients", len(m.reports))
		if rejected > 0 {
			summary += fmt.Sprintf(", %d N/A", rejected)
		}
		for _, r := range m.reports {
			if r.Client.Name == m.selectedClient {
				summary = scenes.ClientSummary(r) + " • " + summary
				break
			}
		}
		info := tuistyles.SubtitleStyle.Render(summary)
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(info)-2))
		statusText = statusText + spacer + info
	}

	return tuistyles.StatusBarStyle.Render(statusText)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	helpText := `
Personal Financial Health Dashboard

KEYBOARD SHORTCUTS:
  d        Dashboard
  w        What-if comparison for the selected client
  r        Reload the client book
  ?        Show this help
  ESC      Back to the dashboard
  q/Ctrl+C Quit

DASHBOARD:
  ↑/k ↓/j  Move through clients
  g / G    First / last client
  Enter    Select client for what-if

WHAT-IF:
  Space/x  Toggle a template
  Enter    Compare against the selected templates
  c        Clear selection and results
`
	return tuistyles.BorderStyle.Render(helpText)
}
