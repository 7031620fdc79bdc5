package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/output"
	"github.com/rgehrsitz/finhealth/internal/tui/components"
	"github.com/rgehrsitz/finhealth/internal/tui/tuimsg"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// DashboardKeyMap holds the bindings of the dashboard scene
type DashboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
}

// DefaultDashboardKeys returns the standard bindings
func DefaultDashboardKeys() DashboardKeyMap {
	return DashboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// DashboardModel shows the client selector next to the selected client's dashboard
type DashboardModel struct {
	reports       []domain.ClientReport
	selectedIndex int
	keys          DashboardKeyMap
	width         int
	height        int
}

// NewDashboardModel creates a new dashboard scene model
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{keys: DefaultDashboardKeys()}
}

// SetReports replaces the evaluated clients, keeping the selection when possible
func (m *DashboardModel) SetReports(reports []domain.ClientReport) {
	m.reports = reports
	if m.selectedIndex >= len(m.reports) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedClient returns the name of the highlighted client
func (m *DashboardModel) SelectedClient() string {
	if r := m.selected(); r != nil {
		return r.Client.Name
	}
	return ""
}

// Select moves the cursor to the named client
func (m *DashboardModel) Select(name string) bool {
	for i, r := range m.reports {
		if r.Client.Name == name {
			m.selectedIndex = i
			return true
		}
	}
	return false
}

func (m *DashboardModel) selected() *domain.ClientReport {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.reports) {
		return &m.reports[m.selectedIndex]
	}
	return nil
}

// Update handles messages for the dashboard scene
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.selectedIndex < len(m.reports)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.selectedIndex = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.selectedIndex = max(0, len(m.reports)-1)
	case key.Matches(keyMsg, m.keys.Select):
		name := m.SelectedClient()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.ClientSelectedMsg{Name: name} }
	}
	return m, nil
}

// View renders the dashboard scene
func (m *DashboardModel) View() string {
	if len(m.reports) == 0 {
		return "No clients available.\n\nLoad a client book with at least one client."
	}

	entries := make([]components.ClientEntry, 0, len(m.reports))
	for _, r := range m.reports {
		entries = append(entries, components.ClientEntry{Name: r.Client.Name, Rejected: !r.OK()})
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(28)
	leftPane := listStyle.Render(tuistyles.SectionTitleStyle.Render("Select Client") + "\n" +
		components.ClientList(entries, m.selectedIndex))

	rightPane := RenderClientDashboard(*m.selected())

	content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane)
	return content + "\n\n" + m.helpLine()
}

func (m *DashboardModel) helpLine() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, tuistyles.HelpKeyStyle.Render(h.Key)+" "+tuistyles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, " • ")
}

// RenderClientDashboard renders the metric cards, charts, score bars and banners of one
// client, or the rejection reason
func RenderClientDashboard(report domain.ClientReport) string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2)

	title := tuistyles.TitleStyle.Render(report.Client.Name)
	if !report.OK() {
		return panel.Render(title + "\n\n" + tuistyles.ErrorStyle.Render("N/A: "+report.ErrorText()))
	}

	client := report.Client
	code := client.CurrencyCode()
	netWorth := components.NewMetricCard("Net Worth", output.FormatCurrency(report.Metrics.NetWorth, code)).
		WithDescription(fmt.Sprintf("liabilities %s", output.FormatCurrency(report.Metrics.TotalLiabilities, code)))
	if report.Metrics.NetWorth.IsNegative() {
		netWorth.WithTrend(false, "negative")
	}
	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Income (Annual)", output.FormatCurrency(client.Income, code)),
		components.NewMetricCard("Expenses (Annual)", output.FormatCurrency(client.Expenses, code)),
		netWorth,
	}, 3)

	ratios := strings.Join([]string{
		components.NewMetricCard("Savings Rate", output.FormatPercentage(report.Metrics.SavingsRate)).RenderCompact(),
		components.NewMetricCard("Debt Ratio", output.FormatPercentage(report.Metrics.DebtRatio)).RenderCompact(),
		components.NewMetricCard("Emergency Fund", output.FormatMonths(report.Metrics.EmergencyMonths)).RenderCompact(),
	}, "   ")

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewBarChart("Asset Allocation", client.Assets, code).WithWidth(24).Render(),
		"    ",
		components.NewShareChart("Portfolio Overview", client.Portfolio).Render(),
	)

	bars := make([]*components.ScoreBar, 0, 4)
	for _, e := range report.Scores.Entries() {
		bars = append(bars, components.NewScoreBar(e.Label, e.Value))
	}

	sections := []string{
		title,
		cards,
		ratios,
		"",
		charts,
		"",
		components.ScorePanel("Financial Health Scores", bars),
		"",
		tuistyles.SectionTitleStyle.Render("Recommendations"),
		components.BannerList(report.Advisories, 70),
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// ClientSummary is a one-line description of a report, used in the status bar
func ClientSummary(report domain.ClientReport) string {
	if !report.OK() {
		return fmt.Sprintf("%s: N/A", report.Client.Name)
	}
	return fmt.Sprintf("%s: %d advisories", report.Client.Name, len(report.Advisories))
}
