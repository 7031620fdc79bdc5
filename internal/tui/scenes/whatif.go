package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finhealth/internal/compare"
	"github.com/rgehrsitz/finhealth/internal/transform"
	"github.com/rgehrsitz/finhealth/internal/tui/tuimsg"
	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// WhatIfModel lets the user pick templates and compares the selected client against them
type WhatIfModel struct {
	client      string
	templates   []transform.Template
	selected    map[int]bool
	cursorIndex int
	results     *compare.ComparisonSet
	comparing   bool
	width       int
	height      int
}

// NewWhatIfModel lists the templates of registry
func NewWhatIfModel(registry *transform.TemplateRegistry) *WhatIfModel {
	m := &WhatIfModel{selected: make(map[int]bool)}
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	return m
}

// SetClient changes the base client and clears previous results
func (m *WhatIfModel) SetClient(name string) {
	if name != m.client {
		m.results = nil
	}
	m.client = name
}

// SetResults stores comparison results
func (m *WhatIfModel) SetResults(results *compare.ComparisonSet) {
	m.results = results
	m.comparing = false
}

// SetSize updates the model dimensions
func (m *WhatIfModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTemplates returns the chosen template names in list order
func (m *WhatIfModel) SelectedTemplates() []string {
	var names []string
	for idx := range m.templates {
		if m.selected[idx] {
			names = append(names, m.templates[idx].Name)
		}
	}
	return names
}

// Update handles messages for the what-if scene
func (m *WhatIfModel) Update(msg tea.Msg) (*WhatIfModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		templates := m.SelectedTemplates()
		if m.client == "" || len(templates) == 0 {
			return m, nil
		}
		m.comparing = true
		client := m.client
		return m, func() tea.Msg {
			return tuimsg.WhatIfRequestedMsg{Client: client, Templates: templates}
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("c"))):
		m.selected = make(map[int]bool)
		m.results = nil
	}
	return m, nil
}

// View renders the what-if scene
func (m *WhatIfModel) View() string {
	if m.comparing {
		return tuistyles.BorderStyle.Render(fmt.Sprintf("⠋ Comparing %s against %d templates...", m.client, len(m.SelectedTemplates())))
	}

	selection := m.renderSelection()
	if m.results == nil {
		return selection
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, selection, "  ", m.renderResults())
}

func (m *WhatIfModel) renderSelection() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionTitleStyle.Render("What-if for " + displayName(m.client)))
	content.WriteString("\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("↑/↓ navigate • space select • enter compare • c clear"))
	content.WriteString("\n\n")

	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
	for idx, t := range m.templates {
		if idx == m.cursorIndex {
			content.WriteString(highlightStyle.Render("❯ "))
		} else {
			content.WriteString("  ")
		}
		if m.selected[idx] {
			content.WriteString(highlightStyle.Render("[✓] "))
		} else {
			content.WriteString(subtleStyle.Render("[ ] "))
		}
		name := t.Name
		if idx == m.cursorIndex {
			name = highlightStyle.Render(name)
		}
		content.WriteString(name)
		content.WriteString("\n")
		content.WriteString(subtleStyle.Render("      " + t.Description))
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func (m *WhatIfModel) renderResults() string {
	var table strings.Builder
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	table.WriteString(headerStyle.Render("Comparison Results"))
	table.WriteString("\n\n")

	nameWidth, colWidth := 26, 8
	table.WriteString(headerStyle.Render(padRight("Variant", nameWidth)))
	for _, h := range []string{"Invest", "Debt", "Budget", "Emerg", "Adv"} {
		table.WriteString(headerStyle.Render(padRight(h, colWidth)))
	}
	table.WriteString("\n")
	table.WriteString(strings.Repeat("─", nameWidth+5*colWidth))
	table.WriteString("\n")

	rows := append([]compare.ComparisonResult{*m.results.BaseResult}, m.results.AlternativeResults...)
	for i, r := range rows {
		name := r.Name
		if i == 0 {
			name += " (base)"
		} else {
			name = strings.TrimPrefix(name, m.results.BaseName+"_")
		}
		table.WriteString(padRight(truncate(name, nameWidth-1), nameWidth))
		if !r.OK() {
			table.WriteString(tuistyles.ErrorStyle.Render("N/A"))
			table.WriteString("\n")
			continue
		}

		diffs := []int{r.ScoreDiff.Investment, r.ScoreDiff.Debt, r.ScoreDiff.Budgeting, r.ScoreDiff.EmergencyFund}
		for j, e := range r.Scores.Entries() {
			cell := fmt.Sprintf("%d", e.Value)
			if i > 0 && diffs[j] != 0 {
				cell = tuistyles.MetricTrendStyle(diffs[j] > 0).Render(cell)
			}
			table.WriteString(padRight(cell, colWidth))
		}
		table.WriteString(padRight(fmt.Sprintf("%d", r.AdvisoryCount), colWidth))
		table.WriteString("\n")
	}

	if len(m.results.Recommendations) > 0 {
		table.WriteString("\n")
		for _, rec := range m.results.Recommendations {
			table.WriteString(subtleStyle.Render("• " + rec))
			table.WriteString("\n")
		}
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(table.String(), "\n"))
}

func displayName(client string) string {
	if client == "" {
		return "(no client selected)"
	}
	return client
}

func padRight(s string, width int) string {
	currentWidth := lipgloss.Width(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
