package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finhealth/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboardModel.SetSize(msg.Width, msg.Height)
		m.whatIfModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case BookLoadedMsg:
		m.loading = false
		m.book = msg.Book
		m.engine = msg.Engine
		m.reports = msg.Reports
		m.dashboardModel.SetReports(msg.Reports)
		if m.selectedClient == "" || !m.dashboardModel.Select(m.selectedClient) {
			m.selectedClient = m.dashboardModel.SelectedClient()
		}
		m.whatIfModel.SetClient(m.selectedClient)
		return m, nil

	case tuimsg.ClientSelectedMsg:
		m.selectedClient = msg.Name
		m.whatIfModel.SetClient(msg.Name)
		return m, nil

	case tuimsg.WhatIfRequestedMsg:
		if m.engine == nil {
			return m, nil
		}
		return m, whatIfCmd(m.engine, m.book, msg.Client, msg.Templates)

	case WhatIfCompleteMsg:
		if msg.Err != nil {
			m.whatIfModel.SetResults(nil)
			m.err = msg.Err
			return m, nil
		}
		m.whatIfModel.SetResults(msg.Results)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// any key dismisses the error, except quit
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneDashboard {
			return m, navigate(SceneDashboard)
		}

	case "d":
		if m.currentScene != SceneDashboard {
			return m, navigate(SceneDashboard)
		}

	case "w":
		if m.currentScene != SceneWhatIf {
			return m, navigate(SceneWhatIf)
		}

	case "r":
		m.loading = true
		m.loadingMessage = "Reloading clients..."
		return m, loadBookCmd(m.source, m.logger)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneDashboard:
		updated, cmd := m.dashboardModel.Update(msg)
		m.dashboardModel = updated
		if name := m.dashboardModel.SelectedClient(); name != m.selectedClient {
			m.selectedClient = name
			m.whatIfModel.SetClient(name)
		}
		return m, cmd
	case SceneWhatIf:
		updated, cmd := m.whatIfModel.Update(msg)
		m.whatIfModel = updated
		return m, cmd
	}
	return m, nil
}
