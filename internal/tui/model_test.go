package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/tui/tuimsg"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loaded returns a model with the sample book already evaluated
func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(config.NewSampleSource(), nil)
	msg := m.Init()()
	require.IsType(t, BookLoadedMsg{}, msg)

	updated, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	return updated.(Model)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Dashboard", SceneDashboard.String())
	assert.Equal(t, "What-if", SceneWhatIf.String())
	assert.Equal(t, "Help", SceneHelp.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}

func TestNewModel_StartsLoading(t *testing.T) {
	m := NewModel(config.NewSampleSource(), nil)

	assert.True(t, m.loading)
	assert.Equal(t, SceneDashboard, m.currentScene)
	assert.Contains(t, m.View(), "Loading clients...")
}

func TestBookLoaded(t *testing.T) {
	m := loaded(t)

	assert.False(t, m.loading)
	require.Len(t, m.reports, 2)
	assert.Equal(t, "John Doe", m.selectedClient)
	assert.NotNil(t, m.engine)

	view := m.View()
	assert.Contains(t, view, "Personal Financial Health Dashboard")
	assert.Contains(t, view, "Dashboard / John Doe")
	assert.Contains(t, view, "2 clients")
}

func TestLoadFailure(t *testing.T) {
	m := NewModel(config.StaticSource{}, nil)

	msg := m.Init()()
	require.IsType(t, ErrorMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "static source has no client book")

	// any key dismisses the error
	updated, _ = m.Update(runeKey('x'))
	assert.Nil(t, updated.(Model).err)
}

func TestNavigation(t *testing.T) {
	m := loaded(t)

	_, cmd := m.Update(runeKey('w'))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneWhatIf}, cmd())

	updated, _ := m.Update(NavigateMsg{Scene: SceneWhatIf})
	m = updated.(Model)
	assert.Equal(t, SceneWhatIf, m.currentScene)
	assert.Equal(t, SceneDashboard, m.previousScene)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneDashboard}, cmd())

	_, cmd = m.Update(runeKey('?'))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneHelp}, cmd())

	updated, _ = m.Update(NavigateMsg{Scene: SceneHelp})
	assert.Contains(t, updated.(Model).View(), "KEYBOARD SHORTCUTS")
}

func TestQuit(t *testing.T) {
	m := loaded(t)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestClientSelection(t *testing.T) {
	m := loaded(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, "Anita Sharma", m.selectedClient)

	updated, _ = m.Update(tuimsg.ClientSelectedMsg{Name: "John Doe"})
	m = updated.(Model)
	assert.Equal(t, "John Doe", m.selectedClient)
}

func TestReloadKeepsSelection(t *testing.T) {
	m := loaded(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)

	updated, cmd := m.Update(runeKey('r'))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.False(t, m.loading)
	assert.Equal(t, "Anita Sharma", m.selectedClient)
}

func TestWhatIfRequest(t *testing.T) {
	m := loaded(t)

	_, cmd := m.Update(tuimsg.WhatIfRequestedMsg{Client: "John Doe", Templates: []string{"invest_cash"}})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, WhatIfCompleteMsg{}, msg)
	done := msg.(WhatIfCompleteMsg)
	require.NoError(t, done.Err)
	require.NotNil(t, done.Results)
	require.Len(t, done.Results.AlternativeResults, 1)
	assert.Equal(t, 66, done.Results.AlternativeResults[0].Scores.Investment)

	updated, _ := m.Update(msg)
	assert.Nil(t, updated.(Model).err)
}

func TestWhatIfFailure(t *testing.T) {
	m := loaded(t)

	updated, _ := m.Update(WhatIfCompleteMsg{Err: errors.New("template retire_early not found")})
	m = updated.(Model)
	assert.Contains(t, m.View(), "template retire_early not found")
}

func TestWhatIfBeforeLoadIsIgnored(t *testing.T) {
	m := NewModel(config.NewSampleSource(), nil)

	_, cmd := m.Update(tuimsg.WhatIfRequestedMsg{Client: "John Doe", Templates: []string{"invest_cash"}})
	assert.Nil(t, cmd)
}

func TestWindowResize(t *testing.T) {
	m := loaded(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = updated.(Model)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 50, m.height)
}

func TestRejectedClientsCounted(t *testing.T) {
	book := config.SampleBook()
	broken := book.Clients[0].DeepCopy()
	broken.Name = "Broken"
	broken.Expenses = broken.Expenses.Neg()
	book.Clients = append(book.Clients, broken)

	m := NewModel(config.StaticSource{Book: book}, nil)
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	require.Len(t, m.reports, 3)
	assert.False(t, m.reports[2].OK())
	assert.Contains(t, m.View(), "3 clients, 1 N/A")
}
