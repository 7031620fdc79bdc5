package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/compare"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/transform"
	"github.com/rgehrsitz/finhealth/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	source config.ClientSource
	logger calculation.Logger

	book    *domain.ClientBook
	engine  *calculation.MetricsEngine
	reports []domain.ClientReport

	selectedClient string

	dashboardModel *scenes.DashboardModel
	whatIfModel    *scenes.WhatIfModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the application model. The engine is built from the book once it
// is loaded, so its policy and rules apply.
func NewModel(source config.ClientSource, logger calculation.Logger) Model {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return Model{
		currentScene:   SceneDashboard,
		source:         source,
		logger:         logger,
		dashboardModel: scenes.NewDashboardModel(),
		whatIfModel:    scenes.NewWhatIfModel(transform.CreateBuiltInTemplates()),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Loading clients...",
	}
}

// Init starts loading the client book
func (m Model) Init() tea.Cmd {
	return loadBookCmd(m.source, m.logger)
}

// loadBookCmd reads the book, builds its engine and evaluates every client
func loadBookCmd(source config.ClientSource, logger calculation.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		book, err := source.Clients(ctx)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		engine, err := config.NewEngine(book, logger)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		reports, err := engine.EvaluateBook(ctx, book)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return BookLoadedMsg{Book: book, Engine: engine, Reports: reports}
	}
}

// whatIfCmd compares a client against the chosen templates
func whatIfCmd(engine *calculation.MetricsEngine, book *domain.ClientBook, client string, templates []string) tea.Cmd {
	return func() tea.Msg {
		results, err := compare.NewCompareEngine(engine).CompareWhatIf(context.Background(), book, client, templates)
		return WhatIfCompleteMsg{Results: results, Err: err}
	}
}
