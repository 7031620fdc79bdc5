package tui

import (
	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/compare"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneWhatIf
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneWhatIf:
		return "What-if"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// BookLoadedMsg carries the client book and its evaluated reports
type BookLoadedMsg struct {
	Book    *domain.ClientBook
	Engine  *calculation.MetricsEngine
	Reports []domain.ClientReport
}

// WhatIfCompleteMsg carries the result of a what-if comparison
type WhatIfCompleteMsg struct {
	Results *compare.ComparisonSet
	Err     error
}
