// Package tuimsg holds the messages exchanged between the TUI scenes and
// the root model. It is separate from package tui to avoid import cycles.
package tuimsg

import (
	"github.com/rgehrsitz/ptpay/internal/domain"
)

// ScenarioSelectedMsg loads a scenario from the scenario file into the form
type ScenarioSelectedMsg struct {
	Scenario domain.Scenario
}

// ConfigLoadedMsg signals the scenario file has been loaded
type ConfigLoadedMsg struct {
	Path   string
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
