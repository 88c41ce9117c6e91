package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ptpay/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculatorModel.SetWidth(msg.Width)
		m.scenariosModel.SetWidth(msg.Width)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ConfigLoadedMsg:
		m.config = msg.Config
		m.configPath = msg.Path
		m.scenariosModel.SetScenarios(msg.Config.Scenarios)
		if len(msg.Config.Scenarios) > 0 {
			first := msg.Config.Scenarios[0]
			m.selectedScenario = first.Name
			m.calculatorModel.SetInput(first.Input)
		}
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		m.selectedScenario = msg.Scenario.Name
		m.calculatorModel.SetInput(msg.Scenario.Input)
		m.previousScene = m.currentScene
		m.currentScene = SceneCalculator
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// handleKeyPress processes keyboard input. Letters never reach the numeric
// text fields, so the single-key shortcuts are safe in every scene.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, navigate(SceneHelp)
		}
		return m, navigate(SceneCalculator)

	case "esc":
		if m.currentScene != SceneCalculator {
			return m, navigate(SceneCalculator)
		}

	case "s":
		if m.currentScene != SceneScenarios {
			return m, navigate(SceneScenarios)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	}
	return m, cmd
}
