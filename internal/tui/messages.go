package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneScenarios
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneScenarios:
		return "Scenarios"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
