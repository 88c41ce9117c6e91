package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ptpay/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	if m.err != nil {
		content = tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) +
			"\n" + tuistyles.SubtitleStyle.Render("press any key to continue") + "\n\n" + content
	}

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render(
		fmt.Sprintf("PTPAY - Portuguese Net Pay %d", m.calcEngine.Rules.Metadata.TaxYear))

	breadcrumb := m.currentScene.String()
	if m.selectedScenario != "" {
		breadcrumb += " / " + m.selectedScenario
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb), "")
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next field"),
		formatShortcut("←/→", "change"),
		formatShortcut("s", "scenarios"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.configPath != "" {
		name := tuistyles.SubtitleStyle.Render(m.configPath)
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(name) - 4
		statusText += strings.Repeat(" ", max(1, gap)) + name
	}
	return tuistyles.StatusBarStyle.Width(max(0, m.width-2)).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	rows := [][2]string{
		{"tab / ↓", "next field"},
		{"shift+tab / ↑", "previous field"},
		{"← / →, space", "change the selected option"},
		{"0-9 . ,", "edit salary and dependents"},
		{"s", "browse scenarios from the loaded file"},
		{"esc", "back to the calculator"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	}
	var sb strings.Builder
	sb.WriteString(tuistyles.TitleStyle.Render("Keyboard") + "\n\n")
	for _, r := range rows {
		sb.WriteString(tuistyles.StatusKeyStyle.Width(16).Render(r[0]) + r[1] + "\n")
	}
	sb.WriteString("\n" + tuistyles.SubtitleStyle.Render(
		"Results are recomputed on every change. Monthly tax is the annual tax spread over the payments, not a withholding table."))
	return sb.String()
}
