package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/rgehrsitz/ptpay/internal/tui/tuimsg"
	"github.com/rgehrsitz/ptpay/internal/tui/tuistyles"
)

// ScenariosModel lists the scenarios of the loaded file
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
	width         int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetWidth updates the scene width
func (m *ScenariosModel) SetWidth(width int) {
	m.width = width
}

// Len returns the number of scenarios
func (m *ScenariosModel) Len() int { return len(m.scenarios) }

// Selected returns the highlighted scenario
func (m *ScenariosModel) Selected() (domain.Scenario, bool) {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex], true
	}
	return domain.Scenario{}, false
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.scenarios)-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		sc, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{Scenario: sc}
		}
	}
	return m, nil
}

// View renders the list on the left and the selected profile on the right
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.SubtitleStyle.Render("No scenario file loaded. Start ptpay-tui with a scenario file to browse it here.")
	}

	var list strings.Builder
	for i, sc := range m.scenarios {
		style := tuistyles.UnselectedItemStyle
		prefix := "  "
		if i == m.selectedIndex {
			style = tuistyles.SelectedItemStyle
			prefix = "▸ "
		}
		list.WriteString(style.Render(prefix+sc.Name) + "\n")
	}

	sc := m.scenarios[m.selectedIndex]
	details := tuistyles.TitleStyle.Render(sc.Name) + "\n"
	if sc.Description != "" {
		details += tuistyles.SubtitleStyle.Render(sc.Description) + "\n"
	}
	details += "\n" + lipgloss.NewStyle().Width(50).Render(output.ProfileSummary(sc.Input.WithDefaults()))

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.PanelStyle.Render(strings.TrimRight(list.String(), "\n")),
		"  ",
		tuistyles.PanelStyle.Render(details),
	)
	return content + "\n\n" + tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("%d scenarios • ↑/↓ select • enter load into calculator • esc back", len(m.scenarios)))
}
