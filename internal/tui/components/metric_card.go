package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ptpay/internal/tui/tuistyles"
)

// MetricCard displays one headline figure with a label and optional note
type MetricCard struct {
	Label string
	Value string
	Note  string
	Width int
	Style lipgloss.Style
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
		Style: tuistyles.MetricValueStyle,
	}
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithStyle overrides the value style
func (m *MetricCard) WithStyle(s lipgloss.Style) *MetricCard {
	m.Style = s
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.Style.Render(m.Value)
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}
	return tuistyles.PanelStyle.Width(m.Width).Render(content)
}

// RenderLine returns an inline "label value" row padded to the card width
func (m *MetricCard) RenderLine() string {
	label := tuistyles.MetricLabelStyle.Width(m.Width).Render(m.Label)
	line := label + m.Style.Render(m.Value)
	if m.Note != "" {
		line += " " + tuistyles.BadgeStyle.Render(m.Note)
	}
	return line
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	rows := []string{}
	current := []string{}
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
