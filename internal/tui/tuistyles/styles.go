// Package tuistyles holds the lipgloss palette shared by the TUI packages.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#0B5D1E", Dark: "#3DDC84"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD166"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#06D6A0"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#EF476F"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#8D99AE"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#CED4DA", Dark: "#495057"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#E9F5EC", Dark: "#1F3A2A"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FieldLabelStyle   = lipgloss.NewStyle().Width(18).Foreground(ColorMuted)
	FocusedLabelStyle = FieldLabelStyle.Foreground(ColorPrimary).Bold(true)
	ValueStyle        = lipgloss.NewStyle().Bold(true)
	FocusedValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)
	NetValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	DeductionStyle   = lipgloss.NewStyle().Foreground(ColorDanger)
	SectionStyle     = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Background(ColorHighlight)
	UnselectedItemStyle = lipgloss.NewStyle()

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	BadgeStyle = lipgloss.NewStyle().Foreground(ColorAccent).Italic(true)
)
