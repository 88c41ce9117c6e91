package components

import (
	"strings"

	"github.com/rgehrsitz/ptpay/internal/tui/tuistyles"
)

// Option is one selectable value of a Choice
type Option struct {
	Value string
	Label string
}

// Choice is a form field cycling through a fixed set of options
type Choice struct {
	Label     string
	Options   []Option
	Index     int
	IsFocused bool
}

// NewChoice creates a choice positioned on the option whose value matches
// selected, or on the first option.
func NewChoice(label string, options []Option, selected string) *Choice {
	c := &Choice{Label: label, Options: options}
	c.Select(selected)
	return c
}

// Select moves to the option with the given value; unknown values are ignored
func (c *Choice) Select(value string) {
	for i, o := range c.Options {
		if o.Value == value {
			c.Index = i
			return
		}
	}
}

// Value returns the selected option value
func (c *Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Index].Value
}

// Next selects the following option, wrapping around
func (c *Choice) Next() {
	if len(c.Options) > 0 {
		c.Index = (c.Index + 1) % len(c.Options)
	}
}

// Prev selects the preceding option, wrapping around
func (c *Choice) Prev() {
	if len(c.Options) > 0 {
		c.Index = (c.Index - 1 + len(c.Options)) % len(c.Options)
	}
}

// Render draws the label and every option, the selected one highlighted
func (c *Choice) Render() string {
	labelStyle := tuistyles.FieldLabelStyle
	if c.IsFocused {
		labelStyle = tuistyles.FocusedLabelStyle
	}

	parts := make([]string, len(c.Options))
	for i, o := range c.Options {
		switch {
		case i == c.Index && c.IsFocused:
			parts[i] = tuistyles.FocusedValueStyle.Render("‹" + o.Label + "›")
		case i == c.Index:
			parts[i] = tuistyles.ValueStyle.Render(o.Label)
		default:
			parts[i] = tuistyles.SubtitleStyle.Render(o.Label)
		}
	}
	return labelStyle.Render(c.Label) + strings.Join(parts, "  ")
}
