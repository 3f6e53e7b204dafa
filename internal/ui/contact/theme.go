package contact

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

// Theme is the enquiry form's look: the Charm theme recoloured with the
// site's ember accent.
func Theme() *huh.Theme {
	t := huh.ThemeCharm()

	ember := lipgloss.Color(shared.Ember)
	gray := lipgloss.AdaptiveColor{Light: "#64748B", Dark: shared.Stone}
	subtle := lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#4A4A4A"}
	text := lipgloss.AdaptiveColor{Light: shared.Ink, Dark: shared.Chalk}

	t.Group.Title = lipgloss.NewStyle().
		Foreground(ember).
		Bold(true).
		MarginBottom(1).
		PaddingBottom(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(subtle)

	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.FieldSeparator = lipgloss.NewStyle().SetString("\n\n")

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(2).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ember)
	t.Focused.Title = lipgloss.NewStyle().Foreground(ember).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(gray)

	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(2).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(gray)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(subtle)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		SetString(shared.IconArrowRight + " ").
		Foreground(ember)
	t.Focused.Option = lipgloss.NewStyle().Foreground(text)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ember).Bold(true)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(ember).
		Foreground(lipgloss.Color(shared.Paper)).
		Padding(0, 2).
		Bold(true)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(subtle).
		Foreground(text).
		Padding(0, 2)
	t.Blurred.FocusedButton = t.Focused.BlurredButton
	t.Blurred.BlurredButton = t.Focused.BlurredButton

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ember)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(subtle)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ember).Bold(true)

	return t
}
