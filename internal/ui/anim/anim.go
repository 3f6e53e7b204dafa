// Package anim provides the tick-driven animations of the shell: a
// spinner for placeholders and a tween for bar slides and colour fades.
package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

// Settings configures the spinner appearance.
type Settings struct {
	// Type picks the frame set.
	Type shared.SpinnerType
	// Label is optional text displayed alongside the spinner.
	Label string
	// Color is the spinner color.
	Color lipgloss.Color
	// LabelColor is the color for the label text.
	LabelColor lipgloss.Color
	// Interval is the animation tick interval.
	Interval time.Duration
}

// DefaultSettings returns the hero placeholder spinner.
func DefaultSettings() Settings {
	return Settings{
		Type:       shared.SpinnerHero,
		Color:      shared.ColorMuted,
		LabelColor: shared.ColorMuted,
		Interval:   120 * time.Millisecond,
	}
}

// TickMsg triggers spinner frame advancement.
type TickMsg struct {
	ID string
}

// Model is the spinner component.
type Model struct {
	id       string
	settings Settings
	frames   []string
	frame    int
	active   bool
}

// New creates a new spinner model.
func New(settings Settings) Model {
	if settings.Interval == 0 {
		settings.Interval = 120 * time.Millisecond
	}
	return Model{
		id:       uuid.NewString(),
		settings: settings,
		frames:   shared.GetSpinnerFrames(settings.Type),
		active:   true,
	}
}

// ID returns the spinner's unique identifier.
func (m Model) ID() string {
	return m.id
}

// Init starts the spinner ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.settings.Interval, func(time.Time) tea.Msg {
		return TickMsg{ID: m.id}
	})
}

// Update handles tick messages to advance the spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || !m.active {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(m.frames)
		return m, m.tick()
	}
	return m, nil
}

// Frame returns the current frame without styling.
func (m Model) Frame() string {
	return m.frames[m.frame]
}

// View renders the spinner.
func (m Model) View() string {
	if !m.active {
		return ""
	}

	spinner := lipgloss.NewStyle().Foreground(m.settings.Color).Render(m.Frame())
	if m.settings.Label == "" {
		return spinner
	}
	labelStyle := lipgloss.NewStyle().Foreground(m.settings.LabelColor)
	return spinner + " " + labelStyle.Render(m.settings.Label)
}

// Start activates the spinner.
func (m *Model) Start() tea.Cmd {
	if m.active {
		return nil
	}
	m.active = true
	return m.tick()
}

// Stop deactivates the spinner.
func (m *Model) Stop() {
	m.active = false
}

// IsActive returns whether the spinner is running.
func (m Model) IsActive() bool {
	return m.active
}

// SetLabel updates the spinner label.
func (m *Model) SetLabel(label string) {
	m.settings.Label = label
}
