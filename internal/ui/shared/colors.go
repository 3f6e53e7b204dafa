// Package shared provides the palette, glyphs and markdown rendering used
// by both the interactive shell and the non-interactive render command.
package shared

import "github.com/charmbracelet/lipgloss"

// Site palette as CSS colours, used for page backgrounds and text.
const (
	Night = "#0d0f12" // hero and footer
	Slate = "#1c2128" // page headers, dark tiles
	Ember = "#e4572e" // calls to action
	Sand  = "#f4efe6" // light sections
	Paper = "#ffffff" // cards on light sections
	Ink   = "#15181c" // text on light backgrounds
	Chalk = "#e8e6e3" // text on dark backgrounds
	Stone = "#8b949e" // secondary text
	Moss  = "#2f4f3a" // workshop band
)

// Chrome colours for shell elements drawn outside page content.
var (
	ColorAccent = lipgloss.Color(Ember)
	ColorMuted  = lipgloss.Color(Stone)
	ColorText   = lipgloss.Color(Chalk)
	ColorBg     = lipgloss.Color(Night)
	ColorSubtle = lipgloss.Color("#374151")
	ColorError  = lipgloss.Color("#ef4444")
)
