package shared

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// rendererCache stores glamour renderers by width to avoid recreating them.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// GetMarkdownRenderer returns a cached glamour renderer for the given
// width. Width is clamped to 20-200 to prevent cache explosion. The notty
// style is used because page text is recoloured cell by cell.
func GetMarkdownRenderer(width int) *glamour.TermRenderer {
	width = Clamp(width, 20, 200)

	if r, ok := rendererCache.Load(width); ok {
		return r.(*glamour.TermRenderer)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	rendererCache.Store(width, r)
	return r
}

// RenderMarkdown renders md as plain wrapped text: no escape sequences,
// no surrounding blank lines and no shared left margin. On failure the
// source is returned trimmed.
func RenderMarkdown(md string, width int) string {
	r := GetMarkdownRenderer(width)
	if r == nil {
		return strings.TrimSpace(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return strings.TrimSpace(md)
	}
	return tidy(ansi.Strip(out))
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	margin := -1
	for _, l := range lines {
		if l == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if margin < 0 || n < margin {
			margin = n
		}
	}
	if margin > 0 {
		for i, l := range lines {
			if len(l) >= margin {
				lines[i] = l[margin:]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// ClearRendererCache clears the renderer cache (useful for testing).
func ClearRendererCache() {
	rendererCache.Range(func(key, value any) bool {
		rendererCache.Delete(key)
		return true
	})
}

// Clamp constrains a value to a range.
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
