package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/alexcabrera/ridgeline/internal/csscolor"
)

// Cell is one terminal cell. Fg and Bg are #rrggbb or empty for the
// terminal default. A zero Ch marks the trailing half of a wide rune.
type Cell struct {
	Ch   rune
	Fg   string
	Bg   string
	Bold bool
}

// Span is text drawn over a grid row.
type Span struct {
	X    int
	Text string
	Fg   string
	Bg   string
	Bold bool
}

// Grid is a painted document.
type Grid struct {
	Width int
	Rows  [][]Cell

	styles map[styleKey]lipgloss.Style
}

type styleKey struct {
	fg, bg string
	bold   bool
}

// Paint lays out doc at width and paints it.
func Paint(doc *Document, width int) *Grid {
	doc.Layout(width)
	g := &Grid{
		Width:  width,
		Rows:   make([][]Cell, doc.Height()),
		styles: make(map[styleKey]lipgloss.Style),
	}
	for y := range g.Rows {
		row := make([]Cell, width)
		for x := range row {
			row[x].Ch = ' '
		}
		g.Rows[y] = row
	}
	paintNode(g, doc.Root, "")
	return g
}

// Height returns the number of painted rows.
func (g *Grid) Height() int {
	return len(g.Rows)
}

func paintNode(g *Grid, n *Node, fg string) {
	if n == nil {
		return
	}
	if n.Foreground != "" {
		if c, err := csscolor.Parse(n.Foreground); err == nil && !c.Transparent() {
			fg = c.Hex()
		}
	}

	r := n.rect
	if c, err := csscolor.Parse(n.Background); err == nil && !c.Transparent() {
		bg := c.Hex()
		for y := r.Y; y < r.Y+r.Height && y < len(g.Rows); y++ {
			for x := r.X; x < r.X+r.Width && x < g.Width; x++ {
				g.Rows[y][x] = Cell{Ch: ' ', Bg: bg}
			}
		}
	}

	for i, tr := range n.TextRects() {
		g.write(tr.Y, tr.X, r.X+r.Width, n.lines[i], fg, n.Bold)
	}

	for _, c := range n.Children {
		paintNode(g, c, fg)
	}
}

// write draws text at (x, y), clipped at limit, keeping cell backgrounds.
func (g *Grid) write(y, x, limit int, text, fg string, bold bool) {
	if y < 0 || y >= len(g.Rows) {
		return
	}
	if limit > g.Width {
		limit = g.Width
	}
	row := g.Rows[y]
	for _, r := range text {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if x < 0 {
			x += w
			continue
		}
		if x+w > limit {
			return
		}
		row[x].Ch = r
		row[x].Fg = fg
		row[x].Bold = bold
		for i := 1; i < w; i++ {
			row[x+i].Ch = 0
		}
		x += w
	}
}

// Line renders row y with styles.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= len(g.Rows) {
		return strings.Repeat(" ", g.Width)
	}
	return g.render(g.Rows[y])
}

// Lines renders rows [from, from+n), padding with blank rows past the end.
func (g *Grid) Lines(from, n int) []string {
	out := make([]string, 0, n)
	for y := from; y < from+n; y++ {
		out = append(out, g.Line(y))
	}
	return out
}

// String renders the whole grid.
func (g *Grid) String() string {
	return strings.Join(g.Lines(0, len(g.Rows)), "\n")
}

// Compose renders row y with spans drawn on top. Spans keep the row's
// background unless they set their own.
func (g *Grid) Compose(y int, spans ...Span) string {
	row := make([]Cell, g.Width)
	if y >= 0 && y < len(g.Rows) {
		copy(row, g.Rows[y])
	} else {
		for x := range row {
			row[x].Ch = ' '
		}
	}
	for _, s := range spans {
		x := s.X
		for _, r := range s.Text {
			w := ansi.StringWidth(string(r))
			if w == 0 {
				continue
			}
			if x < 0 || x+w > g.Width {
				break
			}
			bg := row[x].Bg
			if s.Bg != "" {
				bg = s.Bg
			}
			row[x] = Cell{Ch: r, Fg: s.Fg, Bg: bg, Bold: s.Bold}
			for i := 1; i < w; i++ {
				row[x+i] = Cell{Ch: 0, Bg: bg}
			}
			x += w
		}
	}
	return g.render(row)
}

// Invert returns a span that redraws [x, x+width) of row y with the
// colours of its first cell swapped. Default colours invert to black and
// white.
func (g *Grid) Invert(y, x, width int) Span {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= g.Width {
		return Span{}
	}
	if x+width > g.Width {
		width = g.Width - x
	}
	var b strings.Builder
	for _, c := range g.Rows[y][x : x+width] {
		if c.Ch != 0 {
			b.WriteRune(c.Ch)
		}
	}
	first := g.Rows[y][x]
	fg, bg := first.Bg, first.Fg
	if fg == "" {
		fg = "#000000"
	}
	if bg == "" {
		bg = "#ffffff"
	}
	return Span{X: x, Text: b.String(), Fg: fg, Bg: bg, Bold: first.Bold}
}

// Background returns the painted background at (x, y).
func (g *Grid) Background(x, y int) string {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= g.Width {
		return ""
	}
	return g.Rows[y][x].Bg
}

// Text returns row y without styling.
func (g *Grid) Text(y int) string {
	if y < 0 || y >= len(g.Rows) {
		return ""
	}
	var b strings.Builder
	for _, c := range g.Rows[y] {
		if c.Ch != 0 {
			b.WriteRune(c.Ch)
		}
	}
	return b.String()
}

func (g *Grid) render(row []Cell) string {
	var b strings.Builder
	var run strings.Builder
	var cur styleKey
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(g.style(cur).Render(run.String()))
		run.Reset()
	}
	for i, c := range row {
		if c.Ch == 0 {
			continue
		}
		k := styleKey{fg: c.Fg, bg: c.Bg, bold: c.Bold}
		if i > 0 && k != cur {
			flush()
		}
		cur = k
		run.WriteRune(c.Ch)
	}
	flush()
	return b.String()
}

func (g *Grid) style(k styleKey) lipgloss.Style {
	if s, ok := g.styles[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(k.bold)
	if k.fg != "" {
		s = s.Foreground(lipgloss.Color(k.fg))
	}
	if k.bg != "" {
		s = s.Background(lipgloss.Color(k.bg))
	}
	if g.styles == nil {
		g.styles = make(map[styleKey]lipgloss.Style)
	}
	g.styles[k] = s
	return s
}
