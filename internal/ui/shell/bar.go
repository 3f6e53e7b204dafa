package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/alexcabrera/ridgeline/internal/csscolor"
	"github.com/alexcabrera/ridgeline/internal/navbar"
	"github.com/alexcabrera/ridgeline/internal/render"
	"github.com/alexcabrera/ridgeline/internal/site"
	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

// hitbox is a clickable stretch of a bar or menu row.
type hitbox struct {
	row   int
	x0    int
	x1    int
	href  string
	menu  bool
	audio bool
}

// NavBar draws the navigation bar as spans over the page. It has no
// background of its own; its colours come from the applied theme.
type NavBar struct {
	width  int
	height int
	brand  string

	items      []site.RenderedItem
	foreground string
	theme      navbar.Theme
	menuOpen   bool
	audio      string

	hits []hitbox
}

// NewNavBar creates a bar covering height rows.
func NewNavBar(height int) *NavBar {
	return &NavBar{height: height, audio: shared.AudioOff, theme: navbar.ThemeFor(false)}
}

// SetWidth sets the bar width.
func (b *NavBar) SetWidth(width int) {
	b.width = width
}

// SetBrand sets the logo text.
func (b *NavBar) SetBrand(brand string) {
	b.brand = strings.ToUpper(brand)
}

// SetItems updates the links and their active state.
func (b *NavBar) SetItems(items []site.RenderedItem) {
	b.items = items
}

// SetTheme sets the applied theme and the on-screen foreground, which may
// be mid-transition.
func (b *NavBar) SetTheme(theme navbar.Theme, foreground string) {
	b.theme = theme
	b.foreground = foreground
}

// SetMenuOpen shows or hides the mobile menu panel.
func (b *NavBar) SetMenuOpen(open bool) {
	b.menuOpen = open
}

// SetAudio sets the audio indicator glyphs.
func (b *NavBar) SetAudio(glyphs string) {
	b.audio = glyphs
}

// Collapsed reports whether links are folded into the menu.
func (b *NavBar) Collapsed() bool {
	return b.width < site.NarrowWidth
}

// Height returns the number of rows the bar covers.
func (b *NavBar) Height() int {
	return b.height
}

func (b *NavBar) logo() string {
	mark := "▲"
	if b.theme.Logo == navbar.LogoOnLight {
		mark = "△"
	}
	return mark + " " + b.brand
}

// Rows returns the spans for each bar row, and the menu panel rows below
// it when open. bg reports the page background at a viewport cell so
// translucent controls can be composited onto it.
func (b *NavBar) Rows(bg func(x, row int) string) [][]render.Span {
	b.hits = b.hits[:0]
	rows := make([][]render.Span, b.height)
	mid := b.height / 2
	fg := b.foreground
	if fg == "" {
		fg = b.theme.Foreground.Hex()
	}

	line := []render.Span{{X: 2, Text: b.logo(), Fg: fg, Bold: true}}

	right := b.width - 2
	audioX := right - ansi.StringWidth(b.audio)
	line = append(line, render.Span{X: audioX, Text: b.audio, Fg: fg})
	b.hits = append(b.hits, hitbox{row: mid, x0: audioX, x1: right, audio: true})
	right = audioX - 2

	if b.Collapsed() {
		glyph := shared.IconMenu
		if b.menuOpen {
			glyph = shared.IconClose
		}
		x := right - 3
		border := b.theme.ControlBorder.Over(parse(bg(x, mid))).Hex()
		fill := b.theme.ControlBackground.Over(parse(bg(x+1, mid))).Hex()
		line = append(line,
			render.Span{X: x, Text: "[", Fg: border},
			render.Span{X: x + 1, Text: glyph, Fg: fg, Bg: fill, Bold: true},
			render.Span{X: x + 2, Text: "]", Fg: border},
		)
		b.hits = append(b.hits, hitbox{row: mid, x0: x, x1: x + 3, menu: true})
	} else {
		labels := make([]string, len(b.items))
		total := 0
		for i, it := range b.items {
			labels[i] = fmt.Sprintf("%d %s", it.Key, it.Label)
			total += ansi.StringWidth(labels[i])
		}
		total += 2 * (len(labels) - 1)
		x := right - total
		for i, it := range b.items {
			w := ansi.StringWidth(labels[i])
			line = append(line, render.Span{X: x, Text: labels[i], Fg: fg, Bold: it.Active})
			b.hits = append(b.hits, hitbox{row: mid, x0: x, x1: x + w, href: it.Href})
			x += w + 2
		}
	}
	rows[mid] = line

	if b.menuOpen {
		rows = append(rows, b.menuRows()...)
	}
	return rows
}

func (b *NavBar) menuRows() [][]render.Span {
	width := 0
	for _, it := range b.items {
		if w := ansi.StringWidth(it.Label) + 6; w > width {
			width = w
		}
	}
	x := b.width - width - 2
	if x < 0 {
		x = 0
	}
	blank := render.Span{X: x, Text: strings.Repeat(" ", width), Bg: shared.Night}
	rows := [][]render.Span{{blank}}
	for _, it := range b.items {
		text := fmt.Sprintf("  %d %s", it.Key, it.Label)
		text += strings.Repeat(" ", max(0, width-ansi.StringWidth(text)))
		fg := shared.Chalk
		if it.Active {
			fg = shared.Ember
		}
		row := b.height + len(rows)
		rows = append(rows, []render.Span{{X: x, Text: text, Fg: fg, Bg: shared.Night, Bold: it.Active}})
		b.hits = append(b.hits, hitbox{row: row, x0: x, x1: x + width, href: it.Href})
	}
	return append(rows, []render.Span{blank})
}

// HitTest returns what the bar draws at a viewport cell, from the last
// Rows call.
func (b *NavBar) HitTest(x, row int) (hitbox, bool) {
	for _, h := range b.hits {
		if h.row == row && x >= h.x0 && x < h.x1 {
			return h, true
		}
	}
	return hitbox{}, false
}

func parse(css string) csscolor.RGBA {
	c, err := csscolor.Parse(css)
	if err != nil || c.Transparent() {
		return csscolor.MustParse(shared.Night)
	}
	return c
}
