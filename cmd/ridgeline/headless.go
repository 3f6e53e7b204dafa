package main

import (
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/navbar"
	"github.com/alexcabrera/ridgeline/internal/render"
	"github.com/alexcabrera/ridgeline/internal/site"
	"github.com/alexcabrera/ridgeline/internal/ui/shell"
)

const fallbackWidth = 100

// terminalWidth returns the width of stdout, or fallbackWidth when it is
// not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// headless is a page laid out off-screen with a bar controller over it.
type headless struct {
	page    *site.Page
	grid    *render.Grid
	surface *render.Surface
	ctrl    *navbar.Controller
	brand   string
	bar     int
}

// newHeadless builds route at width with a viewport height rows tall, or
// the whole page when height is 0. A missing route still yields the
// not-found page along with the error.
func newHeadless(cfg config.Config, catalog *content.Catalog, route string, width, height int, log zerolog.Logger) (*headless, error) {
	b := site.Builder{
		Catalog:   catalog,
		Width:     width,
		BarHeight: cfg.Nav.BarHeight,
		Hero:      site.HeroReady,
	}
	page, err := b.Page(route)

	h := &headless{
		page:    page,
		grid:    render.Paint(page.Doc, width),
		surface: render.NewSurface(cfg.Nav.BarHeight),
		brand:   catalog.Site.Brand,
		bar:     cfg.Nav.BarHeight,
	}
	if height <= 0 {
		height = h.grid.Height()
	}
	h.surface.SetDocument(page.Doc)
	h.surface.SetViewport(width, height)
	h.ctrl = navbar.NewController(h.surface, cfg.NavOptions(), log.With().Str("component", "navbar").Logger())
	h.ctrl.Mount()
	return h, err
}

// scroll forwards y like a scroll event and samples when it moved.
func (h *headless) scroll(y int) {
	if y < 0 {
		y = 0
	}
	h.surface.SetScroll(y)
	moved := h.ctrl.Scroll(y)
	h.surface.SetBarShown(h.ctrl.State().Visible)
	if moved {
		h.ctrl.Sample()
	}
}

// lines renders the page from row top, height rows tall, with the bar
// drawn in its settled theme.
func (h *headless) lines(top, height int) []string {
	st := h.ctrl.State()
	theme := h.ctrl.Theme()

	var rows [][]render.Span
	if st.Visible {
		bar := shell.NewNavBar(h.bar)
		bar.SetWidth(h.grid.Width)
		bar.SetBrand(h.brand)
		bar.SetItems(site.Build(h.page.Route.Path))
		bar.SetTheme(theme, theme.Foreground.Hex())
		bar.SetMenuOpen(st.MobileMenuOpen)
		rows = bar.Rows(func(x, row int) string {
			return h.grid.Background(x, top+row)
		})
	}

	out := make([]string, 0, height)
	for i := 0; i < height; i++ {
		var spans []render.Span
		if i < len(rows) {
			spans = rows[i]
		}
		out = append(out, h.grid.Compose(top+i, spans...))
	}
	return out
}
