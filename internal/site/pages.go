package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/render"
	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

// NarrowWidth is the viewport width below which rows stack and the bar
// collapses its links into a menu.
const NarrowWidth = 72

// Page is a built route.
type Page struct {
	Route Route
	Title string
	Doc   *render.Document
}

// Builder turns routes into documents for one viewport width.
type Builder struct {
	Catalog *content.Catalog
	Width   int
	// BarHeight is the number of rows the navigation bar covers. Page
	// headers pad below it.
	BarHeight int
	Hero      HeroState
}

// Page resolves p and builds it. Unknown paths and unknown tours build
// the not-found page and return an error wrapping ErrNotFound.
func (b Builder) Page(p string) (*Page, error) {
	r, err := Resolve(p)
	if err != nil {
		return b.notFound(r), err
	}
	return b.Build(r)
}

// Build builds a resolved route.
func (b Builder) Build(r Route) (*Page, error) {
	var (
		title string
		root  *render.Node
	)
	switch r.Kind {
	case KindHome:
		title, root = b.Catalog.Site.Brand, b.home()
	case KindTours:
		title, root = "Tours", b.tours()
	case KindTour:
		t, err := b.Catalog.Tour(r.Slug)
		if err != nil {
			return b.notFound(r), fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		title, root = t.Name, b.tour(r, t)
	case KindGallery:
		title, root = "Gallery", b.gallery()
	case KindFAQ:
		title, root = "FAQ", b.faq()
	case KindTips:
		title, root = "Travel tips", b.tips()
	case KindWorkshop:
		title, root = b.Catalog.Workshop.Title, b.workshop()
	default:
		return b.notFound(r), fmt.Errorf("%w: %s", ErrNotFound, r.Path)
	}
	return &Page{Route: r, Title: title, Doc: render.NewDocument(title, root)}, nil
}

// IsNotFound reports whether err came from an unknown path or tour.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (b Builder) narrow() bool {
	return b.Width < NarrowWidth
}

func (b Builder) page(id string) *render.Node {
	return &render.Node{ID: id, Background: shared.Night, Foreground: shared.Chalk}
}

func section(id, bg, fg string) *render.Node {
	return &render.Node{ID: id, Background: bg, Foreground: fg, PadX: 2, PadY: 1, Gap: 1}
}

func heading(text string) *render.Node {
	return &render.Node{Text: text, Bold: true}
}

func para(text string) *render.Node {
	return &render.Node{Text: strings.TrimSpace(text)}
}

func link(label, href string) *render.Node {
	return &render.Node{
		ID:   "link:" + href,
		Text: shared.IconArrowRight + " " + label,
		Link: href,
		Bold: true,
	}
}

// row lays children side by side, or stacks them on narrow viewports.
func (b Builder) row(id string, children ...*render.Node) *render.Node {
	n := &render.Node{ID: id, Gap: 1}
	if !b.narrow() {
		n.Direction = render.Horizontal
		n.Gap = 2
	}
	return n.Add(children...)
}

func (b Builder) markdown(md string) *render.Node {
	return &render.Node{Text: shared.RenderMarkdown(md, b.Width-4)}
}

func (b Builder) header(id, title, subtitle string, crumbs []Crumb) *render.Node {
	h := &render.Node{
		ID:         id,
		Background: shared.Slate,
		Foreground: shared.Chalk,
		PadX:       2,
		Gap:        1,
	}
	inner := &render.Node{Gap: 1}
	spacer := &render.Node{MinHeight: b.BarHeight}
	if len(crumbs) > 0 {
		labels := make([]string, 0, len(crumbs))
		for _, c := range crumbs {
			labels = append(labels, c.Label)
		}
		inner.Add(&render.Node{Text: strings.Join(labels, " "+shared.IconCrumb+" "), Foreground: shared.Stone})
	}
	inner.Add(heading(strings.ToUpper(title)))
	if subtitle != "" {
		inner.Add(para(subtitle))
	}
	h.Add(spacer, inner, &render.Node{MinHeight: 1})
	return h
}

func (b Builder) footer() *render.Node {
	s := b.Catalog.Site
	f := section("footer", shared.Night, shared.Stone)
	contact := fmt.Sprintf("WhatsApp %s %s %s", s.WhatsApp, shared.IconDot, s.Email)
	return f.Add(
		&render.Node{Text: s.Brand, Bold: true, Foreground: shared.Chalk},
		para(s.Tagline),
		para(contact),
	)
}

func (b Builder) hero() *render.Node {
	s := b.Catalog.Site
	h := &render.Node{
		ID:         "hero",
		Background: shared.Night,
		Foreground: shared.Chalk,
		MinHeight:  b.BarHeight + 14,
		Gap:        1,
	}
	h.Add(&render.Node{MinHeight: b.BarHeight})

	switch b.Hero {
	case HeroLoading:
		h.Add(&render.Node{
			ID:         "hero-placeholder",
			Background: "#16191d",
			Foreground: shared.Stone,
			Center:     true,
			PadY:       4,
			Text:       shared.FramesHero[0],
		})
		return h
	case HeroReady:
		if art, pad, ok := artBlock(s.Hero.Art, b.Width); ok {
			h.Add(&render.Node{ID: "hero-art", Text: art, PadX: pad, Foreground: shared.Stone})
		}
	default:
		h.Background = shared.Slate
	}
	h.Add(
		&render.Node{Text: s.Hero.Title, Bold: true, Center: true},
		&render.Node{Text: s.Hero.Subtitle, Center: true},
		&render.Node{Text: shared.IconArrowRight + " " + s.Hero.CTA, Link: "/tours", Center: true, Bold: true, Foreground: shared.Ember},
	)
	return h
}

// artBlock strips the art's shared indent and returns the left padding
// that centres it. ok is false when it does not fit.
func artBlock(art string, width int) (string, int, bool) {
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	indent, widest := -1, 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if n := len(l) - len(strings.TrimLeft(l, " ")); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		return "", 0, false
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		}
		if w := ansi.StringWidth(lines[i]); w > widest {
			widest = w
		}
	}
	if widest+4 > width {
		return "", 0, false
	}
	return strings.Join(lines, "\n"), (width - widest) / 2, true
}

func (b Builder) tourCard(t content.Tour) *render.Node {
	card := &render.Node{ID: "card:" + t.Slug, Background: shared.Paper, Foreground: shared.Ink, PadX: 2, PadY: 1, Gap: 1}
	return card.Add(
		heading(t.Name),
		&render.Node{Text: tourMeta(t), Foreground: shared.Stone},
		para(t.Summary),
		link("View tour", t.Path()),
	)
}

func tourMeta(t content.Tour) string {
	return fmt.Sprintf("%d days %s %d km %s %s %s from €%d",
		t.Days, shared.IconDot, t.DistanceKM, shared.IconDot, t.Difficulty, shared.IconDot, t.PriceEUR)
}

func (b Builder) home() *render.Node {
	s := b.Catalog.Site
	root := b.page("home")

	about := section("about", shared.Sand, shared.Ink).Add(
		heading("WHO WE ARE"),
		para(s.About),
	)

	var cards []*render.Node
	for _, t := range b.Catalog.Featured() {
		cards = append(cards, b.tourCard(t))
	}
	featured := section("featured", shared.Sand, shared.Ink).Add(
		heading("FEATURED TOURS"),
		b.row("featured-cards", cards...),
		link("All tours", "/tours"),
	)

	cta := section("cta", shared.Ember, shared.Paper).Add(
		heading("READY TO RIDE?"),
		para(fmt.Sprintf("Message us on WhatsApp at %s and we will find you a date.", s.WhatsApp)),
	)

	return root.Add(b.hero(), about, featured, cta, b.footer())
}

func (b Builder) tours() *render.Node {
	root := b.page("tours")
	root.Add(b.header("tours-header", "Tours", "Every route scouted, every night booked.", Breadcrumbs("/tours", nil)))
	for i, t := range b.Catalog.Tours {
		bg := shared.Sand
		if i%2 == 1 {
			bg = shared.Paper
		}
		s := section("tour:"+t.Slug, bg, shared.Ink).Add(
			heading(t.Name),
			&render.Node{Text: t.Region, Foreground: shared.Stone},
			para(tourMeta(t)),
			para(t.Summary),
			link("View itinerary", t.Path()),
		)
		root.Add(s)
	}
	return root.Add(b.footer())
}

func (b Builder) tour(r Route, t content.Tour) *render.Node {
	root := b.page("tour")
	crumbs := Breadcrumbs(r.Path, func(seg string) string {
		if seg == t.Slug {
			return t.Name
		}
		return ""
	})
	root.Add(b.header("tour-header", t.Name, t.Region, crumbs))

	fact := func(label, value string) *render.Node {
		n := &render.Node{Background: shared.Paper, PadX: 1, PadY: 1}
		return n.Add(&render.Node{Text: label, Foreground: shared.Stone}, heading(value))
	}
	facts := b.row("facts",
		fact("Days", fmt.Sprint(t.Days)),
		fact("Distance", fmt.Sprintf("%d km", t.DistanceKM)),
		fact("Level", string(t.Difficulty)),
		fact("From", fmt.Sprintf("€%d", t.PriceEUR)),
	)
	overview := section("overview", shared.Sand, shared.Ink).Add(
		para(t.Summary),
		facts,
		&render.Node{Text: "Season: " + t.Season, Foreground: shared.Stone},
	)

	highlights := section("highlights", shared.Paper, shared.Ink).Add(heading("HIGHLIGHTS"))
	for _, h := range t.Highlights {
		highlights.Add(&render.Node{Text: shared.IconBullet + " " + h})
	}

	itinerary := section("itinerary", shared.Slate, shared.Chalk).Add(heading("ITINERARY"))
	for _, st := range t.Itinerary {
		line := fmt.Sprintf("Day %-2d %s", st.Day, st.Title)
		if st.KM > 0 {
			line += fmt.Sprintf(" (%d km)", st.KM)
		}
		itinerary.Add(&render.Node{Text: line})
	}

	enquire := section("enquire", shared.Ember, shared.Paper).Add(
		heading("ASK ABOUT DATES"),
		para(fmt.Sprintf("WhatsApp %s, or run `ridgeline contact`.", b.Catalog.Site.WhatsApp)),
		link("Back to all tours", "/tours"),
	)

	return root.Add(overview, highlights, itinerary, enquire, b.footer())
}

func (b Builder) gallery() *render.Node {
	root := b.page("gallery")
	root.Add(b.header("gallery-header", "Gallery", "From the road, unfiltered.", Breadcrumbs("/gallery", nil)))

	body := section("gallery-body", shared.Sand, shared.Ink)
	tiles := b.Catalog.Gallery
	for i := 0; i < len(tiles); i += 2 {
		var pair []*render.Node
		for _, p := range tiles[i:min(i+2, len(tiles))] {
			pair = append(pair, b.tile(p))
		}
		body.Add(b.row(fmt.Sprintf("gallery-row-%d", i/2), pair...))
	}
	return root.Add(body, b.footer())
}

func (b Builder) tile(p content.Photo) *render.Node {
	bg, fg := shared.Paper, shared.Ink
	if p.Tone == "dark" {
		bg, fg = shared.Slate, shared.Chalk
	}
	t := &render.Node{Background: bg, Foreground: fg, PadX: 2, PadY: 1, Gap: 1, MinHeight: 7}
	t.Add(heading(p.Title), para(p.Caption))
	if p.Tour != "" {
		if tour, err := b.Catalog.Tour(p.Tour); err == nil {
			t.Add(link(tour.Name, tour.Path()))
		}
	}
	return t
}

func (b Builder) faq() *render.Node {
	root := b.page("faq")
	root.Add(b.header("faq-header", "FAQ", "What riders ask before they book.", Breadcrumbs("/faq", nil)))

	body := section("faq-body", shared.Sand, shared.Ink)
	for _, q := range b.Catalog.FAQ {
		body.Add(heading(q.Question), b.markdown(q.Answer))
	}
	return root.Add(body, b.footer())
}

func (b Builder) tips() *render.Node {
	root := b.page("tips")
	root.Add(b.header("tips-header", "Travel tips", "Notes from a few hundred thousand kilometres.", Breadcrumbs("/tips", nil)))
	for i, tip := range b.Catalog.Tips {
		bg := shared.Paper
		if i%2 == 1 {
			bg = shared.Sand
		}
		root.Add(section(fmt.Sprintf("tip-%d", i), bg, shared.Ink).Add(
			heading(strings.ToUpper(tip.Title)),
			b.markdown(tip.Body),
		))
	}
	return root.Add(b.footer())
}

func (b Builder) workshop() *render.Node {
	w := b.Catalog.Workshop
	root := b.page("workshop")
	root.Add(b.header("workshop-header", w.Title, "", Breadcrumbs("/workshop", nil)))
	root.Add(section("workshop-intro", shared.Moss, shared.Chalk).Add(para(w.Intro)))

	var cards []*render.Node
	for _, s := range w.Services {
		card := &render.Node{Background: shared.Paper, PadX: 2, PadY: 1, Gap: 1}
		cards = append(cards, card.Add(
			heading(s.Name),
			para(s.Description),
			&render.Node{Text: fmt.Sprintf("€%d", s.PriceEUR), Bold: true, Foreground: shared.Ember},
		))
	}
	root.Add(section("services", shared.Sand, shared.Ink).Add(
		heading("SERVICES"),
		b.row("service-cards", cards...),
	))
	return root.Add(b.footer())
}

func (b Builder) notFound(r Route) *Page {
	root := b.page("not-found")
	root.Add(
		b.header("not-found-header", "Page not found", r.Path, nil),
		section("not-found-body", shared.Sand, shared.Ink).Add(
			para("That road does not exist. Try one of these instead."),
			link("Home", "/"),
			link("Tours", "/tours"),
		),
		b.footer(),
	)
	return &Page{
		Route: Route{Path: r.Path, Kind: KindNotFound},
		Title: "Not found",
		Doc:   render.NewDocument("Not found", root),
	}
}
