package site

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned for paths no page serves.
var ErrNotFound = errors.New("page not found")

// Kind identifies a page template.
type Kind int

const (
	KindNotFound Kind = iota
	KindHome
	KindTours
	KindTour
	KindGallery
	KindFAQ
	KindTips
	KindWorkshop
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindTours:
		return "tours"
	case KindTour:
		return "tour"
	case KindGallery:
		return "gallery"
	case KindFAQ:
		return "faq"
	case KindTips:
		return "tips"
	case KindWorkshop:
		return "workshop"
	}
	return "not-found"
}

// Route is a resolved path.
type Route struct {
	Path string
	Kind Kind
	// Slug is set for tour detail routes.
	Slug string
}

var static = map[string]Kind{
	"/":         KindHome,
	"/tours":    KindTours,
	"/gallery":  KindGallery,
	"/faq":      KindFAQ,
	"/tips":     KindTips,
	"/workshop": KindWorkshop,
}

// Resolve maps a path to a route. Unknown paths return a KindNotFound
// route together with ErrNotFound.
func Resolve(p string) (Route, error) {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	clean := path.Clean(p)

	if k, ok := static[clean]; ok {
		return Route{Path: clean, Kind: k}, nil
	}
	if slug, ok := strings.CutPrefix(clean, "/tours/"); ok && slug != "" && !strings.Contains(slug, "/") {
		return Route{Path: clean, Kind: KindTour, Slug: slug}, nil
	}
	return Route{Path: clean, Kind: KindNotFound}, fmt.Errorf("%w: %s", ErrNotFound, clean)
}

// History is the shell's back stack.
type History struct {
	stack []string
}

// NewHistory starts a history at path.
func NewHistory(start string) *History {
	return &History{stack: []string{start}}
}

// Push records a visit. Revisiting the current path is a no-op.
func (h *History) Push(p string) {
	if len(h.stack) > 0 && h.stack[len(h.stack)-1] == p {
		return
	}
	h.stack = append(h.stack, p)
}

// Back pops the current path and returns the previous one.
func (h *History) Back() (string, bool) {
	if len(h.stack) < 2 {
		return "", false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.stack[len(h.stack)-1], true
}

// Current returns the path on top of the stack.
func (h *History) Current() string {
	if len(h.stack) == 0 {
		return "/"
	}
	return h.stack[len(h.stack)-1]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.stack)
}
