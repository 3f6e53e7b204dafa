package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexcabrera/ridgeline/internal/navbar"
)

// ErrOutOfBounds is returned for queries outside the viewport.
var ErrOutOfBounds = errors.New("render: point outside viewport")

// Surface is the on-screen composition of a scrolled document under a
// fixed navigation bar layer. It implements navbar.Surface.
type Surface struct {
	mu        sync.Mutex
	doc       *Document
	width     int
	height    int
	scroll    int
	barHeight int
	barShown  bool
	hit       navbar.HitState
	bar       *Node
}

// NewSurface creates a surface whose bar occupies the top barHeight rows.
func NewSurface(barHeight int) *Surface {
	return &Surface{
		barHeight: barHeight,
		barShown:  true,
		hit:       navbar.HitState{Visible: true, Interactive: true},
		bar:       &Node{ID: "navbar", Kind: "nav"},
	}
}

// SetDocument swaps the page under the bar. The bar layer becomes a child
// of the page root, as a fixed header is a child of the page body.
func (s *Surface) SetDocument(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.bar.parent = nil
	if doc != nil {
		s.bar.parent = doc.Root
	}
}

// SetViewport sets the visible size in cells.
func (s *Surface) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.bar.rect = navbar.Rect{Width: width, Height: s.barHeight}
}

// SetScroll sets the document row shown at the top of the viewport.
func (s *Surface) SetScroll(y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 {
		y = 0
	}
	s.scroll = y
}

// SetBarShown records whether the bar is currently drawn.
func (s *Surface) SetBarShown(shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barShown = shown
}

// BarRect implements navbar.Surface.
func (s *Surface) BarRect() navbar.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return navbar.Rect{Width: s.width, Height: s.barHeight}
}

// ViewportWidth implements navbar.Surface.
func (s *Surface) ViewportWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// BarHitState implements navbar.Surface.
func (s *Surface) BarHitState() navbar.HitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hit
}

// SetBarHitState implements navbar.Surface.
func (s *Surface) SetBarHitState(h navbar.HitState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit = h
}

// ElementAt implements navbar.Surface. (x, y) are viewport coordinates.
func (s *Surface) ElementAt(x, y int) (navbar.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	if s.barShown && s.hit.Visible && s.hit.Interactive && y < s.barHeight {
		return s.bar, nil
	}
	if s.doc == nil {
		return nil, nil
	}
	n := s.doc.Hit(x, y+s.scroll)
	if n == nil {
		return nil, nil
	}
	return n, nil
}
