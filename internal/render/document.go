// Package render lays out site pages as a tree of coloured boxes, paints
// them into a cell grid, and answers "what is drawn here" queries for the
// navigation bar's sampler.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/alexcabrera/ridgeline/internal/navbar"
)

// Direction controls how a node stacks its children.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// Node is one box in a page. Background and Foreground are CSS colour
// strings; an empty Background is transparent.
type Node struct {
	ID         string
	Kind       string
	Background string
	Foreground string
	Bold       bool
	Center     bool
	Text       string
	PadX       int
	PadY       int
	Gap        int
	MinHeight  int
	Direction  Direction
	Link       string
	Children   []*Node

	parent *Node
	rect   navbar.Rect
	lines  []string
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// BackgroundColor implements navbar.Element.
func (n *Node) BackgroundColor() string {
	if n.Background == "" {
		return "transparent"
	}
	return n.Background
}

// Parent implements navbar.Element.
func (n *Node) Parent() navbar.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Rect returns the node's laid-out rectangle in document coordinates.
func (n *Node) Rect() navbar.Rect {
	return n.rect
}

// Lines returns the wrapped text lines from the last layout.
func (n *Node) Lines() []string {
	return n.lines
}

// TextRects returns the rectangle of each wrapped text line, in document
// coordinates, as painted.
func (n *Node) TextRects() []navbar.Rect {
	r := n.rect
	cw := r.Width - 2*n.PadX
	out := make([]navbar.Rect, 0, len(n.lines))
	for i, line := range n.lines {
		w := ansi.StringWidth(line)
		x := r.X + n.PadX
		if n.Center {
			if pad := (cw - w) / 2; pad > 0 {
				x += pad
			}
		}
		out = append(out, navbar.Rect{X: x, Y: r.Y + n.PadY + i, Width: w, Height: 1})
	}
	return out
}

func (n *Node) contains(x, y int) bool {
	r := n.rect
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Document is a laid-out page.
type Document struct {
	Title string
	Root  *Node

	width  int
	height int
}

// NewDocument wraps root.
func NewDocument(title string, root *Node) *Document {
	return &Document{Title: title, Root: root}
}

// Layout positions every node for a viewport of the given width.
func (d *Document) Layout(width int) {
	if width < 1 {
		width = 1
	}
	d.width = width
	d.height = layout(d.Root, 0, 0, width)
}

// Width returns the width of the last layout.
func (d *Document) Width() int {
	return d.width
}

// Height returns the total height of the last layout in rows.
func (d *Document) Height() int {
	return d.height
}

// Hit returns the deepest node covering (x, y) in document coordinates,
// or nil. Later siblings sit on top of earlier ones.
func (d *Document) Hit(x, y int) *Node {
	if d.Root == nil || !d.Root.contains(x, y) {
		return nil
	}
	n := d.Root
	for {
		var next *Node
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i].contains(x, y) {
				next = n.Children[i]
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// Find returns the node with the given ID.
func (d *Document) Find(id string) *Node {
	return find(d.Root, id)
}

// Links returns link nodes in document order.
func (d *Document) Links() []*Node {
	var out []*Node
	walk(d.Root, func(n *Node) {
		if n.Link != "" {
			out = append(out, n)
		}
	})
	return out
}

func find(n *Node, id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if f := find(c, id); f != nil {
			return f
		}
	}
	return nil
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

func layout(n *Node, x, y, w int) int {
	if n == nil {
		return 0
	}
	cx := x + n.PadX
	cw := w - 2*n.PadX
	if cw < 1 {
		cw = 1
	}
	cy := y + n.PadY

	n.lines = nil
	if n.Text != "" {
		n.lines = wrap(n.Text, cw)
		cy += len(n.lines)
		if len(n.Children) > 0 {
			cy += n.Gap
		}
	}

	switch n.Direction {
	case Horizontal:
		cy += layoutRow(n, cx, cy, cw)
	default:
		for i, c := range n.Children {
			if i > 0 {
				cy += n.Gap
			}
			cy += layout(c, cx, cy, cw)
		}
	}

	h := cy - y + n.PadY
	if h < n.MinHeight {
		h = n.MinHeight
	}
	n.rect = navbar.Rect{X: x, Y: y, Width: w, Height: h}
	return h
}

// layoutRow places children side by side with equal widths and stretches
// them to the tallest.
func layoutRow(n *Node, x, y, w int) int {
	k := len(n.Children)
	if k == 0 {
		return 0
	}
	avail := w - n.Gap*(k-1)
	if avail < k {
		avail = k
	}
	each := avail / k

	tallest := 0
	cx := x
	for i, c := range n.Children {
		cw := each
		if i == k-1 {
			cw = avail - each*(k-1)
		}
		if h := layout(c, cx, y, cw); h > tallest {
			tallest = h
		}
		cx += cw + n.Gap
	}
	for _, c := range n.Children {
		c.rect.Height = tallest
	}
	return tallest
}

func wrap(text string, width int) []string {
	wrapped := ansi.Wrap(strings.TrimRight(text, "\n"), width, "")
	return strings.Split(wrapped, "\n")
}
