package navbar

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// HitState is the bar's participation in rendering and hit testing. The
// sampler clears it for the duration of a pass so that element queries see
// what lies behind the bar.
type HitState struct {
	Visible     bool
	Interactive bool
}

// Element is a rendered node found at a screen coordinate.
type Element interface {
	// BackgroundColor returns the computed background as a CSS colour
	// string, e.g. "rgb(20, 17, 15)" or "transparent".
	BackgroundColor() string
	// Parent returns the enclosing element, or a nil interface at the root.
	Parent() Element
}

// Surface is the slice of the rendering engine the sampler needs.
type Surface interface {
	BarRect() Rect
	ViewportWidth() int
	// ElementAt returns the topmost element at (x, y), honouring the bar's
	// current HitState. A nil element with a nil error means nothing is
	// rendered there.
	ElementAt(x, y int) (Element, error)
	BarHitState() HitState
	SetBarHitState(HitState)
}
