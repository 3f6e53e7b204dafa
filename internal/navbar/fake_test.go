package navbar

import (
	"errors"
	"sync"
)

type fakeElement struct {
	bg     string
	parent *fakeElement
}

func (e *fakeElement) BackgroundColor() string { return e.bg }

func (e *fakeElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// fakeSurface resolves sample points by x coordinate and records how the
// bar's hit state is manipulated.
type fakeSurface struct {
	mu       sync.Mutex
	width    int
	bar      Rect
	hit      HitState
	barEl    *fakeElement
	byX      map[int]*fakeElement
	errAt    map[int]error
	panicAt  map[int]bool
	onPoint  func(x, y int)
	pointsY  []int
	hides    int
	overlaps int
}

func newFakeSurface(width int) *fakeSurface {
	return &fakeSurface{
		width:   width,
		bar:     Rect{X: 0, Y: 0, Width: width, Height: 3},
		hit:     HitState{Visible: true, Interactive: true},
		barEl:   &fakeElement{bg: "transparent", parent: &fakeElement{bg: "#ffffff"}},
		byX:     map[int]*fakeElement{},
		errAt:   map[int]error{},
		panicAt: map[int]bool{},
	}
}

// points returns the three sample x positions for the fake's width.
func (f *fakeSurface) points() [3]int {
	return [3]int{f.width * 25 / 100, f.width * 50 / 100, f.width * 75 / 100}
}

func (f *fakeSurface) paint(bgs ...string) {
	for i, x := range f.points() {
		if i < len(bgs) {
			f.byX[x] = &fakeElement{bg: bgs[i]}
		}
	}
}

func (f *fakeSurface) BarRect() Rect      { return f.bar }
func (f *fakeSurface) ViewportWidth() int { return f.width }

func (f *fakeSurface) ElementAt(x, y int) (Element, error) {
	f.mu.Lock()
	f.pointsY = append(f.pointsY, y)
	hook := f.onPoint
	hit := f.hit
	f.mu.Unlock()

	if hook != nil {
		hook(x, y)
	}
	if f.panicAt[x] {
		panic("layout exploded")
	}
	if err := f.errAt[x]; err != nil {
		return nil, err
	}
	if hit.Visible && hit.Interactive && y < f.bar.Y+f.bar.Height {
		return f.barEl, nil
	}
	el, ok := f.byX[x]
	if !ok {
		return nil, nil
	}
	return el, nil
}

func (f *fakeSurface) BarHitState() HitState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hit
}

func (f *fakeSurface) SetBarHitState(h HitState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h == (HitState{}) {
		if f.hit == (HitState{}) {
			f.overlaps++
		}
		f.hides++
	}
	f.hit = h
}

var errNoElement = errors.New("no element")
