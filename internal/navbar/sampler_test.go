package navbar

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grey(v int) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", v, v, v)
}

func runOnce(t *testing.T, s *Sampler) Reading {
	t.Helper()
	var got []Reading
	s.OnReading(func(r Reading) { got = append(got, r) })
	require.True(t, s.Run())
	require.Len(t, got, 1)
	return got[0]
}

func TestSampler_SamplesBelowBarCentre(t *testing.T) {
	f := newFakeSurface(100)
	f.paint("#ffffff", "#ffffff", "#ffffff")

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.Equal(t, 3, r.Points)
	assert.Equal(t, 3, r.Samples)
	assert.InDelta(t, 255, r.Mean, 0.01)
	assert.Equal(t, []int{2, 2, 2}, f.pointsY)
}

func TestSampler_ExcludesBarDuringPass(t *testing.T) {
	f := newFakeSurface(80)
	f.paint("#000000", "#000000", "#000000")

	var during []HitState
	f.onPoint = func(int, int) {
		during = append(during, f.hit)
	}

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	require.Len(t, during, 3)
	for _, h := range during {
		assert.Equal(t, HitState{}, h)
	}
	assert.InDelta(t, 0, r.Mean, 0.01, "bar's own backdrop must not leak into the estimate")
	assert.Equal(t, HitState{Visible: true, Interactive: true}, f.hit)
}

func TestSampler_RestoresExactPriorHitState(t *testing.T) {
	f := newFakeSurface(80)
	f.paint(grey(10), grey(10), grey(10))
	f.hit = HitState{Visible: true, Interactive: false}

	runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.Equal(t, HitState{Visible: true, Interactive: false}, f.hit)
}

func TestSampler_MeanOfMixedPoints(t *testing.T) {
	f := newFakeSurface(120)
	f.paint(grey(200), grey(140), grey(90))

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.InDelta(t, 143.33, r.Mean, 0.01)
	assert.True(t, Classify(r.Mean, false, 128, 0))
}

func TestSampler_WalksUpFromTransparent(t *testing.T) {
	f := newFakeSurface(100)
	section := &fakeElement{bg: "#f4efe6"}
	card := &fakeElement{bg: "rgba(0, 0, 0, 0)", parent: section}
	for _, x := range f.points() {
		f.byX[x] = &fakeElement{bg: "transparent", parent: card}
	}

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.Equal(t, 3, r.Samples)
	assert.Greater(t, r.Mean, 200.0)
}

func TestSampler_AncestorWalkIsBounded(t *testing.T) {
	f := newFakeSurface(100)
	root := &fakeElement{bg: "#ffffff"}
	el := root
	for i := 0; i < 11; i++ {
		el = &fakeElement{bg: "transparent", parent: el}
	}
	for _, x := range f.points() {
		f.byX[x] = el
	}

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))
	assert.Equal(t, 0, r.Samples, "opaque root is eleven levels up")

	// Ten levels up is still reachable.
	f.byX = map[int]*fakeElement{}
	el = root
	for i := 0; i < 10; i++ {
		el = &fakeElement{bg: "transparent", parent: el}
	}
	for _, x := range f.points() {
		f.byX[x] = el
	}
	r = runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))
	assert.Equal(t, 3, r.Samples)
}

func TestSampler_PointFailuresSkipOnlyThatPoint(t *testing.T) {
	f := newFakeSurface(100)
	pts := f.points()
	f.byX[pts[0]] = &fakeElement{bg: "not-a-colour"}
	f.errAt[pts[1]] = errNoElement
	f.byX[pts[2]] = &fakeElement{bg: grey(220)}

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.Equal(t, 3, r.Points)
	assert.Equal(t, 1, r.Samples)
	assert.InDelta(t, 220, r.Mean, 0.01)
}

func TestSampler_NothingRendered(t *testing.T) {
	f := newFakeSurface(100)

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	assert.False(t, r.OK())
	assert.Equal(t, 0, r.Samples)
}

func TestSampler_PanicRestoresBar(t *testing.T) {
	f := newFakeSurface(100)
	f.paint(grey(250), grey(250), grey(250))
	f.panicAt[f.points()[1]] = true

	r := runOnce(t, NewSampler(f, DefaultOptions(), zerolog.Nop()))

	require.Error(t, r.Err)
	assert.False(t, r.OK())
	assert.Equal(t, HitState{Visible: true, Interactive: true}, f.hit)
}

func TestSampler_ReentrantTriggerIsQueued(t *testing.T) {
	f := newFakeSurface(100)
	f.paint(grey(30), grey(30), grey(30))
	s := NewSampler(f, DefaultOptions(), zerolog.Nop())

	var readings []Reading
	s.OnReading(func(r Reading) { readings = append(readings, r) })

	var nested []bool
	f.onPoint = func(int, int) {
		if len(nested) == 0 {
			nested = append(nested, s.Run())
			nested = append(nested, s.Run())
		}
	}

	assert.True(t, s.Run())
	assert.Equal(t, []bool{false, false}, nested, "nested triggers fold into the running pass")
	assert.Len(t, readings, 2, "one queued follow-up regardless of trigger count")
	assert.Equal(t, 2, s.Passes())
	assert.Equal(t, 0, f.overlaps)
	assert.Equal(t, HitState{Visible: true, Interactive: true}, f.hit)
}

func TestSampler_ConcurrentRunsNeverOverlap(t *testing.T) {
	f := newFakeSurface(100)
	f.paint(grey(90), grey(90), grey(90))
	s := NewSampler(f, DefaultOptions(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run()
		}()
	}
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 0, f.overlaps)
	assert.Equal(t, HitState{Visible: true, Interactive: true}, f.hit)
	assert.GreaterOrEqual(t, s.Passes(), 1)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		mean       float64
		wasLight   bool
		hysteresis float64
		want       bool
	}{
		{name: "white", mean: 255, want: true},
		{name: "black", mean: 0, want: false},
		{name: "exactly threshold is dark", mean: 128, want: false},
		{name: "just above", mean: 128.01, want: true},
		{name: "band keeps light", mean: 125, wasLight: true, hysteresis: 8, want: true},
		{name: "band keeps dark", mean: 131, wasLight: false, hysteresis: 8, want: false},
		{name: "leaves band downward", mean: 119, wasLight: true, hysteresis: 8, want: false},
		{name: "leaves band upward", mean: 137, wasLight: false, hysteresis: 8, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mean, tt.wasLight, 128, tt.hysteresis))
		})
	}
}
