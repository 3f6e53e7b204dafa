package render

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexcabrera/ridgeline/internal/navbar"
)

func stripes() *Document {
	root := &Node{ID: "page", Background: "#ffffff"}
	root.Add(
		&Node{ID: "dark", Background: "#101010", MinHeight: 10},
		&Node{ID: "light", Background: "#fafafa", MinHeight: 10},
	)
	doc := NewDocument("stripes", root)
	doc.Layout(40)
	return doc
}

func newTestSurface() *Surface {
	s := NewSurface(3)
	s.SetDocument(stripes())
	s.SetViewport(40, 12)
	return s
}

func TestSurfaceElementAt(t *testing.T) {
	s := newTestSurface()

	el, err := s.ElementAt(5, 1)
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, "transparent", el.BackgroundColor(), "bar layer is on top")

	el, err = s.ElementAt(5, 5)
	require.NoError(t, err)
	assert.Equal(t, "#101010", el.BackgroundColor())

	s.SetScroll(8)
	el, err = s.ElementAt(5, 5)
	require.NoError(t, err)
	assert.Equal(t, "#fafafa", el.BackgroundColor())
}

func TestSurfaceOutOfBounds(t *testing.T) {
	s := newTestSurface()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {40, 0}, {0, 12}} {
		_, err := s.ElementAt(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
}

func TestSurfaceBarHidden(t *testing.T) {
	s := newTestSurface()

	s.SetBarHitState(navbar.HitState{})
	el, err := s.ElementAt(5, 1)
	require.NoError(t, err)
	assert.Equal(t, "#101010", el.BackgroundColor())

	s.SetBarHitState(navbar.HitState{Visible: true, Interactive: true})
	s.SetBarShown(false)
	el, err = s.ElementAt(5, 1)
	require.NoError(t, err)
	assert.Equal(t, "#101010", el.BackgroundColor())
}

func TestSurfaceBarParentIsPage(t *testing.T) {
	s := newTestSurface()
	el, err := s.ElementAt(0, 0)
	require.NoError(t, err)
	parent := el.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "#ffffff", parent.BackgroundColor())
}

func TestSurfacePastDocumentEnd(t *testing.T) {
	s := newTestSurface()
	s.SetScroll(15)
	el, err := s.ElementAt(0, 10)
	require.NoError(t, err)
	assert.Nil(t, el, "no element below the page")
}

func TestSurfaceSampling(t *testing.T) {
	s := newTestSurface()
	var got []navbar.Reading
	sm := navbar.NewSampler(s, navbar.DefaultOptions(), zerolog.Nop())
	sm.OnReading(func(r navbar.Reading) { got = append(got, r) })

	require.True(t, sm.Run())
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Samples)
	assert.InDelta(t, 16, got[0].Mean, 0.01)
	assert.Equal(t, navbar.HitState{Visible: true, Interactive: true}, s.BarHitState(), "hit state restored")

	s.SetScroll(12)
	require.True(t, sm.Run())
	require.Len(t, got, 2)
	assert.InDelta(t, 250, got[1].Mean, 0.01)
}
