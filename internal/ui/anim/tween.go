package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// FrameInterval is the tween redraw rate.
const FrameInterval = 16 * time.Millisecond

// FrameMsg advances a tween.
type FrameMsg struct {
	ID   string
	Time time.Time
}

// Tween interpolates a value over a fixed duration. Retargeting mid-way
// starts from the value currently shown.
type Tween struct {
	id       string
	duration time.Duration
	ease     func(float64) float64
	from     float64
	to       float64
	start    time.Time
}

// NewTween creates a tween resting at value. A nil ease is linear.
func NewTween(d time.Duration, value float64, ease func(float64) float64) Tween {
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}
	return Tween{
		id:       uuid.NewString(),
		duration: d,
		ease:     ease,
		from:     value,
		to:       value,
	}
}

// ID returns the tween's identifier.
func (t Tween) ID() string {
	return t.id
}

// Target returns the value the tween is heading to.
func (t Tween) Target() float64 {
	return t.to
}

// Retarget starts moving towards to from the value shown at now. It
// returns nil when already heading there.
func (t *Tween) Retarget(to float64, now time.Time) tea.Cmd {
	if to == t.to {
		return nil
	}
	t.from = t.Value(now)
	t.to = to
	t.start = now
	if t.duration <= 0 {
		t.from = to
		return nil
	}
	return t.frame()
}

// Value returns the interpolated value at now.
func (t Tween) Value(now time.Time) float64 {
	p := t.progress(now)
	return t.from + (t.to-t.from)*t.ease(p)
}

// Running reports whether the tween has not yet reached its target.
func (t Tween) Running(now time.Time) bool {
	return t.from != t.to && t.progress(now) < 1
}

// Update advances on this tween's frames and keeps ticking until done.
func (t Tween) Update(msg tea.Msg) (Tween, tea.Cmd) {
	m, ok := msg.(FrameMsg)
	if !ok || m.ID != t.id {
		return t, nil
	}
	if !t.Running(m.Time) {
		t.from = t.to
		return t, nil
	}
	return t, t.frame()
}

func (t Tween) progress(now time.Time) float64 {
	if t.duration <= 0 || t.start.IsZero() {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t Tween) frame() tea.Cmd {
	id := t.id
	return tea.Tick(FrameInterval, func(now time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: now}
	})
}
