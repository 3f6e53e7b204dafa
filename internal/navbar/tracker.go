package navbar

// Machine consumes scroll offsets. *State implements it.
type Machine interface {
	Observe(scrollY int) bool
}

// Tracker forwards every scroll notification to a Machine and reports
// which notifications moved the offset, so each movement can request
// exactly one sampling pass.
type Tracker struct {
	machine Machine
	last    int
}

// NewTracker creates a tracker feeding m.
func NewTracker(m Machine) *Tracker {
	return &Tracker{machine: m}
}

// Notify forwards y unconditionally. moved is true when y differs from the
// previously forwarded offset; visibilityChanged is the machine's verdict.
func (t *Tracker) Notify(y int) (moved, visibilityChanged bool) {
	if y < 0 {
		y = 0
	}
	visibilityChanged = t.machine.Observe(y)
	moved = y != t.last
	t.last = y
	return moved, visibilityChanged
}

// Last returns the most recently forwarded offset.
func (t *Tracker) Last() int {
	return t.last
}
