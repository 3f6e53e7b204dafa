// Package navbar decides whether the site's navigation bar is shown and
// whether its foreground renders light or dark, from the scroll position
// and the colour of the content currently behind the bar.
package navbar

// State is the navigation bar's owned state. A single value lives inside
// a Controller from mount to teardown.
type State struct {
	ScrollY         int
	LastScrollY     int
	Visible         bool
	BackgroundLight bool
	MobileMenuOpen  bool
}

// NewState returns the mount-time state: shown, dark theme assumed.
func NewState() State {
	return State{Visible: true}
}

// Observe runs the visibility state machine for one scroll offset and
// reports whether Visible changed. The top of the page always shows the
// bar; scrolling down hides it and closes the mobile menu; scrolling up
// shows it; no movement leaves it alone.
func (s *State) Observe(scrollY int) bool {
	if scrollY < 0 {
		scrollY = 0
	}
	s.ScrollY = scrollY

	was := s.Visible
	switch {
	case scrollY == 0:
		s.Visible = true
	case scrollY > s.LastScrollY:
		s.Visible = false
		s.MobileMenuOpen = false
	case scrollY < s.LastScrollY:
		s.Visible = true
	}
	s.LastScrollY = scrollY

	return was != s.Visible
}
