package navbar

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexcabrera/ridgeline/internal/pubsub"
)

// EventKind tells subscribers what changed.
type EventKind string

const (
	VisibilityChanged EventKind = "visibility"
	ThemeChanged      EventKind = "theme"
	SampleCompleted   EventKind = "sample"
)

// Event is published on the controller's broker.
type Event struct {
	Kind    EventKind
	State   State
	Reading Reading
	Token   Token
}

// Controller owns the bar's State and is the only path that mutates it.
type Controller struct {
	mu      sync.Mutex
	state   State
	tracker *Tracker
	applier *Applier
	sampler *Sampler
	opts    Options
	last    Reading
	now     func() time.Time

	events *pubsub.Broker[Event]
	log    zerolog.Logger
}

// NewController creates a controller sampling surface.
func NewController(surface Surface, opts Options, log zerolog.Logger) *Controller {
	c := &Controller{
		state:   NewState(),
		applier: NewApplier(opts.ThemeTransition),
		opts:    opts,
		now:     time.Now,
		events:  pubsub.NewBroker[Event](32),
		log:     log,
	}
	c.tracker = NewTracker(&c.state)
	c.sampler = NewSampler(surface, opts, log)
	c.sampler.OnReading(c.apply)
	return c
}

// SetClock replaces the time source used for transitions.
func (c *Controller) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Mount applies the initial dark-backdrop theme.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applier.Apply(c.state.BackgroundLight, c.now())
}

// Scroll handles one scroll notification. It reports whether the offset
// moved, in which case the caller should schedule a Sample.
func (c *Controller) Scroll(y int) bool {
	c.mu.Lock()
	moved, changed := c.tracker.Notify(y)
	st := c.state
	c.mu.Unlock()

	if changed {
		c.log.Debug().Int("scroll_y", st.ScrollY).Bool("visible", st.Visible).Msg("bar visibility changed")
		c.publish(Event{Kind: VisibilityChanged, State: st})
	}
	return moved
}

// Sample runs a sampling pass. It returns false when the request was
// queued behind a pass already in flight.
func (c *Controller) Sample() bool {
	return c.sampler.Run()
}

func (c *Controller) apply(r Reading) {
	c.mu.Lock()
	c.last = r
	themeChanged := false
	if r.OK() {
		light := Classify(r.Mean, c.state.BackgroundLight, c.opts.Threshold, c.opts.Hysteresis)
		c.state.BackgroundLight = light
		themeChanged = c.applier.Apply(light, c.now())
	}
	st := c.state
	token := c.applier.Theme().Token
	c.mu.Unlock()

	c.publish(Event{Kind: SampleCompleted, State: st, Reading: r, Token: token})
	if themeChanged {
		c.log.Debug().Float64("mean", r.Mean).Str("token", string(token)).Msg("bar theme changed")
		c.publish(Event{Kind: ThemeChanged, State: st, Reading: r, Token: token})
	}
}

// ToggleMobileMenu flips the mobile menu while the bar is shown and
// returns the new value.
func (c *Controller) ToggleMobileMenu() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Visible {
		c.state.MobileMenuOpen = false
		return false
	}
	c.state.MobileMenuOpen = !c.state.MobileMenuOpen
	return c.state.MobileMenuOpen
}

// CloseMobileMenu closes the mobile menu.
func (c *Controller) CloseMobileMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.MobileMenuOpen = false
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Theme returns the applied theme.
func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applier.Theme()
}

// Foreground returns the on-screen foreground colour, mid-transition if
// one is running.
func (c *Controller) Foreground() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applier.Foreground(c.now())
}

// Animating reports whether a theme transition is running.
func (c *Controller) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applier.Animating(c.now())
}

// LastReading returns the most recent pass result.
func (c *Controller) LastReading() Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Passes returns the number of completed sampling passes.
func (c *Controller) Passes() int {
	return c.sampler.Passes()
}

// Events returns the broker carrying visibility, sample and theme events.
func (c *Controller) Events() *pubsub.Broker[Event] {
	return c.events
}

func (c *Controller) publish(e Event) {
	if dropped := c.events.Publish(e); dropped > 0 {
		c.log.Debug().Str("event", string(e.Kind)).Int("dropped", dropped).Msg("slow event subscriber")
	}
}
