package navbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexcabrera/ridgeline/internal/csscolor"
)

// Options tunes sampling and theming.
type Options struct {
	// SampleOffset is how many rows below the bar's vertical centre the
	// sampling line sits.
	SampleOffset int
	// AncestorDepth bounds the walk up from a transparent element. Zero uses
	// the default.
	AncestorDepth int
	// Threshold is the mean brightness above which the background counts
	// as light.
	Threshold float64
	// Hysteresis widens the threshold into a dead band. Zero disables it.
	Hysteresis float64
	// ThemeTransition is the duration of the foreground colour change.
	ThemeTransition time.Duration
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		SampleOffset:    1,
		AncestorDepth:   10,
		Threshold:       128,
		Hysteresis:      0,
		ThemeTransition: 600 * time.Millisecond,
	}
}

// samplePoints are the horizontal sample positions as percentages of the
// viewport width.
var samplePoints = []int{25, 50, 75}

// Reading is the outcome of one sampling pass.
type Reading struct {
	Points  int
	Samples int
	Mean    float64
	Err     error
}

// OK reports whether the pass produced at least one valid sample.
func (r Reading) OK() bool {
	return r.Err == nil && r.Samples > 0
}

// Classify turns a mean brightness into light/dark given the previous
// classification. With a zero hysteresis this is mean > threshold.
func Classify(mean float64, wasLight bool, threshold, hysteresis float64) bool {
	if hysteresis <= 0 {
		return mean > threshold
	}
	if wasLight {
		return mean > threshold-hysteresis
	}
	return mean > threshold+hysteresis
}

// Sampler estimates the brightness of the content behind the bar.
//
// Passes never overlap. A Run that arrives while another pass is in flight
// (from another goroutine, or re-entrantly from inside a Surface call)
// marks a single pending pass and returns; the in-flight Run executes it
// once its own pass has restored the bar.
type Sampler struct {
	surface   Surface
	opts      Options
	log       zerolog.Logger
	onReading func(Reading)

	mu      sync.Mutex
	running bool
	pending bool
	passes  int
}

// NewSampler creates a sampler over surface.
func NewSampler(surface Surface, opts Options, log zerolog.Logger) *Sampler {
	if opts.AncestorDepth <= 0 {
		opts.AncestorDepth = DefaultOptions().AncestorDepth
	}
	return &Sampler{
		surface: surface,
		opts:    opts,
		log:     log,
	}
}

// OnReading registers the callback that receives every completed pass in
// execution order.
func (s *Sampler) OnReading(fn func(Reading)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReading = fn
}

// Run executes a sampling pass, plus at most one queued follow-up. It
// returns false when the request was folded into a pass already running.
func (s *Sampler) Run() bool {
	s.mu.Lock()
	if s.running {
		s.pending = true
		s.mu.Unlock()
		return false
	}
	s.running = true
	s.mu.Unlock()

	for {
		r := s.pass()

		s.mu.Lock()
		s.passes++
		fn := s.onReading
		s.mu.Unlock()

		if fn != nil {
			fn(r)
		}

		s.mu.Lock()
		if !s.pending {
			s.running = false
			s.mu.Unlock()
			return true
		}
		s.pending = false
		s.mu.Unlock()
	}
}

// Passes returns the number of completed passes.
func (s *Sampler) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}

func (s *Sampler) pass() (r Reading) {
	defer func() {
		if p := recover(); p != nil {
			r = Reading{Points: r.Points, Err: fmt.Errorf("sampling pass panicked: %v", p)}
			s.log.Warn().Err(r.Err).Msg("sampling pass aborted")
		}
	}()

	rect := s.surface.BarRect()
	y := rect.Y + rect.Height/2 + s.opts.SampleOffset
	width := s.surface.ViewportWidth()

	saved := s.surface.BarHitState()
	s.surface.SetBarHitState(HitState{})
	defer s.surface.SetBarHitState(saved)

	var sum float64
	for _, pct := range samplePoints {
		x := width * pct / 100
		r.Points++
		c, ok := s.backgroundAt(x, y)
		if !ok {
			continue
		}
		sum += c.Brightness()
		r.Samples++
	}

	if r.Samples == 0 {
		s.log.Debug().Int("y", y).Int("points", r.Points).Msg("no valid samples, keeping theme")
		return r
	}
	r.Mean = sum / float64(r.Samples)
	s.log.Trace().Int("y", y).Int("samples", r.Samples).Float64("mean", r.Mean).Msg("sampling pass")
	return r
}

// backgroundAt resolves the first opaque background at (x, y), walking up from a
// transparent element at most AncestorDepth levels.
func (s *Sampler) backgroundAt(x, y int) (csscolor.RGBA, bool) {
	el, err := s.surface.ElementAt(x, y)
	if err != nil {
		s.log.Debug().Err(err).Int("x", x).Int("y", y).Msg("sample point skipped")
		return csscolor.RGBA{}, false
	}

	for depth := 0; el != nil && depth <= s.opts.AncestorDepth; depth++ {
		c, err := csscolor.Parse(el.BackgroundColor())
		if err != nil {
			s.log.Debug().Err(err).Int("x", x).Int("y", y).Msg("sample point skipped")
			return csscolor.RGBA{}, false
		}
		if !c.Transparent() {
			return c, true
		}
		el = el.Parent()
	}
	return csscolor.RGBA{}, false
}
