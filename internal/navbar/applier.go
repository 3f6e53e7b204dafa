package navbar

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexcabrera/ridgeline/internal/csscolor"
)

// Token names the bar's foreground colour.
type Token string

const (
	TokenWhite Token = "white"
	TokenBlack Token = "black"
)

// Logo selects one of the two logo renditions.
type Logo string

const (
	// LogoOnDark is drawn in white for dark backgrounds.
	LogoOnDark Logo = "logo-white"
	// LogoOnLight is drawn in black for light backgrounds.
	LogoOnLight Logo = "logo-black"
)

// Theme is everything that switches together with the foreground token.
type Theme struct {
	Token             Token
	Foreground        csscolor.RGBA
	Logo              Logo
	ControlBorder     csscolor.RGBA
	ControlBackground csscolor.RGBA
}

var (
	darkBackdropTheme = Theme{
		Token:             TokenWhite,
		Foreground:        csscolor.MustParse("#ffffff"),
		Logo:              LogoOnDark,
		ControlBorder:     csscolor.MustParse("rgba(255, 255, 255, 0.6)"),
		ControlBackground: csscolor.MustParse("rgba(255, 255, 255, 0.1)"),
	}
	lightBackdropTheme = Theme{
		Token:             TokenBlack,
		Foreground:        csscolor.MustParse("#000000"),
		Logo:              LogoOnLight,
		ControlBorder:     csscolor.MustParse("rgba(0, 0, 0, 0.6)"),
		ControlBackground: csscolor.MustParse("rgba(0, 0, 0, 0.05)"),
	}
)

// ThemeFor returns the theme for a light or dark backdrop.
func ThemeFor(backgroundLight bool) Theme {
	if backgroundLight {
		return lightBackdropTheme
	}
	return darkBackdropTheme
}

// EaseInOut is a quadratic ease-in-out over t in [0, 1].
func EaseInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Applier maps the brightness classification to a Theme and animates the
// foreground colour between themes.
type Applier struct {
	duration time.Duration

	applied      bool
	current      Theme
	from         colorful.Color
	to           colorful.Color
	start        time.Time
	applications int
}

// NewApplier creates an applier whose transitions last d.
func NewApplier(d time.Duration) *Applier {
	return &Applier{duration: d}
}

// Apply switches to the theme for backgroundLight. It is a no-op, returning
// false, when that theme is already applied. The first application sets the
// theme without animating.
func (a *Applier) Apply(backgroundLight bool, now time.Time) bool {
	next := ThemeFor(backgroundLight)
	if a.applied && next.Token == a.current.Token {
		return false
	}

	target := next.Foreground.Colorful()
	if a.applied {
		a.from = a.colorAt(now)
		a.start = now
	} else {
		a.from = target
		a.start = now.Add(-a.duration)
	}
	a.to = target
	a.current = next
	a.applied = true
	a.applications++
	return true
}

// Theme returns the last applied theme. Before the first Apply it is the
// dark-backdrop theme.
func (a *Applier) Theme() Theme {
	if !a.applied {
		return ThemeFor(false)
	}
	return a.current
}

// Applications counts the applies that changed the token.
func (a *Applier) Applications() int {
	return a.applications
}

// Progress returns the eased transition progress at now.
func (a *Applier) Progress(now time.Time) float64 {
	if !a.applied || a.duration <= 0 {
		return 1
	}
	return EaseInOut(float64(now.Sub(a.start)) / float64(a.duration))
}

// Animating reports whether a transition is still running at now.
func (a *Applier) Animating(now time.Time) bool {
	return a.Progress(now) < 1
}

// Foreground returns the on-screen foreground colour at now as #rrggbb.
func (a *Applier) Foreground(now time.Time) string {
	if !a.applied {
		return ThemeFor(false).Foreground.Hex()
	}
	return a.colorAt(now).Clamped().Hex()
}

func (a *Applier) colorAt(now time.Time) colorful.Color {
	return a.from.BlendRgb(a.to, a.Progress(now))
}
