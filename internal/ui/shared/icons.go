package shared

// Glyphs drawn by the navigation bar and pages.
const (
	IconMenu       = "≡" // hamburger, closed
	IconClose      = "×" // hamburger, open
	IconArrowRight = "→"
	IconBullet     = "•"
	IconEllipsis   = "⋯"
	IconCrumb      = "›"
	IconDot        = "·"
)

// Audio indicator bars. AudioOff is the muted rendition.
var (
	AudioOn  = []string{"▂▅▃", "▃▂▅", "▅▃▂", "▃▅▃"}
	AudioOff = "▁▁▁"
)
