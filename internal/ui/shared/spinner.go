package shared

// SpinnerType identifies different kinds of waits.
type SpinnerType int

const (
	// SpinnerHero is the home banner placeholder.
	SpinnerHero SpinnerType = iota
	// SpinnerReload is shown while content reloads.
	SpinnerReload
	// SpinnerAudio is the playing audio indicator.
	SpinnerAudio
)

// Spinner animation frames by type.
var (
	FramesHero   = []string{"∙∙∙", "●∙∙", "∙●∙", "∙∙●"}
	FramesReload = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// GetSpinnerFrames returns the animation frames for a given spinner type.
func GetSpinnerFrames(t SpinnerType) []string {
	switch t {
	case SpinnerReload:
		return FramesReload
	case SpinnerAudio:
		return AudioOn
	default:
		return FramesHero
	}
}
