package site

import (
	"sync"
	"time"

	"github.com/alexcabrera/ridgeline/internal/schedule"
)

// HeroState is the home page banner's media state.
type HeroState int

const (
	// HeroLoading shows a placeholder while the art loads.
	HeroLoading HeroState = iota
	// HeroReady shows the art.
	HeroReady
	// HeroFallback shows the text-only banner after the art took too long.
	HeroFallback
)

func (s HeroState) String() string {
	switch s {
	case HeroReady:
		return "ready"
	case HeroFallback:
		return "fallback"
	}
	return "loading"
}

// HeroFallbackMsg is delivered when the fallback delay expires. Seq ties
// it to one mount so a late message from an earlier visit is ignored.
type HeroFallbackMsg struct {
	Seq int
}

// Hero tracks the banner's loading state across mounts of the home page.
type Hero struct {
	mu    sync.Mutex
	state HeroState
	seq   int
	task  *schedule.Task
}

// NewHero returns a hero in the loading state.
func NewHero() *Hero {
	return &Hero{}
}

// Mount resets the banner to loading and schedules the fallback. A
// banner that already loaded stays ready.
func (h *Hero) Mount(s *schedule.Scheduler, delay time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.task.Cancel()
	h.task = nil
	if h.state == HeroReady {
		return
	}
	h.state = HeroLoading
	h.seq++
	h.task = s.After(delay, HeroFallbackMsg{Seq: h.seq})
}

// Unmount cancels a pending fallback.
func (h *Hero) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.task.Cancel()
	h.task = nil
}

// Loaded marks the art as available. It reports whether the state
// changed.
func (h *Hero) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.task.Cancel()
	h.task = nil
	if h.state == HeroReady {
		return false
	}
	h.state = HeroReady
	return true
}

// Fallback switches a still-loading banner to the text-only version. It
// reports whether the state changed.
func (h *Hero) Fallback(msg HeroFallbackMsg) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if msg.Seq != h.seq || h.state != HeroLoading {
		return false
	}
	h.task = nil
	h.state = HeroFallback
	return true
}

// State returns the current state.
func (h *Hero) State() HeroState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Pending reports whether a fallback is scheduled.
func (h *Hero) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.task != nil
}
