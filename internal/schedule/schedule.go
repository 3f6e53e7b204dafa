// Package schedule runs one-shot deferred tasks whose handles can be
// cancelled, and delivers their messages on a channel the UI loop drains.
package schedule

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is a handle to a pending one-shot delivery.
type Task struct {
	id    string
	s     *Scheduler
	timer *time.Timer
}

// ID returns the task identifier.
func (t *Task) ID() string {
	return t.id
}

// Cancel stops the task. It reports whether the task was still pending.
// Cancelling a nil task is a no-op.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	return t.s.cancel(t.id)
}

// Scheduler owns a set of pending tasks. Fired tasks send their message on
// C(). After Stop, every pending task is cancelled and later firings are
// dropped.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*Task
	out     chan any
	done    chan struct{}
	stopped bool
}

// New creates a scheduler whose output channel buffers up to buffer
// messages.
func New(buffer int) *Scheduler {
	if buffer < 1 {
		buffer = 8
	}
	return &Scheduler{
		tasks: make(map[string]*Task),
		out:   make(chan any, buffer),
		done:  make(chan struct{}),
	}
}

// After schedules msg for delivery once d has elapsed. It returns nil when
// the scheduler is already stopped.
func (s *Scheduler) After(d time.Duration, msg any) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}

	t := &Task{id: uuid.NewString(), s: s}
	t.timer = time.AfterFunc(d, func() { s.fire(t.id, msg) })
	s.tasks[t.id] = t
	return t
}

func (s *Scheduler) fire(id string, msg any) {
	s.mu.Lock()
	if _, ok := s.tasks[id]; !ok || s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, id)
	s.mu.Unlock()

	select {
	case s.out <- msg:
	case <-s.done:
	}
}

func (s *Scheduler) cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	t.timer.Stop()
	return true
}

// C returns the delivery channel.
func (s *Scheduler) C() <-chan any {
	return s.out
}

// Done is closed by Stop.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Pending returns the number of tasks that have not fired or been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every pending task. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, id)
	}
	close(s.done)
}

// Next blocks until a task fires or the scheduler stops. ok is false once
// stopped.
func (s *Scheduler) Next() (msg any, ok bool) {
	select {
	case msg := <-s.out:
		return msg, true
	case <-s.done:
		return nil, false
	}
}
