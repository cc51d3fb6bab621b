package animation

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the redraw interval while transitions are running.
const FrameInterval = 16 * time.Millisecond

// FrameMsg asks the owning model to redraw an animation frame.
type FrameMsg struct {
	Time time.Time
}

// Sequence tracks when a set of charts was mounted and how long their
// entrance transitions run.
//
// Restarting a sequence supersedes every transition in flight: each element
// starts again from index 0 without looking at previous progress.
type Sequence struct {
	mu      sync.Mutex
	started time.Time
	horizon time.Duration
}

// NewSequence returns a sequence mounted at now.
func NewSequence(now time.Time) *Sequence {
	return &Sequence{started: now}
}

// Restart remounts the sequence at now.
func (s *Sequence) Restart(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = now
}

// Extend makes the sequence last at least until d after mount.
func (s *Sequence) Extend(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > s.horizon {
		s.horizon = d
	}
}

// Clock returns the time since mount as a chart clock.
func (s *Sequence) Clock(now time.Time) Clock {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.started) {
		return 0
	}
	return Clock(now.Sub(s.started))
}

// Running reports whether any transition is still in progress at now.
func (s *Sequence) Running(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.started) < s.horizon
}

// TickCmd returns a command that delivers the next FrameMsg, or nil when
// every transition has finished.
func (s *Sequence) TickCmd(now time.Time) tea.Cmd {
	if !s.Running(now) {
		return nil
	}
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}
