package debounce

import (
	"context"
	"sync"
	"time"
)

// Task runs the most recently scheduled function once a quiet period has
// passed without another Schedule call.
type Task struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewTask returns a task with the given quiet period.
func NewTask(quiet time.Duration) *Task {
	return &Task{quiet: quiet}
}

// Schedule cancels any pending function and schedules fn to run after the
// quiet period. It does nothing after Stop.
func (t *Task) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.cancelLocked()

	gen := t.gen
	t.timer = time.AfterFunc(t.quiet, func() {
		t.mu.Lock()
		// A timer that already fired cannot be stopped, so a superseded
		// run is detected by its generation.
		if t.stopped || gen != t.gen {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
}

// Pending reports whether a function is waiting to run.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Cancel drops the pending function, if any. Later calls to Schedule work
// as usual.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

// Stop cancels the pending function and makes future calls to Schedule
// no-ops.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopped = true
}

// Run stops the task when ctx is done. It blocks until then.
func (t *Task) Run(ctx context.Context) {
	<-ctx.Done()
	t.Stop()
}

func (t *Task) cancelLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
