// Package debounce coalesces bursts of events.
package debounce

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/kedarrpandya/foodbridge/internal/observability"
)

// Debouncer is a rate limiter that can be used to debounce events
// such as pointer motion redraws.
type Debouncer struct {
	mu            sync.Mutex
	limiter       *rate.Limiter
	finished      bool
	needsDebounce bool
	logger        *observability.CoreLogger
}

// NewDebouncer creates a new debouncer
func NewDebouncer(
	eventRate rate.Limit,
	burstSize int,
	logger *observability.CoreLogger,
) *Debouncer {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	return &Debouncer{
		limiter: rate.NewLimiter(eventRate, burstSize),
		logger:  logger,
	}
}

// SetNeedsDebounce marks that an event is pending.
func (d *Debouncer) SetNeedsDebounce() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.needsDebounce = true
}

// NeedsDebounce reports whether an event is pending.
func (d *Debouncer) NeedsDebounce() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.needsDebounce
}

// Debounce will call the function f if an event is pending and the rate
// limiter allows it.
func (d *Debouncer) Debounce(f func()) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	if d.finished || !d.needsDebounce || !d.limiter.Allow() {
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()
	return d.Flush(f)
}

// Flush will call the function f if an event is pending, regardless of
// the rate.
func (d *Debouncer) Flush(f func()) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	if d.finished || !d.needsDebounce {
		d.mu.Unlock()
		return false
	}
	d.needsDebounce = false
	d.mu.Unlock()

	d.logger.Debug("flushing debouncer")
	f()
	return true
}

// Stop makes all future debounce operations no-ops.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
}
