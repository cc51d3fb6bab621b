// Package animation computes staggered entrance transitions.
//
// A schedule is a pure function of an element's index: nothing here keeps a
// running clock per element. The caller supplies the time elapsed since the
// chart was mounted and reads back each element's eased progress.
package animation

import (
	"math"
	"time"
)

// Timing describes the entrance transition of a family of elements.
type Timing struct {
	Stagger  time.Duration
	Duration time.Duration
	Offset   time.Duration
	Easing   Easing
}

// Entrance timings of the dashboard charts.
var (
	Donut            = Timing{Stagger: 150 * time.Millisecond, Duration: 800 * time.Millisecond, Easing: Standard}
	InteractiveDonut = Timing{Stagger: 120 * time.Millisecond, Duration: 900 * time.Millisecond, Easing: Smooth}
	Bar              = Timing{Stagger: 60 * time.Millisecond, Duration: 400 * time.Millisecond, Easing: Linear}
	CompareCreated   = Timing{Stagger: 100 * time.Millisecond, Duration: 800 * time.Millisecond, Easing: Smooth}
	CompareClaimed   = Timing{Stagger: 100 * time.Millisecond, Duration: 800 * time.Millisecond, Offset: 100 * time.Millisecond, Easing: Smooth}
	Prediction       = Timing{Stagger: 80 * time.Millisecond, Duration: 800 * time.Millisecond, Easing: Linear}
	PeakMarker       = Timing{Stagger: 80 * time.Millisecond, Duration: 400 * time.Millisecond, Offset: 1200 * time.Millisecond, Easing: Linear}
	PeakLabel        = Timing{Stagger: 80 * time.Millisecond, Duration: 300 * time.Millisecond, Offset: 1400 * time.Millisecond, Easing: Linear}
	Heatmap          = Timing{Stagger: 30 * time.Millisecond, Duration: 500 * time.Millisecond, Easing: Standard}
	AreaSeries       = Timing{Stagger: 200 * time.Millisecond, Duration: 800 * time.Millisecond, Easing: Standard}
	AreaPoints       = Timing{Stagger: 50 * time.Millisecond, Duration: 300 * time.Millisecond, Offset: 500 * time.Millisecond, Easing: Standard}
	Sparkline        = Timing{Duration: 600 * time.Millisecond, Easing: EaseOutCubic}
)

// Slot is the scheduled transition of one element.
type Slot struct {
	Delay    time.Duration
	Duration time.Duration
	Easing   Easing
}

// Schedule returns the slot of the element at index among total elements.
// The delay is Offset + index*Stagger; the index is clamped to the list.
func (t Timing) Schedule(index, total int) Slot {
	if index >= total {
		index = total - 1
	}
	if index < 0 {
		index = 0
	}
	return Slot{
		Delay:    t.Offset + time.Duration(index)*t.Stagger,
		Duration: t.Duration,
		Easing:   t.Easing,
	}
}

// Total returns when the last of total elements finishes.
func (t Timing) Total(total int) time.Duration {
	if total <= 0 {
		return 0
	}
	return t.Schedule(total-1, total).End()
}

// End returns when the slot finishes, relative to mount.
func (s Slot) End() time.Duration {
	return s.Delay + s.Duration
}

// Progress returns the eased progress of the slot at the given time since
// mount: 0 before the delay and 1 once the duration has elapsed.
func (s Slot) Progress(elapsed time.Duration) float64 {
	if elapsed <= s.Delay {
		return 0
	}
	if s.Duration <= 0 || elapsed >= s.End() {
		return 1
	}
	p := float64(elapsed-s.Delay) / float64(s.Duration)
	if s.Easing == nil {
		return Linear(p)
	}
	return s.Easing(p)
}

// Clock is the time elapsed since a chart was mounted.
type Clock time.Duration

// Settled is a clock far past every transition, used for static renders.
const Settled = Clock(math.MaxInt64)

// Progress returns the eased progress of slot s at this clock.
func (c Clock) Progress(s Slot) float64 {
	if c == Settled {
		return 1
	}
	return s.Progress(time.Duration(c))
}

// At returns the eased progress of element index among total for timing t.
func (c Clock) At(t Timing, index, total int) float64 {
	return c.Progress(t.Schedule(index, total))
}

// Interpolate moves from start toward end by progress p.
func Interpolate(start, end, p float64) float64 {
	return start + (end-start)*p
}
