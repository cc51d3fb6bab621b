package interaction

import "sync"

// Ownership decides who owns a chart's hover index. It is either Internal
// or External and is fixed when the chart's machine is built.
type Ownership interface {
	isOwnership()
}

// Internal ownership keeps the hover index local to the chart.
type Internal struct{}

// External ownership hands the hover index to a crosshair owned by a
// parent. The chart only reads it and requests updates.
type External struct {
	Crosshair *Crosshair
}

func (Internal) isOwnership() {}
func (External) isOwnership() {}

// Crosshair is a hover index shared by charts drawn over the same axis.
//
// It is the single source of truth for every chart that reads it: after Set
// returns, every reader observes the new index and every subscriber has been
// notified, in subscription order.
type Crosshair struct {
	mu     sync.RWMutex
	index  int
	active bool
	subs   []func(index int, ok bool)
}

// NewCrosshair returns an inactive crosshair.
func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

// Set moves the crosshair to index.
func (c *Crosshair) Set(index int) {
	c.update(index, true)
}

// Clear hides the crosshair.
func (c *Crosshair) Clear() {
	c.update(0, false)
}

// Index returns the current index and whether the crosshair is shown.
func (c *Crosshair) Index() (int, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index, c.active
}

// Subscribe registers fn to be called after every change.
func (c *Crosshair) Subscribe(fn func(index int, ok bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Crosshair) update(index int, active bool) {
	c.mu.Lock()
	changed := c.index != index || c.active != active
	c.index, c.active = index, active
	subs := append(([]func(int, bool))(nil), c.subs...)
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(index, active)
	}
}

// Selection is a sticky category lock shared by coordinated charts, plus
// the category currently hovered in any of them.
type Selection struct {
	mu     sync.RWMutex
	locked string
	active string
}

// Toggle locks label, or clears the lock when label is already locked.
func (s *Selection) Toggle(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked == label {
		s.locked = ""
		return
	}
	s.locked = label
}

// Clear removes the lock.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = ""
}

// SetActive records the label hovered in a coordinated chart. An empty label
// means nothing is hovered.
func (s *Selection) SetActive(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = label
}

// Locked returns the locked label, or "".
func (s *Selection) Locked() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

// Effective returns the label coordinated charts should highlight: the
// lock when set, otherwise the hovered label.
func (s *Selection) Effective() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked != "" {
		return s.locked
	}
	return s.active
}
