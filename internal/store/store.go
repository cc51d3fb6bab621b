// Package store holds the session and notification state shared by the
// dashboard. A Store is created once at start-up and closed on shutdown.
package store

import (
	"slices"
	"sync"
	"time"
)

// DefaultToastTTL is how long a toast stays before it dismisses itself.
const DefaultToastTTL = 3 * time.Second

// User is the signed-in account.
type User struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Role     string `json:"role" yaml:"role"`
	Verified bool   `json:"verified" yaml:"verified"`
}

// Store is safe for concurrent use; toast timers fire on their own
// goroutines.
type Store struct {
	mu sync.Mutex

	user  *User
	token string

	toasts   []Toast
	timers   map[string]*time.Timer
	toastTTL time.Duration
	closed   bool

	nextSub int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func()
}

// Option configures a Store.
type Option func(*Store)

// WithToastTTL sets how long toasts live. Zero or less disables
// auto-dismissal.
func WithToastTTL(d time.Duration) Option {
	return func(s *Store) { s.toastTTL = d }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		timers:   map[string]*time.Timer{},
		toastTTL: DefaultToastTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after every change. Subscribers are
// called in subscription order. The returned function unregisters fn.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

// Close cancels pending toast timers and drops subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.subs = nil
	s.closed = true
}

// notify must be called without holding mu.
func (s *Store) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}
