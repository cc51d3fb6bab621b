package store

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ToastType is the severity of a toast.
type ToastType string

const (
	ToastInfo    ToastType = "info"
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast is a short-lived status message.
type Toast struct {
	ID      string    `json:"id"`
	Type    ToastType `json:"type"`
	Message string    `json:"message"`
}

// AddToast shows message and returns its id. An empty type means info.
func (s *Store) AddToast(message string, typ ToastType) string {
	if typ == "" {
		typ = ToastInfo
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{ID: id, Type: typ, Message: message})
	if s.toastTTL > 0 && !s.closed {
		s.timers[id] = time.AfterFunc(s.toastTTL, func() { s.RemoveToast(id) })
	}
	s.mu.Unlock()

	s.notify()
	return id
}

// RemoveToast dismisses the toast with the given id. Unknown ids are
// ignored.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	n := len(s.toasts)
	s.toasts = slices.DeleteFunc(s.toasts, func(t Toast) bool { return t.ID == id })
	removed := len(s.toasts) != n
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// Toasts returns the visible toasts, oldest first.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}
