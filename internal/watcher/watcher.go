// Package watcher notifies on changes to payload files.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	fw "github.com/radovskyb/watcher"

	"github.com/kedarrpandya/foodbridge/internal/observability"
)

// DefaultInterval is how often watched files are polled.
const DefaultInterval = 250 * time.Millisecond

// Watcher invokes callbacks when registered files are written, created,
// renamed or removed.
//
// Changes are detected by polling, so a file modified twice within one
// interval may produce a single callback.
type Watcher struct {
	mu        sync.Mutex
	watcher   *fw.Watcher
	wg        sync.WaitGroup
	logger    *observability.CoreLogger
	interval  time.Duration
	callbacks map[string]func()
	started   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *observability.CoreLogger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// New returns a stopped watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		watcher:   fw.New(),
		interval:  DefaultInterval,
		callbacks: map[string]func(){},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = observability.NewNoOpLogger()
	}
	w.watcher.FilterOps(fw.Write, fw.Create, fw.Remove, fw.Rename, fw.Move)
	return w
}

// Watch registers onChange for the file at path.
func (w *Watcher) Watch(path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	if err := w.watcher.Add(abs); err != nil {
		return fmt.Errorf("watcher: add %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks[abs] = onChange
	return nil
}

// Start begins polling. It returns once polling is running.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return errors.New("watcher: already started")
	}
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.watch()
	}()

	go func() {
		if err := w.watcher.Start(w.interval); err != nil {
			w.logger.CaptureError(fmt.Errorf("watcher: start: %w", err))
		}
	}()
	w.watcher.Wait()
	return nil
}

func (w *Watcher) watch() {
	w.logger.Debug("watcher: started")
	for {
		select {
		case event := <-w.watcher.Event:
			w.handleEvent(event)
		case err := <-w.watcher.Error:
			if errors.Is(err, fw.ErrWatchedFileDeleted) {
				w.logger.Warn("watcher: watched file deleted")
				continue
			}
			w.logger.CaptureError(fmt.Errorf("watcher: %w", err))
		case <-w.watcher.Closed:
			w.logger.Debug("watcher: closed")
			return
		}
	}
}

func (w *Watcher) handleEvent(event fw.Event) {
	w.logger.Debug("watcher: event", "op", event.Op.String(), "path", event.Path)

	w.mu.Lock()
	fn, ok := w.callbacks[event.Path]
	if !ok {
		fn, ok = w.callbacks[event.OldPath]
	}
	w.mu.Unlock()

	if ok {
		fn()
	}
}

// Close stops polling and waits for callbacks in flight.
func (w *Watcher) Close() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}
	w.watcher.Close()
	w.wg.Wait()
}
