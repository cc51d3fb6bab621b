package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
)

// ReloadQuiet is how long the payload file must stay unchanged before it is
// reloaded.
const ReloadQuiet = 300 * time.Millisecond

// Loader reads the payload file, retrying while a writer may still be
// halfway through it.
type Loader struct {
	Fs       afero.Fs
	Path     string
	Attempts uint
	Delay    time.Duration
}

// NewLoader returns a loader for path with the default retry policy.
func NewLoader(fs afero.Fs, path string) *Loader {
	return &Loader{Fs: fs, Path: path, Attempts: 4, Delay: 100 * time.Millisecond}
}

// Load reads and decodes the payload file.
func (l *Loader) Load(ctx context.Context) (*analytics.Bundle, error) {
	var bundle *analytics.Bundle
	err := retry.Do(
		func() error {
			var err error
			bundle, err = analytics.Load(l.Fs, l.Path)
			return err
		},
		retry.Attempts(max(l.Attempts, 1)),
		retry.Delay(l.Delay),
		retry.MaxDelay(time.Second),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard: reload %s: %w", l.Path, err)
	}
	return bundle, nil
}

// Cmd returns a command that loads the payload and reports it as a
// ReloadMsg.
func (l *Loader) Cmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		bundle, err := l.Load(ctx)
		return ReloadMsg{Path: l.Path, Bundle: bundle, Err: err}
	}
}
