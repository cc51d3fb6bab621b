package dashboard

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kedarrpandya/foodbridge/internal/watcher"
)

// Run shows the dashboard until the user quits or ctx is done. When
// watchPath is set, the payload is reloaded whenever that file changes.
func Run(ctx context.Context, params Params, watchPath string) error {
	m := NewModel(params)
	defer m.Close()

	if watchPath != "" {
		w := watcher.New(watcher.WithLogger(m.logger))
		if err := w.Watch(watchPath, m.WatchCallback); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		defer w.Close()
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
