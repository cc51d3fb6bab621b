package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
)

// KeyBinding maps keys to a handler on the model.
type KeyBinding struct {
	Keys        []string
	Description string
	Handler     func(*Model, tea.KeyMsg) tea.Cmd
}

// KeyBindings returns the bindings of the dashboard in help order.
func KeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"tab"}, Description: "Focus next chart", Handler: (*Model).handleFocusNext},
		{Keys: []string{"shift+tab"}, Description: "Focus previous chart", Handler: (*Model).handleFocusPrev},
		{Keys: []string{"left"}, Description: "Move crosshair back", Handler: (*Model).handleStepBack},
		{Keys: []string{"right"}, Description: "Move crosshair forward", Handler: (*Model).handleStepForward},
		{Keys: []string{"esc"}, Description: "Hide crosshair", Handler: (*Model).handleClearCrosshair},
		{Keys: []string{"c"}, Description: "Clear category lock", Handler: (*Model).handleClearLock},
		{Keys: []string{"s"}, Description: "Cycle risk sort column", Handler: (*Model).handleCycleSort},
		{Keys: []string{"r"}, Description: "Reverse risk sort", Handler: (*Model).handleReverseSort},
		{Keys: []string{"up", "down", "pgup", "pgdown"}, Description: "Scroll items"},
		{Keys: []string{"q", "ctrl+c"}, Description: "Quit", Handler: (*Model).handleQuit},
	}
}

func buildKeyMap() map[string]func(*Model, tea.KeyMsg) tea.Cmd {
	keyMap := map[string]func(*Model, tea.KeyMsg) tea.Cmd{}
	for _, b := range KeyBindings() {
		if b.Handler == nil {
			continue
		}
		for _, k := range b.Keys {
			keyMap[k] = b.Handler
		}
	}
	return keyMap
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if handler, ok := m.keyMap[msg.String()]; ok {
		return handler(m, msg)
	}
	switch msg.String() {
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.items, cmd = m.items.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleFocusNext(tea.KeyMsg) tea.Cmd {
	m.setFocus(m.focus + 1)
	return nil
}

func (m *Model) handleFocusPrev(tea.KeyMsg) tea.Cmd {
	m.setFocus(m.focus - 1)
	return nil
}

func (m *Model) handleStepBack(tea.KeyMsg) tea.Cmd {
	m.board.Step(-1)
	return nil
}

func (m *Model) handleStepForward(tea.KeyMsg) tea.Cmd {
	m.board.Step(1)
	return nil
}

func (m *Model) handleClearCrosshair(tea.KeyMsg) tea.Cmd {
	m.board.Crosshair().Clear()
	return nil
}

func (m *Model) handleClearLock(tea.KeyMsg) tea.Cmd {
	m.board.Selection().Clear()
	m.refreshItems()
	return nil
}

func (m *Model) handleCycleSort(tea.KeyMsg) tea.Cmd {
	m.sort = analytics.Sort{Key: m.sort.Key.Next(), Desc: m.sort.Desc}
	m.refreshItems()
	return nil
}

func (m *Model) handleReverseSort(tea.KeyMsg) tea.Cmd {
	m.sort.Desc = !m.sort.Desc
	m.refreshItems()
	return nil
}

func (m *Model) handleQuit(tea.KeyMsg) tea.Cmd {
	m.Close()
	return tea.Quit
}
