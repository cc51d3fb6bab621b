// Package dashboard lays the chart board out in a terminal and drives it
// from mouse, keyboard, timer and file events.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/debounce"
	"github.com/kedarrpandya/foodbridge/internal/metrics"
	"github.com/kedarrpandya/foodbridge/internal/observability"
	"github.com/kedarrpandya/foodbridge/internal/store"
)

// PointerInterval is the minimum time between two hover updates caused by
// pointer motion.
const PointerInterval = 16 * time.Millisecond

// Params configures a Model.
type Params struct {
	// Board holds the payloads and the interaction state. Required.
	Board *charts.Board

	// Store receives reload toasts. Required.
	Store *store.Store

	// Loader rereads the payload when FileChangedMsg arrives. Optional.
	Loader *Loader

	Logger  *observability.CoreLogger
	Metrics *metrics.Recorder

	// Now is the clock animations are measured with. Defaults to time.Now.
	Now func() time.Time
}

// Model is the dashboard.
//
// Implements tea.Model.
type Model struct {
	// Serialize access to Update / View.
	stateMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	board  *charts.Board
	store  *store.Store
	loader *Loader

	keyMap map[string]func(*Model, tea.KeyMsg) tea.Cmd

	width, height int

	// Index into focusOrder of the focused chart.
	focus int

	sequence *animation.Sequence
	now      func() time.Time

	// Pointer motion is applied at most once per PointerInterval; the
	// latest position waits in pointer meanwhile.
	pointerDebouncer *debounce.Debouncer
	pointer          *target
	hovered          charts.ChartID
	flushScheduled   bool

	// Reloads wait for the payload file to stay quiet.
	reload *debounce.Task
	// events carries watcher and store notifications into the program.
	events chan tea.Msg

	unsubscribe func()

	sort  analytics.Sort
	items viewport.Model

	logger  *observability.CoreLogger
	metrics *metrics.Recorder

	closeOnce sync.Once
}

// NewModel returns a dashboard over params.Board.
func NewModel(params Params) *Model {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctx:              ctx,
		cancel:           cancel,
		board:            params.Board,
		store:            params.Store,
		loader:           params.Loader,
		keyMap:           buildKeyMap(),
		sequence:         animation.NewSequence(now()),
		now:              now,
		pointerDebouncer: debounce.NewDebouncer(rate.Every(PointerInterval), 1, logger),
		reload:           debounce.NewTask(ReloadQuiet),
		events:           make(chan tea.Msg, 64),
		sort:             analytics.DefaultSort,
		items:            viewport.New(0, ItemsHeight-1),
		logger:           logger,
		metrics:          params.Metrics,
	}
	m.sequence.Extend(m.board.TotalDuration())
	m.unsubscribe = m.store.Subscribe(func() { m.notify(StoreChangedMsg{}) })
	m.refreshItems()
	return m
}

// Init starts the entrance animations and begins listening for file and
// store notifications.
//
// Implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("dashboard: Init called")
	return tea.Batch(
		tea.SetWindowTitle("fbcharts"),
		m.sequence.TickCmd(m.now()),
		m.waitForEvent(),
	)
}

// Update handles incoming events and updates the model accordingly.
//
// Implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logger.Reraise("where", "dashboard.Update")
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	switch t := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(t)

	case tea.MouseMsg:
		return m, m.handleMouseMsg(t)

	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		m.items.Width = t.Width
		m.items.Height = ItemsHeight - 1
		return m, nil

	case animation.FrameMsg:
		return m, m.sequence.TickCmd(t.Time)

	case pointerFlushMsg:
		m.flushScheduled = false
		m.pointerDebouncer.Flush(m.applyPointer)
		return m, nil

	case FileChangedMsg:
		if m.loader == nil {
			return m, m.waitForEvent()
		}
		return m, tea.Batch(m.loader.Cmd(m.ctx), m.waitForEvent())

	case ReloadMsg:
		return m, m.onReload(t)

	case StoreChangedMsg:
		return m, m.waitForEvent()
	}
	return m, nil
}

func (m *Model) onReload(msg ReloadMsg) tea.Cmd {
	m.metrics.Reload(msg.Err)
	if msg.Err != nil {
		m.logger.CaptureError(msg.Err, "path", msg.Path)
		m.store.AddToast(fmt.Sprintf("Reload failed: %v", msg.Err), store.ToastError)
		return nil
	}

	m.board.SetBundle(msg.Bundle)
	now := m.now()
	m.sequence.Restart(now)
	m.sequence.Extend(m.board.TotalDuration())
	m.refreshItems()
	m.logger.Info("dashboard: payload reloaded", "path", msg.Path)
	m.store.AddToast("Reloaded "+msg.Path, store.ToastSuccess)
	return m.sequence.TickCmd(now)
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointerDebouncer.Flush(m.applyPointer)
		t, ok := m.chartAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		m.focusChart(t.id)
		if label := m.board.Click(t.id, t.x, t.y); label != "" {
			m.logger.Debug("dashboard: click", "chart", string(t.id), "label", label)
			m.refreshItems()
		}
		return nil

	case msg.Action == tea.MouseActionMotion:
		t, ok := m.chartAt(msg.X, msg.Y)
		if !ok {
			m.leaveHovered()
			m.pointer = nil
			return nil
		}
		if m.hovered != "" && m.hovered != t.id {
			m.leaveHovered()
		}
		m.pointer = &t
		m.pointerDebouncer.SetNeedsDebounce()
		if m.pointerDebouncer.Debounce(m.applyPointer) || m.flushScheduled {
			return nil
		}
		m.flushScheduled = true
		return tea.Tick(PointerInterval, func(time.Time) tea.Msg { return pointerFlushMsg{} })
	}
	return nil
}

// applyPointer moves the hover to the latest pointer position.
func (m *Model) applyPointer() {
	if m.pointer == nil {
		return
	}
	t := *m.pointer
	m.hovered = t.id
	if m.board.Pointer(t.id, t.x, t.y) && (t.id == charts.ChartCategories || t.id == charts.ChartCompare) {
		m.refreshItems()
	}
}

func (m *Model) leaveHovered() {
	if m.hovered == "" {
		return
	}
	m.board.Leave(m.hovered)
	m.hovered = ""
}

func (m *Model) setFocus(i int) {
	n := len(focusOrder())
	m.leaveHovered()
	m.focus = ((i % n) + n) % n
}

func (m *Model) focusChart(id charts.ChartID) {
	for i, c := range focusOrder() {
		if c == id {
			m.focus = i
			return
		}
	}
}

// page returns the index into Pages of the visible page.
func (m *Model) page() int {
	return m.focus / 2
}

// Focused returns the focused chart.
func (m *Model) Focused() charts.ChartID {
	return focusOrder()[m.focus]
}

// Board returns the board the dashboard draws.
func (m *Model) Board() *charts.Board {
	return m.board
}

// Sort returns the ordering of the item list.
func (m *Model) Sort() analytics.Sort {
	return m.sort
}

// Items returns the risk items listed under the charts: those of the locked
// category, or all of them, in the current sort order.
func (m *Model) Items() []analytics.RiskItem {
	var items []analytics.RiskItem
	if r := m.board.Bundle().Risk; r != nil {
		items = r.Items
	}
	items = analytics.FilterByCategory(items, m.board.Selection().Locked())
	return m.sort.Apply(items)
}

// WatchCallback is registered with the file watcher. It schedules a reload
// once the file has been quiet for ReloadQuiet.
func (m *Model) WatchCallback() {
	m.reload.Schedule(func() { m.notify(FileChangedMsg{}) })
}

// notify hands msg to the program without blocking the caller.
func (m *Model) notify(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.logger.CaptureWarn("dashboard: event channel full, dropping message", "type", fmt.Sprintf("%T", msg))
	}
}

// waitForEvent returns a command that waits for the next notification.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Close cancels pending reloads and stops listening to the store. It is
// safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		m.reload.Stop()
		m.pointerDebouncer.Stop()
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
}
