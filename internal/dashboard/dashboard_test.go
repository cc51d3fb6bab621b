package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/dashboard"
	"github.com/kedarrpandya/foodbridge/internal/store"
)

func ptr(v float64) *float64 { return &v }

func testBundle() *analytics.Bundle {
	series := func() *analytics.TimeSeries {
		return &analytics.TimeSeries{
			Labels:  []string{"d1", "d2", "d3"},
			Created: []float64{5, 10, 15},
			Claimed: []float64{2, 4, 6},
		}
	}
	return &analytics.Bundle{
		Summary:  &analytics.Summary{TotalItems: 30, TotalClaimed: 12, TotalUnclaimed: 18, ClaimRate: 0.4},
		Series:   series(),
		Forecast: series(),
		Categories: &analytics.Categories{
			Created: map[string]float64{"A": 40, "B": 30, "C": 20, "D": 10},
			Claimed: map[string]float64{"A": 20, "B": 10},
		},
		Risk: &analytics.Risk{Items: []analytics.RiskItem{
			{ID: 1, Title: "Bread", Category: "A", RiskScore: 0.3, Quantity: ptr(2)},
			{ID: 2, Title: "Apples", Category: "B", RiskScore: 0.9, HoursLeft: ptr(3)},
			{ID: 3, Title: "Carrots", Category: "B", RiskScore: 0.5},
		}},
	}
}

func newModel(t *testing.T, params dashboard.Params) (*dashboard.Model, *store.Store) {
	t.Helper()
	if params.Board == nil {
		params.Board = charts.NewBoard(testBundle())
	}
	if params.Store == nil {
		params.Store = store.New(store.WithToastTTL(0))
	}
	t.Cleanup(params.Store.Close)

	m := dashboard.NewModel(params)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return m, params.Store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ids(items []analytics.RiskItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFocus_TabCycles(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	assert.Equal(t, charts.ChartHistory, m.Focused())

	m.Update(key("tab"))
	assert.Equal(t, charts.ChartForecast, m.Focused())

	m.Update(key("tab"))
	assert.Equal(t, charts.ChartCategories, m.Focused())

	m.Update(key("shift+tab"))
	m.Update(key("shift+tab"))
	m.Update(key("shift+tab"))
	assert.Equal(t, charts.ChartRecipients, m.Focused(), "focus wraps around")
}

func TestKeys_MoveCrosshair(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	crosshair := m.Board().Crosshair()

	m.Update(key("right"))
	i, ok := crosshair.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	m.Update(key("right"))
	m.Update(key("right"))
	m.Update(key("right"))
	i, _ = crosshair.Index()
	assert.Equal(t, 2, i, "clamped to the last sample")

	m.Update(key("left"))
	i, _ = crosshair.Index()
	assert.Equal(t, 1, i)

	m.Update(key("esc"))
	_, ok = crosshair.Index()
	assert.False(t, ok)
}

func TestKeys_Sort(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	assert.Equal(t, []int{2, 3, 1}, ids(m.Items()))

	m.Update(key("s"))
	assert.Equal(t, analytics.Sort{Key: analytics.SortItem, Desc: true}, m.Sort())
	assert.Equal(t, []int{3, 1, 2}, ids(m.Items()))

	m.Update(key("r"))
	assert.Equal(t, analytics.Sort{Key: analytics.SortItem}, m.Sort())
	assert.Equal(t, []int{2, 1, 3}, ids(m.Items()))
}

func TestClick_LocksCategory(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	m.Update(key("tab"))
	m.Update(key("tab"))

	// Centre of the "B" legend row of the categories donut.
	x, y, ok := m.ScreenCell(charts.ChartCategories, 360, 86)
	require.True(t, ok)
	click := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m.Update(click)
	assert.Equal(t, "B", m.Board().Selection().Locked())
	assert.Equal(t, []int{2, 3}, ids(m.Items()))
	assert.Contains(t, m.View(), "locked: B")

	m.Update(click)
	assert.Empty(t, m.Board().Selection().Locked())
	assert.Len(t, m.Items(), 3)

	m.Update(click)
	m.Update(key("c"))
	assert.Empty(t, m.Board().Selection().Locked())
}

func TestClick_OutsidePanels(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})

	m.Update(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Empty(t, m.Board().Selection().Locked())
	assert.Equal(t, charts.ChartHistory, m.Focused())
}

func TestMotion_SyncsCrosshair(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})

	_, _, ok := m.ScreenCell(charts.ChartCategories, 360, 86)
	assert.False(t, ok, "categories are not on the first page")

	x, y, ok := m.ScreenCell(charts.ChartHistory, 460, 100)
	require.True(t, ok)

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	i, ok := m.Board().Crosshair().Index()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = m.Board().Machine(charts.ChartForecast).HoverIndex()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	m.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	_, ok = m.Board().Crosshair().Index()
	assert.False(t, ok)
}

func TestReload(t *testing.T) {
	m, st := newModel(t, dashboard.Params{})

	next := testBundle()
	next.Risk.Items = next.Risk.Items[:1]

	_, cmd := m.Update(dashboard.ReloadMsg{Path: "analytics.json", Bundle: next})
	assert.NotNil(t, cmd, "entrance animations restart")
	assert.Same(t, next, m.Board().Bundle())
	assert.Equal(t, []int{1}, ids(m.Items()))

	toasts := st.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, store.ToastSuccess, toasts[0].Type)
	assert.Equal(t, "Reloaded analytics.json", toasts[0].Message)
}

func TestReload_ErrorKeepsPayload(t *testing.T) {
	m, st := newModel(t, dashboard.Params{})
	before := m.Board().Bundle()

	_, cmd := m.Update(dashboard.ReloadMsg{Path: "analytics.json", Err: errors.New("unexpected EOF")})
	assert.Nil(t, cmd)
	assert.Same(t, before, m.Board().Bundle())

	toasts := st.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, store.ToastError, toasts[0].Type)
	assert.Contains(t, m.View(), "Reload failed: unexpected EOF")
}

func TestWatchCallback_DeliversFileChanged(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})

	_, wait := m.Update(dashboard.StoreChangedMsg{})
	require.NotNil(t, wait)

	m.WatchCallback()
	m.WatchCallback()

	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()

	select {
	case msg := <-got:
		assert.IsType(t, dashboard.FileChangedMsg{}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no FileChangedMsg")
	}
}

func TestView(t *testing.T) {
	st := store.New(store.WithToastTTL(0))
	m := dashboard.NewModel(dashboard.Params{Board: charts.NewBoard(testBundle()), Store: st})
	t.Cleanup(m.Close)
	t.Cleanup(st.Close)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	view := m.View()
	assert.Contains(t, view, "fbcharts · history · page 1/7")
	assert.Contains(t, view, "Apples")
	assert.Contains(t, view, "q quit")

	st.AddToast("hello there", store.ToastInfo)
	assert.Contains(t, m.View(), "hello there")
}

func TestLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "analytics.json", []byte(`{"summary": {"total_items": 3}}`), 0o644))

	l := dashboard.NewLoader(fs, "analytics.json")
	b, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Summary.TotalItems)

	msg := l.Cmd(context.Background())().(dashboard.ReloadMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "analytics.json", msg.Path)
}

func TestLoader_Retries(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := &dashboard.Loader{Fs: fs, Path: "analytics.json", Attempts: 5, Delay: 20 * time.Millisecond}

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = afero.WriteFile(fs, "analytics.json", []byte(`{}`), 0o644)
	}()

	_, err := l.Load(context.Background())
	assert.NoError(t, err)
}

func TestLoader_GivesUp(t *testing.T) {
	l := &dashboard.Loader{Fs: afero.NewMemMapFs(), Path: "missing.json", Attempts: 2, Delay: time.Millisecond}

	_, err := l.Load(context.Background())
	assert.ErrorContains(t, err, "reload missing.json")
}

func TestFileChanged_WithoutLoader(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	_, cmd := m.Update(dashboard.FileChangedMsg{})
	assert.NotNil(t, cmd)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, dashboard.Params{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
