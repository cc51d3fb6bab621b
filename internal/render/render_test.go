package render_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/interaction"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/render"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func donut(hover bool) geometry.Frame {
	m := interaction.NewMachine(nil)
	if hover {
		m.Enter(0, "A")
	}
	return charts.Donut(charts.DonutProps{
		Title: "Share <A & B>",
		Pairs: []legend.Pair{{Label: "A", Value: 3}, {Label: "B", Value: 1}},
	}, m, animation.Settled)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"svg", "png", "term", "TERM", " terminal "} {
		b, err := render.ByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, b)
	}

	_, err := render.ByName("pdf")
	assert.ErrorContains(t, err, "pdf")

	assert.Equal(t, ".svg", render.Extension(render.SVG{}))
	assert.Equal(t, ".png", render.Extension(render.PNG{}))
	assert.Equal(t, ".txt", render.Extension(render.Terminal{}))
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.SVG{}.Render(&buf, donut(false)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="240" height="240"`))
	assert.Contains(t, out, "<title>Share &lt;A &amp; B&gt;</title>")
	assert.Contains(t, out, `stroke-linecap="round"`)
	assert.Contains(t, out, `<path d="M 190,120`)
	assert.NotContains(t, out, `id="glow"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))

	buf.Reset()
	require.NoError(t, render.SVG{}.Render(&buf, donut(true)))
	assert.Contains(t, buf.String(), `<filter id="glow"`)
	assert.Contains(t, buf.String(), `filter="url(#glow)"`)
	assert.Contains(t, buf.String(), `opacity="0.7"`)
}

func TestSVG_LineStyles(t *testing.T) {
	f := geometry.Frame{Width: 10, Height: 10}
	dashed := geometry.Stroked("#94a3b8", 1).WithOpacity(0.8)
	dashed.Dash = []float64{6, 4}
	f.Add(
		geometry.Line{X1: 0, Y1: 0, X2: 10, Y2: 10, Style: dashed},
		geometry.Text{X: 1, Y: 2, Body: "x", Style: geometry.Filled("#111111")},
	)

	var buf bytes.Buffer
	require.NoError(t, render.SVG{}.Render(&buf, f))
	out := buf.String()
	assert.Contains(t, out, `<line x1="0" y1="0" x2="10" y2="10" fill="none" stroke="#94a3b8" stroke-width="1" opacity="0.8" stroke-dasharray="6 4"/>`)
	assert.Contains(t, out, `text-anchor="start"`)
	assert.Contains(t, out, `fill="#111111">x</text>`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVG_WriteError(t *testing.T) {
	err := render.SVG{}.Render(failingWriter{}, donut(false))
	assert.ErrorContains(t, err, "disk full")
}

func TestPNG(t *testing.T) {
	f := donut(true)
	f.Add(geometry.Rect{X: 10, Y: 10, W: 20, H: 20, Style: geometry.Filled(geometry.HeatColor(0.5))})

	var buf bytes.Buffer
	require.NoError(t, render.PNG{}.Render(&buf, f))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestPNG_EmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.PNG{}.Render(&buf, geometry.Frame{}))
	assert.NotZero(t, buf.Len())
}

func TestTerminal_Size(t *testing.T) {
	f := geometry.Frame{Width: 900, Height: 320}

	cols, rows := render.Terminal{}.Size(f)
	assert.Equal(t, 129, cols)
	assert.Equal(t, 23, rows)

	cols, rows = render.Terminal{Cols: 40, Rows: 10}.Size(f)
	assert.Equal(t, 40, cols)
	assert.Equal(t, 10, rows)

	term := render.Terminal{Cols: 90, Rows: 32}
	col, row := term.Cell(f, 455, 165)
	assert.Equal(t, 45, col)
	assert.Equal(t, 16, row)

	x, y := term.Point(f, col, row)
	assert.Equal(t, 455.0, x)
	assert.Equal(t, 165.0, y)

	col, row = term.Cell(f, -5, 1000)
	assert.Equal(t, 0, col)
	assert.Equal(t, 31, row)
}

func TestTerminal_View(t *testing.T) {
	f := geometry.Frame{Width: 100, Height: 40}
	f.Add(
		geometry.Line{X1: 0, Y1: 20, X2: 100, Y2: 20, Style: geometry.Stroked("#2563eb", 2)},
		geometry.Rect{X: 0, Y: 0, W: 100, H: 40, Style: geometry.Filled("#f8fafc")},
		geometry.Text{X: 50, Y: 30, Body: "hello", Anchor: geometry.AnchorMiddle, Size: 10, Style: geometry.Filled("#111111")},
	)

	view := ansi.ReplaceAllString(render.Terminal{Cols: 20, Rows: 4}.View(f), "")
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, view, "hello")
	assert.Regexp(t, "[⠁-⣿]", view)
}

func TestTerminal_EmptyFrame(t *testing.T) {
	f := charts.Donut(charts.DonutProps{}, interaction.NewMachine(nil), animation.Settled)

	var buf bytes.Buffer
	require.NoError(t, render.Terminal{}.Render(&buf, f))
	assert.Contains(t, ansi.ReplaceAllString(buf.String(), ""), charts.NoData)
}

type counter struct {
	hits, misses int
}

func (c *counter) CacheHit(string)  { c.hits++ }
func (c *counter) CacheMiss(string) { c.misses++ }

func TestCache(t *testing.T) {
	obs := &counter{}
	cache, err := render.NewCache(2, obs)
	require.NoError(t, err)

	calls := 0
	frame := func() (geometry.Frame, error) {
		calls++
		return donut(false), nil
	}

	key := render.Key("categories", "svg", []byte(`{"a":1}`))
	first, err := cache.Render(key, render.SVG{}, frame)
	require.NoError(t, err)
	second, err := cache.Render(key, render.SVG{}, frame)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)

	other := render.Key("categories", "svg", []byte(`{"a":2}`))
	assert.NotEqual(t, key, other)
	_, err = cache.Render(other, render.SVG{}, frame)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_FrameError(t *testing.T) {
	cache, err := render.NewCache(0, nil)
	require.NoError(t, err)

	_, err = cache.Render("k", render.SVG{}, func() (geometry.Frame, error) {
		return geometry.Frame{}, errors.New("no payload")
	})
	assert.ErrorContains(t, err, "no payload")
	assert.Zero(t, cache.Len())
}

func TestCache_Nil(t *testing.T) {
	var cache *render.Cache

	out, err := cache.Render("k", render.SVG{}, func() (geometry.Frame, error) { return donut(false), nil })
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Zero(t, cache.Len())
}
