package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

// PNG rasterizes frames by replaying their primitives on a go-chart
// renderer. Glow is not drawn; opacity is folded into each color's alpha.
type PNG struct {
	// Background fills the canvas first. Empty means white.
	Background string
}

func (PNG) Name() string { return "png" }

func (p PNG) Render(w io.Writer, f geometry.Frame) error {
	width := max(1, int(math.Ceil(f.Width)))
	height := max(1, int(math.Ceil(f.Height)))

	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("render: png canvas: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("render: png font: %w", err)
	}
	r.SetFont(font)

	bg := p.Background
	if bg == "" {
		bg = "#ffffff"
	}
	background := geometry.Filled(bg)
	replayRect(r, geometry.Rect{W: float64(width), H: float64(height), Style: background})

	for _, it := range f.Items {
		switch prim := it.(type) {
		case geometry.Rect:
			replayRect(r, prim)
		case geometry.Circle:
			if !visible(prim.Style) {
				continue
			}
			r.Circle(prim.R, px(prim.CX), px(prim.CY))
			paint(r, prim.Style)
		case geometry.Line:
			if !visible(prim.Style) {
				continue
			}
			r.MoveTo(px(prim.X1), px(prim.Y1))
			r.LineTo(px(prim.X2), px(prim.Y2))
			paint(r, geometry.Style{Stroke: prim.Style.Stroke, StrokeWidth: prim.Style.StrokeWidth, Opacity: prim.Style.Opacity, Dash: prim.Style.Dash})
		case geometry.Path:
			replayPath(r, prim)
		case geometry.Text:
			replayText(r, prim)
		}
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

func replayRect(r chart.Renderer, rect geometry.Rect) {
	if !visible(rect.Style) || rect.W <= 0 || rect.H <= 0 {
		return
	}
	x0, y0 := px(rect.X), px(rect.Y)
	x1, y1 := px(rect.X+rect.W), px(rect.Y+rect.H)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	paint(r, rect.Style)
}

func replayPath(r chart.Renderer, p geometry.Path) {
	if !visible(p.Style) {
		return
	}
	if a := p.Arc; a != nil {
		if a.Sweep <= 0 {
			return
		}
		r.MoveTo(px(a.CX+a.R*math.Cos(a.Start)), px(a.CY+a.R*math.Sin(a.Start)))
		r.ArcTo(px(a.CX), px(a.CY), a.R, a.R, a.Start, a.Sweep)
		paint(r, p.Style)
		return
	}
	if len(p.Points) < 2 {
		return
	}
	r.MoveTo(px(p.Points[0].X), px(p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		r.LineTo(px(pt.X), px(pt.Y))
	}
	if p.Closed {
		r.Close()
	}
	paint(r, p.Style)
}

func replayText(r chart.Renderer, t geometry.Text) {
	c, ok := pngColor(t.Style.Fill, t.Style.Opacity)
	if !ok || t.Body == "" {
		return
	}
	size := t.Size
	if size <= 0 {
		size = 12
	}
	// go-chart sizes fonts in points at its default DPI.
	r.SetFontSize(size * 0.75)
	r.SetFontColor(c)

	x := px(t.X)
	switch t.Anchor {
	case geometry.AnchorMiddle:
		x -= r.MeasureText(t.Body).Width() / 2
	case geometry.AnchorEnd:
		x -= r.MeasureText(t.Body).Width()
	}
	r.Text(t.Body, x, px(t.Y))
}

// paint finishes the current path with the fill and stroke of s.
func paint(r chart.Renderer, s geometry.Style) {
	fill, hasFill := pngColor(s.Fill, s.Opacity)
	stroke, hasStroke := pngColor(s.Stroke, s.Opacity)
	if hasStroke {
		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(math.Max(s.StrokeWidth, 1))
		r.SetStrokeDashArray(s.Dash)
	}
	if hasFill {
		r.SetFillColor(fill)
	}

	switch {
	case hasFill && hasStroke:
		r.FillStroke()
	case hasFill:
		r.Fill()
	case hasStroke:
		r.Stroke()
	default:
		r.SetStrokeColor(drawing.ColorTransparent)
		r.Stroke()
	}
	r.SetStrokeDashArray(nil)
}

// pngColor converts a frame color and opacity into a go-chart color.
func pngColor(s string, opacity float64) (drawing.Color, bool) {
	if s == "" || opacity <= 0 {
		return drawing.Color{}, false
	}
	rgb, ok := geometry.ParseColor(s)
	if !ok {
		return drawing.Color{}, false
	}
	c := drawing.ColorFromHex(strings.TrimPrefix(rgb.Hex(), "#"))
	c.A = uint8(math.Round(255 * math.Min(1, opacity)))
	return c, true
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
