package render

import (
	"fmt"
	"io"
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

const (
	// Frame units covered by one terminal cell when no size is given.
	cellPxW = 7
	cellPxH = 14

	// Colors at least this light are treated as the terminal background.
	backgroundLightness = 0.9
)

// Terminal draws frames with braille patterns on an ntcharts canvas.
//
// Shapes are rasterized onto a braille grid, two dots wide and four tall
// per cell, and text is placed on the nearest cell. Light fills such as
// tracks and card backgrounds are left out.
type Terminal struct {
	// Cols and Rows size the output. Zero derives them from the frame.
	Cols, Rows int
}

func (Terminal) Name() string { return "term" }

func (t Terminal) Render(w io.Writer, f geometry.Frame) error {
	if _, err := io.WriteString(w, t.View(f)+"\n"); err != nil {
		return fmt.Errorf("render: write terminal: %w", err)
	}
	return nil
}

// Size returns the number of columns and rows used for f.
func (t Terminal) Size(f geometry.Frame) (int, int) {
	cols, rows := t.Cols, t.Rows
	if cols <= 0 {
		cols = int(math.Ceil(f.Width / cellPxW))
	}
	if rows <= 0 {
		rows = int(math.Ceil(f.Height / cellPxH))
	}
	return max(1, cols), max(1, rows)
}

// Cell maps a frame position to the terminal cell it falls in.
func (t Terminal) Cell(f geometry.Frame, x, y float64) (int, int) {
	cols, rows := t.Size(f)
	return t.cell(f, cols, rows, x, y)
}

// Point maps a terminal cell back to the frame position at its center, for
// hit testing mouse events.
func (t Terminal) Point(f geometry.Frame, col, row int) (float64, float64) {
	cols, rows := t.Size(f)
	return (float64(col) + 0.5) * f.Width / float64(cols), (float64(row) + 0.5) * f.Height / float64(rows)
}

func (t Terminal) cell(f geometry.Frame, cols, rows int, x, y float64) (int, int) {
	if f.Width <= 0 || f.Height <= 0 {
		return 0, 0
	}
	c := int(math.Floor(x / f.Width * float64(cols)))
	r := int(math.Floor(y / f.Height * float64(rows)))
	return max(0, min(cols-1, c)), max(0, min(rows-1, r))
}

// View returns the frame drawn as styled terminal text.
func (t Terminal) View(f geometry.Frame) string {
	cols, rows := t.Size(f)
	c := canvas.New(cols, rows)
	if f.Width <= 0 || f.Height <= 0 {
		return c.View()
	}

	p := plotter{f: f, cols: cols, rows: rows, canvas: &c}
	for _, it := range f.Items {
		switch prim := it.(type) {
		case geometry.Rect:
			p.rect(prim)
		case geometry.Circle:
			p.circle(prim)
		case geometry.Line:
			p.stroke(prim.Style, []geometry.Point{{X: prim.X1, Y: prim.Y1}, {X: prim.X2, Y: prim.Y2}})
		case geometry.Path:
			p.path(prim)
		}
	}

	// Text goes last so labels stay readable over shapes.
	for _, it := range f.Items {
		txt, ok := it.(geometry.Text)
		if !ok || txt.Body == "" || txt.Style.Opacity <= 0 {
			continue
		}
		col, row := t.cell(f, cols, rows, txt.X, txt.Y-txt.Size/2)
		n := len([]rune(txt.Body))
		switch txt.Anchor {
		case geometry.AnchorMiddle:
			col -= n / 2
		case geometry.AnchorEnd:
			col -= n
		}
		c.SetStringWithStyle(canvas.Point{X: max(0, col), Y: row}, txt.Body, textStyle(txt))
	}
	return c.View()
}

type plotter struct {
	f          geometry.Frame
	cols, rows int
	canvas     *canvas.Model
}

func (p plotter) grid() *graph.BrailleGrid {
	return graph.NewBrailleGrid(p.cols, p.rows, 0, p.f.Width, 0, p.f.Height)
}

// dot maps a frame position onto the braille grid. The grid is cartesian,
// so y is flipped.
func (p plotter) dot(g *graph.BrailleGrid, x, y float64) canvas.Point {
	return g.GridPoint(canvas.Float64Point{X: x, Y: p.f.Height - y})
}

func (p plotter) draw(g *graph.BrailleGrid, color string) {
	graph.DrawBraillePatterns(p.canvas, canvas.Point{}, g.BraillePatterns(), lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
}

func (p plotter) rect(r geometry.Rect) {
	if r.Style.Opacity <= 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	if color, ok := shapeColor(r.Style.Fill); ok {
		g := p.grid()
		a, b := p.dot(g, r.X, r.Y), p.dot(g, r.X+r.W, r.Y+r.H)
		for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
			for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
				p.set(g, canvas.Point{X: x, Y: y})
			}
		}
		p.draw(g, color)
		return
	}
	p.stroke(r.Style, []geometry.Point{
		{X: r.X, Y: r.Y}, {X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H}, {X: r.X, Y: r.Y + r.H}, {X: r.X, Y: r.Y},
	})
}

func (p plotter) circle(c geometry.Circle) {
	if c.Style.Opacity <= 0 || c.R <= 0 {
		return
	}
	if color, ok := shapeColor(c.Style.Fill); ok {
		g := p.grid()
		center := p.dot(g, c.CX, c.CY)
		edge := p.dot(g, c.CX+c.R, c.CY+c.R)
		rx, ry := math.Max(1, math.Abs(float64(edge.X-center.X))), math.Max(1, math.Abs(float64(edge.Y-center.Y)))
		for x := center.X - int(rx); x <= center.X+int(rx); x++ {
			for y := center.Y - int(ry); y <= center.Y+int(ry); y++ {
				dx, dy := float64(x-center.X)/rx, float64(y-center.Y)/ry
				if dx*dx+dy*dy <= 1 {
					p.set(g, canvas.Point{X: x, Y: y})
				}
			}
		}
		p.draw(g, color)
		return
	}

	const steps = 32
	outline := make([]geometry.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		outline = append(outline, geometry.Point{X: c.CX + c.R*math.Cos(a), Y: c.CY + c.R*math.Sin(a)})
	}
	p.stroke(c.Style, outline)
}

func (p plotter) path(path geometry.Path) {
	if a := path.Arc; a != nil {
		if a.Sweep <= 0 {
			return
		}
		steps := max(2, int(math.Ceil(a.Sweep/(math.Pi/24))))
		points := make([]geometry.Point, 0, steps+1)
		for i := 0; i <= steps; i++ {
			angle := a.Start + a.Sweep*float64(i)/float64(steps)
			points = append(points, geometry.Point{X: a.CX + a.R*math.Cos(angle), Y: a.CY + a.R*math.Sin(angle)})
		}
		p.stroke(path.Style, points)
		return
	}
	if path.Style.Stroke == "" && path.Closed {
		// Filled areas are left out; the line drawn over them carries the
		// shape.
		return
	}
	p.stroke(path.Style, path.Points)
}

func (p plotter) stroke(s geometry.Style, points []geometry.Point) {
	if s.Opacity <= 0 || len(points) == 0 {
		return
	}
	color, ok := shapeColor(s.Stroke)
	if !ok {
		return
	}
	g := p.grid()
	if len(points) == 1 {
		p.set(g, p.dot(g, points[0].X, points[0].Y))
	}
	for i := 1; i < len(points); i++ {
		p.line(g, p.dot(g, points[i-1].X, points[i-1].Y), p.dot(g, points[i].X, points[i].Y))
	}
	p.draw(g, color)
}

// set marks one dot, ignoring dots off the grid.
func (p plotter) set(g *graph.BrailleGrid, d canvas.Point) {
	if d.X < 0 || d.Y < 0 || d.X >= 2*p.cols || d.Y >= 4*p.rows {
		return
	}
	g.Set(d)
}

// line sets every dot between p1 and p2 with Bresenham's algorithm.
func (p plotter) line(g *graph.BrailleGrid, p1, p2 canvas.Point) {
	dx, dy := abs(p2.X-p1.X), abs(p2.Y-p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}

	err := dx - dy
	x, y := p1.X, p1.Y
	for {
		p.set(g, canvas.Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// shapeColor returns the hex color a shape is drawn with, or false when
// the color is absent or light enough to be background.
func shapeColor(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	rgb, ok := geometry.ParseColor(s)
	if !ok || rgb.Lightness() >= backgroundLightness {
		return "", false
	}
	return rgb.Hex(), true
}

func textStyle(t geometry.Text) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(t.Bold)
	if color, ok := shapeColor(t.Style.Fill); ok {
		st = st.Foreground(lipgloss.Color(color))
	}
	return st
}
