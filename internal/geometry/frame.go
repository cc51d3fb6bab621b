package geometry

import "math"

// Box is a canvas size with padding around the plotted area.
type Box struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
}

// InnerW returns the width of the plotted area.
func (b Box) InnerW() float64 {
	return math.Max(0, b.Width-b.Left-b.Right)
}

// InnerH returns the height of the plotted area.
func (b Box) InnerH() float64 {
	return math.Max(0, b.Height-b.Top-b.Bottom)
}

// Baseline returns the y coordinate of the bottom of the plotted area.
func (b Box) Baseline() float64 {
	return b.Top + b.InnerH()
}

// Region is an interactive area of a frame, used for hit testing pointer
// positions against chart elements.
type Region struct {
	Index int
	Label string

	// Bounds of the region. For arc regions these bound the ring segment.
	X, Y, W, H float64

	// Ring is set for donut slices.
	Ring *Ring

	// Count is set for continuous regions such as the plot area of a line
	// chart, where the element index is derived from the x position.
	Count int
	Step  float64
}

// Ring describes a slice of an annulus.
type Ring struct {
	CX, CY       float64
	Inner, Outer float64
	Start, Sweep float64
}

// Contains reports whether (x, y) falls inside the region.
func (r Region) Contains(x, y float64) bool {
	if r.Ring != nil {
		return r.Ring.contains(x, y)
	}
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// IndexAt returns the element index for a pointer at x. Continuous regions
// clamp the pointer to the nearest sample; discrete regions return their
// own index.
func (r Region) IndexAt(x float64) int {
	if r.Count == 0 {
		return r.Index
	}
	if r.Count <= 1 || r.Step <= 0 {
		return 0
	}
	i := int(math.Round((x - r.X) / r.Step))
	return max(0, min(r.Count-1, i))
}

func (g *Ring) contains(x, y float64) bool {
	dx, dy := x-g.CX, y-g.CY
	d := math.Hypot(dx, dy)
	if d < g.Inner || d > g.Outer {
		return false
	}
	if g.Sweep >= 2*math.Pi {
		return true
	}
	a := math.Mod(math.Atan2(dy, dx)-g.Start, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a <= g.Sweep
}

// Frame is the complete drawing of one chart at one instant.
type Frame struct {
	Title   string
	Width   float64
	Height  float64
	Items   []Primitive
	Regions []Region

	// Empty is set when the chart had nothing to draw. Message, when not
	// empty, is the text shown in place of the chart.
	Empty   bool
	Message string
}

// Add appends primitives to the frame.
func (f *Frame) Add(items ...Primitive) {
	f.Items = append(f.Items, items...)
}

// Hit returns the topmost region containing (x, y).
func (f *Frame) Hit(x, y float64) (Region, bool) {
	for i := len(f.Regions) - 1; i >= 0; i-- {
		if f.Regions[i].Contains(x, y) {
			return f.Regions[i], true
		}
	}
	return Region{}, false
}
