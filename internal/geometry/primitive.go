// Package geometry builds backend-agnostic drawing primitives from chart
// data.
//
// Every builder is a pure function: the same series, scales and box always
// yield the same primitives. Coordinates follow the SVG convention, with
// (0, 0) at the top left and y growing downwards.
package geometry

// Point is a position on the drawing surface.
type Point struct {
	X float64
	Y float64
}

// Anchor is the horizontal alignment of a text primitive.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style describes how a primitive is painted.
//
// An empty Fill or Stroke means "none". Opacity is applied as is, so a
// zero opacity is invisible; use the constructors to get an opaque style.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Dash        []float64
	RoundCap    bool
	Glow        bool
}

// Filled returns an opaque style filled with color.
func Filled(color string) Style {
	return Style{Fill: color, Opacity: 1}
}

// Stroked returns an opaque outline style.
func Stroked(color string, width float64) Style {
	return Style{Stroke: color, StrokeWidth: width, Opacity: 1}
}

// WithOpacity returns a copy of s with the given opacity.
func (s Style) WithOpacity(o float64) Style {
	s.Opacity = o
	return s
}

// WithGlow returns a copy of s with the glow flag set to glow.
func (s Style) WithGlow(glow bool) Style {
	s.Glow = glow
	return s
}

// Primitive is one drawable item of a frame.
type Primitive interface {
	isPrimitive()
}

// Path is an open or closed sequence of segments.
//
// D holds the SVG path data. Points is the same outline flattened into a
// polyline for backends that cannot interpret path data, and Arc is set
// when the path is a single circular arc.
type Path struct {
	D      string
	Points []Point
	Closed bool
	Arc    *Arc
	Style  Style
}

// Arc is a circular arc swept clockwise from Start by Sweep radians.
type Arc struct {
	CX, CY, R    float64
	Start, Sweep float64
}

// Rect is an axis-aligned rectangle with optional corner radius.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Style      Style
}

// Circle is a circle centered on (CX, CY).
type Circle struct {
	CX, CY, R float64
	Style     Style
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          Style
}

// Text is a single line of text. Style.Fill is the text color.
type Text struct {
	X, Y   float64
	Body   string
	Anchor Anchor
	Size   float64
	Bold   bool
	Style  Style
}

func (Path) isPrimitive()   {}
func (Rect) isPrimitive()   {}
func (Circle) isPrimitive() {}
func (Line) isPrimitive()   {}
func (Text) isPrimitive()   {}
