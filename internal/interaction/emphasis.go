package interaction

import (
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/scale"
)

// Emphasis is the visual treatment of one element.
type Emphasis struct {
	Opacity     float64
	StrokeBoost float64
	Glow        bool
}

// Highlighted is the treatment of the element in focus.
var Highlighted = Emphasis{Opacity: 1, StrokeBoost: 6, Glow: true}

// Plain is the treatment of an element when nothing is in focus.
var Plain = Emphasis{Opacity: 1}

// HoverEmphasis highlights the hovered element and dims the others to dim.
func HoverEmphasis(hovered int, ok bool, i int, dim float64) Emphasis {
	switch {
	case !ok:
		return Plain
	case i == hovered:
		return Highlighted
	default:
		return Emphasis{Opacity: dim}
	}
}

// FocusEmphasis treats an element that may be highlighted by hover or by a
// selection. When anything is in focus, elements out of focus are dimmed.
func FocusEmphasis(highlighted, anyFocus bool, dim float64) Emphasis {
	switch {
	case highlighted:
		return Highlighted
	case anyFocus:
		return Emphasis{Opacity: dim}
	default:
		return Plain
	}
}

// SelectionOpacity returns base for the selected row and for every row when
// nothing is selected, and dim for rows other than the selected one.
func SelectionOpacity(selected, label string, base, dim float64) float64 {
	if selected != "" && selected != label {
		return dim
	}
	return base
}

// IndexAt maps a pointer x coordinate over a plot to the nearest sample
// index. Pointers outside the plot clamp to the first or last sample.
func IndexAt(x float64, box geometry.Box, n int) int {
	return scale.ClampIndex(x-box.Left, scale.Step(box.InnerW(), n), n)
}
