package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

const fontFamily = "Inter, system-ui, sans-serif"

// SVG serializes frames as standalone SVG documents. Path data is written
// verbatim and glowing primitives share one blur filter.
type SVG struct{}

func (SVG) Name() string { return "svg" }

func (SVG) Render(w io.Writer, f geometry.Frame) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		geometry.Num(f.Width), geometry.Num(f.Height), geometry.Num(f.Width), geometry.Num(f.Height))
	if f.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(f.Title))
	}
	if glows(f) {
		b.WriteString("  <defs>\n")
		b.WriteString(`    <filter id="glow" x="-50%" y="-50%" width="200%" height="200%">` + "\n")
		b.WriteString(`      <feGaussianBlur stdDeviation="3" result="blur"/>` + "\n")
		b.WriteString("      <feMerge><feMergeNode in=\"blur\"/><feMergeNode in=\"SourceGraphic\"/></feMerge>\n")
		b.WriteString("    </filter>\n")
		b.WriteString("  </defs>\n")
	}

	for _, it := range f.Items {
		switch p := it.(type) {
		case geometry.Rect:
			fmt.Fprintf(&b, `  <rect x="%s" y="%s" width="%s" height="%s"`,
				geometry.Num(p.X), geometry.Num(p.Y), geometry.Num(p.W), geometry.Num(p.H))
			if p.RX > 0 {
				fmt.Fprintf(&b, ` rx="%s"`, geometry.Num(p.RX))
			}
			writeStyle(&b, p.Style)
			b.WriteString("/>\n")
		case geometry.Circle:
			fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s"`, geometry.Num(p.CX), geometry.Num(p.CY), geometry.Num(p.R))
			writeStyle(&b, p.Style)
			b.WriteString("/>\n")
		case geometry.Line:
			fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s"`,
				geometry.Num(p.X1), geometry.Num(p.Y1), geometry.Num(p.X2), geometry.Num(p.Y2))
			writeStyle(&b, p.Style)
			b.WriteString("/>\n")
		case geometry.Path:
			if p.D == "" {
				continue
			}
			fmt.Fprintf(&b, `  <path d="%s"`, p.D)
			writeStyle(&b, p.Style)
			b.WriteString("/>\n")
		case geometry.Text:
			fmt.Fprintf(&b, `  <text x="%s" y="%s" font-family="%s" font-size="%s" text-anchor="%s"`,
				geometry.Num(p.X), geometry.Num(p.Y), fontFamily, geometry.Num(p.Size), anchor(p.Anchor))
			if p.Bold {
				b.WriteString(` font-weight="bold"`)
			}
			writeStyle(&b, p.Style)
			fmt.Fprintf(&b, ">%s</text>\n", html.EscapeString(p.Body))
		}
	}
	b.WriteString("</svg>\n")

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("render: write svg: %w", err)
	}
	return nil
}

func writeStyle(b *bytes.Buffer, s geometry.Style) {
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(b, ` fill="%s"`, fill)
	if s.Stroke != "" {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, s.Stroke, geometry.Num(s.StrokeWidth))
	}
	if s.Opacity != 1 {
		fmt.Fprintf(b, ` opacity="%s"`, geometry.Num(s.Opacity))
	}
	if len(s.Dash) > 0 {
		dash := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = geometry.Num(d)
		}
		fmt.Fprintf(b, ` stroke-dasharray="%s"`, strings.Join(dash, " "))
	}
	if s.RoundCap {
		b.WriteString(` stroke-linecap="round"`)
	}
	if s.Glow {
		b.WriteString(` filter="url(#glow)"`)
	}
}

func anchor(a geometry.Anchor) geometry.Anchor {
	if a == "" {
		return geometry.AnchorStart
	}
	return a
}

func glows(f geometry.Frame) bool {
	for _, it := range f.Items {
		var s geometry.Style
		switch p := it.(type) {
		case geometry.Rect:
			s = p.Style
		case geometry.Circle:
			s = p.Style
		case geometry.Line:
			s = p.Style
		case geometry.Path:
			s = p.Style
		case geometry.Text:
			s = p.Style
		}
		if s.Glow {
			return true
		}
	}
	return false
}
