// Package render draws geometry frames to concrete output formats.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

// Backend draws a frame to w.
type Backend interface {
	Name() string
	Render(w io.Writer, f geometry.Frame) error
}

// Names lists the backends accepted by ByName.
var Names = []string{"svg", "png", "term"}

// ByName returns the backend registered under name.
func ByName(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "svg":
		return SVG{}, nil
	case "png":
		return PNG{}, nil
	case "term", "terminal":
		return Terminal{}, nil
	}
	return nil, fmt.Errorf("render: unknown format %q (want one of %s)", name, strings.Join(Names, ", "))
}

// Extension returns the file extension for output of backend b.
func Extension(b Backend) string {
	switch b.Name() {
	case "term":
		return ".txt"
	default:
		return "." + b.Name()
	}
}

// visible reports whether a primitive painted with s would show at all.
func visible(s geometry.Style) bool {
	return s.Opacity > 0 && (s.Fill != "" || s.Stroke != "")
}
