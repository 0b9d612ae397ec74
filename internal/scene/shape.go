package scene

import "github.com/jask/floorplan/internal/geometry"

// Shape is a drawable primitive owned by a Node. Coordinates are local to
// the node origin. Renderers switch on the concrete type.
type Shape interface {
	ShapeName() string
}

// Rect is a filled rectangle. Opacity below 1 is drawn as a tint.
type Rect struct {
	Name    string
	Bounds  geometry.Rect
	Fill    string
	Opacity float64
}

// Path is a polyline, closed back to its first point when Closed is set.
type Path struct {
	Name        string
	Points      []geometry.Vec
	Closed      bool
	Stroke      string
	StrokeWidth float64
}

// Arrow is a directed segment with a head at To.
type Arrow struct {
	Name  string
	From  geometry.Vec
	To    geometry.Vec
	Color string
}

// Align is horizontal text alignment inside a Text box.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// Text is a label laid out inside Bounds.
type Text struct {
	Name   string
	Bounds geometry.Rect
	Value  string
	Color  string
	Align  Align
}

// Icon is a symbolic glyph, such as a fixture type, drawn inside Bounds.
type Icon struct {
	Name   string
	Kind   string
	Bounds geometry.Rect
}

// Grid is a regular lattice of guide lines covering Bounds.
type Grid struct {
	Name    string
	Bounds  geometry.Rect
	Spacing float64
	Stroke  string
}

func (s Rect) ShapeName() string  { return s.Name }
func (s Path) ShapeName() string  { return s.Name }
func (s Arrow) ShapeName() string { return s.Name }
func (s Text) ShapeName() string  { return s.Name }
func (s Icon) ShapeName() string  { return s.Name }
func (s Grid) ShapeName() string  { return s.Name }
