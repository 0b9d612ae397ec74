package geometry

import "github.com/jask/floorplan/internal/domain"

// Indicator dimensions in layout units.
const (
	IndicatorThickness = 6.0
	arrowInset         = 15.0
	arrowOvershoot     = 5.0
)

// Side names the edge of a fixture customers approach from.
type Side int

const (
	SideBottom Side = iota
	SideRight
	SideTop
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	default:
		return "bottom"
	}
}

// Normal is the outward unit vector of the edge.
func (s Side) Normal() Vec {
	switch s {
	case SideRight:
		return Vec{X: 1}
	case SideTop:
		return Vec{Y: -1}
	case SideLeft:
		return Vec{X: -1}
	default:
		return Vec{Y: 1}
	}
}

// Edge is the unit vector running along the edge.
func (s Side) Edge() Vec {
	switch s {
	case SideRight, SideLeft:
		return Vec{Y: 1}
	default:
		return Vec{X: 1}
	}
}

// Arrow is a directed segment in fixture-local coordinates.
type Arrow struct {
	From Vec
	To   Vec
}

// Direction returns To - From.
func (a Arrow) Direction() Vec { return a.To.Sub(a.From) }

// Indicators is the facing strip and arrow drawn for a fixture. Coordinates
// are local to the fixture center, y grows downward.
type Indicators struct {
	Side  Side
	Strip Rect
	Arrow Arrow
}

// SideForOrientation maps an orientation in degrees to the access side.
// Orientations other than 0, 90, 180 and 270 fall back to the bottom edge.
func SideForOrientation(orientation float64) Side {
	switch domain.NormalizeOrientation(orientation) {
	case 90:
		return SideRight
	case 180:
		return SideTop
	case 270:
		return SideLeft
	default:
		return SideBottom
	}
}

// ComputeOrientationIndicators derives the facing strip and arrow of a shelf
// from its size and orientation. Position is not used.
func ComputeOrientationIndicators(shelf domain.ProductShelf) Indicators {
	return IndicatorsFor(shelf.Width, shelf.Height, shelf.Orientation)
}

// IndicatorsFor is ComputeOrientationIndicators for raw dimensions.
func IndicatorsFor(width, height, orientation float64) Indicators {
	hw, hh := width/2, height/2
	side := SideForOrientation(orientation)
	out := Indicators{Side: side}
	switch side {
	case SideRight:
		out.Strip = Rect{X: hw, Y: -hh, Width: IndicatorThickness, Height: height}
		out.Arrow = Arrow{From: Vec{X: hw - arrowInset}, To: Vec{X: hw + arrowOvershoot}}
	case SideTop:
		out.Strip = Rect{X: -hw, Y: -hh - IndicatorThickness, Width: width, Height: IndicatorThickness}
		out.Arrow = Arrow{From: Vec{Y: -hh + arrowInset}, To: Vec{Y: -hh - arrowOvershoot}}
	case SideLeft:
		out.Strip = Rect{X: -hw - IndicatorThickness, Y: -hh, Width: IndicatorThickness, Height: height}
		out.Arrow = Arrow{From: Vec{X: -hw + arrowInset}, To: Vec{X: -hw - arrowOvershoot}}
	default:
		out.Strip = Rect{X: -hw, Y: hh, Width: width, Height: IndicatorThickness}
		out.Arrow = Arrow{From: Vec{Y: hh - arrowInset}, To: Vec{Y: hh + arrowOvershoot}}
	}
	return out
}
