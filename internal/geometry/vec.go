// Package geometry holds the pure math of the editor: orientation indicators,
// layout scaling, rotation and the store outline polygon.
package geometry

import "math"

// Vec is a 2D vector in layout units.
type Vec struct {
	X float64
	Y float64
}

func (v Vec) Add(o Vec) Vec         { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec         { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec   { return Vec{X: v.X * f, Y: v.Y * f} }
func (v Vec) Dot(o Vec) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64    { return v.Sub(o).Len() }
func (v Vec) Rotate(deg float64) Vec { return Rotate(v, deg) }

// Rotate turns v clockwise on screen (y down) by deg degrees around the
// origin. Quarter turns are exact.
func Rotate(v Vec, deg float64) Vec {
	switch normalizeDeg(deg) {
	case 0:
		return v
	case 90:
		return Vec{X: -v.Y, Y: v.X}
	case 180:
		return Vec{X: -v.X, Y: -v.Y}
	case 270:
		return Vec{X: v.Y, Y: -v.X}
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func normalizeDeg(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	return n
}

// Rect is an axis-aligned rectangle given by its top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Vec {
	return [4]Vec{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// CenteredRect returns a w by h rectangle centered on the origin.
func CenteredRect(w, h float64) Rect {
	return Rect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
}
