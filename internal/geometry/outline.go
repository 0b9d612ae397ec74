package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/jask/floorplan/internal/domain"
)

// OutlineRing converts the outline into a closed orb ring.
func OutlineRing(points []domain.Point) orb.Ring {
	if len(points) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// OutlineBounds returns the bounding rectangle of the outline. ok is false for
// an empty outline.
func OutlineBounds(points []domain.Point) (r Rect, ok bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	b := OutlineRing(points).Bound()
	return Rect{X: b.Min.X(), Y: b.Min.Y(), Width: b.Max.X() - b.Min.X(), Height: b.Max.Y() - b.Min.Y()}, true
}

// OutlineArea returns the unsigned area enclosed by the outline.
func OutlineArea(points []domain.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	return math.Abs(planar.Area(OutlineRing(points)))
}

// OutlineContains reports whether p lies inside the outline polygon.
func OutlineContains(points []domain.Point, p Vec) bool {
	if len(points) < 3 {
		return false
	}
	return planar.RingContains(OutlineRing(points), orb.Point{p.X, p.Y})
}

// PolygonContains reports whether p lies inside the polygon with the given
// vertices. The polygon is closed implicitly.
func PolygonContains(vertices []Vec, p Vec) bool {
	if len(vertices) < 3 {
		return false
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	ring = append(ring, ring[0])
	return planar.RingContains(ring, orb.Point{p.X, p.Y})
}

// LayoutBounds covers the outline and every fixture of the layout.
func LayoutBounds(layout *domain.RetailLayout) (Rect, bool) {
	if layout == nil {
		return Rect{}, false
	}
	var b orb.Bound
	seen := false
	extend := func(p orb.Point) {
		if !seen {
			b = orb.Bound{Min: p, Max: p}
			seen = true
			return
		}
		b = b.Extend(p)
	}
	for _, p := range layout.Outline {
		extend(orb.Point{p.X, p.Y})
	}
	for _, s := range layout.Shelves {
		extend(orb.Point{s.X - s.Width/2, s.Y - s.Height/2})
		extend(orb.Point{s.X + s.Width/2, s.Y + s.Height/2})
	}
	for _, o := range layout.StructureObjects {
		extend(orb.Point{o.X - o.Width/2, o.Y - o.Height/2})
		extend(orb.Point{o.X + o.Width/2, o.Y + o.Height/2})
	}
	if !seen {
		return Rect{}, false
	}
	return Rect{X: b.Min.X(), Y: b.Min.Y(), Width: b.Max.X() - b.Min.X(), Height: b.Max.Y() - b.Min.Y()}, true
}
