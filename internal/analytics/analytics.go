package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/geometry"
)

// CongestionRadius is the center distance within which another shelf counts
// as a neighbor.
const CongestionRadius = 80.0

// Metric keys in display order.
const (
	KeyExposure          = "exposure"
	KeyImpulse           = "impulse"
	KeyCrossSell         = "crossSell"
	KeyFlowInterception  = "flowInterception"
	KeyCongestionPenalty = "congestionPenalty"
)

// Metric is one scored row of the analytics pane.
type Metric struct {
	Key   string
	Title string
	Info  string
	Value float64
}

// Report holds the scores of one shelf. Every score is in [0, 100].
type Report struct {
	ShelfID           string
	Exposure          float64
	Impulse           float64
	CrossSell         float64
	FlowInterception  float64
	CongestionPenalty float64
}

// Metrics returns the report as pane rows.
func (r Report) Metrics() []Metric {
	return []Metric{
		{Key: KeyExposure, Title: "Exposure Score", Info: "Proximity to store entrances", Value: r.Exposure},
		{Key: KeyImpulse, Title: "Impulse Potential", Info: "Proximity to checkout, weighted by average ticket", Value: r.Impulse},
		{Key: KeyCrossSell, Title: "Cross-Sell Proximity", Info: "Distance to the nearest other shelf", Value: r.CrossSell},
		{Key: KeyFlowInterception, Title: "Flow Interception", Info: "Closeness to the entrance-to-checkout path", Value: r.FlowInterception},
		{Key: KeyCongestionPenalty, Title: "Congestion Penalty", Info: "Shelves crowded within 80 units", Value: r.CongestionPenalty},
	}
}

// Analyze scores shelf against the rest of layout. Distances are normalized by
// the layout diagonal so scores do not depend on the store's size.
func Analyze(layout *domain.RetailLayout, shelf *domain.ProductShelf) Report {
	r := Report{}
	if layout == nil || shelf == nil {
		return r
	}
	r.ShelfID = shelf.ID
	diag := diagonal(layout)
	at := center(shelf.X, shelf.Y)

	entrances, counters := fixtures(layout)
	if d, ok := nearest(at, entrances); ok {
		r.Exposure = proximity(d, diag)
	}
	if d, ok := nearest(at, counters); ok {
		weight := 0.5
		if top := maxTicket(layout); top > 0 {
			weight = 0.5 + 0.5*math.Max(0, shelf.AverageTicket)/top
		}
		r.Impulse = clamp(proximity(d, diag) * weight)
	}

	var others []orb.Point
	neighbors := 0
	for _, s := range layout.Shelves {
		if s == nil || s.ID == shelf.ID {
			continue
		}
		p := center(s.X, s.Y)
		others = append(others, p)
		if planar.Distance(at, p) <= CongestionRadius {
			neighbors++
		}
	}
	if d, ok := nearest(at, others); ok {
		r.CrossSell = proximity(d, diag)
	}
	r.CongestionPenalty = clamp(float64(neighbors) * 25)

	if len(entrances) > 0 && len(counters) > 0 {
		door := entrances[0]
		till, _ := nearestPoint(door, counters)
		path := orb.LineString{door, till}
		r.FlowInterception = proximity(planar.DistanceFrom(path, at), diag/2)
	}
	return r
}

// AnalyzeAll scores every shelf of layout, keyed by shelf id.
func AnalyzeAll(layout *domain.RetailLayout) map[string]Report {
	out := map[string]Report{}
	if layout == nil {
		return out
	}
	for _, s := range layout.Shelves {
		if s != nil {
			out[s.ID] = Analyze(layout, s)
		}
	}
	return out
}

// OverallScore is the mean of every shelf's positive scores less its
// congestion penalty.
func OverallScore(layout *domain.RetailLayout) float64 {
	reports := AnalyzeAll(layout)
	if len(reports) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range reports {
		positive := (r.Exposure + r.Impulse + r.CrossSell + r.FlowInterception) / 4
		total += clamp(positive - r.CongestionPenalty/4)
	}
	return math.Round(total / float64(len(reports)))
}

// Suggestions returns layout-level advice derived from the shelf scores.
func Suggestions(layout *domain.RetailLayout) []string {
	if layout == nil || len(layout.Shelves) == 0 {
		return nil
	}
	var out []string
	entrances, counters := fixtures(layout)
	if len(entrances) == 0 {
		out = append(out, "Add an entrance so customer flow can be estimated.")
	}
	if len(counters) == 0 {
		out = append(out, "Add a cash counter to capture impulse purchases.")
	}

	shelves := make([]*domain.ProductShelf, 0, len(layout.Shelves))
	for _, s := range layout.Shelves {
		if s != nil {
			shelves = append(shelves, s)
		}
	}
	sort.SliceStable(shelves, func(i, j int) bool {
		return shelves[i].AverageTicket > shelves[j].AverageTicket
	})

	reports := AnalyzeAll(layout)
	if top := shelves[0]; len(entrances) > 0 && top.AverageTicket > 0 && reports[top.ID].Exposure < 50 {
		out = append(out, fmt.Sprintf("Move %s closer to main entrance to increase exposure.", label(top)))
	}
	for _, s := range shelves {
		r := reports[s.ID]
		if r.CongestionPenalty >= 50 {
			out = append(out, fmt.Sprintf("Give %s more room; %d shelves crowd it.", label(s), int(r.CongestionPenalty/25)))
		}
		if len(layout.Outline) >= 3 && !geometry.OutlineContains(layout.Outline, geometry.Vec{X: s.X, Y: s.Y}) {
			out = append(out, fmt.Sprintf("%s sits outside the store outline.", label(s)))
		}
	}
	if len(out) == 0 {
		out = append(out, "Layout looks balanced.")
	}
	return out
}

func fixtures(layout *domain.RetailLayout) (entrances, counters []orb.Point) {
	for _, o := range layout.StructureObjects {
		if o == nil {
			continue
		}
		switch {
		case o.Type.IsEntrance():
			entrances = append(entrances, center(o.X, o.Y))
		case o.Type == domain.StructureCashCounter:
			counters = append(counters, center(o.X, o.Y))
		}
	}
	return entrances, counters
}

func nearest(from orb.Point, points []orb.Point) (float64, bool) {
	p, ok := nearestPoint(from, points)
	if !ok {
		return 0, false
	}
	return planar.Distance(from, p), true
}

func nearestPoint(from orb.Point, points []orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}
	best := points[0]
	bestD := planar.DistanceSquared(from, best)
	for _, p := range points[1:] {
		if d := planar.DistanceSquared(from, p); d < bestD {
			best, bestD = p, d
		}
	}
	return best, true
}

func diagonal(layout *domain.RetailLayout) float64 {
	b, ok := geometry.LayoutBounds(layout)
	if !ok {
		return 1
	}
	d := math.Hypot(b.Width, b.Height)
	if d <= 0 {
		return 1
	}
	return d
}

func maxTicket(layout *domain.RetailLayout) float64 {
	top := 0.0
	for _, s := range layout.Shelves {
		if s != nil && s.AverageTicket > top {
			top = s.AverageTicket
		}
	}
	return top
}

// proximity maps distance d onto 100 at zero falling to 0 at span.
func proximity(d, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return clamp(math.Round(100 * (1 - d/span)))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func center(x, y float64) orb.Point { return orb.Point{x, y} }

func label(s *domain.ProductShelf) string {
	if s.Name != "" {
		return s.Name
	}
	return "shelf " + s.ID
}
