// Package scene is a small retained 2D scene: layered nodes of shapes, hit
// testing and pointer-driven dragging. It knows nothing about stores or
// shelves; renderers read it and input sources feed it pointer events.
package scene

import (
	"math"

	"github.com/jask/floorplan/internal/geometry"
)

// Layer orders nodes for drawing. Lower layers draw first.
type Layer int

const (
	Background Layer = iota
	Content
	layerCount
)

type gesture struct {
	node     *Node
	grab     geometry.Vec // node origin minus pointer at press time
	dragging bool
}

// Scene owns the nodes of every layer.
type Scene struct {
	layers  [layerCount][]*Node
	nextID  int
	snap    float64
	gesture *gesture
}

// Option configures a Scene.
type Option func(*Scene)

// WithSnap snaps dragged node origins to multiples of step.
func WithSnap(step float64) Option {
	return func(s *Scene) { s.snap = step }
}

// New returns an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSnap changes the drag snap step. Zero disables snapping.
func (s *Scene) SetSnap(step float64) {
	if step < 0 {
		step = 0
	}
	s.snap = step
}

// Snap returns the drag snap step.
func (s *Scene) Snap() float64 { return s.snap }

// Add appends n on top of layer.
func (s *Scene) Add(layer Layer, n *Node) {
	s.nextID++
	n.id = s.nextID
	n.layer = layer
	n.destroyed = false
	s.layers[layer] = append(s.layers[layer], n)
}

// Nodes returns the nodes of layer in drawing order.
func (s *Scene) Nodes(layer Layer) []*Node {
	return append([]*Node(nil), s.layers[layer]...)
}

// Len returns the number of nodes on layer.
func (s *Scene) Len(layer Layer) int { return len(s.layers[layer]) }

// DestroyChildren destroys every node of layer and returns how many there
// were. A gesture on a destroyed node is abandoned.
func (s *Scene) DestroyChildren(layer Layer) int {
	nodes := s.layers[layer]
	for _, n := range nodes {
		n.destroy()
	}
	s.layers[layer] = nil
	if s.gesture != nil && s.gesture.node.destroyed {
		s.gesture = nil
	}
	return len(nodes)
}

// HitTest returns the topmost content node under p, or nil.
func (s *Scene) HitTest(p geometry.Vec) *Node {
	nodes := s.layers[Content]
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Hit(p) {
			return nodes[i]
		}
	}
	return nil
}

// Dragging returns the node being dragged, or nil.
func (s *Scene) Dragging() *Node {
	if s.gesture != nil && s.gesture.dragging {
		return s.gesture.node
	}
	return nil
}

// PointerDown presses the pointer at p. The hit node, if any, receives
// OnPointerDown and becomes the gesture target.
func (s *Scene) PointerDown(p geometry.Vec) *Node {
	n := s.HitTest(p)
	if n == nil {
		s.gesture = nil
		return nil
	}
	s.gesture = &gesture{node: n, grab: n.Position().Sub(p)}
	if n.OnPointerDown != nil {
		n.OnPointerDown(n, PointerEvent{Pointer: p, Position: n.Position()})
	}
	return n
}

// PointerMove moves the pressed pointer to p. The first move on a draggable
// target starts the drag; every move repositions the node and fires
// OnDragMove.
func (s *Scene) PointerMove(p geometry.Vec) {
	g := s.gesture
	if g == nil || !g.node.Draggable || g.node.destroyed {
		return
	}
	if !g.dragging {
		g.dragging = true
		if g.node.OnDragStart != nil {
			g.node.OnDragStart(g.node, PointerEvent{Pointer: p, Position: g.node.Position()})
		}
		if g.node.destroyed {
			s.gesture = nil
			return
		}
	}
	g.node.SetPosition(s.snapped(p.Add(g.grab)))
	if g.node.OnDragMove != nil {
		g.node.OnDragMove(g.node, PointerEvent{Pointer: p, Position: g.node.Position()})
	}
}

// PointerUp releases the pointer at p and ends any drag.
func (s *Scene) PointerUp(p geometry.Vec) {
	g := s.gesture
	s.gesture = nil
	if g == nil || !g.dragging || g.node.destroyed {
		return
	}
	g.node.SetPosition(s.snapped(p.Add(g.grab)))
	if g.node.OnDragEnd != nil {
		g.node.OnDragEnd(g.node, PointerEvent{Pointer: p, Position: g.node.Position()})
	}
}

// Press delivers a pointer-down to n at its origin without hit testing.
// Keyboard focus uses it to select nodes that may be covered by others.
func (s *Scene) Press(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	if n.OnPointerDown != nil {
		n.OnPointerDown(n, PointerEvent{Pointer: n.Position(), Position: n.Position()})
	}
}

// DragBy runs a complete drag gesture that moves n by delta.
func (s *Scene) DragBy(n *Node, delta geometry.Vec) {
	if n == nil || n.destroyed || !n.Draggable || s.gesture != nil {
		return
	}
	start := n.Position()
	s.gesture = &gesture{node: n}
	s.PointerMove(start.Add(delta))
	s.PointerUp(start.Add(delta))
}

func (s *Scene) snapped(p geometry.Vec) geometry.Vec {
	if s.snap <= 0 {
		return p
	}
	return geometry.Vec{
		X: math.Round(p.X/s.snap) * s.snap,
		Y: math.Round(p.Y/s.snap) * s.snap,
	}
}
