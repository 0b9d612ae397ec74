package scene

import "github.com/jask/floorplan/internal/geometry"

// PointerEvent describes a pointer interaction with a node.
type PointerEvent struct {
	// Pointer is the pointer position in world coordinates.
	Pointer geometry.Vec
	// Position is the node position after the event was applied.
	Position geometry.Vec
}

// Handler is a node interaction callback.
type Handler func(n *Node, ev PointerEvent)

// Node is a translatable, rotatable group of shapes. Nodes with a HitArea
// take part in hit testing; Draggable nodes follow the pointer while pressed.
type Node struct {
	Name      string
	X         float64
	Y         float64
	Rotation  float64 // degrees, clockwise on screen
	Draggable bool
	HitArea   *geometry.Rect

	OnPointerDown Handler
	OnDragStart   Handler
	OnDragMove    Handler
	OnDragEnd     Handler

	id        int
	layer     Layer
	shapes    []Shape
	destroyed bool
}

// NewNode returns a detached node at the origin.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// ID is unique within the scene the node was added to. Detached nodes have 0.
func (n *Node) ID() int { return n.id }

// Layer returns the layer the node was added to.
func (n *Node) Layer() Layer { return n.layer }

// Position returns the node origin in world coordinates.
func (n *Node) Position() geometry.Vec { return geometry.Vec{X: n.X, Y: n.Y} }

// SetPosition moves the node origin.
func (n *Node) SetPosition(p geometry.Vec) {
	n.X, n.Y = p.X, p.Y
}

// Add appends shapes in drawing order.
func (n *Node) Add(shapes ...Shape) {
	n.shapes = append(n.shapes, shapes...)
}

// Shapes returns the node's shapes in drawing order.
func (n *Node) Shapes() []Shape {
	return append([]Shape(nil), n.shapes...)
}

// FindOne returns the first shape with the given name, or nil.
func (n *Node) FindOne(name string) Shape {
	for _, s := range n.shapes {
		if s.ShapeName() == name {
			return s
		}
	}
	return nil
}

// Set replaces the shape with the same name, keeping its drawing position, or
// appends shape when there is none.
func (n *Node) Set(shape Shape) {
	for i, s := range n.shapes {
		if s.ShapeName() == shape.ShapeName() {
			n.shapes[i] = shape
			return
		}
	}
	n.shapes = append(n.shapes, shape)
}

// RemoveShape drops every shape with the given name.
func (n *Node) RemoveShape(name string) bool {
	kept := n.shapes[:0]
	removed := false
	for _, s := range n.shapes {
		if s.ShapeName() == name {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	n.shapes = kept
	return removed
}

// Destroyed reports whether the node was removed from its scene.
func (n *Node) Destroyed() bool { return n.destroyed }

// ToWorld maps a node-local point to world coordinates.
func (n *Node) ToWorld(local geometry.Vec) geometry.Vec {
	return geometry.Rotate(local, n.Rotation).Add(n.Position())
}

// ToLocal maps a world point into node-local coordinates.
func (n *Node) ToLocal(world geometry.Vec) geometry.Vec {
	return geometry.Rotate(world.Sub(n.Position()), -n.Rotation)
}

// Hit reports whether the world point falls inside the node's hit area.
func (n *Node) Hit(world geometry.Vec) bool {
	if n.destroyed || n.HitArea == nil {
		return false
	}
	return n.HitArea.Contains(n.ToLocal(world))
}

func (n *Node) destroy() {
	n.destroyed = true
	n.OnPointerDown = nil
	n.OnDragStart = nil
	n.OnDragMove = nil
	n.OnDragEnd = nil
}
