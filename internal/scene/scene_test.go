package scene

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/geometry"
)

func box(name string, x, y, w, h float64) *Node {
	n := NewNode(name)
	n.X, n.Y = x, y
	area := geometry.CenteredRect(w, h)
	n.HitArea = &area
	n.Draggable = true
	return n
}

func TestHitTestPrefersTopmostNode(t *testing.T) {
	s := New()
	bottom := box("bottom", 100, 100, 100, 100)
	top := box("top", 120, 100, 40, 40)
	s.Add(Content, bottom)
	s.Add(Content, top)

	require.Equal(t, top, s.HitTest(geometry.Vec{X: 120, Y: 100}))
	require.Equal(t, bottom, s.HitTest(geometry.Vec{X: 70, Y: 100}))
	require.Nil(t, s.HitTest(geometry.Vec{X: 300, Y: 300}))
}

func TestHitTestIgnoresBackgroundAndShapeOnlyNodes(t *testing.T) {
	s := New()
	bg := box("bg", 0, 0, 1000, 1000)
	s.Add(Background, bg)
	outline := NewNode("outline")
	s.Add(Content, outline)

	require.Nil(t, s.HitTest(geometry.Vec{X: 10, Y: 10}))
}

func TestHitTestHonoursRotation(t *testing.T) {
	s := New()
	n := box("door", 100, 100, 80, 20)
	n.Rotation = 90
	s.Add(Content, n)

	// Rotated a quarter turn, the long side runs vertically.
	require.NotNil(t, s.HitTest(geometry.Vec{X: 100, Y: 135}))
	require.Nil(t, s.HitTest(geometry.Vec{X: 135, Y: 100}))
}

func TestDragLifecycle(t *testing.T) {
	s := New()
	n := box("shelf", 100, 100, 100, 50)
	s.Add(Content, n)

	var events []string
	var positions []geometry.Vec
	n.OnPointerDown = func(*Node, PointerEvent) { events = append(events, "down") }
	n.OnDragStart = func(*Node, PointerEvent) { events = append(events, "start") }
	n.OnDragMove = func(_ *Node, ev PointerEvent) {
		events = append(events, "move")
		positions = append(positions, ev.Position)
	}
	n.OnDragEnd = func(_ *Node, ev PointerEvent) {
		events = append(events, "end")
		positions = append(positions, ev.Position)
	}

	// Grab 10 units right of the origin; the offset is kept while dragging.
	require.Equal(t, n, s.PointerDown(geometry.Vec{X: 110, Y: 100}))
	require.Nil(t, s.Dragging())
	s.PointerMove(geometry.Vec{X: 160, Y: 100})
	require.Equal(t, n, s.Dragging())
	s.PointerMove(geometry.Vec{X: 260, Y: 100})
	s.PointerUp(geometry.Vec{X: 260, Y: 100})

	require.Equal(t, []string{"down", "start", "move", "move", "end"}, events)
	require.Equal(t, []geometry.Vec{{X: 150, Y: 100}, {X: 250, Y: 100}, {X: 250, Y: 100}}, positions)
	require.Equal(t, geometry.Vec{X: 250, Y: 100}, n.Position())
	require.Nil(t, s.Dragging())
}

func TestClickWithoutMoveDoesNotDrag(t *testing.T) {
	s := New()
	n := box("shelf", 100, 100, 100, 50)
	s.Add(Content, n)
	ended := false
	n.OnDragEnd = func(*Node, PointerEvent) { ended = true }

	s.PointerDown(geometry.Vec{X: 100, Y: 100})
	s.PointerUp(geometry.Vec{X: 100, Y: 100})
	require.False(t, ended)
	require.Equal(t, geometry.Vec{X: 100, Y: 100}, n.Position())
}

func TestSnapRoundsDraggedOrigin(t *testing.T) {
	s := New(WithSnap(20))
	n := box("shelf", 100, 100, 100, 50)
	s.Add(Content, n)

	s.PointerDown(geometry.Vec{X: 100, Y: 100})
	s.PointerMove(geometry.Vec{X: 147, Y: 111})
	require.Equal(t, geometry.Vec{X: 140, Y: 120}, n.Position())
	s.PointerUp(geometry.Vec{X: 147, Y: 111})

	s.SetSnap(0)
	s.DragBy(n, geometry.Vec{X: 3})
	require.Equal(t, geometry.Vec{X: 143, Y: 120}, n.Position())
}

func TestDestroyChildrenAbandonsGesture(t *testing.T) {
	s := New()
	n := box("shelf", 100, 100, 100, 50)
	s.Add(Content, n)
	moved := false
	n.OnDragMove = func(*Node, PointerEvent) { moved = true }

	s.PointerDown(geometry.Vec{X: 100, Y: 100})
	require.Equal(t, 1, s.DestroyChildren(Content))
	s.PointerMove(geometry.Vec{X: 200, Y: 100})

	require.True(t, n.Destroyed())
	require.False(t, moved)
	require.Zero(t, s.Len(Content))
	require.Nil(t, s.HitTest(geometry.Vec{X: 100, Y: 100}))
}

func TestDragByRunsFullGesture(t *testing.T) {
	s := New()
	n := box("shelf", 0, 0, 10, 10)
	s.Add(Content, n)
	var events []string
	n.OnDragStart = func(*Node, PointerEvent) { events = append(events, "start") }
	n.OnDragMove = func(*Node, PointerEvent) { events = append(events, "move") }
	n.OnDragEnd = func(*Node, PointerEvent) { events = append(events, "end") }

	s.DragBy(n, geometry.Vec{X: 20, Y: -10})
	require.Equal(t, []string{"start", "move", "end"}, events)
	require.Equal(t, geometry.Vec{X: 20, Y: -10}, n.Position())

	n.Draggable = false
	s.DragBy(n, geometry.Vec{X: 20})
	require.Equal(t, geometry.Vec{X: 20, Y: -10}, n.Position())
}

func TestNodeShapes(t *testing.T) {
	n := NewNode("shelf")
	n.Add(Rect{Name: "body", Fill: "#fff"}, Text{Name: "label", Value: "A"})

	n.Set(Rect{Name: "body", Fill: "#000"})
	require.Len(t, n.Shapes(), 2)
	require.Equal(t, "#000", n.FindOne("body").(Rect).Fill)
	require.Equal(t, "body", n.Shapes()[0].ShapeName())

	n.Set(Arrow{Name: "arrow"})
	require.Len(t, n.Shapes(), 3)

	require.True(t, n.RemoveShape("label"))
	require.False(t, n.RemoveShape("label"))
	require.Nil(t, n.FindOne("label"))
}

func TestToWorldAndBack(t *testing.T) {
	n := NewNode("x")
	n.X, n.Y, n.Rotation = 50, 50, 90
	w := n.ToWorld(geometry.Vec{X: 10})
	require.InDelta(t, 50, w.X, 1e-9)
	require.InDelta(t, 60, w.Y, 1e-9)
	back := n.ToLocal(w)
	require.InDelta(t, 10, back.X, 1e-9)
	require.InDelta(t, 0, back.Y, 1e-9)
}
