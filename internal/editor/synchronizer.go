// Package editor keeps the retained scene in step with the layout held by the
// store. Loads rebuild the scene, drags write positions back into the bound
// entities, and store notifications refresh the node of the edited entity.
package editor

import (
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/geometry"
	"github.com/jask/floorplan/internal/scene"
	"github.com/jask/floorplan/internal/store"
)

// EntityKind is the kind of domain entity a node is bound to.
type EntityKind int

const (
	KindShelf EntityKind = iota
	KindStructure
)

func (k EntityKind) String() string {
	if k == KindStructure {
		return "structure"
	}
	return "shelf"
}

// NodeState is the lifecycle state of a bound node.
type NodeState int

const (
	Unbound NodeState = iota
	Bound
	Dragging
	Destroyed
)

func (s NodeState) String() string {
	switch s {
	case Bound:
		return "bound"
	case Dragging:
		return "dragging"
	case Destroyed:
		return "destroyed"
	default:
		return "unbound"
	}
}

// Binding describes the node currently representing an entity.
type Binding struct {
	Kind  EntityKind
	ID    string
	Node  *scene.Node
	State NodeState
}

type binding struct {
	kind   EntityKind
	id     string
	node   *scene.Node
	shelf  *domain.ProductShelf
	object *domain.StructureObject
	state  NodeState
}

// Synchronizer binds the entities of the active layout to scene nodes.
type Synchronizer struct {
	store  *store.Store
	scene  *scene.Scene
	logger *zap.Logger
	style  Style

	bindings    map[string]*binding
	order       []string
	unsubscribe func()
}

// New wires a synchronizer between st and sc. Call Close to stop observing st.
func New(st *store.Store, sc *scene.Scene, logger *zap.Logger, style Style) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Synchronizer{
		store:    st,
		scene:    sc,
		logger:   logger,
		style:    style,
		bindings: make(map[string]*binding),
	}
	s.unsubscribe = st.Subscribe(s.onStoreEvent)
	return s
}

// Close stops observing the store.
func (s *Synchronizer) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Scene returns the synchronized scene.
func (s *Synchronizer) Scene() *scene.Scene { return s.scene }

// Style returns the drawing style.
func (s *Synchronizer) Style() Style { return s.style }

// DrawBackground redraws the background layer: a canvas fill and the grid.
func (s *Synchronizer) DrawBackground(width, height float64) {
	s.scene.DestroyChildren(scene.Background)
	bounds := geometry.Rect{Width: width, Height: height}
	n := scene.NewNode(ShapeBackground)
	n.Add(
		scene.Rect{Name: ShapeBackground, Bounds: bounds, Fill: s.style.CanvasBackground, Opacity: 1},
		scene.Grid{Name: ShapeGrid, Bounds: bounds, Spacing: s.style.GridSize, Stroke: s.style.GridColor},
	)
	s.scene.Add(scene.Background, n)
}

// Load makes layout active and rebuilds the content layer from it. Selection
// is cleared first so nothing from the previous layout stays selected.
func (s *Synchronizer) Load(layout *domain.RetailLayout) {
	s.store.ClearSelection()

	for _, b := range s.bindings {
		b.state = Destroyed
	}
	destroyed := s.scene.DestroyChildren(scene.Content)
	s.bindings = make(map[string]*binding)
	s.order = nil

	s.store.SetActiveLayout(layout)
	if layout == nil {
		s.logger.Debug("scene cleared", zap.Int("destroyed", destroyed))
		return
	}

	if len(layout.Outline) > 0 {
		s.drawOutline(layout.Outline)
	}
	for _, shelf := range layout.Shelves {
		s.bindShelf(shelf)
	}
	for _, obj := range layout.StructureObjects {
		s.bindStructure(obj)
	}
	s.logger.Info("layout loaded",
		zap.String("name", layout.Name),
		zap.Int("shelves", len(layout.Shelves)),
		zap.Int("structures", len(layout.StructureObjects)),
		zap.Int("destroyed", destroyed),
	)
}

// Scale multiplies the active layout by factor and reloads it.
func (s *Synchronizer) Scale(factor float64) error {
	layout := s.store.ActiveLayout()
	if err := geometry.ScaleLayout(layout, factor); err != nil {
		return err
	}
	s.Load(layout)
	return nil
}

// Bindings returns the current bindings in load order.
func (s *Synchronizer) Bindings() []Binding {
	out := make([]Binding, 0, len(s.order))
	for _, id := range s.order {
		b := s.bindings[id]
		out = append(out, Binding{Kind: b.kind, ID: b.id, Node: b.node, State: b.state})
	}
	return out
}

// NodeFor returns the node bound to the entity id, or nil.
func (s *Synchronizer) NodeFor(id string) *scene.Node {
	if b, ok := s.bindings[id]; ok {
		return b.node
	}
	return nil
}

// State returns the lifecycle state of the node bound to id. Ids without a
// binding are Unbound.
func (s *Synchronizer) State(id string) NodeState {
	if b, ok := s.bindings[id]; ok {
		return b.state
	}
	return Unbound
}

// SelectedNode returns the node of the current selection, or nil.
func (s *Synchronizer) SelectedNode() *scene.Node {
	sel := s.store.Selection()
	if sel == nil {
		return nil
	}
	return s.NodeFor(sel.EntityID())
}

// SelectNext selects the entity after the current one in load order,
// wrapping around. With step -1 it walks backwards.
func (s *Synchronizer) SelectNext(step int) {
	if len(s.order) == 0 {
		return
	}
	idx := -1
	if sel := s.store.Selection(); sel != nil {
		for i, id := range s.order {
			if id == sel.EntityID() {
				idx = i
				break
			}
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(s.order) - 1
	case idx < 0:
		idx = 0
	default:
		idx = ((idx+step)%len(s.order) + len(s.order)) % len(s.order)
	}
	s.scene.Press(s.bindings[s.order[idx]].node)
}

// Nudge moves the selected entity by (dx, dy) as a complete drag gesture.
func (s *Synchronizer) Nudge(dx, dy float64) {
	if n := s.SelectedNode(); n != nil {
		s.scene.DragBy(n, geometry.Vec{X: dx, Y: dy})
	}
}

func (s *Synchronizer) drawOutline(outline []domain.Point) {
	pts := make([]geometry.Vec, len(outline))
	for i, p := range outline {
		pts[i] = geometry.Vec{X: p.X, Y: p.Y}
	}
	n := scene.NewNode(ShapeOutline)
	n.Add(scene.Path{
		Name:        ShapeOutline,
		Points:      pts,
		Closed:      true,
		Stroke:      s.style.OutlineColor,
		StrokeWidth: s.style.OutlineWidth,
	})
	s.scene.Add(scene.Content, n)
}

func (s *Synchronizer) bindShelf(shelf *domain.ProductShelf) {
	n := scene.NewNode(shelf.ID)
	n.Draggable = true
	b := &binding{kind: KindShelf, id: shelf.ID, node: n, shelf: shelf}
	s.attach(b)
	s.applyShelf(n, *shelf)
}

func (s *Synchronizer) bindStructure(obj *domain.StructureObject) {
	n := scene.NewNode(obj.ID)
	n.Draggable = true
	b := &binding{kind: KindStructure, id: obj.ID, node: n, object: obj}
	s.attach(b)
	s.applyStructure(n, *obj)
}

func (s *Synchronizer) attach(b *binding) {
	if _, dup := s.bindings[b.id]; dup {
		s.logger.Warn("duplicate entity id, keeping last node", zap.String("id", b.id))
	} else {
		s.order = append(s.order, b.id)
	}
	b.node.OnPointerDown = func(*scene.Node, scene.PointerEvent) { s.selectBinding(b) }
	b.node.OnDragStart = func(*scene.Node, scene.PointerEvent) {
		b.state = Dragging
		s.selectBinding(b)
	}
	b.node.OnDragMove = func(_ *scene.Node, ev scene.PointerEvent) { s.writePosition(b, ev.Position) }
	b.node.OnDragEnd = func(_ *scene.Node, ev scene.PointerEvent) {
		s.writePosition(b, ev.Position)
		b.state = Bound
		s.logger.Debug("drag finished",
			zap.String("kind", b.kind.String()),
			zap.String("id", b.id),
			zap.Float64("x", ev.Position.X),
			zap.Float64("y", ev.Position.Y),
		)
	}
	b.state = Bound
	s.bindings[b.id] = b
	s.scene.Add(scene.Content, b.node)
}

func (s *Synchronizer) selectBinding(b *binding) {
	switch b.kind {
	case KindShelf:
		s.store.SelectShelf(b.shelf)
	case KindStructure:
		s.store.SelectStructureObject(b.object)
	}
}

// writePosition stores a dragged node position in its entity, then republishes
// the selection so panel readers see the same coordinates.
func (s *Synchronizer) writePosition(b *binding, p geometry.Vec) {
	selected := false
	if sel := s.store.Selection(); sel != nil && sel.EntityID() == b.id {
		selected = true
	}
	switch b.kind {
	case KindShelf:
		b.shelf.X, b.shelf.Y = p.X, p.Y
		if selected {
			s.store.UpdateShelf(store.ShelfPatch{X: store.Ptr(p.X), Y: store.Ptr(p.Y)})
		}
	case KindStructure:
		b.object.X, b.object.Y = p.X, p.Y
		if selected {
			s.store.UpdateStructureObject(store.StructurePatch{X: store.Ptr(p.X), Y: store.Ptr(p.Y)})
		}
	}
}

func (s *Synchronizer) onStoreEvent(ev store.Event) {
	if ev.Kind != store.SelectionChanged || ev.Selection == nil {
		return
	}
	s.refresh(ev.Selection)
}

func (s *Synchronizer) refresh(sel store.Selection) {
	b, ok := s.bindings[sel.EntityID()]
	if !ok {
		s.logger.Debug("no node bound to entity, skipping refresh", zap.String("id", sel.EntityID()))
		return
	}
	switch v := sel.(type) {
	case store.ShelfSelection:
		if b.kind != KindShelf {
			s.logger.Warn("selection kind does not match binding", zap.String("id", b.id))
			return
		}
		s.applyShelf(b.node, v.Shelf)
	case store.StructureSelection:
		if b.kind != KindStructure {
			s.logger.Warn("selection kind does not match binding", zap.String("id", b.id))
			return
		}
		s.applyStructure(b.node, v.Object)
	}
}

// applyShelf derives every shape of a shelf node. Shelf nodes never rotate;
// orientation is shown by the facing strip and arrow.
func (s *Synchronizer) applyShelf(n *scene.Node, shelf domain.ProductShelf) {
	body := geometry.CenteredRect(shelf.Width, shelf.Height)
	ind := geometry.ComputeOrientationIndicators(shelf)

	n.SetPosition(geometry.Vec{X: shelf.X, Y: shelf.Y})
	n.Rotation = 0
	n.HitArea = &body
	n.Set(scene.Rect{Name: ShapeShelfRect, Bounds: body, Fill: shelf.Color, Opacity: 1})
	n.Set(scene.Rect{Name: ShapeFacingIndicator, Bounds: ind.Strip, Fill: shelf.Color, Opacity: s.style.IndicatorOpacity})
	n.Set(scene.Arrow{Name: ShapeOrientationArrow, From: ind.Arrow.From, To: ind.Arrow.To, Color: s.style.ArrowColor})
	n.Set(scene.Text{Name: ShapeShelfText, Bounds: body, Value: shelf.Name, Color: s.style.ShelfTextColor})
}

// applyStructure derives the shapes of a structure node. The whole node,
// label included, rotates with the orientation.
func (s *Synchronizer) applyStructure(n *scene.Node, obj domain.StructureObject) {
	body := geometry.CenteredRect(obj.Width, obj.Height)
	label := geometry.Rect{X: -obj.Width / 2, Y: obj.Height/2 + 5, Width: obj.Width, Height: s.style.LabelHeight}

	n.SetPosition(geometry.Vec{X: obj.X, Y: obj.Y})
	n.Rotation = obj.Orientation
	n.HitArea = &body
	n.Set(scene.Icon{Name: ShapeStructureIcon, Kind: string(obj.Type), Bounds: body})
	n.Set(scene.Text{Name: ShapeStructureText, Bounds: label, Value: obj.Name, Color: s.style.StructureTextColor})
}
