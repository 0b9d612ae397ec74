// Package store holds the active layout and the current selection, and
// notifies subscribers synchronously on every change.
//
// A Store is meant to be driven from a single goroutine (the UI update loop);
// it does no locking.
package store

import (
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/domain"
)

// EventKind tells subscribers which part of the state changed.
type EventKind int

const (
	LayoutChanged EventKind = iota
	SelectionChanged
)

func (k EventKind) String() string {
	if k == LayoutChanged {
		return "layout"
	}
	return "selection"
}

// Event is delivered to subscribers after a mutation.
type Event struct {
	Kind      EventKind
	Layout    *domain.RetailLayout
	Selection Selection
}

// Listener receives store events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Store is the single source of truth for the active layout and selection.
type Store struct {
	layout    *domain.RetailLayout
	selection Selection
	subs      []subscription
	nextSub   int
	logger    *zap.Logger
}

// New returns an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Subscribe registers fn and returns a func that removes it. Listeners run in
// registration order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(kind EventKind) {
	ev := Event{Kind: kind, Layout: s.layout, Selection: s.selection}
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// ActiveLayout returns the active layout, or nil.
func (s *Store) ActiveLayout() *domain.RetailLayout { return s.layout }

// SetActiveLayout replaces the active layout. Selection is left as is; callers
// swapping layouts clear it themselves.
func (s *Store) SetActiveLayout(layout *domain.RetailLayout) {
	s.layout = layout
	s.logger.Debug("active layout set", zap.Bool("empty", layout == nil))
	s.publish(LayoutChanged)
}

// Selection returns the current selection, or nil.
func (s *Store) Selection() Selection { return s.selection }

// SelectedShelf returns a snapshot of the selected shelf, or nil.
func (s *Store) SelectedShelf() *domain.ProductShelf {
	if sel, ok := s.selection.(ShelfSelection); ok {
		shelf := sel.Shelf
		return &shelf
	}
	return nil
}

// SelectedStructureObject returns a snapshot of the selected structure
// object, or nil.
func (s *Store) SelectedStructureObject() *domain.StructureObject {
	if sel, ok := s.selection.(StructureSelection); ok {
		obj := sel.Object
		return &obj
	}
	return nil
}

// HasSelection reports whether a shelf or a structure object is selected.
func (s *Store) HasSelection() bool { return s.selection != nil }

// SelectShelf selects a snapshot of shelf and drops any structure selection.
// nil clears the selection.
func (s *Store) SelectShelf(shelf *domain.ProductShelf) {
	if shelf == nil {
		s.selection = nil
	} else {
		s.selection = ShelfSelection{Shelf: *shelf}
	}
	s.publish(SelectionChanged)
}

// SelectStructureObject selects a snapshot of obj and drops any shelf
// selection. nil clears the selection.
func (s *Store) SelectStructureObject(obj *domain.StructureObject) {
	if obj == nil {
		s.selection = nil
	} else {
		s.selection = StructureSelection{Object: *obj}
	}
	s.publish(SelectionChanged)
}

// ClearSelection drops the selection.
func (s *Store) ClearSelection() {
	s.selection = nil
	s.publish(SelectionChanged)
}

// UpdateShelf merges p into a new value of the selected shelf, writes it to the
// matching shelf of the active layout and republishes it. It does nothing when
// no shelf is selected.
func (s *Store) UpdateShelf(p ShelfPatch) {
	sel, ok := s.selection.(ShelfSelection)
	if !ok {
		return
	}
	next := p.Apply(sel.Shelf)
	if entity := s.layout.ShelfByID(next.ID); entity != nil {
		*entity = next
	}
	s.selection = ShelfSelection{Shelf: next}
	s.publish(SelectionChanged)
}

// UpdateStructureObject is UpdateShelf for structure objects.
func (s *Store) UpdateStructureObject(p StructurePatch) {
	sel, ok := s.selection.(StructureSelection)
	if !ok {
		return
	}
	next := p.Apply(sel.Object)
	if entity := s.layout.StructureObjectByID(next.ID); entity != nil {
		*entity = next
	}
	s.selection = StructureSelection{Object: next}
	s.publish(SelectionChanged)
}
