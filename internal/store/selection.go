package store

import "github.com/jask/floorplan/internal/domain"

// Selection is what the editor currently has selected. A nil Selection means
// nothing is selected; otherwise it is exactly one of ShelfSelection or
// StructureSelection.
type Selection interface {
	EntityID() string
	isSelection()
}

// ShelfSelection holds a snapshot of the selected shelf.
type ShelfSelection struct {
	Shelf domain.ProductShelf
}

func (s ShelfSelection) EntityID() string { return s.Shelf.ID }
func (ShelfSelection) isSelection()       {}

// StructureSelection holds a snapshot of the selected structure object.
type StructureSelection struct {
	Object domain.StructureObject
}

func (s StructureSelection) EntityID() string { return s.Object.ID }
func (StructureSelection) isSelection()       {}

// ShelfPatch lists the shelf fields to overwrite. Nil fields are kept.
type ShelfPatch struct {
	Name          *string
	X             *float64
	Y             *float64
	Width         *float64
	Height        *float64
	Orientation   *float64
	Color         *string
	AverageTicket *float64
}

// Apply returns s with the patch merged in.
func (p ShelfPatch) Apply(s domain.ProductShelf) domain.ProductShelf {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.X != nil {
		s.X = *p.X
	}
	if p.Y != nil {
		s.Y = *p.Y
	}
	if p.Width != nil {
		s.Width = *p.Width
	}
	if p.Height != nil {
		s.Height = *p.Height
	}
	if p.Orientation != nil {
		s.Orientation = domain.NormalizeOrientation(*p.Orientation)
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.AverageTicket != nil {
		s.AverageTicket = *p.AverageTicket
	}
	return s
}

// StructurePatch lists the structure object fields to overwrite.
type StructurePatch struct {
	Name        *string
	Type        *domain.StructureType
	X           *float64
	Y           *float64
	Width       *float64
	Height      *float64
	Orientation *float64
}

// Apply returns o with the patch merged in.
func (p StructurePatch) Apply(o domain.StructureObject) domain.StructureObject {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Type != nil {
		o.Type = *p.Type
	}
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil {
		o.Width = *p.Width
	}
	if p.Height != nil {
		o.Height = *p.Height
	}
	if p.Orientation != nil {
		o.Orientation = domain.NormalizeOrientation(*p.Orientation)
	}
	return o
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }
