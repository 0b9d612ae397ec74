package domain

import (
	"math"

	"github.com/google/uuid"
)

// Default values applied by the constructors.
const (
	DefaultShelfColor      = "#597DA9"
	DefaultBackgroundColor = "#ffffff"

	defaultShelfWidth      = 100
	defaultShelfHeight     = 30
	defaultStructureWidth  = 50
	defaultStructureHeight = 50
)

// ProductShelf is a placed product-display fixture. X and Y are the center of
// the fixture in layout units.
type ProductShelf struct {
	ID            string
	Name          string
	X             float64
	Y             float64
	Width         float64
	Height        float64
	Orientation   float64 // degrees, side customers access the shelf from
	Color         string
	AverageTicket float64
}

// NewProductShelf returns a shelf with a fresh ID and default size and color.
func NewProductShelf() *ProductShelf {
	return &ProductShelf{
		ID:     uuid.NewString(),
		Width:  defaultShelfWidth,
		Height: defaultShelfHeight,
		Color:  DefaultShelfColor,
	}
}

// StructureObject is a non-product fixture such as an entrance or a column.
type StructureObject struct {
	ID          string
	Name        string
	Type        StructureType
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Orientation float64
}

// NewStructureObject returns a blocker with a fresh ID.
func NewStructureObject() *StructureObject {
	return &StructureObject{
		ID:     uuid.NewString(),
		Type:   StructureBlocker,
		Width:  defaultStructureWidth,
		Height: defaultStructureHeight,
	}
}

// Point is one vertex of the store outline.
type Point struct {
	X float64
	Y float64
}

// RetailLayout is a complete store floor plan. Outline points are traversed in
// order and the polygon closes from the last point back to the first.
type RetailLayout struct {
	Name             string
	Shelves          []*ProductShelf
	StructureObjects []*StructureObject
	Outline          []Point
	BackgroundColor  string
	OverallScore     float64
}

// NewRetailLayout returns an empty layout with the default background.
func NewRetailLayout(name string) *RetailLayout {
	return &RetailLayout{Name: name, BackgroundColor: DefaultBackgroundColor}
}

// ShelfByID returns the shelf with the given id, or nil.
func (l *RetailLayout) ShelfByID(id string) *ProductShelf {
	if l == nil {
		return nil
	}
	for _, s := range l.Shelves {
		if s != nil && s.ID == id {
			return s
		}
	}
	return nil
}

// StructureObjectByID returns the structure object with the given id, or nil.
func (l *RetailLayout) StructureObjectByID(id string) *StructureObject {
	if l == nil {
		return nil
	}
	for _, o := range l.StructureObjects {
		if o != nil && o.ID == id {
			return o
		}
	}
	return nil
}

// Clone returns a deep copy of the layout. Entity IDs are preserved.
func (l *RetailLayout) Clone() *RetailLayout {
	if l == nil {
		return nil
	}
	out := &RetailLayout{
		Name:            l.Name,
		BackgroundColor: l.BackgroundColor,
		OverallScore:    l.OverallScore,
		Outline:         append([]Point(nil), l.Outline...),
	}
	out.Shelves = make([]*ProductShelf, 0, len(l.Shelves))
	for _, s := range l.Shelves {
		c := *s
		out.Shelves = append(out.Shelves, &c)
	}
	out.StructureObjects = make([]*StructureObject, 0, len(l.StructureObjects))
	for _, o := range l.StructureObjects {
		c := *o
		out.StructureObjects = append(out.StructureObjects, &c)
	}
	return out
}

// NormalizeOrientation wraps degrees into [0, 360).
func NormalizeOrientation(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	return n
}
