// Package panel is the property panel contract: it lists the editable fields of
// the current selection and writes edits back through the store.
package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/store"
)

// Field keys.
const (
	KeyName          = "name"
	KeyType          = "type"
	KeyX             = "x"
	KeyY             = "y"
	KeyWidth         = "width"
	KeyHeight        = "height"
	KeyOrientation   = "orientation"
	KeyColor         = "color"
	KeyAverageTicket = "averageTicket"
)

var (
	ErrNoSelection  = errors.New("nothing selected")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

var validate = validator.New()

// Field is one editable property of the selection, formatted for display.
type Field struct {
	Key   string
	Label string
	Value string
}

// Panel reads the selection from a store and applies edits to it.
type Panel struct {
	store *store.Store
}

// New returns a panel bound to st.
func New(st *store.Store) *Panel {
	return &Panel{store: st}
}

// Title names what is being edited.
func (p *Panel) Title() string {
	switch sel := p.store.Selection().(type) {
	case store.ShelfSelection:
		return "Shelf: " + sel.Shelf.Name
	case store.StructureSelection:
		return "Structure: " + sel.Object.Name
	default:
		return "Nothing selected"
	}
}

// Fields lists the properties of the current selection. It is empty when
// nothing is selected.
func (p *Panel) Fields() []Field {
	switch sel := p.store.Selection().(type) {
	case store.ShelfSelection:
		s := sel.Shelf
		return []Field{
			{KeyName, "Name", s.Name},
			{KeyX, "X", formatNumber(s.X)},
			{KeyY, "Y", formatNumber(s.Y)},
			{KeyWidth, "Width", formatNumber(s.Width)},
			{KeyHeight, "Height", formatNumber(s.Height)},
			{KeyOrientation, "Orientation", formatNumber(s.Orientation)},
			{KeyColor, "Color", s.Color},
			{KeyAverageTicket, "Average ticket", strconv.FormatFloat(s.AverageTicket, 'f', 2, 64)},
		}
	case store.StructureSelection:
		o := sel.Object
		return []Field{
			{KeyName, "Name", o.Name},
			{KeyType, "Type", string(o.Type)},
			{KeyX, "X", formatNumber(o.X)},
			{KeyY, "Y", formatNumber(o.Y)},
			{KeyWidth, "Width", formatNumber(o.Width)},
			{KeyHeight, "Height", formatNumber(o.Height)},
			{KeyOrientation, "Orientation", formatNumber(o.Orientation)},
		}
	}
	return nil
}

// Apply parses raw for the field key and writes it to the selection.
func (p *Panel) Apply(key, raw string) error {
	raw = strings.TrimSpace(raw)
	switch p.store.Selection().(type) {
	case store.ShelfSelection:
		patch, err := p.shelfPatch(key, raw)
		if err != nil {
			return err
		}
		p.store.UpdateShelf(patch)
	case store.StructureSelection:
		patch, err := p.structurePatch(key, raw)
		if err != nil {
			return err
		}
		p.store.UpdateStructureObject(patch)
	default:
		return ErrNoSelection
	}
	return nil
}

// Clear drops the selection.
func (p *Panel) Clear() { p.store.ClearSelection() }

func (p *Panel) shelfPatch(key, raw string) (store.ShelfPatch, error) {
	var patch store.ShelfPatch
	switch key {
	case KeyName:
		patch.Name = &raw
	case KeyColor:
		if err := validate.Var(raw, "required,hexcolor"); err != nil {
			return patch, fmt.Errorf("%w: color %q", ErrInvalidValue, raw)
		}
		patch.Color = &raw
	case KeyAverageTicket:
		v, err := parseNumber(key, raw, "gte=0")
		if err != nil {
			return patch, err
		}
		patch.AverageTicket = &v
	default:
		geo, err := parseGeometry(key, raw)
		if err != nil {
			return patch, err
		}
		patch.X, patch.Y, patch.Width, patch.Height, patch.Orientation = geo.x, geo.y, geo.width, geo.height, geo.orientation
	}
	return patch, nil
}

func (p *Panel) structurePatch(key, raw string) (store.StructurePatch, error) {
	var patch store.StructurePatch
	switch key {
	case KeyName:
		patch.Name = &raw
	case KeyType:
		t, err := domain.ParseStructureType(raw)
		if err != nil {
			return patch, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		patch.Type = &t
	default:
		geo, err := parseGeometry(key, raw)
		if err != nil {
			return patch, err
		}
		patch.X, patch.Y, patch.Width, patch.Height, patch.Orientation = geo.x, geo.y, geo.width, geo.height, geo.orientation
	}
	return patch, nil
}

type geometryPatch struct {
	x, y, width, height, orientation *float64
}

func parseGeometry(key, raw string) (geometryPatch, error) {
	var g geometryPatch
	var rule string
	switch key {
	case KeyX, KeyY, KeyOrientation:
	case KeyWidth, KeyHeight:
		rule = "gt=0"
	default:
		return g, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	v, err := parseNumber(key, raw, rule)
	if err != nil {
		return g, err
	}
	switch key {
	case KeyX:
		g.x = &v
	case KeyY:
		g.y = &v
	case KeyWidth:
		g.width = &v
	case KeyHeight:
		g.height = &v
	case KeyOrientation:
		g.orientation = &v
	}
	return g, nil
}

func parseNumber(key, raw, rule string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
	}
	if rule != "" {
		if err := validate.Var(v, rule); err != nil {
			return 0, fmt.Errorf("%w: %s %q fails %s", ErrInvalidValue, key, raw, rule)
		}
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
