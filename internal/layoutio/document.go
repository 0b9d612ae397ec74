// Package layoutio converts retail layouts to and from their JSON document
// form. Everything entering the editor from outside (generated drafts,
// imported files, library entries) passes through Parse or Decode.
package layoutio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jask/floorplan/internal/domain"
)

var ErrInvalidLayout = errors.New("invalid layout document")

// Document is the wire form of a RetailLayout.
type Document struct {
	Name             string              `json:"name" validate:"required"`
	Shelves          []ShelfDocument     `json:"shelves" validate:"required,dive"`
	StructureObjects []StructureDocument `json:"structureObjects" validate:"required,dive"`
	Outline          []PointDocument     `json:"outline,omitempty" validate:"omitempty,min=3"`
	BackgroundColor  string              `json:"backgroundColor,omitempty" validate:"omitempty,hexcolor"`
	OverallScore     float64             `json:"overallScore" validate:"min=0,max=100"`
}

type ShelfDocument struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width" validate:"gt=0"`
	Height        float64 `json:"height" validate:"gt=0"`
	Orientation   float64 `json:"orientation"`
	Color         string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	AverageTicket float64 `json:"averageTicket" validate:"gte=0"`
}

type StructureDocument struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type" validate:"required"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width" validate:"gt=0"`
	Height      float64 `json:"height" validate:"gt=0"`
	Orientation float64 `json:"orientation"`
}

type PointDocument struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var validate = validator.New()

// Decode reads one JSON document from r and converts it to a layout.
func Decode(r io.Reader) (*domain.RetailLayout, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return doc.Layout()
}

// Parse is Decode for an in-memory document. Generated drafts often wrap the
// JSON in a fenced code block; the fence is stripped first.
func Parse(data []byte) (*domain.RetailLayout, error) {
	return Decode(bytes.NewReader(stripFence(data)))
}

// Layout validates d and builds the domain layout. Entries without an id get a
// fresh one; orientations are normalized.
func (d Document) Layout() (*domain.RetailLayout, error) {
	// Nil collections mean the field was absent; empty arrays are fine.
	if d.Shelves == nil || d.StructureObjects == nil {
		return nil, fmt.Errorf("%w: shelves and structureObjects are required", ErrInvalidLayout)
	}
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayout, describe(err))
	}

	l := domain.NewRetailLayout(d.Name)
	if d.BackgroundColor != "" {
		l.BackgroundColor = d.BackgroundColor
	}
	l.OverallScore = d.OverallScore

	seen := make(map[string]bool, len(d.Shelves)+len(d.StructureObjects))
	claim := func(id string) (string, error) {
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return "", fmt.Errorf("%w: duplicate id %q", ErrInvalidLayout, id)
		}
		seen[id] = true
		return id, nil
	}

	for _, s := range d.Shelves {
		id, err := claim(s.ID)
		if err != nil {
			return nil, err
		}
		color := s.Color
		if color == "" {
			color = domain.DefaultShelfColor
		}
		l.Shelves = append(l.Shelves, &domain.ProductShelf{
			ID:            id,
			Name:          s.Name,
			X:             s.X,
			Y:             s.Y,
			Width:         s.Width,
			Height:        s.Height,
			Orientation:   domain.NormalizeOrientation(s.Orientation),
			Color:         color,
			AverageTicket: s.AverageTicket,
		})
	}
	for _, o := range d.StructureObjects {
		id, err := claim(o.ID)
		if err != nil {
			return nil, err
		}
		t, err := domain.ParseStructureType(o.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: structure %q: %w", ErrInvalidLayout, id, err)
		}
		l.StructureObjects = append(l.StructureObjects, &domain.StructureObject{
			ID:          id,
			Name:        o.Name,
			Type:        t,
			X:           o.X,
			Y:           o.Y,
			Width:       o.Width,
			Height:      o.Height,
			Orientation: domain.NormalizeOrientation(o.Orientation),
		})
	}
	for _, p := range d.Outline {
		l.Outline = append(l.Outline, domain.Point{X: p.X, Y: p.Y})
	}
	return l, nil
}

// FromLayout converts a layout to its document form.
func FromLayout(l *domain.RetailLayout) Document {
	d := Document{
		Name:             l.Name,
		Shelves:          make([]ShelfDocument, 0, len(l.Shelves)),
		StructureObjects: make([]StructureDocument, 0, len(l.StructureObjects)),
		BackgroundColor:  l.BackgroundColor,
		OverallScore:     l.OverallScore,
	}
	for _, s := range l.Shelves {
		d.Shelves = append(d.Shelves, ShelfDocument{
			ID: s.ID, Name: s.Name, X: s.X, Y: s.Y, Width: s.Width, Height: s.Height,
			Orientation: s.Orientation, Color: s.Color, AverageTicket: s.AverageTicket,
		})
	}
	for _, o := range l.StructureObjects {
		d.StructureObjects = append(d.StructureObjects, StructureDocument{
			ID: o.ID, Name: o.Name, Type: string(o.Type), X: o.X, Y: o.Y, Width: o.Width, Height: o.Height,
			Orientation: o.Orientation,
		})
	}
	for _, p := range l.Outline {
		d.Outline = append(d.Outline, PointDocument{X: p.X, Y: p.Y})
	}
	return d
}

// Encode writes l to w as indented JSON.
func Encode(w io.Writer, l *domain.RetailLayout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromLayout(l))
}

// Marshal returns l as compact JSON.
func Marshal(l *domain.RetailLayout) ([]byte, error) {
	return json.Marshal(FromLayout(l))
}

func stripFence(data []byte) []byte {
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, "```") {
		return data
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(s)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
