package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/jask/floorplan/internal/domain"
)

var (
	ErrInvalidScaleFactor = errors.New("scale factor must be a positive number")
	ErrNoLayout           = errors.New("no layout to scale")
)

// ScaleLayout multiplies every position, size and outline vertex of layout by
// factor in place. Invalid factors are rejected before anything is touched.
func ScaleLayout(layout *domain.RetailLayout, factor float64) error {
	if layout == nil {
		return ErrNoLayout
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScaleFactor, factor)
	}
	for _, s := range layout.Shelves {
		s.X *= factor
		s.Y *= factor
		s.Width *= factor
		s.Height *= factor
	}
	for _, o := range layout.StructureObjects {
		o.X *= factor
		o.Y *= factor
		o.Width *= factor
		o.Height *= factor
	}
	for i := range layout.Outline {
		layout.Outline[i].X *= factor
		layout.Outline[i].Y *= factor
	}
	return nil
}
