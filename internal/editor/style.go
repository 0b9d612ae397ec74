package editor

import "math"

// Shape names used on synchronized nodes. Renderers and refreshes look shapes
// up by these names.
const (
	ShapeBackground       = "background"
	ShapeGrid             = "grid"
	ShapeOutline          = "outline"
	ShapeShelfRect        = "shelfRect"
	ShapeFacingIndicator  = "facingIndicator"
	ShapeOrientationArrow = "orientationArrow"
	ShapeShelfText        = "shelfText"
	ShapeStructureIcon    = "structureIcon"
	ShapeStructureText    = "structureText"
)

// Style holds the colors and sizes used when drawing a layout.
type Style struct {
	GridSize           float64
	GridColor          string
	CanvasBackground   string
	OutlineColor       string
	OutlineWidth       float64
	ShelfTextColor     string
	ArrowColor         string
	StructureTextColor string
	IndicatorOpacity   float64
	LabelHeight        float64
}

// DefaultStyle returns the stock editor look.
func DefaultStyle() Style {
	return Style{
		GridSize:           20,
		GridColor:          "#DBDEE7",
		CanvasBackground:   "#f0f1f8",
		OutlineColor:       "#000000",
		OutlineWidth:       2,
		ShelfTextColor:     "#ffffff",
		ArrowColor:         "#ffffff",
		StructureTextColor: "#333333",
		IndicatorOpacity:   0.3,
		LabelHeight:        12,
	}
}

// FitGridSize returns the spacing closest to target that divides size into a
// whole number of cells.
func FitGridSize(size, target float64) float64 {
	if size <= 0 || target <= 0 {
		return target
	}
	cells := math.Round(size / target)
	if cells < 1 {
		cells = 1
	}
	return size / cells
}
