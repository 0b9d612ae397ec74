package tui

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jask/floorplan/internal/editor"
	"github.com/jask/floorplan/internal/geometry"
	"github.com/jask/floorplan/internal/scene"
)

const (
	structureFill  = "#C9CCD6"
	structureGlyph = "#333333"
	selectionColor = "#E8A75D"
)

var structureGlyphs = map[string]rune{
	"entrance":      '↧',
	"exit":          '↥',
	"entrance_exit": '⇅',
	"cash_counter":  '$',
	"blocker":       '▦',
}

// Viewport maps layout units onto terminal cells. Origin is the layout point
// at the top-left corner of cell (0, 0).
type Viewport struct {
	OriginX        float64
	OriginY        float64
	UnitsPerColumn float64
	UnitsPerRow    float64
}

func (v Viewport) normalized() Viewport {
	if v.UnitsPerColumn <= 0 {
		v.UnitsPerColumn = 10
	}
	if v.UnitsPerRow <= 0 {
		v.UnitsPerRow = 20
	}
	return v
}

// ToCell returns the cell containing p.
func (v Viewport) ToCell(p geometry.Vec) (col, row int) {
	v = v.normalized()
	return int(math.Floor((p.X - v.OriginX) / v.UnitsPerColumn)),
		int(math.Floor((p.Y - v.OriginY) / v.UnitsPerRow))
}

// ToWorld returns the layout point at the center of a cell.
func (v Viewport) ToWorld(col, row int) geometry.Vec {
	v = v.normalized()
	return geometry.Vec{
		X: v.OriginX + (float64(col)+0.5)*v.UnitsPerColumn,
		Y: v.OriginY + (float64(row)+0.5)*v.UnitsPerRow,
	}
}

type cell struct {
	r    rune
	fg   string
	bg   string
	bold bool
}

// Raster is a scene drawn onto a grid of terminal cells.
type Raster struct {
	width  int
	height int
	vp     Viewport
	cells  []cell
}

// Rasterize draws the background and content layers of sc. The selected node,
// if any, gets a frame.
func Rasterize(sc *scene.Scene, vp Viewport, width, height int, selected *scene.Node) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r := &Raster{width: width, height: height, vp: vp.normalized(), cells: make([]cell, width*height)}
	for i := range r.cells {
		r.cells[i].r = ' '
	}
	if sc == nil {
		return r
	}
	for _, layer := range []scene.Layer{scene.Background, scene.Content} {
		for _, n := range sc.Nodes(layer) {
			r.drawNode(n)
		}
	}
	if selected != nil && !selected.Destroyed() {
		r.drawFrame(selected)
	}
	return r
}

func (r *Raster) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= r.width || row >= r.height {
		return nil
	}
	return &r.cells[row*r.width+col]
}

// Line returns row as plain text.
func (r *Raster) Line(row int) string {
	if row < 0 || row >= r.height {
		return ""
	}
	var b strings.Builder
	for col := 0; col < r.width; col++ {
		b.WriteRune(r.cells[row*r.width+col].r)
	}
	return b.String()
}

// View renders the raster through an ntcharts canvas.
func (r *Raster) View() string {
	if r.width == 0 || r.height == 0 {
		return ""
	}
	c := canvas.New(r.width, r.height)
	for row := 0; row < r.height; row++ {
		for col := 0; col < r.width; col++ {
			cl := r.cells[row*r.width+col]
			st := lipgloss.NewStyle()
			if cl.fg != "" {
				st = st.Foreground(lipgloss.Color(cl.fg))
			}
			if cl.bg != "" {
				st = st.Background(lipgloss.Color(cl.bg))
			}
			if cl.bold {
				st = st.Bold(true)
			}
			c.SetRuneWithStyle(canvas.Point{X: col, Y: row}, cl.r, st)
		}
	}
	return c.View()
}

func (r *Raster) drawNode(n *scene.Node) {
	for _, sh := range n.Shapes() {
		switch s := sh.(type) {
		case scene.Rect:
			r.fillRect(n, s.Bounds, s.Fill, s.Opacity)
		case scene.Grid:
			r.drawGrid(n, s)
		case scene.Path:
			r.drawPath(n, s)
		case scene.Arrow:
			r.drawArrow(n, s)
		case scene.Text:
			r.drawText(n, s)
		case scene.Icon:
			r.drawIcon(n, s)
		}
	}
}

// cellRange returns the cells covering the world-space bounds of a local rect.
func (r *Raster) cellRange(n *scene.Node, b geometry.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = math.MaxInt32, math.MaxInt32
	c1, r1 = math.MinInt32, math.MinInt32
	for _, corner := range b.Corners() {
		col, row := r.vp.ToCell(n.ToWorld(corner))
		c0, r0 = min(c0, col), min(r0, row)
		c1, r1 = max(c1, col), max(r1, row)
	}
	return max(c0, 0), max(r0, 0), min(c1, r.width-1), min(r1, r.height-1)
}

// fillRect paints every cell whose center falls inside b. A rect smaller than
// a cell still paints the cell holding its center.
func (r *Raster) fillRect(n *scene.Node, b geometry.Rect, fill string, opacity float64) {
	if fill == "" || opacity <= 0 {
		return
	}
	paint := func(cl *cell) {
		if opacity >= 1 {
			cl.bg = fill
			cl.r = ' '
			cl.fg = ""
			return
		}
		cl.bg = blend(cl.bg, fill, opacity)
	}
	painted := false
	c0, r0, c1, r1 := r.cellRange(n, b)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if b.Contains(n.ToLocal(r.vp.ToWorld(col, row))) {
				paint(r.at(col, row))
				painted = true
			}
		}
	}
	if !painted {
		if cl := r.at(r.vp.ToCell(n.ToWorld(b.Center()))); cl != nil {
			paint(cl)
		}
	}
}

// drawGrid marks grid intersections with a dot.
func (r *Raster) drawGrid(n *scene.Node, g scene.Grid) {
	if g.Spacing <= 0 {
		return
	}
	hasLine := func(from, span float64) bool {
		k := math.Ceil(from / g.Spacing)
		return k*g.Spacing < from+span
	}
	origin := n.Position()
	for row := 0; row < r.height; row++ {
		y0 := r.vp.OriginY + float64(row)*r.vp.UnitsPerRow - origin.Y
		if y0+r.vp.UnitsPerRow <= g.Bounds.Y || y0 >= g.Bounds.Y+g.Bounds.Height || !hasLine(y0, r.vp.UnitsPerRow) {
			continue
		}
		for col := 0; col < r.width; col++ {
			x0 := r.vp.OriginX + float64(col)*r.vp.UnitsPerColumn - origin.X
			if x0+r.vp.UnitsPerColumn <= g.Bounds.X || x0 >= g.Bounds.X+g.Bounds.Width || !hasLine(x0, r.vp.UnitsPerColumn) {
				continue
			}
			cl := r.at(col, row)
			cl.r = '·'
			cl.fg = g.Stroke
		}
	}
}

func (r *Raster) drawPath(n *scene.Node, p scene.Path) {
	if len(p.Points) < 2 {
		return
	}
	pts := p.Points
	if p.Closed {
		pts = append(append([]geometry.Vec(nil), pts...), pts[0])
	}
	step := math.Min(r.vp.UnitsPerColumn, r.vp.UnitsPerRow) / 2
	for i := 0; i+1 < len(pts); i++ {
		from, to := n.ToWorld(pts[i]), n.ToWorld(pts[i+1])
		d := to.Sub(from)
		glyph := '•'
		switch {
		case math.Abs(d.Y) < 1e-9:
			glyph = '─'
		case math.Abs(d.X) < 1e-9:
			glyph = '│'
		}
		steps := int(math.Ceil(d.Len()/step)) + 1
		for k := 0; k <= steps; k++ {
			pt := from.Add(d.Scale(float64(k) / float64(steps)))
			if cl := r.at(r.vp.ToCell(pt)); cl != nil {
				if cl.r != ' ' && cl.r != '·' && cl.r != glyph {
					cl.r = '┼'
				} else {
					cl.r = glyph
				}
				cl.fg = p.Stroke
			}
		}
	}
}

func (r *Raster) drawArrow(n *scene.Node, a scene.Arrow) {
	from, to := n.ToWorld(a.From), n.ToWorld(a.To)
	cl := r.at(r.vp.ToCell(from.Add(to).Scale(0.5)))
	if cl == nil {
		return
	}
	cl.r = arrowGlyph(to.Sub(from))
	cl.fg = a.Color
	cl.bold = true
}

// arrowGlyph picks the arrow closest to direction d, with y growing down.
func arrowGlyph(d geometry.Vec) rune {
	glyphs := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	deg := math.Atan2(d.Y, d.X) * 180 / math.Pi
	idx := int(math.Round(deg/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return glyphs[idx]
}

func (r *Raster) drawText(n *scene.Node, t scene.Text) {
	value := []rune(strings.TrimSpace(t.Value))
	if len(value) == 0 {
		return
	}
	limit := max(1, int(t.Bounds.Width/r.vp.UnitsPerColumn))
	if len(value) > limit {
		if limit > 1 {
			value = append(value[:limit-1], '…')
		} else {
			value = value[:1]
		}
	}
	var col, row int
	if t.Align == scene.AlignLeft {
		col, row = r.vp.ToCell(n.ToWorld(geometry.Vec{X: t.Bounds.X, Y: t.Bounds.Center().Y}))
	} else {
		col, row = r.vp.ToCell(n.ToWorld(t.Bounds.Center()))
		col -= len(value) / 2
	}
	for i, ch := range value {
		if cl := r.at(col+i, row); cl != nil {
			cl.r = ch
			cl.fg = t.Color
		}
	}
}

func (r *Raster) drawIcon(n *scene.Node, ic scene.Icon) {
	r.fillRect(n, ic.Bounds, structureFill, 1)
	glyph, ok := structureGlyphs[ic.Kind]
	if !ok {
		glyph = '?'
	}
	if cl := r.at(r.vp.ToCell(n.ToWorld(ic.Bounds.Center()))); cl != nil {
		cl.r = glyph
		cl.fg = structureGlyph
		cl.bold = true
	}
}

// drawFrame boxes the hit area of n one cell outside its extent.
func (r *Raster) drawFrame(n *scene.Node) {
	if n.HitArea == nil {
		return
	}
	c0, r0 := math.MaxInt32, math.MaxInt32
	c1, r1 := math.MinInt32, math.MinInt32
	for _, corner := range n.HitArea.Corners() {
		col, row := r.vp.ToCell(n.ToWorld(corner))
		c0, r0 = min(c0, col), min(r0, row)
		c1, r1 = max(c1, col), max(r1, row)
	}
	c0, r0, c1, r1 = c0-1, r0-1, c1+1, r1+1
	set := func(col, row int, ch rune) {
		if cl := r.at(col, row); cl != nil {
			cl.r = ch
			cl.fg = selectionColor
			cl.bold = true
		}
	}
	for col := c0 + 1; col < c1; col++ {
		set(col, r0, '─')
		set(col, r1, '─')
	}
	for row := r0 + 1; row < r1; row++ {
		set(c0, row, '│')
		set(c1, row, '│')
	}
	set(c0, r0, '┌')
	set(c1, r0, '┐')
	set(c0, r1, '└')
	set(c1, r1, '┘')
}

// blend mixes over onto base at the given opacity. Unparseable colors fall
// back to over.
func blend(base, over string, opacity float64) string {
	top, err := colorful.Hex(over)
	if err != nil {
		return over
	}
	if base == "" {
		base = editor.DefaultStyle().CanvasBackground
	}
	bottom, err := colorful.Hex(base)
	if err != nil {
		return over
	}
	return bottom.BlendRgb(top, math.Max(0, math.Min(1, opacity))).Clamped().Hex()
}
