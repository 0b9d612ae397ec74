package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/config"
	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/editor"
	"github.com/jask/floorplan/internal/geometry"
	"github.com/jask/floorplan/internal/panel"
	"github.com/jask/floorplan/internal/scene"
	"github.com/jask/floorplan/internal/service"
	"github.com/jask/floorplan/internal/store"
	"github.com/jask/floorplan/internal/testdata"
)

const sideWidth = 38

// Layouts is the slice of the layout service the editor drives.
type Layouts interface {
	Generate(ctx context.Context, req service.GenerateRequest) service.GenerateResult
	Save(ctx context.Context, layout *domain.RetailLayout) (string, error)
	Open(ctx context.Context, id string) (*domain.RetailLayout, error)
	List(ctx context.Context) ([]repository.LayoutEntry, error)
	Delete(ctx context.Context, id string) error
	Import(path string) (*domain.RetailLayout, error)
	Export(path string, layout *domain.RetailLayout) error
}

// Deps wires the editor core into the terminal app.
type Deps struct {
	Store   *store.Store
	Sync    *editor.Synchronizer
	Panel   *panel.Panel
	Layouts Layouts
	Logger  *zap.Logger
	UI      config.UIConfig
}

type mode int

const (
	modeCanvas mode = iota
	modeEdit
	modePrompt
	modeLibrary
)

type promptKind int

const (
	promptGenerate promptKind = iota
	promptImage
	promptScale
	promptSave
	promptExport
	promptImport
)

var promptTitles = map[promptKind]string{
	promptGenerate: "Generate layout",
	promptImage:    "Generate from image",
	promptScale:    "Scale layout",
	promptSave:     "Save to library",
	promptExport:   "Export JSON",
	promptImport:   "Load JSON",
}

// App is the terminal floor-plan editor.
type App struct {
	ctx     context.Context
	store   *store.Store
	sync    *editor.Synchronizer
	panel   *panel.Panel
	layouts Layouts
	logger  *zap.Logger
	keys    *KeyRegistry

	help    help.Model
	input   textinput.Model
	library list.Model

	vp     Viewport
	width  int
	height int

	mode      mode
	prompt    promptKind
	field     int
	editKey   string
	status    string
	statusErr bool
	busy      bool
	snap      bool
	gridStep  float64
}

// New builds the app around an already wired editor core.
func New(ctx context.Context, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.CharLimit = 512

	lib := list.New([]list.Item{}, libraryDelegate{}, 0, 0)
	lib.SetShowTitle(false)
	lib.SetShowStatusBar(false)
	lib.SetFilteringEnabled(false)
	lib.SetShowHelp(false)
	lib.DisableQuitKeybindings()

	grid := deps.Sync.Style().GridSize
	a := &App{
		ctx:      ctx,
		store:    deps.Store,
		sync:     deps.Sync,
		panel:    deps.Panel,
		layouts:  deps.Layouts,
		logger:   logger,
		keys:     NewKeyRegistry(),
		help:     help.New(),
		input:    input,
		library:  lib,
		vp:       Viewport{UnitsPerColumn: deps.UI.UnitsPerColumn, UnitsPerRow: deps.UI.UnitsPerRow}.normalized(),
		snap:     deps.UI.SnapToGrid,
		gridStep: grid,
		status:   "Ready",
	}
	if a.snap {
		a.sync.Scene().SetSnap(grid)
	}
	a.fitViewport()
	return a
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.library.SetSize(min(60, max(20, msg.Width-12)), max(3, msg.Height-12))
		a.input.Width = min(60, max(10, msg.Width-20))
		a.redrawBackground()
		return a, nil
	case tea.MouseMsg:
		if a.mode == modeCanvas {
			a.handleMouse(msg)
		}
		return a, nil
	case generatedMsg:
		return a, a.onGenerated(msg)
	case openedMsg:
		return a, a.onOpened(msg)
	case savedMsg:
		a.busy = false
		if msg.err != nil {
			a.setError("save failed: %v", msg.err)
		} else {
			a.setStatus("Saved %q", msg.name)
		}
		return a, nil
	case exportedMsg:
		a.busy = false
		if msg.err != nil {
			a.setError("export failed: %v", msg.err)
		} else {
			a.setStatus("Exported to %s", msg.path)
		}
		return a, nil
	case libraryMsg:
		return a, a.onLibrary(msg)
	case deletedMsg:
		if msg.err != nil {
			a.setError("delete failed: %v", msg.err)
			return a, nil
		}
		a.setStatus("Deleted %q", msg.name)
		return a, a.listCmd()
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.mode {
	case modeEdit, modePrompt:
		scope := scopeEdit
		if a.mode == modePrompt {
			scope = scopePrompt
		}
		b := a.keys.Lookup(msg.String(), scope)
		if b == nil {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return cmd
		}
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionCancel:
			a.closeInput()
			return nil
		case actionConfirm:
			value := a.input.Value()
			wasEdit := a.mode == modeEdit
			a.closeInput()
			if wasEdit {
				a.applyEdit(value)
				return nil
			}
			return a.submitPrompt(value)
		}
		return nil
	case modeLibrary:
		b := a.keys.Lookup(msg.String(), scopeLibrary)
		if b == nil {
			var cmd tea.Cmd
			a.library, cmd = a.library.Update(msg)
			return cmd
		}
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionCancel:
			a.mode = modeCanvas
		case actionConfirm:
			if it, ok := a.library.SelectedItem().(libraryItem); ok {
				a.mode = modeCanvas
				return a.openCmd(it.entry)
			}
		case actionDelete:
			if it, ok := a.library.SelectedItem().(libraryItem); ok {
				return a.deleteCmd(it.entry)
			}
		}
		return nil
	}

	b := a.keys.Lookup(msg.String(), scopeCanvas)
	if b == nil {
		return nil
	}
	step := a.nudgeStep()
	switch b.Action {
	case actionQuit:
		return tea.Quit
	case actionNextEntity:
		a.sync.SelectNext(1)
	case actionPrevEntity:
		a.sync.SelectNext(-1)
	case actionNudgeUp:
		a.sync.Nudge(0, -step)
	case actionNudgeDown:
		a.sync.Nudge(0, step)
	case actionNudgeLeft:
		a.sync.Nudge(-step, 0)
	case actionNudgeRight:
		a.sync.Nudge(step, 0)
	case actionNextField:
		a.moveField(1)
	case actionPrevField:
		a.moveField(-1)
	case actionEdit:
		a.beginEdit()
	case actionClearSelect:
		a.panel.Clear()
		a.field = 0
	case actionGenerateText:
		a.openPrompt(promptGenerate, "Describe the store: ", "")
	case actionGenerateImage:
		a.openPrompt(promptImage, "Image file: ", "")
	case actionScale:
		a.openPrompt(promptScale, "Factor: ", "")
	case actionSave:
		a.openPrompt(promptSave, "Name: ", a.layoutName())
	case actionOpen:
		return a.listCmd()
	case actionImport:
		a.openPrompt(promptImport, "JSON file: ", "")
	case actionExport:
		a.openPrompt(promptExport, "Path: ", slug(a.layoutName())+".json")
	case actionSample:
		a.load(testdata.SampleLayout())
		a.setStatus("Loaded sample layout")
	case actionToggleSnap:
		a.snap = !a.snap
		if a.snap {
			a.sync.Scene().SetSnap(a.gridStep)
			a.setStatus("Snap to grid on")
		} else {
			a.sync.Scene().SetSnap(0)
			a.setStatus("Snap to grid off")
		}
	}
	return nil
}

// handleMouse feeds left-button gestures on the canvas pane into the scene.
func (a *App) handleMouse(msg tea.MouseMsg) {
	col, row, inside := a.canvasCell(msg.X, msg.Y)
	p := a.vp.ToWorld(col, row)
	sc := a.sync.Scene()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		if n := sc.PointerDown(p); n != nil {
			a.field = 0
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			sc.PointerMove(p)
		}
	case tea.MouseActionRelease:
		sc.PointerUp(p)
	}
}

// canvasCell maps a terminal position onto the canvas raster.
func (a *App) canvasCell(x, y int) (col, row int, inside bool) {
	col, row = x-1, y-2
	w, h := a.canvasSize()
	return col, row, col >= 0 && row >= 0 && col < w && row < h
}

func (a *App) canvasSize() (w, h int) {
	return max(0, a.width-sideWidth-4), max(0, a.height-5)
}

func (a *App) nudgeStep() float64 {
	if s := a.sync.Scene().Snap(); s > 0 {
		return s
	}
	if a.gridStep > 0 {
		return a.gridStep
	}
	return 1
}

func (a *App) moveField(step int) {
	n := len(a.panel.Fields())
	if n == 0 {
		return
	}
	a.field = ((a.field+step)%n + n) % n
}

func (a *App) beginEdit() {
	fields := a.panel.Fields()
	if len(fields) == 0 {
		a.setError("select a shelf or structure first")
		return
	}
	a.field = min(a.field, len(fields)-1)
	f := fields[a.field]
	a.editKey = f.Key
	a.mode = modeEdit
	a.input.Prompt = f.Label + ": "
	a.input.SetValue(f.Value)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) applyEdit(value string) {
	if err := a.panel.Apply(a.editKey, value); err != nil {
		a.setError("%v", err)
		return
	}
	a.setStatus("Updated %s", a.editKey)
}

func (a *App) openPrompt(kind promptKind, label, value string) {
	a.mode = modePrompt
	a.prompt = kind
	a.input.Prompt = label
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) closeInput() {
	a.mode = modeCanvas
	a.input.Blur()
	a.input.SetValue("")
}

func (a *App) submitPrompt(value string) tea.Cmd {
	value = strings.TrimSpace(value)
	if value == "" {
		a.setError("%s cancelled: empty input", strings.ToLower(promptTitles[a.prompt]))
		return nil
	}
	switch a.prompt {
	case promptGenerate:
		a.busy = true
		a.setStatus("Generating layout...")
		return a.generateCmd(service.GenerateRequest{Description: value})
	case promptImage:
		a.busy = true
		a.setStatus("Generating layout from %s...", value)
		return a.generateImageCmd(value)
	case promptScale:
		factor, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(factor) || math.IsInf(factor, 0) {
			a.setError("scale factor must be a number")
			return nil
		}
		if err := a.sync.Scale(factor); err != nil {
			a.setError("%v", err)
			return nil
		}
		a.redrawBackground()
		a.setStatus("Scaled layout by %s", value)
	case promptSave:
		layout := a.store.ActiveLayout()
		if layout == nil {
			a.setError("no layout to save")
			return nil
		}
		layout.Name = value
		a.busy = true
		return a.saveCmd(layout.Clone())
	case promptExport:
		layout := a.store.ActiveLayout()
		if layout == nil {
			a.setError("no layout to export")
			return nil
		}
		a.busy = true
		return a.exportCmd(value, layout.Clone())
	case promptImport:
		return a.importCmd(value)
	}
	return nil
}

func (a *App) onGenerated(msg generatedMsg) tea.Cmd {
	a.busy = false
	if msg.err != nil {
		a.setError("%v", msg.err)
		return nil
	}
	res := msg.result
	if res.Layout == nil {
		a.setError("generation returned no layout")
		return nil
	}
	a.load(res.Layout)
	if res.Fallback {
		a.setError("generation failed (%v); loaded mock layout", res.Err)
		return nil
	}
	a.setStatus("Generated %q", res.Layout.Name)
	return nil
}

func (a *App) onOpened(msg openedMsg) tea.Cmd {
	if msg.err != nil {
		a.setError("open failed: %v", msg.err)
		return nil
	}
	a.load(msg.layout)
	a.setStatus("Opened %q", msg.layout.Name)
	return nil
}

func (a *App) onLibrary(msg libraryMsg) tea.Cmd {
	if msg.err != nil {
		a.setError("library: %v", msg.err)
		return nil
	}
	items := make([]list.Item, 0, len(msg.entries))
	for _, e := range msg.entries {
		items = append(items, libraryItem{entry: e})
	}
	cmd := a.library.SetItems(items)
	a.mode = modeLibrary
	if len(items) == 0 {
		a.setStatus("Library is empty")
	}
	return cmd
}

// load swaps the active layout and frames it.
func (a *App) load(layout *domain.RetailLayout) {
	a.sync.Load(layout)
	a.field = 0
	a.fitViewport()
	a.redrawBackground()
}

// fitViewport puts the layout's top-left corner one cell in from the pane.
func (a *App) fitViewport() {
	a.vp.OriginX, a.vp.OriginY = -a.vp.UnitsPerColumn, -a.vp.UnitsPerRow
	b, ok := geometry.LayoutBounds(a.store.ActiveLayout())
	if !ok {
		return
	}
	a.vp.OriginX = math.Min(0, b.X) - a.vp.UnitsPerColumn
	a.vp.OriginY = math.Min(0, b.Y) - a.vp.UnitsPerRow
}

// redrawBackground sizes the background to cover the visible canvas.
func (a *App) redrawBackground() {
	w, h := a.canvasSize()
	right := a.vp.OriginX + float64(w)*a.vp.UnitsPerColumn
	bottom := a.vp.OriginY + float64(h)*a.vp.UnitsPerRow
	if b, ok := geometry.LayoutBounds(a.store.ActiveLayout()); ok {
		right = math.Max(right, b.X+b.Width)
		bottom = math.Max(bottom, b.Y+b.Height)
	}
	a.sync.DrawBackground(math.Max(0, right), math.Max(0, bottom))
}

func (a *App) layoutName() string {
	if l := a.store.ActiveLayout(); l != nil {
		return l.Name
	}
	return ""
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusErr = false
}

func (a *App) setError(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusErr = true
	a.logger.Debug("status error", zap.String("status", a.status))
}

// selectedNode returns the node under selection, if bound.
func (a *App) selectedNode() *scene.Node { return a.sync.SelectedNode() }

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "layout"
	}
	var b strings.Builder
	dash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
