package tui

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/service"
)

type generatedMsg struct {
	result service.GenerateResult
	err    error
}

type openedMsg struct {
	layout *domain.RetailLayout
	err    error
}

type savedMsg struct {
	id   string
	name string
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

type libraryMsg struct {
	entries []repository.LayoutEntry
	err     error
}

type deletedMsg struct {
	name string
	err  error
}

func (a *App) generateCmd(req service.GenerateRequest) tea.Cmd {
	return func() tea.Msg {
		return generatedMsg{result: a.layouts.Generate(a.ctx, req)}
	}
}

func (a *App) generateImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return generatedMsg{err: fmt.Errorf("read image: %w", err)}
		}
		mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		return generatedMsg{result: a.layouts.Generate(a.ctx, service.GenerateRequest{Image: data, MimeType: mimeType})}
	}
}

func (a *App) saveCmd(layout *domain.RetailLayout) tea.Cmd {
	return func() tea.Msg {
		id, err := a.layouts.Save(a.ctx, layout)
		return savedMsg{id: id, name: layout.Name, err: err}
	}
}

func (a *App) exportCmd(path string, layout *domain.RetailLayout) tea.Cmd {
	return func() tea.Msg {
		return exportedMsg{path: path, err: a.layouts.Export(path, layout)}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		layout, err := a.layouts.Import(path)
		return openedMsg{layout: layout, err: err}
	}
}

func (a *App) listCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.layouts.List(a.ctx)
		return libraryMsg{entries: entries, err: err}
	}
}

func (a *App) openCmd(entry repository.LayoutEntry) tea.Cmd {
	return func() tea.Msg {
		layout, err := a.layouts.Open(a.ctx, entry.ID)
		return openedMsg{layout: layout, err: err}
	}
}

func (a *App) deleteCmd(entry repository.LayoutEntry) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{name: entry.Name, err: a.layouts.Delete(a.ctx, entry.ID)}
	}
}

// libraryItem is one saved layout in the library list.
type libraryItem struct {
	entry repository.LayoutEntry
}

func (i libraryItem) Title() string { return i.entry.Name }
func (i libraryItem) Description() string {
	return fmt.Sprintf("%d shelves, %d structures", i.entry.ShelfCount, i.entry.StructureCount)
}
func (i libraryItem) FilterValue() string { return i.entry.Name }

type libraryDelegate struct{}

func (d libraryDelegate) Height() int                             { return 1 }
func (d libraryDelegate) Spacing() int                            { return 0 }
func (d libraryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d libraryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(libraryItem)
	if !ok {
		return
	}
	prefix := "  "
	name := entry.Title()
	if index == m.Index() {
		prefix = "> "
		name = cursorStyle.Render(name)
	}
	line := fmt.Sprintf("%s%s  %s", prefix, name, dimStyle.Render(entry.Description()))
	fmt.Fprint(w, padRightANSI(line, m.Width()))
}
