package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/floorplan/internal/analytics"
)

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "loading..."
	}
	canvasW, canvasH := a.canvasSize()

	raster := Rasterize(a.sync.Scene(), a.vp, canvasW, canvasH, a.selectedNode())
	canvasPane := paneStyle.Width(canvasW).Height(canvasH).Render(raster.View())
	side := paneStyle.Width(sideWidth).Height(canvasH).Render(a.renderSide(sideWidth, canvasH))

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, canvasPane, side),
		a.renderStatus(),
		a.help.ShortHelpView(a.keys.HelpBindings(a.scope())),
	)

	switch a.mode {
	case modeEdit:
		return renderModal(body, a.panel.Title(), a.input.View(), a.width, a.height)
	case modePrompt:
		return renderModal(body, promptTitles[a.prompt], a.input.View(), a.width, a.height)
	case modeLibrary:
		content := a.library.View()
		if len(a.library.Items()) == 0 {
			content = dimStyle.Render("No saved layouts")
		}
		return renderModal(body, "Layout library", content, a.width, a.height)
	}
	return body
}

func (a *App) scope() string {
	switch a.mode {
	case modeEdit:
		return scopeEdit
	case modePrompt:
		return scopePrompt
	case modeLibrary:
		return scopeLibrary
	}
	return scopeCanvas
}

func (a *App) renderHeader() string {
	layout := a.store.ActiveLayout()
	if layout == nil {
		return headerStyle.Render("floorplan") + dimStyle.Render("  no layout")
	}
	info := fmt.Sprintf("  %s  %d shelves  %d structures  score %.0f",
		layout.Name, len(layout.Shelves), len(layout.StructureObjects), analytics.OverallScore(layout))
	if a.snap {
		info += "  snap"
	}
	return ansi.Truncate(headerStyle.Render("floorplan")+dimStyle.Render(info), a.width, "…")
}

func (a *App) renderStatus() string {
	status := a.status
	if a.busy {
		status = "⏳ " + status
	}
	style := statusStyle
	if a.statusErr {
		style = errorStyle
	}
	return ansi.Truncate(style.Render(status), a.width, "…")
}

func (a *App) renderSide(width, height int) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(ansi.Truncate(a.panel.Title(), width, "…")))
	b.WriteString("\n")

	fields := a.panel.Fields()
	if len(fields) == 0 {
		b.WriteString(dimStyle.Render("Click or tab to select"))
		b.WriteString("\n")
	}
	for i, f := range fields {
		label := fmt.Sprintf("%-15s", f.Label)
		line := labelStyle.Render(label) + " " + valueStyle.Render(f.Value)
		if i == a.field {
			line = cursorStyle.Render(fmt.Sprintf("%-15s", f.Label)) + " " + valueStyle.Render(f.Value)
		}
		b.WriteString(ansi.Truncate(line, width, "…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(paneTitleStyle.Render("Analytics"))
	b.WriteString("\n")
	layout := a.store.ActiveLayout()
	if shelf := a.store.SelectedShelf(); shelf != nil && layout != nil {
		for _, m := range analytics.Analyze(layout, shelf).Metrics() {
			inverted := m.Key == analytics.KeyCongestionPenalty
			value := scoreStyle(m.Value, inverted).Render(fmt.Sprintf("%3.0f", m.Value))
			b.WriteString(ansi.Truncate(labelStyle.Render(fmt.Sprintf("%-22s", m.Title))+" "+value, width, "…"))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(dimStyle.Render("Select a shelf to score it"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(paneTitleStyle.Render("Suggestions"))
	b.WriteString("\n")
	for _, s := range analytics.Suggestions(layout) {
		b.WriteString(lipgloss.NewStyle().Width(width).Render("• " + s))
		b.WriteString("\n")
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
