package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/config"
	"github.com/jask/floorplan/internal/database"
	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/editor"
	"github.com/jask/floorplan/internal/llm"
	"github.com/jask/floorplan/internal/logger"
	"github.com/jask/floorplan/internal/panel"
	"github.com/jask/floorplan/internal/scene"
	"github.com/jask/floorplan/internal/secrets"
	"github.com/jask/floorplan/internal/service"
	"github.com/jask/floorplan/internal/store"
	"github.com/jask/floorplan/internal/testdata"
	"github.com/jask/floorplan/internal/tui"
)

func main() {
	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "set-key" {
		if err := setKey(os.Args[2:]); err != nil {
			log.Fatalf("set-key: %v", err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.NewLayoutRepo(db)
	if err := testdata.Seed(ctx, repo); err != nil {
		log.Fatalf("seed library: %v", err)
	}

	layouts := &service.LayoutService{
		Generator: llm.New(llm.Options{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.ResolveAPIKeyFrom(keySource()),
			Model:    cfg.LLM.Model,
			Endpoint: cfg.LLM.Endpoint,
			Timeout:  cfg.LLM.Timeout,
			Logger:   zl.Named("llm"),
		}),
		Layouts: repo,
		Logger:  zl.Named("service"),
	}

	st := store.New(zl.Named("store"))
	sc := scene.New()
	sync := editor.New(st, sc, zl.Named("editor"), editorStyle(cfg.UI))
	defer sync.Close()
	sync.Load(initialLayout(ctx, layouts, zl))

	app := tui.New(ctx, tui.Deps{
		Store:   st,
		Sync:    sync,
		Panel:   panel.New(st),
		Layouts: layouts,
		Logger:  zl.Named("tui"),
		UI:      cfg.UI,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func editorStyle(ui config.UIConfig) editor.Style {
	style := editor.DefaultStyle()
	if ui.GridSize > 0 {
		style.GridSize = ui.GridSize
	}
	if ui.GridColor != "" {
		style.GridColor = ui.GridColor
	}
	if ui.CanvasBackground != "" {
		style.CanvasBackground = ui.CanvasBackground
	}
	return style
}

// initialLayout opens the most recently saved layout, or the sample.
func initialLayout(ctx context.Context, layouts *service.LayoutService, zl *zap.Logger) *domain.RetailLayout {
	entries, err := layouts.List(ctx)
	if err != nil || len(entries) == 0 {
		return testdata.SampleLayout()
	}
	l, err := layouts.Open(ctx, entries[0].ID)
	if err != nil {
		zl.Warn("open saved layout failed, using sample", zap.String("id", entries[0].ID), zap.Error(err))
		return testdata.SampleLayout()
	}
	return l
}

func keySource() config.KeySource {
	kr, err := secrets.Open("")
	if err != nil {
		return nil
	}
	return kr
}

// setKey handles "floorplan set-key <provider> <key>". An empty key removes
// the stored one.
func setKey(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: floorplan set-key <provider> [key]")
	}
	kr, err := secrets.Open("")
	if err != nil {
		return err
	}
	if len(args) == 1 || strings.TrimSpace(args[1]) == "" {
		return kr.Delete(args[0])
	}
	return kr.Set(args[0], args[1])
}
