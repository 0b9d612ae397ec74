package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/layoutio"
	"github.com/jask/floorplan/internal/llm"
	"github.com/jask/floorplan/internal/testdata"
)

// imageFallbackName names the stand-in layout for failed image generation.
const imageFallbackName = "Image-based layout"

var ErrNoLayout = errors.New("no layout")

// GenerateRequest is either a description or an image. The image wins when
// both are set.
type GenerateRequest struct {
	Description string
	Image       []byte
	MimeType    string
}

// GenerateResult carries the generated layout. Fallback is set when generation
// failed and Layout is the locally built stand-in; Err says why.
type GenerateResult struct {
	Layout   *domain.RetailLayout
	Fallback bool
	Err      error
}

// LayoutService generates, stores and exchanges layouts.
type LayoutService struct {
	Generator llm.Generator
	Layouts   *repository.LayoutRepo
	Logger    *zap.Logger
}

func (s *LayoutService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Generate drafts a layout. Generator errors and invalid drafts never fail the
// call; the mock layout is returned instead.
func (s *LayoutService) Generate(ctx context.Context, req GenerateRequest) GenerateResult {
	var (
		data []byte
		err  error
	)
	fallbackName := req.Description
	switch {
	case s.Generator == nil:
		err = errors.New("no generator configured")
	case len(req.Image) > 0:
		fallbackName = imageFallbackName
		data, err = s.Generator.FromImage(ctx, req.Image, req.MimeType)
	default:
		data, err = s.Generator.FromText(ctx, req.Description)
	}

	var layout *domain.RetailLayout
	if err == nil {
		layout, err = layoutio.Parse(data)
	}
	if err != nil {
		s.logger().Warn("layout generation failed, using mock layout", zap.Error(err))
		return GenerateResult{Layout: testdata.MockLayout(fallbackName), Fallback: true, Err: err}
	}
	s.logger().Info("layout generated",
		zap.String("name", layout.Name),
		zap.Int("shelves", len(layout.Shelves)),
		zap.Int("structures", len(layout.StructureObjects)),
	)
	return GenerateResult{Layout: layout}
}

// Save stores layout in the library under its name and returns the entry id.
func (s *LayoutService) Save(ctx context.Context, layout *domain.RetailLayout) (string, error) {
	if layout == nil {
		return "", ErrNoLayout
	}
	doc, err := layoutio.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	id, err := s.Layouts.SaveByName(ctx, repository.LayoutEntry{
		Name:           layout.Name,
		Document:       doc,
		ShelfCount:     len(layout.Shelves),
		StructureCount: len(layout.StructureObjects),
	})
	if err != nil {
		return "", fmt.Errorf("save layout: %w", err)
	}
	s.logger().Info("layout saved", zap.String("id", id), zap.String("name", layout.Name))
	return id, nil
}

// Open loads the library entry with the given id.
func (s *LayoutService) Open(ctx context.Context, id string) (*domain.RetailLayout, error) {
	e, err := s.Layouts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	layout, err := layoutio.Parse(e.Document)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", e.Name, err)
	}
	return layout, nil
}

// List returns the library entries, most recent first.
func (s *LayoutService) List(ctx context.Context) ([]repository.LayoutEntry, error) {
	return s.Layouts.List(ctx)
}

// Delete removes a library entry. Layout entities are never deleted one by
// one; this drops a whole saved layout.
func (s *LayoutService) Delete(ctx context.Context, id string) error {
	return s.Layouts.Delete(ctx, id)
}

// Import reads a layout document from a JSON file.
func (s *LayoutService) Import(path string) (*domain.RetailLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	layout, err := layoutio.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	return layout, nil
}

// Export writes layout to path as an indented JSON document.
func (s *LayoutService) Export(path string, layout *domain.RetailLayout) error {
	if layout == nil {
		return ErrNoLayout
	}
	var buf bytes.Buffer
	if err := layoutio.Encode(&buf, layout); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
