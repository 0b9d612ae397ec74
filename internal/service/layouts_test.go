package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/database"
	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/layoutio"
	"github.com/jask/floorplan/internal/llm"
	"github.com/jask/floorplan/internal/testdata"
)

type stubGenerator struct {
	text  []byte
	image []byte
	err   error
	calls []string
}

func (g *stubGenerator) FromText(_ context.Context, description string) ([]byte, error) {
	g.calls = append(g.calls, "text:"+description)
	return g.text, g.err
}

func (g *stubGenerator) FromImage(_ context.Context, image []byte, mimeType string) ([]byte, error) {
	g.calls = append(g.calls, "image:"+mimeType)
	return g.image, g.err
}

func newService(t *testing.T, gen llm.Generator) *LayoutService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &LayoutService{Generator: gen, Layouts: repository.NewLayoutRepo(db)}
}

func TestGenerateUsesGeneratorOutput(t *testing.T) {
	doc, err := layoutio.Marshal(testdata.SampleLayout())
	require.NoError(t, err)
	gen := &stubGenerator{text: doc}
	svc := newService(t, gen)

	res := svc.Generate(context.Background(), GenerateRequest{Description: "a small grocery"})
	require.False(t, res.Fallback)
	require.NoError(t, res.Err)
	require.Equal(t, "Sample Store Layout", res.Layout.Name)
	require.Equal(t, []string{"text:a small grocery"}, gen.calls)
}

func TestGenerateFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name     string
		gen      llm.Generator
		req      GenerateRequest
		wantName string
	}{
		{"generator error", &stubGenerator{err: llm.ErrNoAPIKey}, GenerateRequest{Description: "Pet shop"}, "Pet shop"},
		{"malformed draft", &stubGenerator{text: []byte(`{"name":"x"}`)}, GenerateRequest{Description: "Toy shop"}, "Toy shop"},
		{"image failure", &stubGenerator{err: errors.New("timeout")}, GenerateRequest{Image: []byte("img"), MimeType: "image/png"}, "Image-based layout"},
		{"no generator", nil, GenerateRequest{}, "Mock Store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &LayoutService{Generator: tt.gen}
			res := svc.Generate(context.Background(), tt.req)
			require.True(t, res.Fallback)
			require.Error(t, res.Err)
			require.Equal(t, tt.wantName, res.Layout.Name)
			require.Len(t, res.Layout.Shelves, 3)
		})
	}
}

func TestGenerateMalformedDraftReportsInvalidLayout(t *testing.T) {
	svc := &LayoutService{Generator: &stubGenerator{text: []byte(`{"shelves": []}`)}}
	res := svc.Generate(context.Background(), GenerateRequest{Description: "x"})
	require.ErrorIs(t, res.Err, layoutio.ErrInvalidLayout)
}

func TestLibraryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc := newService(t, nil)

	layout := testdata.SampleLayout()
	id, err := svc.Save(ctx, layout)
	require.NoError(t, err)

	layout.Shelves[0].Name = "Renamed"
	again, err := svc.Save(ctx, layout)
	require.NoError(t, err)
	require.Equal(t, id, again)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 8, entries[0].ShelfCount)

	opened, err := svc.Open(ctx, id)
	require.NoError(t, err)
	require.Equal(t, layout, opened)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Open(ctx, id)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Save(ctx, nil)
	require.ErrorIs(t, err, ErrNoLayout)
}

func TestImportExport(t *testing.T) {
	svc := &LayoutService{}
	path := filepath.Join(t.TempDir(), "out", "layout.json")
	layout := testdata.MockLayout("Export test")

	require.NoError(t, svc.Export(path, layout))
	got, err := svc.Import(path)
	require.NoError(t, err)
	require.Equal(t, layout, got)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "no collections"}`), 0o644))
	_, err = svc.Import(bad)
	require.ErrorIs(t, err, layoutio.ErrInvalidLayout)

	_, err = svc.Import(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
