package testdata

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/database"
	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/layoutio"
)

func TestSampleLayout(t *testing.T) {
	l := SampleLayout()
	require.Len(t, l.Shelves, 8)
	require.Len(t, l.StructureObjects, 2)
	require.Len(t, l.Outline, 4)

	require.Equal(t, 100.0, l.Shelves[0].X)
	require.Equal(t, 400.0, l.Shelves[2].X)
	require.Equal(t, 220.0, l.Shelves[3].Y)
	require.Equal(t, 0.0, l.Shelves[0].Orientation)
	require.Equal(t, 90.0, l.Shelves[1].Orientation)
	require.Equal(t, ShelfPalette[0], l.Shelves[5].Color)

	ids := map[string]bool{}
	for _, s := range l.Shelves {
		ids[s.ID] = true
	}
	for _, o := range l.StructureObjects {
		ids[o.ID] = true
	}
	require.Len(t, ids, 10)
}

func TestMockLayoutIsAValidDocument(t *testing.T) {
	l := MockLayout(strings.Repeat("x", 40))
	require.Equal(t, strings.Repeat("x", 30), l.Name)
	require.Equal(t, "Mock Store", MockLayout("").Name)
	require.Equal(t, domain.StructureCashCounter, l.StructureObjects[1].Type)

	data, err := layoutio.Marshal(l)
	require.NoError(t, err)
	back, err := layoutio.Parse(data)
	require.NoError(t, err)
	require.Equal(t, l, back)
}

func TestSeedOnlyFillsEmptyLibrary(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewLayoutRepo(db)
	require.NoError(t, Seed(ctx, repo))
	require.NoError(t, Seed(ctx, repo))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Sample Store Layout", list[0].Name)
	require.Equal(t, 8, list[0].ShelfCount)
}
