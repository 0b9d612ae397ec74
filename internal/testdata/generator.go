package testdata

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/floorplan/internal/database/repository"
	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/layoutio"
)

// ShelfPalette is the set of colors handed out to generated shelves.
var ShelfPalette = []string{"#597DA9", "#E85D75", "#59A96D", "#E8A75D", "#9D59A9"}

// Outline returns a rectangular store perimeter starting at the origin.
func Outline(width, height float64) []domain.Point {
	return []domain.Point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}
}

// Shelves returns count shelves laid out three to a row, alternating between
// bottom and right access.
func Shelves(count int) []*domain.ProductShelf {
	out := make([]*domain.ProductShelf, 0, count)
	for i := 0; i < count; i++ {
		s := domain.NewProductShelf()
		s.Name = fmt.Sprintf("Shelf %d", i+1)
		s.X = 100 + float64(i%3)*150
		s.Y = 100 + float64(i/3)*120
		s.Width = 100
		s.Height = 50
		s.Orientation = float64(i%2) * 90
		s.Color = ShelfPalette[i%len(ShelfPalette)]
		out = append(out, s)
	}
	return out
}

// SampleLayout returns the editor's starter layout: eight shelves inside an
// 800x600 store with a main door and a checkout.
func SampleLayout() *domain.RetailLayout {
	l := domain.NewRetailLayout("Sample Store Layout")
	l.Shelves = Shelves(8)
	l.Outline = Outline(800, 600)

	door := domain.NewStructureObject()
	door.Name = "Main Entrance"
	door.Type = domain.StructureEntranceExit
	door.X, door.Y, door.Width, door.Height = 400, 580, 80, 40

	till := domain.NewStructureObject()
	till.Name = "Cash Counter 1"
	till.Type = domain.StructureCashCounter
	till.X, till.Y, till.Width, till.Height = 300, 480, 120, 40

	l.StructureObjects = []*domain.StructureObject{door, till}
	return l
}

// MockLayout is the stand-in returned when generation is unavailable. It is
// named after the first 30 characters of description, or "Mock Store".
func MockLayout(description string) *domain.RetailLayout {
	name := "Mock Store"
	if description != "" {
		name = truncate(description, 30)
	}
	l := domain.NewRetailLayout(name)
	l.Shelves = []*domain.ProductShelf{
		{ID: "mock-shelf-1", Name: "Electronics", X: 100, Y: 100, Width: 100, Height: 50, Orientation: 0, Color: "#597DA9", AverageTicket: 350},
		{ID: "mock-shelf-2", Name: "Clothing", X: 250, Y: 100, Width: 100, Height: 50, Orientation: 90, Color: "#E85D75", AverageTicket: 120},
		{ID: "mock-shelf-3", Name: "Home & Garden", X: 400, Y: 100, Width: 100, Height: 50, Orientation: 0, Color: "#59A96D", AverageTicket: 85},
	}
	l.StructureObjects = []*domain.StructureObject{
		{ID: "mock-entrance-1", Name: "Main Entrance", Type: domain.StructureEntranceExit, X: 350, Y: 550, Width: 80, Height: 40},
		{ID: "mock-counter-1", Name: "Cash Counter 1", Type: domain.StructureCashCounter, X: 300, Y: 480, Width: 120, Height: 40},
	}
	l.Outline = Outline(800, 600)
	l.OverallScore = 75
	return l
}

// Seed stores the sample layout in an empty library.
func Seed(ctx context.Context, repo *repository.LayoutRepo) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	l := SampleLayout()
	doc, err := layoutio.Marshal(l)
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, repository.LayoutEntry{
		ID:             uuid.NewString(),
		Name:           l.Name,
		Document:       doc,
		ShelfCount:     len(l.Shelves),
		StructureCount: len(l.StructureObjects),
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
