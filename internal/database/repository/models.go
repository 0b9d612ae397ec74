package repository

import "time"

// LayoutEntry is a saved layout in the library. Document holds the layout's
// JSON document form.
type LayoutEntry struct {
	ID             string
	Name           string
	Document       []byte
	ShelfCount     int
	StructureCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
