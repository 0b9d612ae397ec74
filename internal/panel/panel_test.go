package panel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/store"
)

func setup() (*Panel, *store.Store, *domain.RetailLayout) {
	st := store.New(nil)
	l := domain.NewRetailLayout("Store")
	l.Shelves = append(l.Shelves, &domain.ProductShelf{ID: "s1", Name: "Bakery", X: 100, Y: 80, Width: 100, Height: 30, Color: "#597DA9", AverageTicket: 12.5})
	l.StructureObjects = append(l.StructureObjects, &domain.StructureObject{ID: "o1", Name: "Door", Type: domain.StructureEntrance, X: 10, Y: 10, Width: 50, Height: 50})
	st.SetActiveLayout(l)
	return New(st), st, l
}

func fieldValue(fields []Field, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func TestFieldsFollowSelection(t *testing.T) {
	p, st, l := setup()
	require.Empty(t, p.Fields())
	require.Equal(t, "Nothing selected", p.Title())

	st.SelectShelf(l.Shelves[0])
	fields := p.Fields()
	require.Len(t, fields, 8)
	require.Equal(t, "Shelf: Bakery", p.Title())
	require.Equal(t, "100", fieldValue(fields, KeyX))
	require.Equal(t, "12.50", fieldValue(fields, KeyAverageTicket))

	st.SelectStructureObject(l.StructureObjects[0])
	fields = p.Fields()
	require.Len(t, fields, 7)
	require.Equal(t, "entrance", fieldValue(fields, KeyType))
	require.Empty(t, fieldValue(fields, KeyColor))
}

func TestApplyShelfFields(t *testing.T) {
	p, st, l := setup()
	st.SelectShelf(l.Shelves[0])

	require.NoError(t, p.Apply(KeyColor, " #000000 "))
	require.NoError(t, p.Apply(KeyOrientation, "-90"))
	require.NoError(t, p.Apply(KeyWidth, "120"))
	require.NoError(t, p.Apply(KeyName, "Fresh Bakery"))
	require.NoError(t, p.Apply(KeyAverageTicket, "0"))

	got := st.SelectedShelf()
	require.Equal(t, "#000000", got.Color)
	require.Equal(t, 270.0, got.Orientation)
	require.Equal(t, 120.0, got.Width)
	require.Equal(t, "Fresh Bakery", got.Name)
	require.Zero(t, got.AverageTicket)
	require.Equal(t, "Fresh Bakery", l.Shelves[0].Name)
}

func TestApplyRejectsInvalidValues(t *testing.T) {
	p, st, l := setup()
	st.SelectShelf(l.Shelves[0])

	tests := []struct {
		key  string
		raw  string
		want error
	}{
		{KeyColor, "blue", ErrInvalidValue},
		{KeyWidth, "0", ErrInvalidValue},
		{KeyHeight, "-3", ErrInvalidValue},
		{KeyX, "abc", ErrInvalidValue},
		{KeyY, "NaN", ErrInvalidValue},
		{KeyAverageTicket, "-1", ErrInvalidValue},
		{KeyType, "entrance", ErrUnknownField},
		{"delete", "", ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			require.ErrorIs(t, p.Apply(tt.key, tt.raw), tt.want)
		})
	}
	require.Equal(t, *l.Shelves[0], *st.SelectedShelf())
}

func TestApplyStructureType(t *testing.T) {
	p, st, l := setup()
	st.SelectStructureObject(l.StructureObjects[0])

	require.NoError(t, p.Apply(KeyType, "Cash Counter"))
	require.Equal(t, domain.StructureCashCounter, st.SelectedStructureObject().Type)

	err := p.Apply(KeyType, "escalator")
	require.ErrorIs(t, err, ErrInvalidValue)
	require.ErrorIs(t, err, domain.ErrUnknownStructureType)

	require.ErrorIs(t, p.Apply(KeyColor, "#ffffff"), ErrUnknownField)
}

func TestApplyWithoutSelection(t *testing.T) {
	p, _, _ := setup()
	require.ErrorIs(t, p.Apply(KeyName, "x"), ErrNoSelection)
}

func TestClear(t *testing.T) {
	p, st, l := setup()
	st.SelectShelf(l.Shelves[0])
	p.Clear()
	require.False(t, st.HasSelection())
}
