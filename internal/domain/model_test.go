package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProductShelfDefaults(t *testing.T) {
	a := NewProductShelf()
	b := NewProductShelf()
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.Zero(t, a.X)
	require.Zero(t, a.Y)
	require.Zero(t, a.Orientation)
	require.Equal(t, DefaultShelfColor, a.Color)
	require.Positive(t, a.Width)
	require.Positive(t, a.Height)
}

func TestNewStructureObjectDefaults(t *testing.T) {
	o := NewStructureObject()
	require.NotEmpty(t, o.ID)
	require.Equal(t, StructureBlocker, o.Type)
	require.True(t, o.Type.Valid())
}

func TestLayoutLookupAndClone(t *testing.T) {
	l := NewRetailLayout("Test")
	s := NewProductShelf()
	o := NewStructureObject()
	l.Shelves = append(l.Shelves, s)
	l.StructureObjects = append(l.StructureObjects, o)
	l.Outline = []Point{{0, 0}, {10, 0}, {10, 10}}

	require.Same(t, s, l.ShelfByID(s.ID))
	require.Same(t, o, l.StructureObjectByID(o.ID))
	require.Nil(t, l.ShelfByID("missing"))

	c := l.Clone()
	require.Equal(t, s.ID, c.Shelves[0].ID)
	require.NotSame(t, s, c.Shelves[0])
	c.Shelves[0].X = 99
	c.Outline[0].X = 5
	require.Zero(t, s.X)
	require.Zero(t, l.Outline[0].X)
}

func TestNormalizeOrientation(t *testing.T) {
	cases := map[float64]float64{0: 0, 90: 90, 360: 0, 450: 90, -90: 270, 45: 45, 720: 0}
	for in, want := range cases {
		require.Equal(t, want, NormalizeOrientation(in), "input %v", in)
	}
}

func TestParseStructureType(t *testing.T) {
	cases := map[string]StructureType{
		"entrance":      StructureEntrance,
		"Cash Counter":  StructureCashCounter,
		"cash-counter":  StructureCashCounter,
		" EXIT ":        StructureExit,
		"entrance_exit": StructureEntranceExit,
		"blockr":        StructureBlocker,
	}
	for in, want := range cases {
		got, err := ParseStructureType(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "escalator", "checkout lane"} {
		_, err := ParseStructureType(bad)
		require.True(t, errors.Is(err, ErrUnknownStructureType), bad)
	}
}

func TestStructureTypeFlow(t *testing.T) {
	require.True(t, StructureEntranceExit.IsEntrance())
	require.True(t, StructureEntranceExit.IsExit())
	require.False(t, StructureCashCounter.IsEntrance())
	require.False(t, StructureType("window").Valid())
}
