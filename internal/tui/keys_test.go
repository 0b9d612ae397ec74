package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	quit := r.Lookup("q", scopeCanvas)
	require.NotNil(t, quit)
	require.Equal(t, actionQuit, quit.Action)

	require.Nil(t, r.Lookup("q", scopeEdit), "q must stay typeable while editing")

	global := r.Lookup("ctrl+c", scopeEdit)
	require.NotNil(t, global)
	require.Equal(t, actionQuit, global.Action)

	confirm := r.Lookup("Return", scopeLibrary)
	require.NotNil(t, confirm)
	require.Equal(t, actionConfirm, confirm.Action)
}

func TestKeyRegistryNoDuplicateInSameScope(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	r.Register(Binding{Action: actionSave, Keys: []string{"x"}, Help: "first", Scopes: []string{"a"}})
	r.Register(Binding{Action: actionExport, Keys: []string{"x"}, Help: "dup", Scopes: []string{"a"}})
	r.Register(Binding{Action: actionExport, Keys: []string{"x"}, Help: "other", Scopes: []string{"b"}})

	a := r.BindingsForScope("a")
	require.Len(t, a, 1)
	require.Equal(t, actionSave, a[0].Action)

	b := r.BindingsForScope("b")
	require.Len(t, b, 1)
	require.Equal(t, actionExport, b[0].Action)
}

func TestKeyRegistryHelpBindingsMergesNudgeKeys(t *testing.T) {
	r := NewKeyRegistry()

	var moves int
	for _, b := range r.HelpBindings(scopeCanvas) {
		if b.Help().Desc != "move" {
			continue
		}
		moves++
		require.Equal(t, "↑↓←→", b.Help().Key)
		require.Equal(t, []string{"up", "down", "left", "right"}, b.Keys())
	}
	require.Equal(t, 1, moves)
}

func TestHelpKeysJoinsShortLists(t *testing.T) {
	require.Equal(t, "e/enter", helpKeys([]string{"e", "enter"}))
	require.Equal(t, "↑", helpKeys([]string{"up"}))
}

func TestNormalizeKeyName(t *testing.T) {
	require.Equal(t, "space", normalizeKeyName(" "))
	require.Equal(t, "ctrl+c", normalizeKeyName("Control+C"))
	require.Equal(t, "Q", normalizeKeyName("Q"))
	require.Equal(t, "", normalizeKeyName("  "))
}
