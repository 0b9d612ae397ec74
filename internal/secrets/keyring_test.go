package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyringRoundTrip(t *testing.T) {
	dir := t.TempDir()
	k, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, k.Set(" OpenAI ", "sk-test-123"))
	got, err := k.Get("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-test-123", got)

	raw, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "sk-test-123"), "key must not be stored in plain text")

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestKeyringMissingAndDelete(t *testing.T) {
	k, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = k.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, k.Set("openai", "a"))
	require.NoError(t, k.Set("remote", "b"))
	require.NoError(t, k.Delete("openai"))

	_, err = k.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)
	got, err := k.Get("remote")
	require.NoError(t, err)
	require.Equal(t, "b", got)
}

func TestKeyringRequiresProvider(t *testing.T) {
	k, err := Open(t.TempDir())
	require.NoError(t, err)
	require.Error(t, k.Set("  ", "x"))
}

func TestKeyringRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{"), 0o600))
	k, err := Open(dir)
	require.NoError(t, err)
	_, err = k.Get("openai")
	require.Error(t, err)
}
