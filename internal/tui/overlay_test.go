package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRenderModalKeepsCanvasSize(t *testing.T) {
	base := strings.Repeat(strings.Repeat("x", 60)+"\n", 20)
	out := renderModal(base, "Rename", "body text", 60, 20)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for i, line := range lines {
		require.Equal(t, 60, ansi.StringWidth(line), "line %d", i)
	}
	plain := ansi.Strip(out)
	require.Contains(t, plain, "Rename")
	require.Contains(t, plain, "body text")
	require.True(t, strings.HasPrefix(lines[0], "x"), "base stays visible outside the card")
}

func TestRenderModalZeroSize(t *testing.T) {
	require.Empty(t, renderModal("base", "t", "b", 0, 10))
}

func TestOverlaySegmentBounds(t *testing.T) {
	start, end, ok := overlaySegmentBounds("   abc  ", 8)
	require.True(t, ok)
	require.Equal(t, 3, start)
	require.Equal(t, 6, end)

	_, _, ok = overlaySegmentBounds("      ", 6)
	require.False(t, ok)
}

func TestPadRightANSI(t *testing.T) {
	require.Equal(t, "ab  ", padRightANSI("ab", 4))
	require.Equal(t, "abcd", padRightANSI("abcdef", 4))
}
