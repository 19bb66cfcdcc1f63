package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/sheets/internal/sheet"
)

func plainLines(s string) []string {
	return strings.Split(xansi.Strip(s), "\n")
}

func fill(ch string, r Rect) string {
	row := strings.Repeat(ch, r.Width)
	rows := make([]string, r.Height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestOverlayAt(t *testing.T) {
	canvas := canvasLines("..........\n..........\n..........", 10, 3)
	overlayAt(canvas, []string{"ab", "cd"}, 10, Rect{X: 3, Y: 1, Width: 2, Height: 2})

	lines := plainLines(strings.Join(canvas, "\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "...ab.....", lines[1])
	assert.Equal(t, "...cd.....", lines[2])
}

func TestOverlayAt_ClipsAtEdges(t *testing.T) {
	canvas := canvasLines("", 10, 3)
	overlayAt(canvas, []string{"xyz", "xyz", "xyz"}, 10, Rect{X: 8, Y: 1, Width: 3, Height: 3})

	lines := plainLines(strings.Join(canvas, "\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "          ", lines[0])
	assert.Equal(t, "        xy", lines[1])
	assert.Equal(t, "        xy", lines[2])
}

func TestCanvasLines_PadsAndTruncates(t *testing.T) {
	lines := canvasLines("short\nthis line is too long", 8, 3)
	assert.Equal(t, []string{"short   ", "this lin", "        "}, lines)
}

func TestCompose_NoLayersReturnsBase(t *testing.T) {
	out := Compose("host", 6, 2, nil, lipgloss.NewStyle(), nil)
	assert.Equal(t, []string{"host  ", "      "}, plainLines(out))
}

func TestCompose_LayersInStackOrder(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4)
	layers := []sheet.Layer{
		{Content: "A", Options: sheet.Options{Placement: sheet.PlacementRight, Size: 50}},
		{Content: "B", Options: sheet.Options{Placement: sheet.PlacementBottom, Size: 50}, Top: true},
	}

	var rendered []string
	out := Compose(base, 10, 4, layers, lipgloss.NewStyle(), func(l sheet.Layer, r Rect) string {
		rendered = append(rendered, l.Content.(string))
		return fill(l.Content.(string), r)
	})

	assert.Equal(t, []string{"A", "B"}, rendered)
	assert.Equal(t, []string{
		".....AAAAA",
		".....AAAAA",
		"BBBBBBBBBB",
		"BBBBBBBBBB",
	}, plainLines(out))
}

func TestCompose_SkipsEmptyLayers(t *testing.T) {
	layers := []sheet.Layer{
		{Content: "A", Options: sheet.Options{Placement: sheet.PlacementLeft, Size: 0}, Top: true},
	}
	called := false
	out := Compose("xx", 2, 1, layers, lipgloss.NewStyle(), func(sheet.Layer, Rect) string {
		called = true
		return ""
	})

	assert.False(t, called)
	assert.Equal(t, []string{"xx"}, plainLines(out))
}
