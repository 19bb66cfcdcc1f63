package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// RenderFunc renders one layer into a block that fills r.
type RenderFunc func(l sheet.Layer, r Rect) string

// Compose draws every layer over base in stack order. Before each layer is
// drawn the canvas beneath it is repainted with the backdrop style, so every
// covered layer and the host surface read as inert while the top layer keeps
// its own styling.
func Compose(base string, width, height int, layers []sheet.Layer, backdrop lipgloss.Style, render RenderFunc) string {
	canvas := canvasLines(base, width, height)
	if len(layers) == 0 || width <= 0 || height <= 0 {
		return strings.Join(canvas, "\n")
	}

	for _, l := range layers {
		dim(canvas, backdrop)

		r := Bounds(l.Options, width, height)
		if r.Empty() {
			continue
		}
		overlayAt(canvas, strings.Split(render(l, r), "\n"), width, r)
	}

	return strings.Join(canvas, "\n")
}

// canvasLines splits s into exactly height lines of exactly width cells.
func canvasLines(s string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	if width < 0 {
		width = 0
	}

	src := strings.Split(s, "\n")
	lines := make([]string, height)
	for i := range lines {
		var ln string
		if i < len(src) {
			ln = src[i]
		}
		lines[i] = fit(ln, width)
	}
	return lines
}

// overlayAt writes fgLines into canvas inside r, clipped to the canvas.
func overlayAt(canvas, fgLines []string, width int, r Rect) {
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.Width > width {
		r.Width = width - r.X
	}
	if r.Width <= 0 {
		return
	}

	for i := 0; i < len(fgLines) && i < r.Height && r.Y+i < len(canvas); i++ {
		bgLine := canvas[r.Y+i]
		left := xansi.Cut(bgLine, 0, r.X)
		right := xansi.Cut(bgLine, r.X+r.Width, width)
		canvas[r.Y+i] = left + fit(fgLines[i], r.Width) + right
	}
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	n := xansi.StringWidth(s)
	switch {
	case n < width:
		return s + strings.Repeat(" ", width-n)
	case n > width:
		return xansi.Truncate(s, width, "")
	}
	return s
}

// dim repaints every line in plain text with the backdrop style.
func dim(canvas []string, backdrop lipgloss.Style) {
	for i, ln := range canvas {
		canvas[i] = backdrop.Render(xansi.Strip(ln))
	}
}
