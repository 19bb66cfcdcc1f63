package layout

import (
	"math"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// Rect is a cell-aligned rectangle on the terminal.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds returns the rectangle a sheet with opts occupies on a width x height
// screen. Left and right sheets span the full height and take size percent of
// the width; top and bottom sheets span the full width and take size percent
// of the height. Out of range sizes are clamped and unknown placements fall
// back to the default edge.
func Bounds(opts sheet.Options, width, height int) Rect {
	if width <= 0 || height <= 0 {
		return Rect{}
	}

	placement := opts.Placement
	if !placement.Valid() {
		placement = sheet.DefaultPlacement
	}

	if placement.Horizontal() {
		w := extent(width, opts.Size)
		x := 0
		if placement == sheet.PlacementRight {
			x = width - w
		}
		return Rect{X: x, Y: 0, Width: w, Height: height}
	}

	h := extent(height, opts.Size)
	y := 0
	if placement == sheet.PlacementBottom {
		y = height - h
	}
	return Rect{X: 0, Y: y, Width: width, Height: h}
}

// extent returns size percent of total, rounded to whole cells.
func extent(total int, size float64) int {
	switch {
	case math.IsNaN(size) || size <= 0:
		return 0
	case size >= 100:
		return total
	}
	return int(math.Round(float64(total) * size / 100))
}
