package sheet

import (
	"fmt"
	"strings"
)

// Placement is the screen edge a sheet is anchored to.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementRight  Placement = "right"
	PlacementBottom Placement = "bottom"
	PlacementLeft   Placement = "left"
)

// Placements lists every recognized placement in edge order.
var Placements = []Placement{PlacementTop, PlacementRight, PlacementBottom, PlacementLeft}

// ParsePlacement converts a string to a Placement (case-insensitive).
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
	}
	return p, nil
}

// Valid reports whether p is one of the four edges.
func (p Placement) Valid() bool {
	switch p {
	case PlacementTop, PlacementRight, PlacementBottom, PlacementLeft:
		return true
	default:
		return false
	}
}

// Horizontal reports whether the sheet slides in from the left or right,
// in which case its size is a share of the width rather than the height.
func (p Placement) Horizontal() bool {
	return p == PlacementLeft || p == PlacementRight
}

func (p Placement) String() string {
	return string(p)
}
