package sheet

import (
	"errors"
	"fmt"
)

// Default option values.
const (
	DefaultPlacement = PlacementRight
	DefaultSize      = 50.0
)

// Validation errors. The stack itself never returns these; they are for
// callers that accept options from users or files.
var (
	ErrInvalidPlacement = errors.New("placement must be one of top, right, bottom, left")
	ErrInvalidSize      = errors.New("size must be between 0 and 100")
)

// Options is the configuration of a sheet. It is a value type; Merge returns
// a new value and never modifies the receiver.
type Options struct {
	Placement Placement `json:"placement" yaml:"placement" toml:"placement"`
	Size      float64   `json:"size" yaml:"size" toml:"size"` // Percentage of the viewport
}

// DefaultOptions returns {right, 50}.
func DefaultOptions() Options {
	return Options{
		Placement: DefaultPlacement,
		Size:      DefaultSize,
	}
}

// Merge returns a copy of o with every field present in p applied.
func (o Options) Merge(p Partial) Options {
	if p.Placement != nil {
		o.Placement = *p.Placement
	}
	if p.Size != nil {
		o.Size = *p.Size
	}
	return o
}

// Validate checks the placement enum and the size range.
func (o Options) Validate() error {
	if !o.Placement.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlacement, o.Placement)
	}
	if o.Size < 0 || o.Size > 100 {
		return fmt.Errorf("%w: %g", ErrInvalidSize, o.Size)
	}
	return nil
}

// Partial is a partially specified Options. Nil fields are absent and leave
// the merged value untouched.
type Partial struct {
	Placement *Placement `json:"placement,omitempty" yaml:"placement,omitempty" toml:"placement,omitempty"`
	Size      *float64   `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
}

// WithPlacement returns a copy of p with the placement set.
func (p Partial) WithPlacement(placement Placement) Partial {
	p.Placement = &placement
	return p
}

// WithSize returns a copy of p with the size set.
func (p Partial) WithSize(size float64) Partial {
	p.Size = &size
	return p
}

// IsZero reports whether no field is present.
func (p Partial) IsZero() bool {
	return p.Placement == nil && p.Size == nil
}

// Validate checks the fields that are present.
func (p Partial) Validate() error {
	if p.Placement != nil && !p.Placement.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlacement, *p.Placement)
	}
	if p.Size != nil && (*p.Size < 0 || *p.Size > 100) {
		return fmt.Errorf("%w: %g", ErrInvalidSize, *p.Size)
	}
	return nil
}

// Full returns o as a Partial with both fields present.
func (o Options) Full() Partial {
	return Partial{}.WithPlacement(o.Placement).WithSize(o.Size)
}
