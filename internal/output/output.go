// Package output provides formatters for the sheet stack projection.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// Formatter formats stack layers for output.
type Formatter interface {
	// Format writes the layers, bottom first, to the writer.
	Format(w io.Writer, layers []sheet.Layer) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// Formats lists every supported format.
var Formats = []FormatType{FormatPlain, FormatJSON, FormatYAML}

// ParseFormat converts a string to a FormatType.
func ParseFormat(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, json or yaml)", s)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for plain format
	ShowIndex bool   // Show 1-based index prefix
	ShowTime  bool   // Show when each sheet was pushed
	ShowID    bool   // Show entry IDs
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		ShowTime:  false,
		ShowID:    false,
	}
}
