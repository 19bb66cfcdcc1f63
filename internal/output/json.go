package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// JSONFormatter formats layers as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes layers as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, layers []sheet.Layer) error {
	if layers == nil {
		layers = []sheet.Layer{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(layers)
}
