package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// YAMLFormatter formats layers as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes layers as YAML.
func (f *YAMLFormatter) Format(w io.Writer, layers []sheet.Layer) error {
	if layers == nil {
		layers = []sheet.Layer{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(layers); err != nil {
		return err
	}
	return encoder.Close()
}
