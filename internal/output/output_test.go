package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/sheets/internal/sheet"
)

func testLayers() []sheet.Layer {
	now := time.Now()
	return []sheet.Layer{
		{
			ID:       "01HZXAAAAAAAAAAAAAAAAAAAAA",
			Index:    0,
			Content:  "A",
			Options:  sheet.Options{Placement: sheet.PlacementRight, Size: 20},
			Baseline: sheet.Options{Placement: sheet.PlacementRight, Size: 50},
			PushedAt: now.Add(-5 * time.Minute),
		},
		{
			ID:       "01HZXBBBBBBBBBBBBBBBBBBBBB",
			Index:    1,
			Content:  "B",
			Options:  sheet.Options{Placement: sheet.PlacementBottom, Size: 30},
			Baseline: sheet.Options{Placement: sheet.PlacementBottom, Size: 30},
			Top:      true,
			PushedAt: now.Add(-2 * time.Second),
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testLayers()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[1] - right 20% A (baseline right 50%)", lines[0])
	assert.Equal(t, "[2] * bottom 30% B", lines[1])
}

func TestPlainFormatter_TimeAndID(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(FormatterOptions{ShowTime: true, ShowID: true})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testLayers()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "- right 20% A"))
	assert.Contains(t, lines[0], "id=01HZXAAAAAAAAAAAAAAAAAAAAA")
	assert.Contains(t, lines[0], "opened 5 minutes ago")
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(FormatterOptions{
		Template: "{{.Index}}{{.Marker}}{{.Content}}:{{.Options.Placement | upper}}:{{.Overridden}}",
	})
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, testLayers()))

	assert.Equal(t, "1-A:RIGHT:true\n2*B:BOTTOM:false\n", buf.String())
}

func TestPlainFormatter_InvalidTemplate(t *testing.T) {
	_, err := NewPlainFormatter(FormatterOptions{Template: "{{.Index"})
	assert.Error(t, err)
}

func TestPlainFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, err)
	require.NoError(t, f.Format(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, testLayers()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "A", decoded[0]["content"])
	assert.Equal(t, false, decoded[0]["top"])
	assert.Equal(t, map[string]any{"placement": "right", "size": 20.0}, decoded[0]["options"])
	assert.Equal(t, true, decoded[1]["top"])
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Format(&buf, testLayers()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "B", decoded[1]["content"])
	assert.Equal(t, "bottom", decoded[1]["options"].(map[string]any)["placement"])
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatJSON, DefaultFormatterOptions())
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = NewFormatter(FormatYAML, DefaultFormatterOptions())
	require.NoError(t, err)
	assert.IsType(t, &YAMLFormatter{}, f)

	f, err = NewFormatter("", DefaultFormatterOptions())
	require.NoError(t, err)
	assert.IsType(t, &PlainFormatter{}, f)
}

func TestFormatOptions(t *testing.T) {
	assert.Equal(t, "left 33.5%", FormatOptions(sheet.Options{Placement: sheet.PlacementLeft, Size: 33.5}))
	assert.Equal(t, "top 0%", FormatOptions(sheet.Options{Placement: sheet.PlacementTop}))
}

func TestFormatPartial(t *testing.T) {
	tests := []struct {
		name    string
		partial sheet.Partial
		want    string
	}{
		{"empty", sheet.Partial{}, "-"},
		{"placement only", sheet.Partial{}.WithPlacement(sheet.PlacementTop), "top"},
		{"size only", sheet.Partial{}.WithSize(20), "20%"},
		{"both", sheet.Partial{}.WithPlacement(sheet.PlacementLeft).WithSize(12.5), "left 12.5%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPartial(tt.partial))
		})
	}
}
