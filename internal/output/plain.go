package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// PlainFormatter formats layers as plain text, one line per sheet.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter. A custom template
// that fails to parse is an error.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid plain template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// templateData is what custom templates are executed against.
type templateData struct {
	sheet.Layer
	Index        int    // 1-based
	Marker       string // "*" for the top sheet, "-" for covered sheets
	Overridden   bool
	RelativeTime string
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
		"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
		"formatTime": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"relTime": humanize.Time,
	}
}

// Format writes layers as plain text.
func (f *PlainFormatter) Format(w io.Writer, layers []sheet.Layer) error {
	for _, l := range layers {
		if err := f.formatLayer(w, l); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatLayer(w io.Writer, l sheet.Layer) error {
	data := templateData{
		Layer:        l,
		Index:        l.Index + 1,
		Marker:       marker(l),
		Overridden:   l.Options != l.Baseline,
		RelativeTime: relativeTime(l.PushedAt),
	}

	if f.template != nil {
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", data.Index))
	}
	sb.WriteString(data.Marker + " ")
	sb.WriteString(FormatOptions(l.Options))
	sb.WriteString(fmt.Sprintf(" %v", l.Content))

	if data.Overridden {
		sb.WriteString(" (baseline " + FormatOptions(l.Baseline) + ")")
	}
	if f.opts.ShowID {
		sb.WriteString(" id=" + l.ID)
	}
	if f.opts.ShowTime {
		sb.WriteString(" opened " + data.RelativeTime)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatPartial renders only the fields a partial sets, "-" when it sets none.
func FormatPartial(p sheet.Partial) string {
	switch {
	case p.Placement != nil && p.Size != nil:
		return FormatOptions(sheet.Options{Placement: *p.Placement, Size: *p.Size})
	case p.Placement != nil:
		return string(*p.Placement)
	case p.Size != nil:
		return humanize.Ftoa(*p.Size) + "%"
	}
	return "-"
}

// FormatOptions renders options as "placement size%".
func FormatOptions(o sheet.Options) string {
	return fmt.Sprintf("%s %s%%", o.Placement, humanize.Ftoa(o.Size))
}

func marker(l sheet.Layer) string {
	if l.Covered() {
		return "-"
	}
	return "*"
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
