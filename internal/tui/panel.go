package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/sheets/internal/config"
	"github.com/jmylchreest/sheets/internal/layout"
	"github.com/jmylchreest/sheets/internal/output"
	"github.com/jmylchreest/sheets/internal/sheet"
)

// Panel is the content the TUI pushes onto the stack.
type Panel struct {
	Preset string `json:"preset" yaml:"preset"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body,omitempty" yaml:"body,omitempty"`
	Next   string `json:"next,omitempty" yaml:"next,omitempty"`
}

func (p Panel) String() string {
	return p.Title
}

// panelFromPreset builds the sheet content for a preset.
func panelFromPreset(p config.Preset) Panel {
	title := p.Title
	if title == "" {
		title = p.Name
	}
	return Panel{
		Preset: p.Name,
		Title:  title,
		Body:   p.Body,
		Next:   p.Next,
	}
}

// sheetFrame is the cells the sheet border and padding take up.
func (m Model) sheetFrame() (w, h int) {
	return m.styles.Sheet.GetHorizontalFrameSize(), m.styles.Sheet.GetVerticalFrameSize()
}

// bodyViewport returns a viewport over the panel body sized for r, scrolled
// to the stored offset for the layer.
func (m Model) bodyViewport(l sheet.Layer, r layout.Rect) viewport.Model {
	frameW, frameH := m.sheetFrame()
	innerW := max(r.Width-frameW, 0)
	// Title and footer lines.
	innerH := max(r.Height-frameH-2, 0)

	p, _ := l.Content.(Panel)
	vp := viewport.New(innerW, innerH)
	vp.SetContent(lipgloss.NewStyle().Width(innerW).Render(p.Body))
	vp.SetYOffset(m.offsets[l.ID])
	return vp
}

// renderSheet renders one layer into a block exactly filling r.
func (m Model) renderSheet(l sheet.Layer, r layout.Rect) string {
	frameW, frameH := m.sheetFrame()
	innerW := r.Width - frameW
	innerH := r.Height - frameH
	if innerW <= 0 || innerH <= 0 {
		return strings.Repeat(strings.Repeat(" ", r.Width)+"\n", max(r.Height-1, 0)) + strings.Repeat(" ", r.Width)
	}

	p, ok := l.Content.(Panel)
	if !ok {
		p = Panel{Title: fmt.Sprint(l.Content)}
	}

	title := m.styles.Title.Render(p.Title) + " " +
		m.styles.Muted.Render(output.FormatOptions(l.Options))

	footer := "opened " + humanize.Time(l.PushedAt)
	if l.Top {
		footer += "  esc close"
		if p.Next != "" {
			footer += "  enter " + p.Next
		}
	}

	lines := []string{title}
	if innerH > 2 {
		lines = append(lines, m.bodyViewport(l, r).View())
	}
	if innerH > 1 {
		lines = append(lines, m.styles.Muted.Render(footer))
	}

	// Width and Height include padding but not the border.
	borderW := m.styles.Sheet.GetHorizontalBorderSize()
	borderH := m.styles.Sheet.GetVerticalBorderSize()
	return m.styles.Sheet.
		Width(r.Width - borderW).
		Height(r.Height - borderH).
		MaxWidth(r.Width).
		MaxHeight(r.Height).
		Render(strings.Join(lines, "\n"))
}
