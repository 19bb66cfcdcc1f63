package theme

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

const themeExt = ".toml"

// Theme is a set of terminal colours for the host surface and its sheets.
// Colours are lipgloss colour strings: ANSI indexes ("12") or hex ("#89b4fa").
type Theme struct {
	Name string `toml:"-"`
	Path string `toml:"-"` // Empty for bundled themes

	Border string `toml:"border"` // rounded, normal, thick, double, hidden
	Colors Colors `toml:"colors"`
}

// Colors holds the named colour slots.
type Colors struct {
	Backdrop   string `toml:"backdrop"` // Foreground for covered content
	Border     string `toml:"border"`
	Title      string `toml:"title"`
	Text       string `toml:"text"`
	Muted      string `toml:"muted"`
	Key        string `toml:"key"`
	Error      string `toml:"error"`
	Background string `toml:"background"` // Sheet background, empty for terminal default
}

// Parse decodes a theme, filling unset fields from the default theme.
func Parse(name string, data []byte) (*Theme, error) {
	t := NewDefaultTheme()
	t.Name = name

	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}
	return t, nil
}

// NewTheme loads a theme file from disk.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	t := &Theme{Name: DefaultThemeName}
	data, _ := GetEmbeddedTheme(DefaultThemeName)
	_ = toml.Unmarshal(data, t)
	return t
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Backdrop lipgloss.Style
	Sheet    lipgloss.Style
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Key      lipgloss.Style
	Error    lipgloss.Style
}

// Styles builds the lipgloss styles for t.
func (t *Theme) Styles() Styles {
	c := t.Colors

	sheet := lipgloss.NewStyle().
		Border(borderStyle(t.Border)).
		BorderForeground(lipgloss.Color(c.Border)).
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 1)
	if c.Background != "" {
		sheet = sheet.Background(lipgloss.Color(c.Background)).
			BorderBackground(lipgloss.Color(c.Background))
	}

	return Styles{
		Backdrop: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Backdrop)).Faint(true),
		Sheet:    sheet,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted)),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Key)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
	}
}

func borderStyle(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
