// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/sheets/internal/sheet"
)

// Default configuration values.
const (
	DefaultTitle     = "Sheets"
	DefaultThemeName = "default"
	DefaultPlainTmpl = "{{.Index}} {{.Marker}} {{.Options.Placement}} {{.Options.Size}}% {{.Content}}"
)

// Configuration errors.
var (
	ErrEmptyPresetName     = errors.New("preset name cannot be empty")
	ErrDuplicatePresetName = errors.New("duplicate preset name")
	ErrUnknownNextPreset   = errors.New("next refers to an unknown preset")
)

// Config represents the sheets configuration.
type Config struct {
	TUI       TUIConfig       `toml:"tui"`
	Theme     ThemeConfig     `toml:"theme"`
	Templates TemplatesConfig `toml:"templates"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Presets   []Preset        `toml:"presets"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	Title    string `toml:"title"`
	ShowHelp bool   `toml:"show_help"`
	Watch    bool   `toml:"watch"` // Reload config and theme when they change on disk
}

// ThemeConfig selects the colour theme.
type ThemeConfig struct {
	Name string `toml:"name"`
}

// TemplatesConfig holds output templates.
type TemplatesConfig struct {
	Plain  string            `toml:"plain"`
	Custom map[string]string `toml:"custom"`
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// Preset is a named sheet the TUI can push. Placement and Size left empty
// fall back to the sheet defaults; Cover is applied to the sheet beneath.
type Preset struct {
	Name      string      `toml:"name"`
	Title     string      `toml:"title"`
	Body      string      `toml:"body"`
	Placement string      `toml:"placement,omitempty"`
	Size      *float64    `toml:"size,omitempty"`
	Cover     CoverConfig `toml:"cover,omitempty"`
	Next      string      `toml:"next,omitempty"` // Preset opened from inside this sheet
}

// CoverConfig is the override a preset applies to the sheet it covers.
type CoverConfig struct {
	Placement string   `toml:"placement,omitempty"`
	Size      *float64 `toml:"size,omitempty"`
}

// Options returns the preset's sheet options as a partial.
func (p Preset) Options() (sheet.Partial, error) {
	return toPartial(p.Placement, p.Size)
}

// CoverOptions returns the cover override as a partial.
func (p Preset) CoverOptions() (sheet.Partial, error) {
	return toPartial(p.Cover.Placement, p.Cover.Size)
}

func toPartial(placement string, size *float64) (sheet.Partial, error) {
	var opts sheet.Partial
	if placement != "" {
		pl, err := sheet.ParsePlacement(placement)
		if err != nil {
			return sheet.Partial{}, err
		}
		opts = opts.WithPlacement(pl)
	}
	if size != nil {
		opts = opts.WithSize(*size)
	}
	return opts, opts.Validate()
}

// DefaultPresets returns the presets used when the config defines none.
func DefaultPresets() []Preset {
	return []Preset{
		{
			Name:  "details",
			Title: "Details",
			Body:  "A sheet with the default options: right edge, half the screen.\n\nPress enter to open comments beneath it.",
			Next:  "comments",
		},
		{
			Name:      "comments",
			Title:     "Comments",
			Body:      "Opened from the bottom edge. The sheet beneath narrowed to 30% while covered and widens again when this one closes.",
			Placement: "bottom",
			Size:      sizePtr(40),
			Cover:     CoverConfig{Size: sizePtr(30)},
		},
		{
			Name:      "filters",
			Title:     "Filters",
			Body:      "A narrow sheet on the left edge.\n\nPress enter to open the inspector.",
			Placement: "left",
			Size:      sizePtr(30),
			Next:      "inspector",
		},
		{
			Name:      "inspector",
			Title:     "Inspector",
			Body:      "Opening this moved the filters sheet to the top edge. Closing it puts filters back on the left.",
			Placement: "right",
			Size:      sizePtr(45),
			Cover:     CoverConfig{Placement: "top", Size: sizePtr(35)},
		},
		{
			Name:      "console",
			Title:     "Console",
			Body:      "A full-width sheet sliding down from the top.",
			Placement: "top",
			Size:      sizePtr(40),
		},
	}
}

func sizePtr(v float64) *float64 { return &v }

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		TUI: TUIConfig{
			Title:    DefaultTitle,
			ShowHelp: true,
			Watch:    true,
		},
		Theme: ThemeConfig{
			Name: DefaultThemeName,
		},
		Templates: TemplatesConfig{
			Plain:  DefaultPlainTmpl,
			Custom: make(map[string]string),
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
		Presets: DefaultPresets(),
	}
}

// ConfigDir returns the sheets configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sheets")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// ThemesPath returns the directory user themes are loaded from.
func ThemesPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	cfg.Presets = nil

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.Presets = DefaultPresets()
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}
	if cfg.Templates.Custom == nil {
		cfg.Templates.Custom = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks presets for unique names, valid options and resolvable
// next references.
func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset %d: %w", i, ErrEmptyPresetName)
		}
		if names[p.Name] {
			return fmt.Errorf("preset %q: %w", p.Name, ErrDuplicatePresetName)
		}
		names[p.Name] = true

		if _, err := p.Options(); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		if _, err := p.CoverOptions(); err != nil {
			return fmt.Errorf("preset %q cover: %w", p.Name, err)
		}
	}

	for _, p := range c.Presets {
		if p.Next != "" && !names[p.Next] {
			return fmt.Errorf("preset %q: %w: %q", p.Name, ErrUnknownNextPreset, p.Next)
		}
	}
	return nil
}

// Preset returns the preset with the given name.
func (c *Config) Preset(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// GetTemplate returns the template for the given name.
// First checks custom templates, then built-in ones.
// Returns empty string if not found.
func (c *Config) GetTemplate(name string) string {
	if tmpl, ok := c.Templates.Custom[name]; ok {
		return tmpl
	}

	switch name {
	case "plain":
		return c.Templates.Plain
	default:
		return ""
	}
}

