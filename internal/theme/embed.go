package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedThemes contains all bundled theme files.
//
//go:embed themes/*.toml
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"default", "minimal", "catppuccin"}

// GetEmbeddedTheme retrieves a bundled theme file by name.
// Returns the TOML content and whether it was found.
func GetEmbeddedTheme(name string) ([]byte, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + themeExt)
	if err != nil {
		return nil, false
	}
	return data, true
}

// ListEmbeddedThemes returns names of all embedded themes.
func ListEmbeddedThemes() []string {
	var themes []string

	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == themeExt {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}

	return themes
}
