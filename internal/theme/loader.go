package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Loader resolves theme names against the user themes directory and the
// bundled themes.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	themesDir   string
	currentName string
	theme       *Theme
}

// NewLoader creates a new theme loader. An empty themesDir uses ThemesDir().
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	if themesDir == "" {
		dir, err := ThemesDir()
		if err != nil {
			logger.Warn("failed to get themes directory", "error", err)
		}
		themesDir = dir
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		theme:     NewDefaultTheme(),
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sheets", "themes"), nil
}

// LoadTheme loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/sheets/themes/)
//  2. Embedded/bundled themes
//
// Unknown names fall back to the default theme.
func (l *Loader) LoadTheme(name string) *Theme {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	if path := l.userPath(name); path != "" {
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
			} else {
				l.set(t)
				l.logger.Debug("loaded user theme", "name", name, "path", path)
				return t
			}
		}
	}

	if data, found := GetEmbeddedTheme(name); found {
		t, err := Parse(name, data)
		if err == nil {
			l.set(t)
			l.logger.Debug("loaded bundled theme", "name", name)
			return t
		}
		l.logger.Warn("failed to parse bundled theme", "theme", name, "error", err)
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	t := NewDefaultTheme()
	l.set(t)
	return t
}

func (l *Loader) set(t *Theme) {
	l.theme = t
	l.currentName = t.Name
}

func (l *Loader) userPath(name string) string {
	if l.themesDir == "" {
		return ""
	}
	return filepath.Join(l.themesDir, name+themeExt)
}

// Dir returns the user themes directory, empty when it could not be resolved.
func (l *Loader) Dir() string {
	return l.themesDir
}

// Theme returns the currently loaded theme.
func (l *Loader) Theme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// Reload reloads the current theme from disk.
func (l *Loader) Reload() *Theme {
	return l.LoadTheme(l.CurrentTheme())
}

// ListThemes returns bundled themes followed by user themes, without duplicates.
func (l *Loader) ListThemes() []string {
	seen := make(map[string]bool)
	var themes []string

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, name)
		}
	}

	if l.themesDir == "" {
		return themes
	}

	entries, err := os.ReadDir(l.themesDir)
	if err != nil {
		l.logger.Debug("failed to read themes directory", "error", err)
		return themes
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == themeExt {
			themeName := strings.TrimSuffix(name, themeExt)
			if !seen[themeName] {
				seen[themeName] = true
				themes = append(themes, themeName)
			}
		}
	}

	return themes
}
