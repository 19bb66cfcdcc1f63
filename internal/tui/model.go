// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/sheets/internal/config"
	"github.com/jmylchreest/sheets/internal/layout"
	"github.com/jmylchreest/sheets/internal/output"
	"github.com/jmylchreest/sheets/internal/sheet"
	"github.com/jmylchreest/sheets/internal/theme"
)

// Model is the main TUI model. The preset list is the host surface; the
// sheet stack is drawn over it.
type Model struct {
	// Configuration
	cfg        *config.Config
	configPath string
	themes     *theme.Loader
	styles     theme.Styles
	logger     *slog.Logger

	// themeName is the theme in use. configTheme is theme.name as last read
	// from the config file; a reload only switches theme when it changes.
	themeName   string
	configTheme string

	// The stack is owned by whoever built the model and passed in.
	stack *sheet.Stack

	// Components
	list list.Model
	help help.Model

	// State
	offsets map[string]int // entry ID -> body scroll offset
	width   int
	height  int
	ready   bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// Config and theme change subscription
	changes <-chan config.ChangeEvent
}

// presetItem wraps a preset for the list component.
type presetItem struct {
	preset config.Preset
}

func (i presetItem) Title() string {
	if i.preset.Title != "" {
		return i.preset.Title
	}
	return i.preset.Name
}

func (i presetItem) Description() string {
	opts, _ := i.preset.Options()
	desc := output.FormatOptions(sheet.DefaultOptions().Merge(opts))
	if cover, _ := i.preset.CoverOptions(); !cover.IsZero() {
		desc += ", covers with " + output.FormatPartial(cover)
	}
	if i.preset.Next != "" {
		desc += ", opens " + i.preset.Next
	}
	return desc
}

func (i presetItem) FilterValue() string {
	return i.preset.Name + " " + i.preset.Title
}

// New creates a new TUI model around an existing stack.
func New(cfg *config.Config, stack *sheet.Stack, themes *theme.Loader, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if themes == nil {
		themes = theme.NewLoader("", logger)
	}
	l := list.New(presetItems(cfg.Presets), list.NewDefaultDelegate(), 0, 0)
	l.Title = cfg.TUI.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := Model{
		cfg:         cfg,
		themes:      themes,
		logger:      logger,
		configTheme: cfg.Theme.Name,
		stack:       stack,
		list:        l,
		help:        help.New(),
		offsets:     make(map[string]int),
		keys:        DefaultKeyMap(),
	}
	return m.WithTheme(cfg.Theme.Name)
}

// WithTheme switches to the named theme. It outlives config reloads unless
// the config file itself names a different theme.
func (m Model) WithTheme(name string) Model {
	m.themeName = name
	m.applyTheme(m.themes.LoadTheme(name))
	return m
}

func (m *Model) applyTheme(th *theme.Theme) {
	m.styles = th.Styles()

	hs := m.help.Styles
	hs.ShortKey = m.styles.Key
	hs.FullKey = m.styles.Key
	hs.ShortDesc = m.styles.Muted
	hs.FullDesc = m.styles.Muted
	hs.ShortSeparator = m.styles.Muted
	hs.FullSeparator = m.styles.Muted
	hs.Ellipsis = m.styles.Muted
	m.help.Styles = hs
}

func presetItems(presets []config.Preset) []list.Item {
	items := make([]list.Item, len(presets))
	for i, p := range presets {
		items[i] = presetItem{preset: p}
	}
	return items
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.watchForChanges
}

// watchForChanges waits for the next config or theme file change.
func (m Model) watchForChanges() tea.Msg {
	if m.changes == nil {
		return nil
	}
	ev, ok := <-m.changes
	if !ok {
		return nil
	}
	return fileChangedMsg{path: ev.Path}
}

type fileChangedMsg struct {
	path string
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case fileChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reload(msg.path)
		return m, tea.Batch(cmd, m.watchForChanges)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied stack to clipboard", false)
	}

	if m.stack.Showing() {
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Close):
		return m.closeSheet()

	case key.Matches(msg, m.keys.Open):
		return m.openSheet()

	case key.Matches(msg, m.keys.CopyYAML):
		return m, m.copyStack(output.FormatYAML)

	case key.Matches(msg, m.keys.CopyJSON):
		return m, m.copyStack(output.FormatJSON)

	case key.Matches(msg, m.keys.NextTheme):
		return m.nextTheme()
	}

	if m.stack.Showing() {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.scrollTop(-1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTop(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleMouse treats a left click outside the top sheet as a click on its
// backdrop and closes it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	top, ok := m.stack.Top()
	if !ok {
		return m, nil
	}

	r := layout.Bounds(top.Current(), m.width, m.height)
	inside := msg.X >= r.X && msg.X < r.X+r.Width && msg.Y >= r.Y && msg.Y < r.Y+r.Height
	if inside {
		return m, nil
	}
	return m.closeSheet()
}

// openSheet pushes the selected preset, or the top sheet's follow-up preset
// when a sheet is already showing.
func (m Model) openSheet() (tea.Model, tea.Cmd) {
	var (
		preset config.Preset
		ok     bool
	)

	if top, showing := m.stack.Top(); showing {
		p, _ := top.Content().(Panel)
		if p.Next == "" {
			return m, status("Nothing to open from "+p.Title, false)
		}
		preset, ok = m.cfg.Preset(p.Next)
		if !ok {
			return m, status("Unknown preset: "+p.Next, true)
		}
	} else {
		item, isPreset := m.list.SelectedItem().(presetItem)
		if !isPreset {
			return m, nil
		}
		preset, ok = item.preset, true
	}

	opts, err := preset.Options()
	if err != nil {
		return m, status(fmt.Sprintf("Preset %s: %v", preset.Name, err), true)
	}
	cover, err := preset.CoverOptions()
	if err != nil {
		return m, status(fmt.Sprintf("Preset %s: %v", preset.Name, err), true)
	}

	m.stack.Push(panelFromPreset(preset), opts, cover)
	return m, nil
}

// closeSheet pops the top sheet.
func (m Model) closeSheet() (tea.Model, tea.Cmd) {
	if removed, ok := m.stack.Pop(); ok {
		delete(m.offsets, removed.ID())
	}
	return m, nil
}

// scrollTop scrolls the body of the top sheet by delta lines.
func (m Model) scrollTop(delta int) {
	layers := m.stack.Layers()
	if len(layers) == 0 {
		return
	}
	top := layers[len(layers)-1]

	vp := m.bodyViewport(top, layout.Bounds(top.Options, m.width, m.height))
	vp.SetYOffset(vp.YOffset + delta)
	m.offsets[top.ID] = vp.YOffset
}

// copyStack copies the current projection to the clipboard.
func (m Model) copyStack(format output.FormatType) tea.Cmd {
	text, err := formatLayers(m.stack.Layers(), format)
	if err != nil {
		return status("Failed to format stack: "+err.Error(), true)
	}
	return m.copyToClipboard(text)
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, m.cfg)}
	}
}

// nextTheme switches to the theme after the current one.
func (m Model) nextTheme() (tea.Model, tea.Cmd) {
	names := m.themes.ListThemes()
	if len(names) == 0 {
		return m, nil
	}

	current := m.themes.CurrentTheme()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}

	m = m.WithTheme(next)
	return m, status("Theme: "+next, false)
}

// reload re-reads the config or theme file that changed.
func (m Model) reload(path string) (Model, tea.Cmd) {
	if dir := m.themes.Dir(); dir != "" && filepath.Dir(path) == filepath.Clean(dir) {
		if strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) != m.themes.CurrentTheme() {
			m.logger.Debug("ignoring change to inactive theme", "path", path)
			return m, nil
		}
		m.applyTheme(m.themes.Reload())
		m.logger.Debug("reloaded theme", "path", path)
		return m, status("Theme reloaded", false)
	}

	cfg, err := config.LoadConfig(m.configPath)
	if err != nil {
		m.logger.Warn("failed to reload config", "error", err)
		return m, status("Config reload failed: "+err.Error(), true)
	}

	m.cfg = cfg
	m.list.Title = cfg.TUI.Title
	cmd := m.list.SetItems(presetItems(cfg.Presets))
	if cfg.Theme.Name != m.configTheme {
		m.configTheme = cfg.Theme.Name
		m = m.WithTheme(cfg.Theme.Name)
	}
	m.logger.Debug("reloaded config", "path", path, "presets", len(cfg.Presets))

	return m, tea.Batch(cmd, status("Config reloaded", false))
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	base := m.list.View() + "\n" + m.statusLine()
	return layout.Compose(base, m.width, m.height, m.stack.Layers(), m.styles.Backdrop, m.renderSheet)
}

func (m Model) statusLine() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.Error.Render(m.statusMsg)
		}
		return m.styles.Text.Render(m.statusMsg)
	}
	if !m.cfg.TUI.ShowHelp {
		return ""
	}
	return m.help.View(m.keys)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to the loaded config file (empty = default)
	Theme      string // Overrides theme.name from the config when set
	Logger     *slog.Logger
}

// Run starts the TUI with the given options. The sheet stack is created here
// and lives as long as the program.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	themes := theme.NewLoader(config.ThemesPath(), logger)
	stack := sheet.NewStack(logger)

	m := New(cfg, stack, themes, logger)
	m.configPath = opts.ConfigPath
	if opts.Theme != "" {
		m = m.WithTheme(opts.Theme)
	}

	var watcher *config.FileWatcher
	if cfg.TUI.Watch {
		configPath := opts.ConfigPath
		if configPath == "" {
			configPath = config.ConfigPath()
		}

		var err error
		watcher, err = config.NewFileWatcher(logger, configPath)
		if err != nil {
			logger.Warn("failed to create file watcher", "error", err)
		} else if err := watcher.WatchDir(themes.Dir(), ".toml"); err != nil {
			logger.Warn("failed to watch themes directory", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start file watcher", "error", err)
		} else {
			m.changes = watcher.Events()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
