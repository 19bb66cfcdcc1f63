package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent reports that a watched file was written or created.
type ChangeEvent struct {
	Path string
}

// FileWatcher watches a set of files and reports changes on a channel.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	files   map[string]string // cleaned path -> path as given
	dirs    map[string]string // cleaned dir -> extension filter
	events  chan ChangeEvent
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewFileWatcher creates a watcher for the given files. Empty paths are
// ignored. The files do not need to exist yet.
func NewFileWatcher(logger *slog.Logger, paths ...string) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(paths))
	for _, p := range paths {
		if p != "" {
			files[filepath.Clean(p)] = p
		}
	}

	return &FileWatcher{
		watcher: watcher,
		logger:  logger,
		files:   files,
		dirs:    make(map[string]string),
		events:  make(chan ChangeEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel change events are delivered on. It is closed
// when the watcher stops.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// ErrWatcherRunning is returned when the watch set changes after Start.
var ErrWatcherRunning = errors.New("file watcher already started")

// WatchDir reports changes to any file directly inside dir whose extension
// is ext. An empty ext matches every file; an empty dir is ignored. It must
// be called before Start.
func (fw *FileWatcher) WatchDir(dir, ext string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return ErrWatcherRunning
	}
	if dir != "" {
		fw.dirs[filepath.Clean(dir)] = ext
	}
	return nil
}

// Start begins watching. Directories that do not exist are skipped.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	// Watch the containing directories, which survives editors that
	// replace files on save.
	dirs := make([]string, 0, len(fw.files)+len(fw.dirs))
	for path := range fw.files {
		dirs = append(dirs, filepath.Dir(path))
	}
	for dir := range fw.dirs {
		dirs = append(dirs, dir)
	}

	added := make(map[string]bool)
	for _, dir := range dirs {
		if added[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			fw.logger.Debug("not watching directory", "dir", dir, "error", err)
			continue
		}
		added[dir] = true
	}

	go fw.watch()
	return nil
}

// watch is the main watch loop.
func (fw *FileWatcher) watch() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			path, watched := fw.match(event.Name)
			if !watched {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.logger.Debug("watched file changed", "file", path)
				select {
				case fw.events <- ChangeEvent{Path: path}:
				default:
					// Channel full, a reload is already pending
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// match maps an event name to the path reported for it.
func (fw *FileWatcher) match(name string) (string, bool) {
	clean := filepath.Clean(name)
	if path, ok := fw.files[clean]; ok {
		return path, true
	}
	ext, ok := fw.dirs[filepath.Dir(clean)]
	if !ok || (ext != "" && filepath.Ext(clean) != ext) {
		return "", false
	}
	return clean, true
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return fw.watcher.Close()
	}

	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}
