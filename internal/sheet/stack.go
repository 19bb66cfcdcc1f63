package sheet

import (
	"log/slog"
	"sync"
	"time"
)

// Layer is the read-only projection of one entry for a presentation layer.
// Only the layer with Top set is interactive; the rest are covered.
type Layer struct {
	ID       string    `json:"id" yaml:"id"`
	Index    int       `json:"index" yaml:"index"`
	Content  any       `json:"content" yaml:"content"`
	Options  Options   `json:"options" yaml:"options"`
	Baseline Options   `json:"baseline" yaml:"baseline"`
	Top      bool      `json:"top" yaml:"top"`
	PushedAt time.Time `json:"pushed_at" yaml:"pushed_at"`
}

// Covered reports whether the layer sits below the top.
func (l Layer) Covered() bool { return !l.Top }

// Stack is the ordered set of active sheets. Index 0 is the bottom; the last
// entry is topmost. All methods are safe for concurrent use and are applied
// in call order.
type Stack struct {
	mu      sync.RWMutex
	entries []Entry
	logger  *slog.Logger
	now     func() time.Time
}

// NewStack creates an empty stack.
func NewStack(logger *slog.Logger) *Stack {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stack{
		logger: logger,
		now:    time.Now,
	}
}

// Push puts content on top of the stack with opts merged over the defaults.
// If the stack is not empty, cover is merged into the options of the entry
// being covered. Push always succeeds and returns the new entry.
func (s *Stack) Push(content any, opts Partial, cover Partial) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newEntry(content, opts, s.now())
	s.entries = push(s.entries, e, cover)

	s.logger.Debug("sheet pushed",
		"id", e.id,
		"depth", len(s.entries),
		"placement", e.current.Placement,
		"size", e.current.Size,
		"cover", !cover.IsZero(),
	)
	return e
}

// Pop removes the top entry and restores the newly exposed entry to its
// baseline options. A stack with one entry is cleared; popping an empty stack
// is a no-op. The removed entry is returned with ok set when there was one.
func (s *Stack) Pop() (removed Entry, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries, removed, ok = pop(s.entries)
	if ok {
		s.logger.Debug("sheet popped", "id", removed.id, "depth", len(s.entries))
	}
	return removed, ok
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Showing reports whether any sheet is on the stack.
func (s *Stack) Showing() bool {
	return s.Len() > 0
}

// Top returns the topmost entry.
func (s *Stack) Top() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Entries returns a copy of the entries, bottom first.
func (s *Stack) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Layers returns the projection a presentation layer renders, bottom first.
func (s *Stack) Layers() []Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layers := make([]Layer, len(s.entries))
	for i, e := range s.entries {
		layers[i] = Layer{
			ID:       e.id,
			Index:    i,
			Content:  e.content,
			Options:  e.current,
			Baseline: e.baseline,
			Top:      i == len(s.entries)-1,
			PushedAt: e.pushedAt,
		}
	}
	return layers
}

// push returns a new slice with e appended and the previous top covered.
// The input slice is never modified.
func push(entries []Entry, e Entry, cover Partial) []Entry {
	next := make([]Entry, len(entries), len(entries)+1)
	copy(next, entries)
	if n := len(next); n > 0 {
		next[n-1] = next[n-1].cover(cover)
	}
	return append(next, e)
}

// pop returns a new slice without the top entry and with the exposed entry
// reset to its baseline. Fewer than two entries collapse to an empty stack.
func pop(entries []Entry) ([]Entry, Entry, bool) {
	switch n := len(entries); n {
	case 0:
		return nil, Entry{}, false
	case 1:
		return nil, entries[0], true
	default:
		next := make([]Entry, n-1)
		copy(next, entries[:n-1])
		next[n-2] = next[n-2].expose()
		return next, entries[n-1], true
	}
}
