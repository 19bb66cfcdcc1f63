package sheet

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Entry is one sheet in the stack. The baseline options are fixed when the
// entry is pushed; the current options differ from them only while the entry
// is covered.
type Entry struct {
	id       string
	content  any
	baseline Options
	current  Options
	pushedAt time.Time
}

// newEntry wraps content with the defaults merged under opts.
func newEntry(content any, opts Partial, now time.Time) Entry {
	baseline := DefaultOptions().Merge(opts)
	return Entry{
		id:       ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		content:  content,
		baseline: baseline,
		current:  baseline,
		pushedAt: now,
	}
}

// ID returns the entry's ULID. It is unique per push and suitable as a
// presentation key.
func (e Entry) ID() string { return e.id }

// Content returns the opaque payload the entry was pushed with.
func (e Entry) Content() any { return e.content }

// Baseline returns the options the entry was pushed with.
func (e Entry) Baseline() Options { return e.baseline }

// Current returns the options in effect now.
func (e Entry) Current() Options { return e.current }

// PushedAt returns when the entry was pushed.
func (e Entry) PushedAt() time.Time { return e.pushedAt }

// Overridden reports whether the current options differ from the baseline.
func (e Entry) Overridden() bool { return e.current != e.baseline }

// cover returns e with the cover override merged into its current options.
func (e Entry) cover(override Partial) Entry {
	e.current = e.current.Merge(override)
	return e
}

// expose returns e with its current options reset to the baseline.
func (e Entry) expose() Entry {
	e.current = e.baseline
	return e
}
