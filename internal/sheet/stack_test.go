package sheet

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack() *Stack {
	s := NewStack(nil)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func contents(s *Stack) []any {
	layers := s.Layers()
	out := make([]any, len(layers))
	for i, l := range layers {
		out[i] = l.Content
	}
	return out
}

func TestNewStack(t *testing.T) {
	s := NewStack(nil)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Showing())

	_, ok := s.Top()
	assert.False(t, ok)
	assert.Empty(t, s.Layers())
}

func TestStack_PushGrowsByOne(t *testing.T) {
	s := newTestStack()
	for i := 1; i <= 5; i++ {
		s.Push(i, Partial{}, Partial{}.WithSize(10))
		assert.Equal(t, i, s.Len())
	}
	assert.True(t, s.Showing())
}

func TestStack_PopShrinksByOneOrClears(t *testing.T) {
	s := newTestStack()
	for i := 0; i < 3; i++ {
		s.Push(i, Partial{}, Partial{})
	}

	for want := 2; want >= 0; want-- {
		_, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, s.Len())
	}

	_, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStack_PopEmptyIsNoop(t *testing.T) {
	s := newTestStack()

	removed, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, Entry{}, removed)
	assert.Empty(t, s.Entries())
	assert.False(t, s.Showing())
}

func TestStack_BaselineRestoredOnPop(t *testing.T) {
	s := newTestStack()

	s.Push("A", Options{Placement: PlacementRight, Size: 50}.Full(), Partial{})
	s.Push("B", Options{Placement: PlacementBottom, Size: 30}.Full(), Partial{}.WithSize(20))

	// A is covered by B and carries the override.
	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Options{Placement: PlacementRight, Size: 20}, entries[0].Current())
	assert.Equal(t, Options{Placement: PlacementRight, Size: 50}, entries[0].Baseline())
	assert.True(t, entries[0].Overridden())
	assert.Equal(t, Options{Placement: PlacementBottom, Size: 30}, entries[1].Current())

	removed, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "B", removed.Content())

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, "A", top.Content())
	assert.Equal(t, Options{Placement: PlacementRight, Size: 50}, top.Current())
	assert.False(t, top.Overridden())
}

func TestStack_DefaultOptions(t *testing.T) {
	s := newTestStack()
	e := s.Push("X", Partial{}, Partial{})

	assert.Equal(t, Options{Placement: PlacementRight, Size: 50}, e.Current())
	assert.Equal(t, e.Current(), e.Baseline())
}

func TestStack_PartialOptionsMergeOverDefaults(t *testing.T) {
	s := newTestStack()
	e := s.Push("X", Partial{}.WithSize(80), Partial{})

	assert.Equal(t, Options{Placement: PlacementRight, Size: 80}, e.Current())
}

func TestStack_OrderPreserved(t *testing.T) {
	s := newTestStack()
	s.Push("A", Partial{}, Partial{})
	s.Push("B", Partial{}, Partial{})
	s.Push("C", Partial{}, Partial{})

	assert.Equal(t, []any{"A", "B", "C"}, contents(s))
	layers := s.Layers()
	assert.True(t, layers[2].Top)
	assert.True(t, layers[0].Covered())
	assert.True(t, layers[1].Covered())

	s.Pop()
	assert.Equal(t, []any{"A", "B"}, contents(s))
	top, _ := s.Top()
	assert.Equal(t, "B", top.Content())
	assert.True(t, s.Layers()[1].Top)
}

func TestStack_SingleEntryPopClears(t *testing.T) {
	s := newTestStack()
	s.Push("only", Partial{}.WithPlacement(PlacementLeft), Partial{})

	removed, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "only", removed.Content())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, NewStack(nil).Layers(), s.Layers())
}

func TestStack_CoverOnEmptyStackIgnored(t *testing.T) {
	s := newTestStack()
	e := s.Push("A", Partial{}, Partial{}.WithSize(5).WithPlacement(PlacementTop))

	assert.Equal(t, DefaultOptions(), e.Current())
}

func TestStack_CoverMergesIntoCurrent(t *testing.T) {
	s := newTestStack()
	s.Push("A", Partial{}.WithSize(60), Partial{})
	s.Push("B", Partial{}, Partial{}.WithPlacement(PlacementLeft))

	a := s.Entries()[0]
	// Size is absent from the cover and keeps its current value.
	assert.Equal(t, Options{Placement: PlacementLeft, Size: 60}, a.Current())
}

func TestStack_OverrideIsSingleLevel(t *testing.T) {
	s := newTestStack()
	s.Push("A", Partial{}, Partial{})
	s.Push("B", Partial{}, Partial{}.WithSize(20))
	s.Push("C", Partial{}, Partial{}.WithSize(10))

	entries := s.Entries()
	// A keeps the override from B's push; C's push only touches B.
	assert.Equal(t, 20.0, entries[0].Current().Size)
	assert.Equal(t, 10.0, entries[1].Current().Size)

	s.Pop()
	entries = s.Entries()
	assert.Equal(t, 20.0, entries[0].Current().Size, "A is still covered")
	assert.Equal(t, 50.0, entries[1].Current().Size, "B restored to baseline")

	s.Pop()
	top, _ := s.Top()
	assert.Equal(t, "A", top.Content())
	assert.Equal(t, 50.0, top.Current().Size)
}

func TestStack_ChainedOverridesCollapseToBaseline(t *testing.T) {
	s := newTestStack()
	s.Push("A", Partial{}.WithSize(40), Partial{})
	s.Push("B", Partial{}, Partial{}.WithSize(30))
	s.Pop()
	s.Push("C", Partial{}, Partial{}.WithPlacement(PlacementBottom))

	a := s.Entries()[0]
	assert.Equal(t, Options{Placement: PlacementBottom, Size: 40}, a.Current())

	s.Pop()
	a = s.Entries()[0]
	assert.Equal(t, Options{Placement: PlacementRight, Size: 40}, a.Current())
}

func TestStack_SnapshotsDoNotAlias(t *testing.T) {
	s := newTestStack()
	s.Push("A", Partial{}, Partial{})

	before := s.Entries()
	s.Push("B", Partial{}, Partial{}.WithSize(15))

	assert.Equal(t, 50.0, before[0].Current().Size)
	assert.Equal(t, 15.0, s.Entries()[0].Current().Size)
}

func TestStack_EntryIDsUnique(t *testing.T) {
	s := newTestStack()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		e := s.Push(i, Partial{}, Partial{})
		require.Len(t, e.ID(), 26)
		assert.False(t, seen[e.ID()], "duplicate id %s", e.ID())
		seen[e.ID()] = true
	}
}

func TestStack_LayersProjection(t *testing.T) {
	s := newTestStack()
	a := s.Push("A", Partial{}, Partial{})
	b := s.Push("B", Partial{}.WithPlacement(PlacementTop).WithSize(25), Partial{}.WithSize(35))

	layers := s.Layers()
	require.Len(t, layers, 2)

	assert.Equal(t, a.ID(), layers[0].ID)
	assert.Equal(t, 0, layers[0].Index)
	assert.Equal(t, Options{Placement: PlacementRight, Size: 35}, layers[0].Options)
	assert.Equal(t, DefaultOptions(), layers[0].Baseline)
	assert.False(t, layers[0].Top)

	assert.Equal(t, b.ID(), layers[1].ID)
	assert.Equal(t, Options{Placement: PlacementTop, Size: 25}, layers[1].Options)
	assert.True(t, layers[1].Top)
	assert.True(t, layers[1].PushedAt.After(layers[0].PushedAt))
}

func TestStack_ConcurrentPushPop(t *testing.T) {
	s := NewStack(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Push(i, Partial{}, Partial{}.WithSize(10))
			_ = s.Layers()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())

	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Pop()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
