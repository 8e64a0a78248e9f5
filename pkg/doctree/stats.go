package doctree

import (
	"slices"

	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

// LevelCount is one histogram bucket.
type LevelCount struct {
	Level jsonvalue.Value
	Count int
}

// Histogram counts how often each value appears under a "level" key.
// Values that denote the same JSON value (1 and 1.0) share a bucket; the
// first one seen is kept for display.
type Histogram struct {
	buckets map[string]*LevelCount
	total   int
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{buckets: make(map[string]*LevelCount)}
}

// Add counts one occurrence of level.
func (h *Histogram) Add(level jsonvalue.Value) {
	k := jsonvalue.Key(level)
	b, ok := h.buckets[k]
	if !ok {
		b = &LevelCount{Level: level}
		h.buckets[k] = b
	}
	b.Count++
	h.total++
}

// Len returns the number of distinct levels.
func (h *Histogram) Len() int { return len(h.buckets) }

// Total returns the number of counted occurrences across all levels.
func (h *Histogram) Total() int { return h.total }

// Count returns the occurrences recorded for level.
func (h *Histogram) Count(level jsonvalue.Value) int {
	if b, ok := h.buckets[jsonvalue.Key(level)]; ok {
		return b.Count
	}
	return 0
}

// Sorted returns the buckets in ascending level order (see [jsonvalue.Compare]).
func (h *Histogram) Sorted() []LevelCount {
	out := make([]LevelCount, 0, len(h.buckets))
	for _, b := range h.buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b LevelCount) int {
		return jsonvalue.Compare(a.Level, b.Level)
	})
	return out
}

// Range returns the smallest and largest level. ok is false when the
// histogram is empty.
func (h *Histogram) Range() (lo, hi jsonvalue.Value, ok bool) {
	sorted := h.Sorted()
	if len(sorted) == 0 {
		return jsonvalue.Value{}, jsonvalue.Value{}, false
	}
	return sorted[0].Level, sorted[len(sorted)-1].Level, true
}

// CollectLevels walks the whole document and counts every value stored under
// a key named "level", at any depth and regardless of whether the enclosing
// object is a node. Values are visited in document order (pre-order), so the
// first spelling of an equivalent level is the one displayed. The walk uses
// an explicit stack, so deeply nested input cannot exhaust the call stack.
func CollectLevels(doc jsonvalue.Value) *Histogram {
	h := NewHistogram()
	stack := []jsonvalue.Value{doc}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v.Kind() {
		case jsonvalue.Object:
			if level, ok := v.Get("level"); ok {
				h.Add(level)
			}
			members := v.Members()
			for i := len(members) - 1; i >= 0; i-- {
				if members[i].Value.IsContainer() {
					stack = append(stack, members[i].Value)
				}
			}
		case jsonvalue.Array:
			items := v.Items()
			for i := len(items) - 1; i >= 0; i-- {
				if items[i].IsContainer() {
					stack = append(stack, items[i])
				}
			}
		}
	}
	return h
}
