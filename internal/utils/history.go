package utils

import (
	"sync"
)

const HISTORY_INITIAL_CAPACITY = 16

// History is an append-only log. Entries can be read back as copies but
// never edited or removed.
type History[T any] struct {
	entries     []T
	entriesLock sync.Mutex
}

func NewHistory[T any]() *History[T] {
	return &History[T]{
		entries: make([]T, 0, HISTORY_INITIAL_CAPACITY),
	}
}

// AppendWith builds the next entry from its 1-based sequence number and
// appends it in one step.
func (h *History[T]) AppendWith(build func(seq int) T) T {
	h.entriesLock.Lock()
	defer h.entriesLock.Unlock()

	entry := build(len(h.entries) + 1)
	h.entries = append(h.entries, entry)
	return entry
}

func (h *History[T]) Len() int {
	h.entriesLock.Lock()
	defer h.entriesLock.Unlock()
	return len(h.entries)
}

func (h *History[T]) Snapshot() []T {
	h.entriesLock.Lock()
	defer h.entriesLock.Unlock()

	return append([]T(nil), h.entries...)
}
