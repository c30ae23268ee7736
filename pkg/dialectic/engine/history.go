package engine

import (
	"sync"
	"time"
)

// Entry is one recorded transition.
type Entry struct {
	// Seq is the 1-based position in the log.
	Seq int `json:"seq"`

	// Op is the operation that produced State.
	Op Operation `json:"op"`

	// Params describes the operation arguments (e.g. "i=0 j=1", "depth=3").
	Params string `json:"params,omitempty"`

	// State is the resulting state.
	State State `json:"state"`

	// InvariantHeld is the invariant verdict for State.
	InvariantHeld bool `json:"invariant_held"`

	// RecordedAt is when the entry was appended.
	RecordedAt time.Time `json:"recorded_at"`
}

// History is an append-only provenance log of states. It is safe for
// concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// Append records a transition and returns the stored entry.
func (h *History) Append(op Operation, params string, state State, held bool) Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := Entry{
		Seq:           len(h.entries) + 1,
		Op:            op,
		Params:        params,
		State:         state,
		InvariantHeld: held,
		RecordedAt:    h.now(),
	}
	h.entries = append(h.entries, entry)
	return entry
}

// Entries returns a copy of all entries in append order.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Last returns the most recent entry.
func (h *History) Last() (Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Violations returns the entries whose state broke the invariant.
func (h *History) Violations() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Entry
	for _, e := range h.entries {
		if !e.InvariantHeld {
			out = append(out, e)
		}
	}
	return out
}
