package otel

import (
	"maps"
	"strings"
	"sync"
)

// DefaultRingSize is the number of events the debug overlay keeps.
const DefaultRingSize = 1024

// RingBuffer keeps the most recent events of a session in memory. Safe for
// concurrent use.
type RingBuffer struct {
	mu     sync.Mutex
	events []Event
	pushed uint64 // total pushes; the next slot is pushed % len(events)
}

// NewRingBuffer creates a ring buffer holding size events, or
// DefaultRingSize when size is not positive.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{events: make([]Event, size)}
}

// Push stores e, evicting the oldest event when full. Extra is copied so
// later writes by the caller do not leak into the buffer.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		e.Extra = maps.Clone(e.Extra)
	}
	r.mu.Lock()
	r.events[r.pushed%uint64(len(r.events))] = e
	r.pushed++
	r.mu.Unlock()
}

// window returns the last n held events, oldest first. Caller holds mu.
func (r *RingBuffer) window(n int) []Event {
	if held := r.held(); n > held {
		n = held
	}
	if n <= 0 {
		return nil
	}
	out := make([]Event, n)
	size := uint64(len(r.events))
	first := r.pushed - uint64(n)
	for i := range out {
		out[i] = r.events[(first+uint64(i))%size]
	}
	return out
}

func (r *RingBuffer) held() int {
	if r.pushed < uint64(len(r.events)) {
		return int(r.pushed)
	}
	return len(r.events)
}

// Snapshot returns every held event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.window(len(r.events))
}

// Last returns the n most recent events, oldest first. n <= 0 returns nil.
func (r *RingBuffer) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.window(n)
}

// Len returns the number of held events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held()
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.events)
}

// Stats counts held events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, e := range r.Snapshot() {
		counts[e.Kind]++
	}
	return counts
}

// Matching returns held events whose kind starts with prefix, oldest
// first. An empty prefix matches everything.
func (r *RingBuffer) Matching(prefix string) []Event {
	var out []Event
	for _, e := range r.Snapshot() {
		if strings.HasPrefix(string(e.Kind), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Errors returns the number of held events that carry an error.
func (r *RingBuffer) Errors() int {
	n := 0
	for _, e := range r.Snapshot() {
		if e.Failed() {
			n++
		}
	}
	return n
}
