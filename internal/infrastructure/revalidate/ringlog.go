package revalidate

import (
	"sync"
	"time"
)

// RingLog is a bounded in-memory diagnostic log of the most recent warming
// attempts. It is injected where needed rather than held as a package-level
// singleton, so tests stay isolated and a restart simply starts empty.
type RingLog struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	size    int
}

type Entry struct {
	Time     time.Time `json:"time"`
	Path     string    `json:"path"`
	Attempts int       `json:"attempts"`
	Success  bool      `json:"success"`
	Detail   string    `json:"detail,omitempty"`
}

func NewRingLog(capacity int) *RingLog {
	if capacity <= 0 {
		capacity = 10
	}
	return &RingLog{
		entries: make([]Entry, capacity),
	}
}

func (r *RingLog) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.size < len(r.entries) {
		r.size++
	}
}

// Entries returns the stored entries, newest first.
func (r *RingLog) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, r.size)
	for i := 0; i < r.size; i++ {
		idx := (r.next - 1 - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}
