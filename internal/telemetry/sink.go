// Package telemetry keeps a best-effort, in-process record of tool breaks.
// Nothing here is authoritative: the buffer resets on restart and writes
// never fail or block the caller.
package telemetry

import (
	"sync"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Filter narrows a query. Empty fields match everything.
type Filter struct {
	GuildID string
	UserID  string
}

func (f Filter) matches(ev domain.ToolBreakEvent) bool {
	if f.GuildID != "" && ev.GuildID != f.GuildID {
		return false
	}
	if f.UserID != "" && ev.UserID != f.UserID {
		return false
	}
	return true
}

// Sink records and queries tool break events
type Sink interface {
	Record(ev domain.ToolBreakEvent)
	Query(limit int, f Filter) []domain.ToolBreakEvent
}

// RingBuffer is a fixed-capacity Sink that overwrites its oldest event
type RingBuffer struct {
	mu     sync.RWMutex
	events []domain.ToolBreakEvent
	next   int
	full   bool
}

// NewRingBuffer creates a ring buffer. Non-positive capacity uses DefaultCapacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RingBuffer{events: make([]domain.ToolBreakEvent, capacity)}
}

// Record appends ev, evicting the oldest event when full
func (b *RingBuffer) Record(ev domain.ToolBreakEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[b.next] = ev
	b.next = (b.next + 1) % len(b.events)
	if b.next == 0 {
		b.full = true
	}
}

// Len returns the number of buffered events
func (b *RingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.full {
		return len(b.events)
	}
	return b.next
}

// Query returns up to limit matching events, newest first. A non-positive
// limit returns every match.
func (b *RingBuffer) Query(limit int, f Filter) []domain.ToolBreakEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()

	size := b.next
	if b.full {
		size = len(b.events)
	}
	out := make([]domain.ToolBreakEvent, 0, min(size, max(limit, 0)))
	for i := 1; i <= size; i++ {
		ev := b.events[(b.next-i+len(b.events))%len(b.events)]
		if !f.matches(ev) {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
