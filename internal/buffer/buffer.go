// Package buffer keeps the most recent events in a fixed-size ring.
package buffer

import "github.com/synheart/lifelog/internal/models"

// DefaultCapacity is used when a non-positive capacity is requested
const DefaultCapacity = 200

// Buffer is a bounded, newest-first store of events. Inserting into a
// full buffer overwrites the oldest slot. Buffer is not safe for
// concurrent use; its owner serializes access.
type Buffer struct {
	events   []models.Event
	head     int // next write position
	size     int
	capacity int
}

// New creates a buffer holding at most capacity events
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		events:   make([]models.Event, capacity),
		capacity: capacity,
	}
}

// Insert adds event as the newest entry, evicting the oldest when full.
// It reports whether an event was evicted.
func (b *Buffer) Insert(event models.Event) bool {
	evicted := b.size == b.capacity
	b.events[b.head] = event
	b.head = (b.head + 1) % b.capacity
	if !evicted {
		b.size++
	}
	return evicted
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	clear(b.events)
	b.head = 0
	b.size = 0
}

// Snapshot returns a copy of the buffered events, newest first
func (b *Buffer) Snapshot() []models.Event {
	out := make([]models.Event, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.events[(b.head-1-i+b.capacity)%b.capacity]
	}
	return out
}

// Len returns the number of buffered events
func (b *Buffer) Len() int {
	return b.size
}

// Cap returns the maximum number of buffered events
func (b *Buffer) Cap() int {
	return b.capacity
}
