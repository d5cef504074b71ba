// Package dispatch fans newly generated events out to in-process
// consumers such as the live printer and the session tally.
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/synheart/lifelog/internal/logger"
	"github.com/synheart/lifelog/internal/models"
)

// Dispatcher copies events from one source to multiple subscribers.
// A subscriber whose buffer is full misses the event rather than
// stalling the stream; misses are counted per subscriber and in total.
type Dispatcher struct {
	source       <-chan models.Event
	bufferSize   int
	mu           sync.Mutex
	subscribers  []*subscriber
	droppedTotal atomic.Int64
}

type subscriber struct {
	name    string
	ch      chan models.Event
	dropped atomic.Int64
}

// NewDispatcher creates a dispatcher reading from source. Every
// subscriber channel is buffered with bufferSize slots.
func NewDispatcher(source <-chan models.Event, bufferSize int) *Dispatcher {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Dispatcher{
		source:     source,
		bufferSize: bufferSize,
	}
}

// Subscribe returns a channel that receives copies of all source events.
// Subscribers should be added before Run so they see every event. The
// channel is closed when Run returns.
func (d *Dispatcher) Subscribe(name string) <-chan models.Event {
	sub := &subscriber{name: name, ch: make(chan models.Event, d.bufferSize)}
	d.mu.Lock()
	d.subscribers = append(d.subscribers, sub)
	d.mu.Unlock()
	return sub.ch
}

// GetSubscriberCount returns the current number of subscribers
func (d *Dispatcher) GetSubscriberCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subscribers)
}

// GetDroppedCount returns how many deliveries were dropped across all
// subscribers
func (d *Dispatcher) GetDroppedCount() int64 {
	return d.droppedTotal.Load()
}

// DroppedFor returns how many deliveries the named subscriber missed
func (d *Dispatcher) DroppedFor(name string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var n int64
	for _, sub := range d.subscribers {
		if sub.name == name {
			n += sub.dropped.Load()
		}
	}
	return n
}

// Run blocks until ctx is cancelled or source closes
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.closeSubscribers()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.source:
			if !ok {
				return
			}
			d.dispatch(ctx, event)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event models.Event) {
	d.mu.Lock()
	subs := d.subscribers
	d.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- event:
		case <-ctx.Done():
			return
		default:
			sub.dropped.Add(1)
			d.droppedTotal.Add(1)
			logger.Warn("Dispatcher: dropped event %d for %s (buffer full)", event.Sequence, sub.name)
		}
	}
}

func (d *Dispatcher) closeSubscribers() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sub := range d.subscribers {
		close(sub.ch)
	}
}
