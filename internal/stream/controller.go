// Package stream drives the live event log: a generation timer with a
// random cadence feeds the bounded buffer and the aggregate counters,
// while an independent timer resets the last-hour window.
//
// All mutation happens under the controller's lock, either from a timer
// callback or from an explicit call, so readers between firings always
// see a consistent buffer and stats pair.
package stream

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/synheart/lifelog/internal/buffer"
	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/generator"
	"github.com/synheart/lifelog/internal/logger"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/query"
	"github.com/synheart/lifelog/internal/stats"
)

var (
	ErrNotStarted     = errors.New("stream: controller not started")
	ErrAlreadyStarted = errors.New("stream: controller already started")
	ErrDisposed       = errors.New("stream: controller disposed")
	ErrPaused         = errors.New("stream: controller paused")
)

// State is the controller lifecycle state
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// EventSource produces the next event on every generation tick
type EventSource interface {
	Generate() models.Event
}

// Controller owns one session's buffer and counters
type Controller struct {
	mu     sync.RWMutex
	config Config
	clock  clock.Clock
	rng    *rand.Rand
	source EventSource
	buffer *buffer.Buffer
	stats  *stats.Aggregator
	state  State

	// epoch invalidates generation callbacks that were already in
	// flight when the timer was stopped.
	epoch     uint64
	genTimer  *clock.Timer
	hourTimer *clock.Timer
	dropped   int64
}

// NewController creates a controller in the idle state
func NewController(config Config, source EventSource) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stream config: %w", err)
	}
	if source == nil {
		return nil, errors.New("invalid stream config: nil event source")
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	rng := rand.New(rand.NewSource(config.Seed))

	return &Controller{
		config: config,
		clock:  clk,
		rng:    rng,
		source: source,
		buffer: buffer.New(config.Capacity),
		stats:  stats.New(config.InitialWellness, config.WellnessStep, rng),
		state:  StateIdle,
	}, nil
}

// Start arms both timers and enters the running state
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateDisposed:
		return ErrDisposed
	case StateRunning, StatePaused:
		return ErrAlreadyStarted
	}

	c.state = StateRunning
	c.scheduleHourLocked()
	c.scheduleNextLocked()
	logger.Info("Stream started (capacity %d, interval %v-%v)", c.config.Capacity, c.config.MinInterval, c.config.MaxInterval)
	return nil
}

// Pause suspends generation. Pausing a paused controller is a no-op.
// The hourly reset keeps running.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		return ErrNotStarted
	case StateDisposed:
		return ErrDisposed
	case StatePaused:
		return nil
	}

	c.stopGenerationLocked()
	c.state = StatePaused
	logger.Info("Stream paused (%d buffered)", c.buffer.Len())
	return nil
}

// Resume restarts generation with a freshly sampled delay. Resuming a
// running controller is a no-op.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		return ErrNotStarted
	case StateDisposed:
		return ErrDisposed
	case StateRunning:
		return nil
	}

	c.state = StateRunning
	c.scheduleNextLocked()
	logger.Info("Stream resumed")
	return nil
}

// Clear empties the buffer and resets the session counters without
// changing the running or paused state.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return ErrDisposed
	}

	c.buffer.Clear()
	c.stats.OnClear()
	logger.Info("Stream cleared")
	return nil
}

// Dispose cancels both timers. No mutation happens after Dispose
// returns. Disposing twice is a no-op.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return
	}

	c.stopGenerationLocked()
	if c.hourTimer != nil {
		c.hourTimer.Stop()
		c.hourTimer = nil
	}
	c.state = StateDisposed
	logger.Info("Stream disposed (%d events generated, %d dropped)", c.stats.Snapshot().Total, c.dropped)
}

// Inject inserts event through the same path a generation tick uses.
// It is refused while paused, because the buffer is frozen then. When the
// event carries details, its category and status are re-derived from them
// so counters never disagree with the payload; an error status is kept.
func (c *Controller) Inject(event models.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		return ErrNotStarted
	case StateDisposed:
		return ErrDisposed
	case StatePaused:
		return ErrPaused
	}

	if event.Details != nil {
		event.Category = event.Details.Category()
		if event.Status != models.StatusError {
			event.Status = generator.DeriveStatus(event.Details)
		}
	}
	c.insertLocked(event)
	return nil
}

// Stats returns the current aggregate counters
func (c *Controller) Stats() models.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats.Snapshot()
}

// Snapshot returns every buffered event, newest first
func (c *Controller) Snapshot() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffer.Snapshot()
}

// Events returns the buffered events matching f, newest first
func (c *Controller) Events(f query.Filter) []models.Event {
	return query.Apply(c.Snapshot(), f)
}

// Summary counts the buffered events matching f
func (c *Controller) Summary(f query.Filter) query.Summary {
	return query.Summarize(c.Events(f))
}

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dropped returns how many events could not be delivered to Output
func (c *Controller) Dropped() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dropped
}

func (c *Controller) insertLocked(event models.Event) {
	c.buffer.Insert(event)
	c.stats.OnEvent(event)
	logger.Debug("Event %d %s/%s: %s", event.Sequence, event.Category, event.Status, event.Message)

	if c.config.Output == nil {
		return
	}
	select {
	case c.config.Output <- event:
	default:
		c.dropped++
		logger.Warn("Stream: dropped event %s (output full)", event.ID)
	}
}

// nextDelay draws the inter-arrival delay from [MinInterval, MaxInterval)
func (c *Controller) nextDelay() time.Duration {
	span := c.config.MaxInterval - c.config.MinInterval
	if span <= 0 {
		return c.config.MinInterval
	}
	return c.config.MinInterval + time.Duration(c.rng.Int63n(int64(span)))
}

func (c *Controller) scheduleNextLocked() {
	c.epoch++
	epoch := c.epoch
	c.genTimer = c.clock.AfterFunc(c.nextDelay(), func() {
		c.onGenerate(epoch)
	})
}

func (c *Controller) stopGenerationLocked() {
	c.epoch++
	if c.genTimer != nil {
		c.genTimer.Stop()
		c.genTimer = nil
	}
}

func (c *Controller) onGenerate(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || epoch != c.epoch {
		return
	}
	c.insertLocked(c.source.Generate())
	c.scheduleNextLocked()
}

func (c *Controller) scheduleHourLocked() {
	c.hourTimer = c.clock.AfterFunc(c.config.HourlyReset, c.onHourTick)
}

func (c *Controller) onHourTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return
	}
	c.stats.OnHourTick()
	c.scheduleHourLocked()
	logger.Debug("Stream: last-hour window reset")
}
