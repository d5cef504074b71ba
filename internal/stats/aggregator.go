// Package stats keeps the running counters shown alongside the event log.
package stats

import (
	"math/rand"

	"github.com/synheart/lifelog/internal/models"
)

// DefaultWellness is the wellness score a fresh session starts at
const DefaultWellness = 82

// Aggregator maintains lifetime counters independent of buffer eviction.
// It is not safe for concurrent use.
type Aggregator struct {
	rng   *rand.Rand
	step  int
	stats models.Stats
}

// New creates an aggregator whose wellness score starts at wellness and
// random-walks by step on every event.
func New(wellness, step int, rng *rand.Rand) *Aggregator {
	if step <= 0 {
		step = 1
	}
	return &Aggregator{
		rng:   rng,
		step:  step,
		stats: models.Stats{WellnessScore: clamp(wellness, 0, 100)},
	}
}

// OnEvent counts event and moves the wellness score
func (a *Aggregator) OnEvent(event models.Event) {
	a.stats.Total++
	a.stats.LastHour++
	switch event.Status {
	case models.StatusWarning:
		a.stats.Warnings++
	case models.StatusError:
		a.stats.Errors++
	}

	delta := -a.step
	if a.rng.Float64() > 0.5 {
		delta = a.step
	}
	a.stats.WellnessScore = clamp(a.stats.WellnessScore+delta, 0, 100)
}

// OnHourTick starts a new last-hour window
func (a *Aggregator) OnHourTick() {
	a.stats.LastHour = 0
}

// OnClear resets the session counters. Wellness and the last-hour window
// are continuous signals and survive a clear.
func (a *Aggregator) OnClear() {
	a.stats.Total = 0
	a.stats.Warnings = 0
	a.stats.Errors = 0
}

// Snapshot returns a copy of the current counters
func (a *Aggregator) Snapshot() models.Stats {
	return a.stats
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
