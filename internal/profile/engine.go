package profile

import (
	"sync"
	"time"

	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/models"
)

// Engine tracks a session's progression through a profile's phases
type Engine struct {
	profile *Profile
	clock   clock.Clock
	base    map[models.Category]float64
	phases  []phaseWeights

	mu        sync.RWMutex
	startTime time.Time
}

type phaseWeights struct {
	phase     *Phase
	length    time.Duration
	unlimited bool
	weights   map[models.Category]float64
}

// NewEngine validates p and starts its phase timeline at clk.Now()
func NewEngine(p *Profile, clk clock.Clock) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.Real()
	}

	base, _ := parseWeights(p.Weights)
	phases := make([]phaseWeights, len(p.Phases))
	for i := range p.Phases {
		length, unlimited, _ := ParseDuration(p.Phases[i].Duration)
		weights, _ := parseWeights(p.Phases[i].Weights)
		phases[i] = phaseWeights{
			phase:     &p.Phases[i],
			length:    length,
			unlimited: unlimited,
			weights:   weights,
		}
	}

	return &Engine{
		profile:   p,
		clock:     clk,
		base:      base,
		phases:    phases,
		startTime: clk.Now(),
	}, nil
}

// GetElapsed returns the time elapsed since the session started
func (e *Engine) GetElapsed() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clock.Now().Sub(e.startTime)
}

// GetCurrentPhase returns the active phase, or nil for a profile
// without phases. Past the last phase, the last phase stays active.
func (e *Engine) GetCurrentPhase() *Phase {
	if pw := e.current(e.GetElapsed()); pw != nil {
		return pw.phase
	}
	return nil
}

// Weights returns the category weights in effect right now. The result
// is a fresh map; it plugs into generator.Config.Weights.
func (e *Engine) Weights() map[models.Category]float64 {
	weights := make(map[models.Category]float64, len(models.Categories()))
	for c, w := range e.base {
		weights[c] = w
	}
	if pw := e.current(e.GetElapsed()); pw != nil {
		for c, w := range pw.weights {
			weights[c] = w
		}
	}
	return weights
}

// IsComplete returns true once a limited session has run its length
func (e *Engine) IsComplete() bool {
	length, unlimited := e.profile.SessionLength()
	if unlimited {
		return false
	}
	return e.GetElapsed() >= length
}

// Reset restarts the phase timeline
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startTime = e.clock.Now()
}

func (e *Engine) current(elapsed time.Duration) *phaseWeights {
	if len(e.phases) == 0 {
		return nil
	}

	var offset time.Duration
	for i := range e.phases {
		pw := &e.phases[i]
		if pw.unlimited || elapsed < offset+pw.length {
			return pw
		}
		offset += pw.length
	}
	return &e.phases[len(e.phases)-1]
}
