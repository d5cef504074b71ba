// Package profile describes how a monitoring session generates events:
// timing knobs, category weights and time-boxed phases that shift the
// weights while the session runs.
package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/stream"
)

// ErrNotFound is returned by Registry.Get for an unknown profile name
var ErrNotFound = errors.New("profile: not found")

// Profile defines a generation profile loaded from YAML
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"` // e.g. "30m", "unlimited"

	BufferCapacity  int      `yaml:"buffer_capacity,omitempty"`
	MinInterval     string   `yaml:"min_interval,omitempty"` // e.g. "800ms"
	MaxInterval     string   `yaml:"max_interval,omitempty"`
	HourlyReset     string   `yaml:"hourly_reset,omitempty"`
	InitialWellness *int     `yaml:"initial_wellness,omitempty"`
	LowVitalChance  *float64 `yaml:"low_vital_chance,omitempty"`

	// Weights maps category names to relative frequencies. Categories
	// left out never appear unless a phase weights them.
	Weights map[string]float64 `yaml:"weights"`
	Phases  []Phase            `yaml:"phases"`
}

// Phase is a time-bounded stage whose weights replace the base weights
// for the categories it names
type Phase struct {
	Name     string             `yaml:"name"`
	Duration string             `yaml:"duration"`
	Weights  map[string]float64 `yaml:"weights,omitempty"`
}

// ParseDuration parses duration strings like "8m", "30s" or "unlimited".
// An empty string is unlimited.
func ParseDuration(s string) (time.Duration, bool, error) {
	if s == "unlimited" || s == "" {
		return 0, true, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, false, fmt.Errorf("duration %q must be positive", s)
	}
	return d, false, nil
}

// Validate checks every duration, knob and category name in the profile
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if _, _, err := ParseDuration(p.Duration); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if c := p.LowVitalChance; c != nil && (*c < 0 || *c > 1) {
		return fmt.Errorf("profile %s: low_vital_chance must be between 0 and 1, got %v", p.Name, *c)
	}
	if _, err := parseWeights(p.Weights); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}

	for i, phase := range p.Phases {
		if _, _, err := ParseDuration(phase.Duration); err != nil {
			return fmt.Errorf("profile %s phase %d (%s): %w", p.Name, i, phase.Name, err)
		}
		if _, err := parseWeights(phase.Weights); err != nil {
			return fmt.Errorf("profile %s phase %d (%s): %w", p.Name, i, phase.Name, err)
		}
	}

	if _, err := p.StreamConfig(stream.DefaultConfig()); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}

// StreamConfig applies the profile's knobs on top of base. Knobs the
// profile leaves empty keep the base value.
func (p *Profile) StreamConfig(base stream.Config) (stream.Config, error) {
	config := base
	if p.BufferCapacity != 0 {
		config.Capacity = p.BufferCapacity
	}
	if p.InitialWellness != nil {
		config.InitialWellness = *p.InitialWellness
	}

	durations := []struct {
		value string
		field *time.Duration
	}{
		{p.MinInterval, &config.MinInterval},
		{p.MaxInterval, &config.MaxInterval},
		{p.HourlyReset, &config.HourlyReset},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, unlimited, err := ParseDuration(d.value)
		if err != nil {
			return base, err
		}
		if unlimited {
			return base, fmt.Errorf("interval %q cannot be unlimited", d.value)
		}
		*d.field = parsed
	}

	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

// SessionLength returns how long a session under this profile runs.
// The boolean is true for an unlimited session.
func (p *Profile) SessionLength() (time.Duration, bool) {
	d, unlimited, err := ParseDuration(p.Duration)
	if err != nil {
		return 0, true
	}
	return d, unlimited
}

func parseWeights(raw map[string]float64) (map[models.Category]float64, error) {
	weights := make(map[models.Category]float64, len(raw))
	for name, w := range raw {
		category, err := models.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("weight for %s must not be negative, got %v", category, w)
		}
		weights[category] = w
	}
	return weights, nil
}
