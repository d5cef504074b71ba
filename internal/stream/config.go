package stream

import (
	"fmt"
	"time"

	"github.com/synheart/lifelog/internal/buffer"
	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/stats"
)

// Config holds controller configuration
type Config struct {
	// Capacity is the maximum number of retained events.
	Capacity int

	// MinInterval and MaxInterval bound the random delay between
	// generated events; each delay is drawn uniformly from [min, max).
	MinInterval time.Duration
	MaxInterval time.Duration

	// HourlyReset is the period of the last-hour counter reset.
	HourlyReset time.Duration

	InitialWellness int
	WellnessStep    int

	// Seed drives inter-arrival delays and the wellness walk.
	Seed int64

	// Clock schedules both timers. Defaults to the real clock.
	Clock clock.Clock

	// Output, when set, receives a copy of every inserted event. Sends
	// never block; events are dropped when the channel is full.
	Output chan<- models.Event
}

// DefaultConfig returns the stock monitor configuration
func DefaultConfig() Config {
	return Config{
		Capacity:        buffer.DefaultCapacity,
		MinInterval:     800 * time.Millisecond,
		MaxInterval:     2000 * time.Millisecond,
		HourlyReset:     time.Hour,
		InitialWellness: stats.DefaultWellness,
		WellnessStep:    1,
		Seed:            time.Now().UnixNano(),
	}
}

// Validate checks that all configuration values are usable
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.MinInterval <= 0 {
		return fmt.Errorf("min interval must be positive, got %v", c.MinInterval)
	}
	if c.MaxInterval < c.MinInterval {
		return fmt.Errorf("max interval %v is below min interval %v", c.MaxInterval, c.MinInterval)
	}
	if c.HourlyReset <= 0 {
		return fmt.Errorf("hourly reset period must be positive, got %v", c.HourlyReset)
	}
	if c.InitialWellness < 0 || c.InitialWellness > 100 {
		return fmt.Errorf("initial wellness must be between 0 and 100, got %d", c.InitialWellness)
	}
	if c.WellnessStep < 1 {
		return fmt.Errorf("wellness step must be at least 1, got %d", c.WellnessStep)
	}
	return nil
}
