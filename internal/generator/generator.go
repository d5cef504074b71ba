package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/models"
)

// ErrUnknownCategory is returned for a category with no payload generator
var ErrUnknownCategory = errors.New("generator: unknown category")

// DefaultLowVitalChance is the share of health readings in the low band
const DefaultLowVitalChance = 0.10

// Factory synthesizes random life events. A Factory is not safe for
// concurrent use; the stream controller calls it under its own lock.
type Factory struct {
	rng        *rand.Rand
	clock      clock.Clock
	opts       Options
	weights    func() map[models.Category]float64
	categories map[models.Category]DetailsGenerator
	sequence   int64
}

// Config holds factory configuration
type Config struct {
	Seed int64

	// LowVitalChance overrides DefaultLowVitalChance when set. A zero
	// chance keeps every health reading in the normal band.
	LowVitalChance *float64

	// Weights returns the relative frequency of each category at the
	// moment of generation. Nil or an all-zero result means uniform.
	Weights func() map[models.Category]float64

	// Clock stamps events. Defaults to the real clock.
	Clock clock.Clock
}

// NewFactory creates a new event factory
func NewFactory(config Config) *Factory {
	source := rand.NewSource(config.Seed)

	opts := Options{LowVitalChance: DefaultLowVitalChance}
	if config.LowVitalChance != nil {
		opts.LowVitalChance = *config.LowVitalChance
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	return &Factory{
		rng:        rand.New(source),
		clock:      clk,
		opts:       opts,
		weights:    config.Weights,
		categories: GetAllCategories(),
	}
}

// Generate produces one event for a randomly chosen category
func (f *Factory) Generate() models.Event {
	category := f.pickCategory()
	return f.build(f.categories[category](f.rng, f.opts))
}

// GenerateCategory produces one event for the given category
func (f *Factory) GenerateCategory(category models.Category) (models.Event, error) {
	gen, ok := f.categories[category]
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return f.build(gen(f.rng, f.opts)), nil
}

// Build wraps caller-supplied details into an event, deriving status from
// the severity rules. It is the deterministic path used for injection.
func (f *Factory) Build(details models.Details) (models.Event, error) {
	if details == nil {
		return models.Event{}, fmt.Errorf("%w: nil details", ErrUnknownCategory)
	}
	if !details.Category().Valid() {
		return models.Event{}, fmt.Errorf("%w: %q", ErrUnknownCategory, details.Category())
	}
	return f.build(details), nil
}

func (f *Factory) build(details models.Details) models.Event {
	f.sequence++
	sources := models.Sources()
	source := sources[f.rng.Intn(len(sources))]

	return models.NewEvent(
		uuid.New().String(),
		f.sequence,
		f.clock.Now(),
		source,
		DeriveStatus(details),
		details,
	)
}

// pickCategory draws a category by weight, falling back to uniform
func (f *Factory) pickCategory() models.Category {
	all := models.Categories()

	var weights map[models.Category]float64
	if f.weights != nil {
		weights = f.weights()
	}

	total := 0.0
	for _, c := range all {
		if w := weights[c]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return all[f.rng.Intn(len(all))]
	}

	r := f.rng.Float64() * total
	cumulative := 0.0
	var last models.Category
	for _, c := range all {
		w := weights[c]
		if w <= 0 {
			continue
		}
		cumulative += w
		last = c
		if r < cumulative {
			return c
		}
	}
	return last
}

// Sequence returns the sequence number of the last event produced
func (f *Factory) Sequence() int64 {
	return f.sequence
}
