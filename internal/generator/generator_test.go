package generator

import (
	"errors"
	"testing"
	"time"

	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/models"
)

func newTestFactory(seed int64) *Factory {
	return NewFactory(Config{
		Seed:  seed,
		Clock: clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestGenerateCategoryFieldContract(t *testing.T) {
	f := newTestFactory(42)

	for _, category := range models.Categories() {
		for i := 0; i < 200; i++ {
			event, err := f.GenerateCategory(category)
			if err != nil {
				t.Fatalf("GenerateCategory(%s): %v", category, err)
			}
			if event.Category != category {
				t.Fatalf("expected category %s, got %s", category, event.Category)
			}
			if event.Details == nil || event.Details.Category() != category {
				t.Fatalf("%s: details do not match category: %#v", category, event.Details)
			}
			if event.Message == "" {
				t.Errorf("%s: empty message", category)
			}
			if event.ID == "" {
				t.Errorf("%s: empty id", category)
			}
			for _, field := range event.Details.Fields() {
				if field.Value == "" {
					t.Errorf("%s: field %s is empty", category, field.Key)
				}
			}
			if got := DeriveStatus(event.Details); got != event.Status {
				t.Errorf("%s: status %s inconsistent with derived %s", category, event.Status, got)
			}
		}
	}
}

func TestGeneratedValueRanges(t *testing.T) {
	f := newTestFactory(7)

	for i := 0; i < 500; i++ {
		event, _ := f.GenerateCategory(models.CategoryMental)
		d := event.Details.(models.MentalDetails)
		if d.StressLevel < 1 || d.StressLevel > 10 {
			t.Fatalf("stress level out of range: %d", d.StressLevel)
		}

		event, _ = f.GenerateCategory(models.CategoryHealth)
		h := event.Details.(models.HealthDetails)
		if h.Low != (h.Status == models.VitalConcerning) {
			t.Fatalf("low reading and vital status disagree: %+v", h)
		}
		if h.Low && (h.Value < 50 || h.Value >= 90) {
			t.Fatalf("low reading out of band: %d", h.Value)
		}
		if !h.Low && (h.Value < 70 || h.Value >= 110) {
			t.Fatalf("normal reading out of band: %d", h.Value)
		}
	}
}

func TestGenerateCategoryUnknown(t *testing.T) {
	f := newTestFactory(1)

	_, err := f.GenerateCategory(models.Category("System"))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}

	_, err = f.Build(nil)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory for nil details, got %v", err)
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		details  models.Details
		expected models.Status
	}{
		{"poor sleep", models.SleepDetails{Quality: models.SleepPoor}, models.StatusWarning},
		{"fair sleep", models.SleepDetails{Quality: models.SleepFair}, models.StatusInfo},
		{"good sleep", models.SleepDetails{Quality: models.SleepGood}, models.StatusInfo},
		{"excellent sleep", models.SleepDetails{Quality: models.SleepExcellent}, models.StatusSuccess},
		{"high stress", models.MentalDetails{StressLevel: 9}, models.StatusWarning},
		{"threshold stress", models.MentalDetails{StressLevel: 7}, models.StatusInfo},
		{"low stress", models.MentalDetails{StressLevel: 3}, models.StatusInfo},
		{"low vital", models.HealthDetails{Low: true, Status: models.VitalConcerning}, models.StatusWarning},
		{"normal vital", models.HealthDetails{Status: models.VitalNormal}, models.StatusSuccess},
		{"fitness", models.FitnessDetails{}, models.StatusSuccess},
		{"nutrition", models.NutritionDetails{}, models.StatusInfo},
		{"social", models.SocialDetails{}, models.StatusInfo},
		{"productivity", models.ProductivityDetails{}, models.StatusInfo},
		{"environment", models.EnvironmentDetails{}, models.StatusInfo},
	}

	for _, test := range tests {
		if got := DeriveStatus(test.details); got != test.expected {
			t.Errorf("%s: expected %s, got %s", test.name, test.expected, got)
		}
	}
}

func TestBuildDerivesStatus(t *testing.T) {
	f := newTestFactory(3)

	event, err := f.Build(models.SleepDetails{DurationMin: 300, Quality: models.SleepPoor})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if event.Status != models.StatusWarning {
		t.Errorf("expected warning for poor sleep, got %s", event.Status)
	}
	if event.Category != models.CategorySleep {
		t.Errorf("expected Sleep category, got %s", event.Category)
	}
}

func TestSequenceIsMonotonic(t *testing.T) {
	f := newTestFactory(5)
	seen := make(map[string]bool)

	var last int64
	for i := 0; i < 100; i++ {
		event := f.Generate()
		if event.Sequence <= last {
			t.Fatalf("sequence went from %d to %d", last, event.Sequence)
		}
		last = event.Sequence
		if seen[event.ID] {
			t.Fatalf("duplicate id %s", event.ID)
		}
		seen[event.ID] = true
	}
	if f.Sequence() != 100 {
		t.Errorf("expected sequence 100, got %d", f.Sequence())
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := newTestFactory(99)
	b := newTestFactory(99)

	for i := 0; i < 50; i++ {
		ea, eb := a.Generate(), b.Generate()
		if ea.Category != eb.Category || ea.Source != eb.Source || ea.Status != eb.Status {
			t.Fatalf("event %d differs for equal seeds: %+v vs %+v", i, ea, eb)
		}
		if ea.Details != eb.Details {
			t.Fatalf("event %d details differ: %+v vs %+v", i, ea.Details, eb.Details)
		}
	}
}

func TestWeightsSteerCategory(t *testing.T) {
	f := NewFactory(Config{
		Seed: 11,
		Weights: func() map[models.Category]float64 {
			return map[models.Category]float64{models.CategorySleep: 1}
		},
	})

	for i := 0; i < 100; i++ {
		if c := f.Generate().Category; c != models.CategorySleep {
			t.Fatalf("expected only Sleep with single weight, got %s", c)
		}
	}
}

func TestZeroWeightsFallBackToUniform(t *testing.T) {
	f := NewFactory(Config{
		Seed: 12,
		Weights: func() map[models.Category]float64 {
			return map[models.Category]float64{}
		},
	})

	seen := make(map[models.Category]bool)
	for i := 0; i < 1000; i++ {
		seen[f.Generate().Category] = true
	}
	if len(seen) != len(models.Categories()) {
		t.Errorf("expected all %d categories, saw %d", len(models.Categories()), len(seen))
	}
}

func TestLowVitalChance(t *testing.T) {
	never, always := 0.0, 1.0
	tests := []struct {
		name   string
		chance *float64
		check  func(low int) bool
	}{
		{"zero disables low readings", &never, func(low int) bool { return low == 0 }},
		{"one forces low readings", &always, func(low int) bool { return low == 1000 }},
		{"unset uses default", nil, func(low int) bool { return low > 0 && low < 1000 }},
	}

	for _, test := range tests {
		f := NewFactory(Config{Seed: 21, LowVitalChance: test.chance})
		low := 0
		for i := 0; i < 1000; i++ {
			event, err := f.GenerateCategory(models.CategoryHealth)
			if err != nil {
				t.Fatalf("%s: %v", test.name, err)
			}
			if event.Status == models.StatusWarning {
				low++
			}
		}
		if !test.check(low) {
			t.Errorf("%s: got %d low readings out of 1000", test.name, low)
		}
	}
}
