package query

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/synheart/lifelog/internal/models"
)

func sampleEvents() []models.Event {
	ts := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	mk := func(id string, source models.Source, status models.Status, d models.Details) models.Event {
		return models.NewEvent(id, 0, ts, source, status, d)
	}

	// Newest first, as the buffer hands them out.
	return []models.Event{
		mk("6", models.SourceMobileApp, models.StatusInfo, models.SleepDetails{Quality: models.SleepFair}),
		mk("5", models.SourceCalendar, models.StatusSuccess, models.FitnessDetails{Activity: "Gym Workout", Location: "Park"}),
		mk("4", models.SourceWearable, models.StatusWarning, models.SleepDetails{Quality: models.SleepPoor}),
		mk("3", models.SourceSmartHome, models.StatusInfo, models.EnvironmentDetails{Location: "Gym"}),
		mk("2", models.SourceWearable, models.StatusSuccess, models.HealthDetails{Metric: "Heart Rate"}),
		mk("1", models.SourceCalendar, models.StatusError, models.SocialDetails{Person: "Alex", Location: "Cafe"}),
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"all, no search", Filter{Category: All}, []string{"6", "5", "4", "3", "2", "1"}},
		{"empty filter", Filter{}, []string{"6", "5", "4", "3", "2", "1"}},
		{"sleep only", Filter{Category: models.CategorySleep}, []string{"6", "4"}},
		{"search gym", Filter{Category: All, Search: "gym"}, []string{"5", "3"}},
		{"search is case-insensitive", Filter{Category: All, Search: "GYM"}, []string{"5", "3"}},
		{"search source", Filter{Search: "smart home"}, []string{"3"}},
		{"search message", Filter{Search: "interaction with alex"}, []string{"1"}},
		{"search metric", Filter{Search: "heart"}, []string{"2"}},
		{"search location", Filter{Search: "cafe"}, []string{"1"}},
		{"category and search", Filter{Category: models.CategoryFitness, Search: "gym"}, []string{"5"}},
		{"category and search disjoint", Filter{Category: models.CategorySleep, Search: "gym"}, []string{}},
		{"no match", Filter{Search: "swimming"}, []string{}},
	}

	for _, test := range tests {
		got := ids(Apply(events, test.filter))
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	events := sampleEvents()
	before := ids(events)

	_ = Apply(events, Filter{Category: models.CategorySleep, Search: "x"})

	if diff := cmp.Diff(before, ids(events)); diff != "" {
		t.Errorf("input changed (-want +got):\n%s", diff)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("sleep", "gym")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	if f.Category != models.CategorySleep || f.Search != "gym" {
		t.Errorf("unexpected filter: %+v", f)
	}

	for _, input := range []string{"", "all", "ALL"} {
		f, err := ParseFilter(input, "")
		if err != nil || f.Category != All {
			t.Errorf("ParseFilter(%q) = %+v, %v", input, f, err)
		}
	}

	if _, err := ParseFilter("system", ""); !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleEvents())

	if s.Success != 2 || s.Warning != 1 || s.Error != 1 || s.Info != 2 {
		t.Errorf("unexpected status counts: %+v", s)
	}

	want := map[models.Category]int{
		models.CategorySleep:       2,
		models.CategoryFitness:     1,
		models.CategoryEnvironment: 1,
		models.CategoryHealth:      1,
		models.CategorySocial:      1,
	}
	if diff := cmp.Diff(want, s.ByCategory); diff != "" {
		t.Errorf("category counts (-want +got):\n%s", diff)
	}
}
