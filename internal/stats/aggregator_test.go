package stats

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/synheart/lifelog/internal/models"
)

func newAggregator(wellness int) *Aggregator {
	return New(wellness, 1, rand.New(rand.NewSource(1)))
}

func TestCountersMatchHistory(t *testing.T) {
	a := newAggregator(DefaultWellness)
	rng := rand.New(rand.NewSource(2))
	statuses := []models.Status{models.StatusSuccess, models.StatusWarning, models.StatusError, models.StatusInfo}

	var warnings, errs int
	for i := 0; i < 1000; i++ {
		status := statuses[rng.Intn(len(statuses))]
		switch status {
		case models.StatusWarning:
			warnings++
		case models.StatusError:
			errs++
		}
		a.OnEvent(models.Event{Status: status})
	}

	got := a.Snapshot()
	if got.Total != 1000 {
		t.Errorf("expected total 1000, got %d", got.Total)
	}
	if got.Warnings != warnings {
		t.Errorf("expected %d warnings, got %d", warnings, got.Warnings)
	}
	if got.Errors != errs {
		t.Errorf("expected %d errors, got %d", errs, got.Errors)
	}
	if got.LastHour != 1000 {
		t.Errorf("expected last hour 1000, got %d", got.LastHour)
	}
}

func TestWellnessWalkIsBounded(t *testing.T) {
	for _, start := range []int{0, 1, 50, 99, 100} {
		a := newAggregator(start)
		prev := a.Snapshot().WellnessScore
		for i := 0; i < 5000; i++ {
			a.OnEvent(models.Event{Status: models.StatusInfo})
			score := a.Snapshot().WellnessScore
			if score < 0 || score > 100 {
				t.Fatalf("start %d: wellness %d out of range", start, score)
			}
			if d := score - prev; d > 1 || d < -1 {
				t.Fatalf("start %d: wellness jumped by %d", start, d)
			}
			prev = score
		}
	}
}

func TestInitialWellnessIsClamped(t *testing.T) {
	if got := newAggregator(150).Snapshot().WellnessScore; got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := newAggregator(DefaultWellness).Snapshot(); got != (models.Stats{WellnessScore: 82}) {
		t.Errorf("unexpected initial stats: %+v", got)
	}
}

func TestOnClearKeepsContinuousSignals(t *testing.T) {
	a := newAggregator(DefaultWellness)
	a.OnEvent(models.Event{Status: models.StatusWarning})
	a.OnEvent(models.Event{Status: models.StatusError})
	a.OnEvent(models.Event{Status: models.StatusInfo})

	before := a.Snapshot()
	a.OnClear()
	after := a.Snapshot()

	want := models.Stats{
		LastHour:      before.LastHour,
		WellnessScore: before.WellnessScore,
	}
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("stats after clear (-want +got):\n%s", diff)
	}
}

func TestOnHourTick(t *testing.T) {
	a := newAggregator(DefaultWellness)
	a.OnEvent(models.Event{Status: models.StatusWarning})
	a.OnEvent(models.Event{Status: models.StatusInfo})

	a.OnHourTick()
	got := a.Snapshot()
	if got.LastHour != 0 {
		t.Errorf("expected last hour 0, got %d", got.LastHour)
	}
	if got.Total != 2 || got.Warnings != 1 {
		t.Errorf("hour tick touched lifetime counters: %+v", got)
	}
}
