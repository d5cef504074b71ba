package dispatch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/synheart/lifelog/internal/models"
)

func drain(ch <-chan models.Event) []string {
	var ids []string
	for e := range ch {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestDispatcher_SingleSubscriber(t *testing.T) {
	source := make(chan models.Event, 10)
	dispatcher := NewDispatcher(source, 10)
	subscriber := dispatcher.Subscribe("printer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatcher.Run(ctx)

	for i := 0; i < 5; i++ {
		source <- models.Event{ID: string(rune('A' + i))}
	}
	close(source)

	if diff := cmp.Diff([]string{"A", "B", "C", "D", "E"}, drain(subscriber)); diff != "" {
		t.Errorf("received events (-want +got):\n%s", diff)
	}
}

func TestDispatcher_SubscribersReceiveSameEvents(t *testing.T) {
	source := make(chan models.Event, 10)
	dispatcher := NewDispatcher(source, 10)

	sub1 := dispatcher.Subscribe("printer")
	sub2 := dispatcher.Subscribe("tally")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatcher.Run(ctx)

	want := []string{"event-1", "event-2", "event-3"}
	for _, id := range want {
		source <- models.Event{ID: id}
	}
	close(source)

	var wg sync.WaitGroup
	var received1, received2 []string
	wg.Add(2)
	go func() {
		defer wg.Done()
		received1 = drain(sub1)
	}()
	go func() {
		defer wg.Done()
		received2 = drain(sub2)
	}()
	wg.Wait()

	if diff := cmp.Diff(want, received1); diff != "" {
		t.Errorf("sub1 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, received2); diff != "" {
		t.Errorf("sub2 (-want +got):\n%s", diff)
	}
}

func TestDispatcher_ContextCancellation(t *testing.T) {
	source := make(chan models.Event, 10)
	dispatcher := NewDispatcher(source, 10)

	sub := dispatcher.Subscribe("printer")

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}

	if _, ok := <-sub; ok {
		t.Error("subscriber channel should be closed after dispatcher stops")
	}
}

func TestDispatcher_FullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	source := make(chan models.Event)
	dispatcher := NewDispatcher(source, 2)

	stalled := dispatcher.Subscribe("stalled")
	live := dispatcher.Subscribe("live")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	var liveIDs []string
	liveDone := make(chan struct{})
	go func() {
		defer close(liveDone)
		liveIDs = drain(live)
	}()

	// The unbuffered source hands over one event at a time, so the live
	// subscriber keeps up while the stalled one fills after two.
	numEvents := 10
	for i := 0; i < numEvents; i++ {
		source <- models.Event{ID: fmt.Sprintf("event-%d", i), Sequence: int64(i)}
		time.Sleep(time.Millisecond)
	}
	close(source)
	<-done
	<-liveDone

	if got := len(drain(stalled)); got != 2 {
		t.Errorf("stalled subscriber: expected 2 buffered events, got %d", got)
	}
	if got := dispatcher.DroppedFor("stalled"); got != int64(numEvents-2) {
		t.Errorf("stalled subscriber: expected %d drops, got %d", numEvents-2, got)
	}
	if len(liveIDs) == 0 {
		t.Error("live subscriber received nothing")
	}
	if got, want := dispatcher.GetDroppedCount(), int64(numEvents-len(liveIDs))+dispatcher.DroppedFor("stalled"); got != want {
		t.Errorf("expected total drops %d, got %d", want, got)
	}
}

func TestDispatcher_GetSubscriberCount(t *testing.T) {
	source := make(chan models.Event)
	dispatcher := NewDispatcher(source, 0)

	if got := dispatcher.GetSubscriberCount(); got != 0 {
		t.Errorf("expected 0 subscribers initially, got %d", got)
	}

	sub1 := dispatcher.Subscribe("a")
	sub2 := dispatcher.Subscribe("b")
	if got := dispatcher.GetSubscriberCount(); got != 2 {
		t.Errorf("expected 2 subscribers, got %d", got)
	}
	if got := cap(sub1); got != 1 {
		t.Errorf("expected buffer size clamped to 1, got %d", got)
	}

	close(source)
	dispatcher.Run(context.Background())

	for range sub1 {
	}
	for range sub2 {
	}
}
