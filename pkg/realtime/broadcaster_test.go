package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
}

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Name: "cue", Data: `{"kind":"sound"}`})
	got := <-ch
	if got.Name != "cue" || got.Data != `{"kind":"sound"}` {
		t.Errorf("got event %+v, want cue with payload", got)
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish(Event{Name: "state"})
	if got := <-ch1; got.Name != "state" {
		t.Errorf("ch1 got %q, want state", got.Name)
	}
	if got := <-ch2; got.Name != "state" {
		t.Errorf("ch2 got %q, want state", got.Name)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	// second unsubscribe is a no-op
	b.Unsubscribe(ch)
}

func TestBroadcaster_DropsWhenLagging(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < 25; i++ {
		b.Publish(Event{Name: "cue"})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d events, want %d", len(ch), cap(ch))
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Close()
	if _, open := <-ch; open {
		t.Error("Close should close subscriber channels")
	}

	b.Publish(Event{Name: "cue"})
	late := b.Subscribe()
	if _, open := <-late; open {
		t.Error("subscribing after Close should yield a closed channel")
	}
	b.Close()
}
