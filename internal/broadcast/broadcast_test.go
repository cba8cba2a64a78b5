package broadcast

import (
	"strings"
	"testing"
	"time"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster() returned nil")
	}
	if len(b.clients) != 0 {
		t.Errorf("new broadcaster should have no clients, got %d", len(b.clients))
	}
}

func TestSubscribeAndBroadcast(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()

	b.Broadcast("update-player-list", map[string]string{"hello": "world"})

	select {
	case ev := <-ch:
		if ev.Name != "update-player-list" {
			t.Errorf("event name = %q, want %q", ev.Name, "update-player-list")
		}
		if !strings.Contains(ev.Data, `"hello":"world"`) {
			t.Errorf("event data = %q, want JSON payload", ev.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestBroadcast_MultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Broadcast("game-started", nil)

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Name != "game-started" {
				t.Errorf("subscriber %d got event %q, want %q", i, ev.Name, "game-started")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive broadcast", i)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}

	// A second unsubscribe of the same channel must not panic.
	b.Unsubscribe(ch)

	b.Broadcast("update-progress", nil)
}

func TestBroadcast_SkipsFullChannels(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()

	// Fill the subscriber's buffer without draining it.
	for i := 0; i < cap(ch)+5; i++ {
		done := make(chan struct{})
		go func() {
			b.Broadcast("update-progress", i)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Broadcast blocked on a full subscriber channel")
		}
	}

	if len(ch) != cap(ch) {
		t.Errorf("channel holds %d events, want full buffer of %d", len(ch), cap(ch))
	}
}

func TestClose(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Close()

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case _, ok := <-ch:
			if ok {
				t.Errorf("subscriber %d channel should be closed", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d channel not closed", i)
		}
	}

	// Unsubscribing a closed-out channel must not panic.
	b.Unsubscribe(ch1)
}
