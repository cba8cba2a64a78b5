package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.FinishedGames == nil {
		t.Fatal("FinishedGames channel should not be nil")
	}
}

func TestBus_CarriesFinishedGame(t *testing.T) {
	bus := NewBus()

	ev := FinishedGame{
		Code:          "ABC123",
		GameMode:      "classic",
		QuestionCount: 5,
		StartedAt:     time.Now(),
		Results: []Result{
			{Name: "Alice", FinishMs: 3000, Rank: 1},
			{Name: "Bob", FinishMs: 5000, Rank: 2},
		},
	}
	bus.FinishedGames <- ev

	select {
	case got := <-bus.FinishedGames:
		if got.Code != "ABC123" {
			t.Errorf("Code = %q, want %q", got.Code, "ABC123")
		}
		if len(got.Results) != 2 {
			t.Fatalf("got %d results, want 2", len(got.Results))
		}
		if got.Results[0].Rank != 1 || got.Results[0].Name != "Alice" {
			t.Errorf("first result = %+v, want Alice at rank 1", got.Results[0])
		}
	case <-time.After(time.Second):
		t.Fatal("timed out reading from bus")
	}
}

func TestBus_IsBuffered(t *testing.T) {
	bus := NewBus()

	// Publishing without a consumer must not block for a burst of games.
	for i := 0; i < cap(bus.FinishedGames); i++ {
		select {
		case bus.FinishedGames <- FinishedGame{Code: "ABC123"}:
		default:
			t.Fatalf("bus refused event %d of %d", i+1, cap(bus.FinishedGames))
		}
	}
}
