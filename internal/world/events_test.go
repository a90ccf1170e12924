package world

import "testing"

func TestAddPlayerEmitsPlayerJoined(t *testing.T) {
	m := newTestModel(t)
	m.AddPlayer("p1", TeamRed, "striker")

	events := m.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventKindPlayerJoined {
		t.Fatalf("expected one player-joined event, got %+v", events)
	}
}

func TestRemovePlayerEmitsPlayerLeft(t *testing.T) {
	m := newTestModel(t)
	m.AddPlayer("p1", TeamRed, "")
	m.DrainEvents()

	m.RemovePlayer("p1")
	events := m.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventKindPlayerLeft {
		t.Fatalf("expected one player-left event, got %+v", events)
	}
}

func TestDrainEventsClearsBuffer(t *testing.T) {
	m := newTestModel(t)
	m.AddPlayer("p1", TeamRed, "")
	m.DrainEvents()

	if events := m.DrainEvents(); len(events) != 0 {
		t.Fatalf("expected empty drain after prior drain, got %+v", events)
	}
}
