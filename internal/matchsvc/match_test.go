package matchsvc

import (
	"testing"
	"time"

	"goalline/server/internal/sim"
	"goalline/server/internal/world"
)

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	return NewMatch("m1", false, "", 1, sim.Deps{}, sim.LoopConfig{CommandCapacity: 32})
}

func TestMatchJoinAssignsTeamAndCancelsDispose(t *testing.T) {
	m := newTestMatch(t)
	m.disposeAt.Arm(0, func() {})

	p := m.Join("p1", world.TeamRed, "striker")
	if p == nil {
		t.Fatal("expected player to join")
	}
	if p.Team != world.TeamRed {
		t.Fatalf("expected red team, got %v", p.Team)
	}

	m.disposeAt.mu.Lock()
	armed := m.disposeAt.active
	m.disposeAt.mu.Unlock()
	if armed {
		t.Fatal("expected Join to cancel the pending dispose timer")
	}
}

func TestMatchFirstJoinerBecomesHost(t *testing.T) {
	m := newTestMatch(t)
	m.Join("p1", world.TeamRed, "")
	m.Join("p2", world.TeamBlue, "")

	if !m.World.IsHost("p1") {
		t.Fatal("expected first joiner to be host")
	}
	if m.World.IsHost("p2") {
		t.Fatal("expected second joiner not to be host")
	}
}

func TestMatchLeaveArmsDisposeWhenEmpty(t *testing.T) {
	m := newTestMatch(t)
	m.Join("p1", world.TeamRed, "")
	m.Leave("p1")

	m.disposeAt.mu.Lock()
	armed := m.disposeAt.active
	m.disposeAt.mu.Unlock()
	if !armed {
		t.Fatal("expected Leave to arm the dispose timer once the match becomes empty")
	}
}

func TestMatchIdleTimeoutDefaultsToWorldConstant(t *testing.T) {
	m := newTestMatch(t)
	if got := m.idleTimeout(); got != world.EmptyDisposeDelay {
		t.Fatalf("expected default idle timeout %v, got %v", world.EmptyDisposeDelay, got)
	}
}

func TestMatchIdleTimeoutOverride(t *testing.T) {
	m := newTestMatch(t)
	m.IdleTimeout = time.Second
	if got := m.idleTimeout(); got != time.Second {
		t.Fatalf("expected overridden idle timeout 1s, got %v", got)
	}
}

func TestEngineBridgeStepAdvancesTick(t *testing.T) {
	m := newTestMatch(t)
	m.Join("p1", world.TeamRed, "")

	bridge := NewEngineBridge(m.World, sim.Deps{})
	snapBefore := bridge.Snapshot()
	bridge.Step()
	snapAfter := bridge.Snapshot()

	if snapAfter.CurrentTick != snapBefore.CurrentTick+1 {
		t.Fatalf("expected tick to advance by 1, got %d -> %d", snapBefore.CurrentTick, snapAfter.CurrentTick)
	}
}

func TestEngineBridgeApplyInputRoutesToPlayer(t *testing.T) {
	m := newTestMatch(t)
	m.Join("p1", world.TeamRed, "")
	bridge := NewEngineBridge(m.World, sim.Deps{})

	err := bridge.Apply([]sim.Command{{
		ActorID: "p1",
		Type:    sim.CommandInput,
		Inputs:  []sim.InputPayload{{Tick: 1, X: 1, Z: 0}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.World.Players["p1"].Queue.Len() != 1 {
		t.Fatalf("expected one queued input, got %d", m.World.Players["p1"].Queue.Len())
	}
}

func TestEngineBridgeStartGameHostOnly(t *testing.T) {
	m := newTestMatch(t)
	m.Join("host", world.TeamRed, "")
	m.Join("guest", world.TeamBlue, "")
	bridge := NewEngineBridge(m.World, sim.Deps{})

	bridge.Apply([]sim.Command{{ActorID: "guest", Type: sim.CommandStartGame}})
	if m.World.Phase != world.PhaseWaiting {
		t.Fatalf("expected non-host start-game to be ignored, phase=%v", m.World.Phase)
	}

	bridge.Apply([]sim.Command{{ActorID: "host", Type: sim.CommandStartGame}})
	if m.World.Phase != world.PhasePlaying {
		t.Fatalf("expected host start-game to transition phase, got %v", m.World.Phase)
	}
}
