package world

import (
	"math"
	"testing"

	"goalline/server/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New(Deps{Physics: physics.NewEngine()})
}

func TestResolveContactsStabilityCarriesBallWithPlayer(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0
	p.VX, p.VZ = 2, 0

	m.Ball.Position = mgl64.Vec3{0, 0.7, 0} // dy = 0.6 above player
	m.Ball.Velocity = mgl64.Vec3{1.5, 0, 0}  // |v_rel| = 0.5
	m.physics.(*physics.Engine).SetLinearVelocity(m.Ball.Handle, m.Ball.Velocity)
	m.physics.(*physics.Engine).SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	m.ResolveContacts()

	if math.Abs(m.Ball.Velocity.X()-2) > 1e-9 {
		t.Fatalf("expected ball vx to match player vx 2, got %v", m.Ball.Velocity.X())
	}
	if m.Ball.OwnerSessionID != "p1" {
		t.Fatalf("expected stability mode to set owner, got %q", m.Ball.OwnerSessionID)
	}
	wantY := 0.1 + PlayerRadius + BallRadius + 0.05
	if m.Ball.Position.Y() < wantY-0.5 {
		t.Fatalf("expected ball pulled toward y~%v, got %v", wantY, m.Ball.Position.Y())
	}
}

func TestResolveContactsImpulseBranchAppliesMinimumImpulse(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0
	p.VX, p.VZ = 1, 0 // below running threshold -> momentumFactor 0.5

	// Ball directly ahead on the horizontal plane, low ny, so stability
	// mode's geometric gate does not trigger.
	m.Ball.Position = mgl64.Vec3{1.0, 0.1, 0}
	m.physics.(*physics.Engine).SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	m.ResolveContacts()

	if m.Ball.Velocity.X() <= 0 {
		t.Fatalf("expected forward impulse on ball, got %v", m.Ball.Velocity)
	}
	if m.Ball.LastTouchID != "p1" {
		t.Fatalf("expected touch history updated, got %q", m.Ball.LastTouchID)
	}
}

func TestResolveContactsNoImpulseWhenMovingApart(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0
	p.VX = -1 // retreating from the ball

	m.Ball.Position = mgl64.Vec3{1.0, 0.1, 0}
	m.physics.(*physics.Engine).SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	m.ResolveContacts()

	if m.Ball.Velocity.X() != 0 {
		t.Fatalf("expected no impulse when approach speed <= 0, got %v", m.Ball.Velocity)
	}
	if m.Ball.LastTouchID != "" {
		t.Fatalf("expected no touch recorded, got %q", m.Ball.LastTouchID)
	}
}

func TestRecordTouchShiftsHistoryOnlyForDifferentSession(t *testing.T) {
	m := newTestModel(t)

	m.recordTouch("a")
	m.recordTouch("a")
	if m.Ball.SecondLastTouchID != "" {
		t.Fatalf("expected no shift on repeated same-session touch, got %q", m.Ball.SecondLastTouchID)
	}

	m.recordTouch("b")
	if m.Ball.LastTouchID != "b" || m.Ball.SecondLastTouchID != "a" {
		t.Fatalf("expected last=b secondLast=a, got last=%q secondLast=%q", m.Ball.LastTouchID, m.Ball.SecondLastTouchID)
	}
}

func TestKickRequiresRange(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0

	m.Ball.Position = mgl64.Vec3{KickRange + 1, 0.1, 0}
	m.physics.(*physics.Engine).SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	if m.Kick("p1", 1, 0, 0) {
		t.Fatal("expected kick out of range to fail")
	}
}

func TestKickWithinRangeAppliesImpulseAndIncrementsShots(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0

	m.Ball.Position = mgl64.Vec3{1, 0.1, 0}
	m.physics.(*physics.Engine).SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	if !m.Kick("p1", 5, 0, 0) {
		t.Fatal("expected in-range kick to succeed")
	}
	if p.Stats.Shots != 1 {
		t.Fatalf("expected shots incremented, got %d", p.Stats.Shots)
	}
	if m.Ball.Velocity.X() != 5 {
		t.Fatalf("expected ball vx 5 (mass 1), got %v", m.Ball.Velocity.X())
	}
}
