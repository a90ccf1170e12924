package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEngineDynamicBodyFallsUnderGravity(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{
		Translation: mgl64.Vec3{0, 10, 0},
		Sphere:      SphereShape{Radius: 0.5},
		Mass:        1,
	})

	const dt = 1.0 / 60.0
	for i := 0; i < 60; i++ {
		e.Step(dt)
	}

	vel := e.LinearVelocity(handle)
	if vel.Y() >= 0 {
		t.Fatalf("expected downward velocity after falling, got %v", vel)
	}

	pos := e.Translation(handle)
	if pos.Y() >= 10 {
		t.Fatalf("expected body to fall below start height, got %v", pos)
	}
}

func TestEngineLinearDampingSlowsBody(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{
		Sphere:        SphereShape{Radius: 0.5},
		Mass:          1,
		LinearDamping: 2.0,
	})
	e.SetLinearVelocity(handle, mgl64.Vec3{10, 0, 0})

	e.Step(1.0 / 60.0)

	vel := e.LinearVelocity(handle)
	if vel.X() >= 10 {
		t.Fatalf("expected damping to reduce velocity, got %v", vel)
	}
}

func TestEngineApplyImpulseChangesVelocityByMass(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{
		Sphere: SphereShape{Radius: 0.5},
		Mass:   2,
	})

	e.ApplyImpulse(handle, mgl64.Vec3{4, 0, 0})

	vel := e.LinearVelocity(handle)
	if math.Abs(vel.X()-2) > 1e-9 {
		t.Fatalf("expected impulse/mass velocity of 2, got %v", vel.X())
	}
}

func TestEngineKinematicBodyIgnoresGravity(t *testing.T) {
	e := NewEngine()
	handle := e.AddKinematicBody(KinematicBodyDesc{
		Translation: mgl64.Vec3{1, 2, 3},
		Sphere:      SphereShape{Radius: 0.4},
	})

	e.Step(1.0 / 60.0)

	pos := e.Translation(handle)
	if pos != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("expected kinematic body to stay put, got %v", pos)
	}
}

func TestEngineSetKinematicTranslationMovesBody(t *testing.T) {
	e := NewEngine()
	handle := e.AddKinematicBody(KinematicBodyDesc{Sphere: SphereShape{Radius: 0.4}})

	e.SetKinematicTranslation(handle, mgl64.Vec3{5, 0, -2})

	pos := e.Translation(handle)
	if pos != (mgl64.Vec3{5, 0, -2}) {
		t.Fatalf("expected translation to update, got %v", pos)
	}
}

func TestEngineStaticBodyNeverMoves(t *testing.T) {
	e := NewEngine()
	handle := e.AddStaticBody(StaticBodyDesc{
		Translation: mgl64.Vec3{0, 0, 0},
		Cuboid:      &CuboidShape{HalfExtents: mgl64.Vec3{1, 1, 1}},
	})

	e.Step(1.0 / 60.0)

	pos := e.Translation(handle)
	if pos != (mgl64.Vec3{0, 0, 0}) {
		t.Fatalf("expected static body to remain at origin, got %v", pos)
	}
}

func TestEngineRemoveBodyClearsState(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{Sphere: SphereShape{Radius: 0.5}, Mass: 1})
	e.RemoveBody(handle)

	if pos := e.Translation(handle); pos != (mgl64.Vec3{}) {
		t.Fatalf("expected removed body to report zero translation, got %v", pos)
	}
}

func TestEngineResizeDynamicCollider(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{Sphere: SphereShape{Radius: 0.5}, Mass: 1})
	e.ResizeDynamicCollider(handle, 1.5)

	if e.bodies[handle].sphere.Radius != 1.5 {
		t.Fatalf("expected resized radius to stick, got %v", e.bodies[handle].sphere.Radius)
	}
}

func TestEngineOrientationStaysNormalizedUnderSpin(t *testing.T) {
	e := NewEngine()
	handle := e.AddDynamicBody(DynamicBodyDesc{Sphere: SphereShape{Radius: 0.5}, Mass: 1})
	e.SetAngularVelocity(handle, mgl64.Vec3{0, 5, 0})

	for i := 0; i < 120; i++ {
		e.Step(1.0 / 60.0)
	}

	q := e.Orientation(handle)
	norm := math.Sqrt(q.W*q.W + q.V.X()*q.V.X() + q.V.Y()*q.V.Y() + q.V.Z()*q.V.Z())
	if math.Abs(norm-1) > 1e-6 {
		t.Fatalf("expected normalized quaternion, got norm %v", norm)
	}
}
