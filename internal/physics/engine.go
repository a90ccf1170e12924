package physics

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Gravity is the vertical acceleration applied to the dynamic body. It is
// intentionally the same magnitude as internal/world's player GRAVITY
// constant so the ball and players fall at matching rates.
const Gravity = 20.0

type bodyKind int

const (
	kindStatic bodyKind = iota
	kindDynamic
	kindKinematic
)

type body struct {
	kind bodyKind

	translation mgl64.Vec3
	orientation mgl64.Quat
	linearVel   mgl64.Vec3
	angularVel  mgl64.Vec3

	sphere   SphereShape
	mass     float64
	material Material

	linearDamping  float64
	angularDamping float64
	ccd            bool
}

// Engine is the reference World implementation: semi-implicit Euler
// integration for the single dynamic body, direct pose assignment for
// kinematic bodies, and no broad phase beyond what the caller needs —
// internal/world.ContactResolver and BoundaryEnforcer own all
// player<->ball and ball<->arena collision response per §4.5/§4.6. The
// engine only owns free-flight integration (gravity, damping, angular
// drift) between those passes.
type Engine struct {
	nextHandle atomic.Uint64
	bodies     map[BodyHandle]*body
}

// NewEngine constructs an empty reference physics world.
func NewEngine() *Engine {
	return &Engine{bodies: make(map[BodyHandle]*body)}
}

func (e *Engine) allocate(b *body) BodyHandle {
	handle := BodyHandle(e.nextHandle.Add(1))
	e.bodies[handle] = b
	return handle
}

func (e *Engine) AddStaticBody(desc StaticBodyDesc) BodyHandle {
	return e.allocate(&body{
		kind:        kindStatic,
		translation: desc.Translation,
		orientation: eulerToQuat(desc.RotationEuler),
		material:    desc.Material,
	})
}

func (e *Engine) AddDynamicBody(desc DynamicBodyDesc) BodyHandle {
	return e.allocate(&body{
		kind:           kindDynamic,
		translation:    desc.Translation,
		orientation:    mgl64.QuatIdent(),
		sphere:         desc.Sphere,
		mass:           desc.Mass,
		material:       desc.Material,
		linearDamping:  desc.LinearDamping,
		angularDamping: desc.AngularDamping,
		ccd:            desc.CCD,
	})
}

func (e *Engine) AddKinematicBody(desc KinematicBodyDesc) BodyHandle {
	return e.allocate(&body{
		kind:        kindKinematic,
		translation: desc.Translation,
		orientation: mgl64.QuatIdent(),
		sphere:      desc.Sphere,
	})
}

func (e *Engine) SetKinematicTranslation(handle BodyHandle, pos mgl64.Vec3) {
	if b, ok := e.bodies[handle]; ok {
		b.translation = pos
	}
}

func (e *Engine) Translation(handle BodyHandle) mgl64.Vec3 {
	if b, ok := e.bodies[handle]; ok {
		return b.translation
	}
	return mgl64.Vec3{}
}

func (e *Engine) LinearVelocity(handle BodyHandle) mgl64.Vec3 {
	if b, ok := e.bodies[handle]; ok {
		return b.linearVel
	}
	return mgl64.Vec3{}
}

func (e *Engine) SetLinearVelocity(handle BodyHandle, v mgl64.Vec3) {
	if b, ok := e.bodies[handle]; ok {
		b.linearVel = v
	}
}

func (e *Engine) AngularVelocity(handle BodyHandle) mgl64.Vec3 {
	if b, ok := e.bodies[handle]; ok {
		return b.angularVel
	}
	return mgl64.Vec3{}
}

func (e *Engine) SetAngularVelocity(handle BodyHandle, v mgl64.Vec3) {
	if b, ok := e.bodies[handle]; ok {
		b.angularVel = v
	}
}

func (e *Engine) Orientation(handle BodyHandle) mgl64.Quat {
	if b, ok := e.bodies[handle]; ok {
		return b.orientation
	}
	return mgl64.QuatIdent()
}

func (e *Engine) ApplyImpulse(handle BodyHandle, impulse mgl64.Vec3) {
	b, ok := e.bodies[handle]
	if !ok || b.kind != kindDynamic || b.mass <= 0 {
		return
	}
	b.linearVel = b.linearVel.Add(impulse.Mul(1 / b.mass))
}

func (e *Engine) ResizeDynamicCollider(handle BodyHandle, radius float64) {
	if b, ok := e.bodies[handle]; ok && b.kind == kindDynamic {
		b.sphere.Radius = radius
	}
}

func (e *Engine) RemoveBody(handle BodyHandle) {
	delete(e.bodies, handle)
}

// Step integrates the dynamic body only. Kinematic bodies are posed
// directly by the caller; static bodies never move.
func (e *Engine) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range e.bodies {
		if b.kind != kindDynamic {
			continue
		}
		b.linearVel[1] -= Gravity * dt

		dampingFactor := 1 - b.linearDamping*dt
		if dampingFactor < 0 {
			dampingFactor = 0
		}
		b.linearVel = b.linearVel.Mul(dampingFactor)

		angularDampingFactor := 1 - b.angularDamping*dt
		if angularDampingFactor < 0 {
			angularDampingFactor = 0
		}
		b.angularVel = b.angularVel.Mul(angularDampingFactor)

		b.translation = b.translation.Add(b.linearVel.Mul(dt))

		if angSpeed := b.angularVel.Len(); angSpeed > 1e-9 {
			axis := b.angularVel.Mul(1 / angSpeed)
			delta := mgl64.QuatRotate(angSpeed*dt, axis)
			b.orientation = delta.Mul(b.orientation).Normalize()
		}
	}
}

func eulerToQuat(degrees mgl64.Vec3) mgl64.Quat {
	rad := mgl64.Vec3{
		mgl64.DegToRad(degrees.X()),
		mgl64.DegToRad(degrees.Y()),
		mgl64.DegToRad(degrees.Z()),
	}
	qx := mgl64.QuatRotate(rad.X(), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(rad.Y(), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(rad.Z(), mgl64.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx).Normalize()
}
