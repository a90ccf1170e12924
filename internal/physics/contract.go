// Package physics defines the narrow rigid-body contract the simulation
// depends on (§4.2) and ships one reference engine that satisfies it. The
// engine itself is treated as an external collaborator: production
// deployments may swap World for a commercial or open-source rigid-body
// library behind this same interface without touching internal/world.
package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyHandle identifies a body owned by a World. Handles are opaque and
// remain valid until the body is removed.
type BodyHandle uint64

// ColliderHandle identifies a collider attached to a static or kinematic
// body. A dynamic body's collider is implicit in its shape.
type ColliderHandle uint64

// Material carries the friction/restitution pair a collider is built with.
type Material struct {
	Friction    float64
	Restitution float64
}

// CuboidShape describes an axis-aligned (after rotation) box collider.
type CuboidShape struct {
	HalfExtents mgl64.Vec3
}

// CylinderShape describes a capped-cylinder collider, authored upright
// along Y before RotationEuler is applied.
type CylinderShape struct {
	Radius     float64
	HalfHeight float64
}

// SphereShape describes a sphere collider, used for the ball and for a
// player's stand-in collision volume.
type SphereShape struct {
	Radius float64
}

// StaticBodyDesc describes one piece of arena geometry (§4.2).
type StaticBodyDesc struct {
	Translation    mgl64.Vec3
	RotationEuler  mgl64.Vec3 // degrees, applied XYZ
	Cuboid         *CuboidShape
	Cylinder       *CylinderShape
	Sphere         *SphereShape
	Material       Material
}

// DynamicBodyDesc describes the single dynamic rigid body the contract
// supports: the ball.
type DynamicBodyDesc struct {
	Translation     mgl64.Vec3
	Sphere          SphereShape
	Mass            float64
	Material        Material
	LinearDamping   float64
	AngularDamping  float64
	CCD             bool
}

// KinematicBodyDesc describes one player's kinematic body.
type KinematicBodyDesc struct {
	Translation mgl64.Vec3
	Sphere      SphereShape
}

// World is the minimal rigid-body capability the simulation requires:
// static colliders, one dynamic body (ball) stepped under gravity and
// damping, N kinematic bodies (players) whose pose is pushed by game
// logic every tick, impulse application, and velocity/translation
// accessors. Any additional physics (swept CCD, broad-phase tuning) a
// concrete engine offers is welcome but never relied upon — the
// BoundaryEnforcer (internal/world) is the safety net regardless.
type World interface {
	AddStaticBody(desc StaticBodyDesc) BodyHandle
	AddDynamicBody(desc DynamicBodyDesc) BodyHandle
	AddKinematicBody(desc KinematicBodyDesc) BodyHandle

	SetKinematicTranslation(handle BodyHandle, pos mgl64.Vec3)
	Translation(handle BodyHandle) mgl64.Vec3

	LinearVelocity(handle BodyHandle) mgl64.Vec3
	SetLinearVelocity(handle BodyHandle, v mgl64.Vec3)
	AngularVelocity(handle BodyHandle) mgl64.Vec3
	SetAngularVelocity(handle BodyHandle, v mgl64.Vec3)
	Orientation(handle BodyHandle) mgl64.Quat

	ApplyImpulse(handle BodyHandle, impulse mgl64.Vec3)

	// ResizeDynamicCollider swaps the dynamic body's sphere radius.
	// internal/world does not call it, and no player body is resized
	// either: the giant power-up only sets the player's Giant flag and
	// runs the ball-safety teleport in internal/world.
	ResizeDynamicCollider(handle BodyHandle, radius float64)

	RemoveBody(handle BodyHandle)

	// Step advances the world by exactly dt seconds. Only the dynamic
	// body is integrated; kinematic bodies move only via
	// SetKinematicTranslation.
	Step(dt float64)
}
