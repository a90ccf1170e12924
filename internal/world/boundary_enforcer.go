package world

import "github.com/go-gl/mathgl/mgl64"

const boundaryMargin = 1e-3

// EnforceBoundaries clamps the ball against the zone-aware envelope of
// §4.6. It runs after the physics step and ContactResolver and is
// idempotent: applying it twice in a row yields identical state.
func (m *Model) EnforceBoundaries() {
	m.syncBallFromPhysics()

	pos := m.Ball.Position
	vel := m.Ball.Velocity
	x, y, z := pos.X(), pos.Y(), pos.Z()
	vx, vy, vz := vel.X(), vel.Y(), vel.Z()

	inGoalOpening := absf(x) > GoalLineX && absf(z) < GoalHalfZ && y < GoalHeight

	switch {
	case absf(x) > ArenaHalfWidth:
		// Deep-in-goal: clamp |z| to the net width, or push back to the
		// arena wall if the ball drifted outside the net's lateral bounds.
		if absf(z) <= GoalHalfZ {
			limit := GoalHalfZ - BallRadius
			if z > limit {
				z = limit
				vz = -vz * GoalRestitution
			} else if z < -limit {
				z = -limit
				vz = -vz * GoalRestitution
			}
			xBackLimit := GoalBackX - BallRadius
			if x > xBackLimit {
				x = xBackLimit
				vx = -vx * GoalRestitution
			} else if x < -xBackLimit {
				x = -xBackLimit
				vx = -vx * GoalRestitution
			}
		} else {
			limit := ArenaHalfWidth - BallRadius
			if x > limit {
				x = limit
				vx = -vx * WallRestitution
			} else if x < -limit {
				x = -limit
				vx = -vx * WallRestitution
			}
		}
	case inGoalOpening:
		limit := GoalBackX - BallRadius
		if x > limit {
			x = limit
			vx = -vx * GoalRestitution
		} else if x < -limit {
			x = -limit
			vx = -vx * GoalRestitution
		}
	default:
		limitX := ArenaHalfWidth - BallRadius
		if x > limitX {
			x = limitX
			vx = -vx * WallRestitution
		} else if x < -limitX {
			x = -limitX
			vx = -vx * WallRestitution
		}
		limitZ := ArenaHalfDepth - BallRadius
		if z > limitZ {
			z = limitZ
			vz = -vz * WallRestitution
		} else if z < -limitZ {
			z = -limitZ
			vz = -vz * WallRestitution
		}
	}

	if y < BallRadius {
		y = BallRadius + boundaryMargin
		vy = -vy * GroundRestitution
	}
	ceilLimit := WallHeight - BallRadius
	if y > ceilLimit {
		y = ceilLimit - boundaryMargin
		vy *= CeilingDamping
	}

	m.Ball.Position = mgl64.Vec3{x, y, z}
	m.Ball.Velocity = mgl64.Vec3{vx, vy, vz}
	m.commitBallToPhysics()
	m.physics.SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)
}

// ClampAngularVelocity enforces §4.1 step 8: clamp angular speed to
// MaxAngularVelocity before the snapshot is taken.
func (m *Model) ClampAngularVelocity() {
	av := m.physics.AngularVelocity(m.Ball.Handle)
	speed := av.Len()
	if speed <= MaxAngularVelocity || speed == 0 {
		return
	}
	scaled := av.Mul(MaxAngularVelocity / speed)
	m.physics.SetAngularVelocity(m.Ball.Handle, scaled)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
