package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const contactEpsilon = 1e-6

// ResolveContacts runs after the physics step (§4.1 step 5): for every
// player within sphere range of the ball, apply either the stability
// ("ball-on-head") carry mode or the approach-only impulse branch.
func (m *Model) ResolveContacts() {
	m.syncBallFromPhysics()

	for _, player := range m.Players {
		m.resolvePlayerContact(player)
	}

	m.commitBallToPhysics()
}

func (m *Model) syncBallFromPhysics() {
	m.Ball.Position = m.physics.Translation(m.Ball.Handle)
	m.Ball.Velocity = m.physics.LinearVelocity(m.Ball.Handle)
	m.Ball.Orientation = m.physics.Orientation(m.Ball.Handle)
}

func (m *Model) commitBallToPhysics() {
	m.physics.SetLinearVelocity(m.Ball.Handle, m.Ball.Velocity)
}

func (p *Player) ballRadius() float64 {
	if p.Flags.Giant {
		return PlayerRadiusGiant
	}
	return PlayerRadius
}

func (m *Model) resolvePlayerContact(p *Player) {
	ballPos := m.Ball.Position
	playerPos := mgl64.Vec3{p.X, p.Y, p.Z}

	d := ballPos.Sub(playerPos)
	dist := d.Len()
	if dist <= contactEpsilon {
		return
	}
	radiusSum := BallRadius + p.ballRadius()
	if dist > radiusSum {
		return
	}

	n := d.Mul(1 / dist)
	dy := d.Y()

	playerVel := mgl64.Vec3{p.VX, p.VY, p.VZ}
	relVel := playerVel.Sub(m.Ball.Velocity)
	relSpeed := relVel.Len()

	if dy > BallStabilityHeightMin && n.Y() > 0.5 && relSpeed < BallStabilityVelocityThresh {
		m.applyStability(p, n)
		return
	}

	m.applyImpulseBranch(p, n, dy, relVel)
}

// applyStability carries the ball with the player's head per §4.5.
func (m *Model) applyStability(p *Player, n mgl64.Vec3) {
	m.Ball.Velocity = mgl64.Vec3{p.VX, m.Ball.Velocity.Y() * BallStabilityDamping, p.VZ}

	target := mgl64.Vec3{p.X, p.Y + p.ballRadius() + BallRadius + 0.05, p.Z}
	pulled := m.Ball.Position.Add(target.Sub(m.Ball.Position).Mul(BallStabilityCorrection))
	if pulled.Y() < m.Ball.Position.Y() {
		pulled[1] = m.Ball.Position.Y()
	}
	m.Ball.Position = pulled
	m.physics.SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	m.Ball.OwnerSessionID = p.SessionID
}

func (m *Model) applyImpulseBranch(p *Player, n mgl64.Vec3, dy float64, relVel mgl64.Vec3) {
	approachSpeed := relVel.Dot(n)
	if approachSpeed <= 0 {
		return
	}

	playerHoriz := mgl64.Vec3{p.VX, 0, p.VZ}
	playerSpeed := playerHoriz.Len()

	isRunning := playerSpeed > CollisionVelocityThreshold
	var momentumFactor float64
	if isRunning {
		momentumFactor = (playerSpeed / 8) * PlayerBallVelocityTransfer
	} else {
		momentumFactor = 0.5
	}

	approachDot := (p.VX*n.X() + p.VZ*n.Z()) / (playerSpeed + contactEpsilon)
	approachBoost := 1.0
	if approachDot > PlayerBallApproachDotMin {
		approachBoost = PlayerBallApproachBoost
	}

	impulseMag := approachSpeed * BallMass * (1 + PlayerBallRestitution) * momentumFactor * approachBoost

	geometricHeadCandidate := dy > BallStabilityHeightMin && n.Y() > 0.5
	if geometricHeadCandidate {
		cap := BallStabilityImpulseCap * playerSpeed
		if impulseMag > cap {
			impulseMag = cap
		}
	} else if impulseMag < PlayerBallImpulseMin {
		impulseMag = PlayerBallImpulseMin
	}

	lift := CollisionLift
	if p.Flags.Giant {
		lift = CollisionLiftGiant
	}

	impulse := mgl64.Vec3{
		n.X() * impulseMag,
		math.Max(0.5, n.Y()*impulseMag) + lift,
		n.Z() * impulseMag,
	}

	m.physics.ApplyImpulse(m.Ball.Handle, impulse)
	m.syncBallFromPhysics()

	m.recordTouch(p.SessionID)
	m.Ball.OwnerSessionID = p.SessionID
	m.emit(EventKindBallTouched, BallTouchedPayload{
		SessionID: p.SessionID,
		VX:        m.Ball.Velocity.X(), VY: m.Ball.Velocity.Y(), VZ: m.Ball.Velocity.Z(),
		X: m.Ball.Position.X(), Y: m.Ball.Position.Y(), Z: m.Ball.Position.Z(),
	})
}

// recordTouch shifts the touch history (§4.5): last becomes secondLast
// only when a different session touches the ball.
func (m *Model) recordTouch(sessionID string) {
	if m.Ball.LastTouchID != sessionID {
		m.Ball.SecondLastTouchID = m.Ball.LastTouchID
	}
	m.Ball.LastTouchID = sessionID
}

// Kick applies a client-supplied, already kickMult-scaled impulse while
// the player is within KickRange of the ball (§4.5 explicit kick).
func (m *Model) Kick(sessionID string, ix, iy, iz float64) bool {
	p, ok := m.Players[sessionID]
	if !ok {
		return false
	}
	m.syncBallFromPhysics()

	d := m.Ball.Position.Sub(mgl64.Vec3{p.X, p.Y, p.Z})
	if d.Len() > KickRange {
		return false
	}

	impulse := mgl64.Vec3{ix, iy + KickVerticalBoost, iz}
	m.physics.ApplyImpulse(m.Ball.Handle, impulse)
	m.syncBallFromPhysics()
	m.commitBallToPhysics()

	m.recordTouch(sessionID)
	m.Ball.OwnerSessionID = sessionID
	p.Stats.Shots++
	m.emit(EventKindBallKicked, BallKickedPayload{SessionID: sessionID, ImpulseX: ix, ImpulseY: iy, ImpulseZ: iz})
	return true
}
