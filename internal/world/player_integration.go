package world

import "github.com/go-gl/mathgl/mgl64"

// IntegratePlayers runs SimLoop step 3 for every player: consume one
// input, integrate horizontal velocity with instant-stop, integrate
// vertical velocity under gravity, process the jump edge-trigger, clamp
// to arena bounds, commit the kinematic pose, and check power-up pickup.
func (m *Model) IntegratePlayers(dt float64) {
	for _, player := range m.Players {
		input := m.Router.Consume(player)
		player.RotY = input.RotY

		m.integrateOnePlayer(player, input, dt)
		m.checkPowerUpPickup(player)
	}
}

func (m *Model) integrateOnePlayer(p *Player, input InputRecord, dt float64) {
	speed := MoveSpeed * p.Multipliers.Speed

	if input.X == 0 && input.Z == 0 {
		p.VX, p.VZ = 0, 0
	} else {
		p.VX += (input.X*speed - p.VX) * VelocitySmoothing
		p.VZ += (input.Z*speed - p.VZ) * VelocitySmoothing
	}

	p.VY -= Gravity * dt

	if p.Y <= GroundY+GroundCheckEpsilon && p.VY <= 0 {
		p.JumpCount = 0
	}

	applyJumpEdgeTrigger(p, input)

	newX := p.X + p.VX*dt
	newY := p.Y + p.VY*dt
	newZ := p.Z + p.VZ*dt

	if newY < GroundY {
		newY = GroundY
		p.VY = 0
		p.JumpCount = 0
	}

	if newX > ArenaHalfWidth {
		newX = ArenaHalfWidth
	} else if newX < -ArenaHalfWidth {
		newX = -ArenaHalfWidth
	}
	if newZ > ArenaHalfDepth {
		newZ = ArenaHalfDepth
	} else if newZ < -ArenaHalfDepth {
		newZ = -ArenaHalfDepth
	}

	p.X, p.Y, p.Z = newX, newY, newZ
	m.physics.SetKinematicTranslation(p.Handle, mgl64.Vec3{p.X, p.Y, p.Z})
}

// applyJumpEdgeTrigger fires a jump iff the incoming jumpRequestId is
// strictly greater than the last one processed and the player has not
// exhausted MaxJumps (§4.3).
func applyJumpEdgeTrigger(p *Player, input InputRecord) {
	if input.JumpRequestID <= p.LastProcessedJumpRequestID {
		return
	}
	if p.JumpCount >= MaxJumps {
		return
	}

	p.LastProcessedJumpRequestID = input.JumpRequestID
	p.JumpCount++

	force := JumpForce * p.Multipliers.Jump
	if p.JumpCount == 2 {
		force = JumpForce * p.Multipliers.Jump * DoubleJumpMultiplier
	}
	p.VY = force
}

// checkPowerUpPickup collects any power-up within horizontal range of
// the player and applies its effect (§4.8).
func (m *Model) checkPowerUpPickup(p *Player) {
	for id, pu := range m.PowerUps {
		dx := pu.X - p.X
		dz := pu.Z - p.Z
		dist := dx*dx + dz*dz
		if dist >= PowerUpPickupRange*PowerUpPickupRange {
			continue
		}
		m.applyPowerUpEffect(p, pu.Type)
		m.emit(EventKindPowerUpPicked, PowerUpPickedPayload{SessionID: p.SessionID, Type: pu.Type})
		delete(m.PowerUps, id)
	}
}
