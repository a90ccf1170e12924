package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AdvancePowerUps runs the spawn/despawn cadence of §4.8: every
// PowerUpSpawnInterval, spawn one power-up if under PowerUpMax; each
// individually despawns after PowerUpLifetime if uncollected.
func (m *Model) AdvancePowerUps() {
	if m.CurrentTick >= m.nextPowerUpSpawnTick {
		m.nextPowerUpSpawnTick = m.CurrentTick + uint64(PowerUpSpawnInterval/FixedSimDuration())
		m.trySpawnPowerUp()
	}

	lifetimeTicks := uint64(PowerUpLifetime / FixedSimDuration())
	for id, pu := range m.PowerUps {
		if m.CurrentTick >= pu.spawnedAtTick+lifetimeTicks {
			delete(m.PowerUps, id)
		}
	}

	m.advanceActiveEffects()
}

func (m *Model) trySpawnPowerUp() {
	if len(m.PowerUps) >= PowerUpMax {
		return
	}
	x, z := m.RandomArenaPoint()
	kind := powerUpTypes[m.rng.Intn(len(powerUpTypes))]
	m.nextPowerUpSeq++
	pu := &PowerUp{
		ID:   fmt.Sprintf("pu-%d", m.nextPowerUpSeq),
		Type: kind,
		X:    x,
		Y:    0.5,
		Z:    z,
	}
	pu.spawnedAtTick = m.CurrentTick
	m.PowerUps[pu.ID] = pu
}

// applyPowerUpEffect activates the picked-up effect on the player.
// Overlapping same-type pickups reset the timer (last-write-wins, §4.8).
func (m *Model) applyPowerUpEffect(p *Player, kind PowerUpType) {
	if p.activeEffects == nil {
		p.activeEffects = make(map[PowerUpType]*activeEffect)
	}

	durationTicks := uint64(PowerUpEffectDuration / FixedSimDuration())
	effect := &activeEffect{
		powerUpType:   kind,
		expiresAtTick: m.CurrentTick + durationTicks,
	}

	switch kind {
	case PowerUpSpeed:
		rampUpTicks := uint64(SpeedRampUpDuration / FixedSimDuration())
		rampDownTicks := uint64(SpeedRampDownDuration / FixedSimDuration())
		effect.ramp = &speedRamp{
			rampUpEndTick:     m.CurrentTick + rampUpTicks,
			rampDownStartTick: effect.expiresAtTick,
			rampDownEndTick:   effect.expiresAtTick + rampDownTicks,
		}
	case PowerUpJump:
		p.Multipliers.Jump = JumpPowerUpMultiplier
	case PowerUpKick:
		p.Multipliers.Kick = KickPowerUpMultiplier
	case PowerUpInvisible:
		p.Flags.Invisible = true
	case PowerUpGiant:
		m.applyGiant(p)
	}

	p.activeEffects[kind] = effect
}

func (m *Model) applyGiant(p *Player) {
	p.Flags.Giant = true
	m.protectBallFromGiant(p)
}

// protectBallFromGiant teleports the ball GiantBallTeleportDist away
// from the player (horizontally, at BallSpawnY height) with a small kick
// impulse if it sits within GiantBallSafetyRadius of a player turning
// giant, so the enlarged collider does not phase through or crush it.
func (m *Model) protectBallFromGiant(p *Player) {
	m.syncBallFromPhysics()
	d := m.Ball.Position.Sub(mgl64.Vec3{p.X, p.Y, p.Z})
	if d.Len() >= GiantBallSafetyRadius {
		return
	}

	dir := mgl64.Vec3{d.X(), 0, d.Z()}
	if dir.Len() < contactEpsilon {
		dir = mgl64.Vec3{1, 0, 0}
	} else {
		dir = dir.Mul(1 / dir.Len())
	}

	newPos := mgl64.Vec3{p.X, p.Y, p.Z}.Add(dir.Mul(GiantBallTeleportDist))
	newPos[1] = BallSpawnY
	m.Ball.Position = newPos
	m.physics.SetKinematicTranslation(m.Ball.Handle, newPos)
	m.physics.ApplyImpulse(m.Ball.Handle, dir.Mul(3))
}

// advanceActiveEffects decays expired effects back to their neutral
// multipliers and drives the speed ramp's three phases.
func (m *Model) advanceActiveEffects() {
	for _, p := range m.Players {
		for kind, effect := range p.activeEffects {
			if kind == PowerUpSpeed {
				m.advanceSpeedRamp(p, effect)
			}
			endTick := effect.expiresAtTick
			if effect.ramp != nil {
				endTick = effect.ramp.rampDownEndTick
			}
			if m.CurrentTick < endTick {
				continue
			}
			m.expireEffect(p, kind)
			delete(p.activeEffects, kind)
		}
	}
}

func (m *Model) advanceSpeedRamp(p *Player, effect *activeEffect) {
	ramp := effect.ramp
	if ramp == nil {
		return
	}
	tick := m.CurrentTick
	switch {
	case tick < ramp.rampUpEndTick:
		start := effect.expiresAtTick - uint64(PowerUpEffectDuration/FixedSimDuration())
		span := ramp.rampUpEndTick - start
		if span == 0 {
			p.Multipliers.Speed = SpeedPowerUpMultiplier
			return
		}
		frac := float64(tick-start) / float64(span)
		p.Multipliers.Speed = 1 + frac*(SpeedPowerUpMultiplier-1)
	case tick < ramp.rampDownStartTick:
		p.Multipliers.Speed = SpeedPowerUpMultiplier
	case tick < ramp.rampDownEndTick:
		span := ramp.rampDownEndTick - ramp.rampDownStartTick
		frac := float64(tick-ramp.rampDownStartTick) / float64(span)
		p.Multipliers.Speed = SpeedPowerUpMultiplier - frac*(SpeedPowerUpMultiplier-1)
	default:
		p.Multipliers.Speed = 1
	}
}

func (m *Model) expireEffect(p *Player, kind PowerUpType) {
	switch kind {
	case PowerUpSpeed:
		p.Multipliers.Speed = 1
	case PowerUpJump:
		p.Multipliers.Jump = 1
	case PowerUpKick:
		p.Multipliers.Kick = 1
	case PowerUpInvisible:
		p.Flags.Invisible = false
	case PowerUpGiant:
		p.Flags.Giant = false
	}
}
