package world

import "testing"

func TestAdvancePowerUpsSpawnsOnIntervalUpToMax(t *testing.T) {
	m := newTestModel(t)
	// Each pass is placed on a spawn tick without advancing CurrentTick:
	// PowerUpLifetime (15 s) is shorter than PowerUpSpawnInterval (20 s),
	// so stepping a whole interval between passes would despawn each
	// power-up before the next one spawns.
	for i := 0; i < PowerUpMax; i++ {
		m.nextPowerUpSpawnTick = m.CurrentTick
		m.AdvancePowerUps()
	}

	if len(m.PowerUps) != PowerUpMax {
		t.Fatalf("expected %d power-ups spawned, got %d", PowerUpMax, len(m.PowerUps))
	}

	m.nextPowerUpSpawnTick = m.CurrentTick
	m.AdvancePowerUps()
	if len(m.PowerUps) != PowerUpMax {
		t.Fatalf("expected spawn capped at %d, got %d", PowerUpMax, len(m.PowerUps))
	}
}

func TestAdvancePowerUpsDespawnsAfterLifetime(t *testing.T) {
	m := newTestModel(t)
	m.trySpawnPowerUp()
	if len(m.PowerUps) != 1 {
		t.Fatalf("expected one power-up spawned, got %d", len(m.PowerUps))
	}

	m.CurrentTick = uint64(PowerUpLifetime/FixedSimDuration()) + 1
	m.nextPowerUpSpawnTick = m.CurrentTick + 1 // avoid triggering a fresh spawn in this pass
	m.AdvancePowerUps()

	if len(m.PowerUps) != 0 {
		t.Fatalf("expected power-up despawned after lifetime, got %d remaining", len(m.PowerUps))
	}
}

func TestApplyPowerUpEffectJumpAndKick(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")

	m.applyPowerUpEffect(p, PowerUpJump)
	if p.Multipliers.Jump != JumpPowerUpMultiplier {
		t.Fatalf("expected jump multiplier %v, got %v", JumpPowerUpMultiplier, p.Multipliers.Jump)
	}

	m.applyPowerUpEffect(p, PowerUpKick)
	if p.Multipliers.Kick != KickPowerUpMultiplier {
		t.Fatalf("expected kick multiplier %v, got %v", KickPowerUpMultiplier, p.Multipliers.Kick)
	}
}

func TestApplyPowerUpEffectExpiresBackToNeutral(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")

	m.applyPowerUpEffect(p, PowerUpJump)
	durationTicks := uint64(PowerUpEffectDuration / FixedSimDuration())

	m.CurrentTick += durationTicks + 1
	m.advanceActiveEffects()

	if p.Multipliers.Jump != 1 {
		t.Fatalf("expected jump multiplier reset to 1 after expiry, got %v", p.Multipliers.Jump)
	}
	if len(p.activeEffects) != 0 {
		t.Fatalf("expected expired effect removed, got %d remaining", len(p.activeEffects))
	}
}

func TestApplyPowerUpEffectOverlappingSameTypeResetsTimer(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")

	m.applyPowerUpEffect(p, PowerUpKick)
	firstExpiry := p.activeEffects[PowerUpKick].expiresAtTick

	m.CurrentTick += 5
	m.applyPowerUpEffect(p, PowerUpKick)
	secondExpiry := p.activeEffects[PowerUpKick].expiresAtTick

	if secondExpiry <= firstExpiry {
		t.Fatalf("expected re-pickup to push expiry later: first=%d second=%d", firstExpiry, secondExpiry)
	}
}

func TestApplyGiantProtectsNearbyBall(t *testing.T) {
	m := newTestModel(t)
	p := m.AddPlayer("p1", TeamRed, "")
	p.X, p.Y, p.Z = 0, 0.1, 0

	m.syncBallFromPhysics()
	m.Ball.Position[0] = 1 // within GiantBallSafetyRadius
	m.physics.SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)

	m.applyPowerUpEffect(p, PowerUpGiant)

	if !p.Flags.Giant {
		t.Fatal("expected giant flag set")
	}
	if m.Ball.Position.X() < GiantBallSafetyRadius {
		t.Fatalf("expected ball teleported beyond safety radius, got x=%v", m.Ball.Position.X())
	}
}
