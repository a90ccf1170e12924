package world

import "time"

// Tick & timing.
const (
	TickRate      = 60
	PatchRate     = 30
	FixedTimestep = 1.0 / TickRate

	GoalCooldown       = 5 * time.Second
	EmptyDisposeDelay  = 30 * time.Second
	MatchTimerStart    = 300 * time.Second
	GoalResetGrace     = 3 * time.Second
)

// Player limits.
const (
	MaxClients      = 4
	MaxPerTeam      = 2
	InputQueueMax   = 60
)

// Player integration tuning (§4.4).
const (
	MoveSpeed           = 8.0
	Gravity             = 20.0
	JumpForce           = 8.0
	MaxJumps            = 2
	GroundY             = 0.1
	GroundCheckEpsilon  = 0.05
	VelocitySmoothing   = 0.95
	DoubleJumpMultiplier = 0.8
)

// Arena geometry (§4.2).
const (
	ArenaHalfWidth = 14.5
	ArenaHalfDepth = 9.5
	WallHeight     = 10.0

	GoalLineX   = 10.8
	GoalBackX   = 17.0
	GoalWidth   = 5.0
	GoalHalfZ   = GoalWidth / 2
	GoalHeight  = 4.0
)

// Ball / contact tuning (§4.5).
const (
	BallRadius    = 0.8
	BallMass      = 1.0
	BallRestitution = 0.8

	PlayerRadius       = 0.4
	PlayerRadiusGiant  = 2.0

	BallStabilityHeightMin       = 0.3
	BallStabilityVelocityThresh  = 1.5
	BallStabilityDamping         = 0.92
	BallStabilityCorrection      = 0.3
	BallStabilityImpulseCap      = 2.0

	CollisionVelocityThreshold  = 3.0
	PlayerBallVelocityTransfer  = 0.7
	PlayerBallApproachBoost     = 1.4
	PlayerBallApproachDotMin    = 0.5
	PlayerBallRestitution       = 0.85
	PlayerBallImpulseMin        = 8.0

	CollisionLift      = 8.0
	CollisionLiftGiant = 10.0

	KickRange          = 3.0
	KickVerticalBoost  = 2.0

	MaxAngularVelocity = 15.0
)

// Boundary restitution (§4.6).
const (
	WallRestitution  = 0.3
	GoalRestitution  = 0.3
	GroundRestitution = 0.9
	CeilingDamping    = 0.1
)

// Power-up tuning (§4.8).
const (
	PowerUpMax             = 3
	PowerUpSpawnInterval   = 20 * time.Second
	PowerUpLifetime        = 15 * time.Second
	PowerUpEffectDuration  = 15 * time.Second
	PowerUpPickupRange     = 1.5

	SpeedPowerUpMultiplier = 2.0
	SpeedRampUpSteps       = 10
	SpeedRampUpDuration    = 500 * time.Millisecond
	SpeedRampDownSteps     = 20
	SpeedRampDownDuration  = 1 * time.Second

	JumpPowerUpMultiplier = 1.5
	KickPowerUpMultiplier = 2.0

	GiantBallSafetyRadius = 3.5
	GiantBallTeleportDist = 4.0
)

// Join codes (§4.10).
const (
	JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	JoinCodeLen      = 4
	JoinCodeMaxAttempts = 50
)

// Spawn positions (reset canonical config, §8).
const (
	RedSpawnX  = -6.0
	BlueSpawnX = 6.0
	SpawnY     = 0.1
	BallSpawnX = 0.0
	BallSpawnY = 2.0
	BallSpawnZ = 0.0
)
