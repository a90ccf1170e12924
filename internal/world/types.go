package world

import (
	"goalline/server/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

// Team identifies a side.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// PowerUpType enumerates the five effect kinds (§4.8).
type PowerUpType string

const (
	PowerUpSpeed     PowerUpType = "speed"
	PowerUpKick      PowerUpType = "kick"
	PowerUpJump      PowerUpType = "jump"
	PowerUpInvisible PowerUpType = "invisible"
	PowerUpGiant     PowerUpType = "giant"
)

var powerUpTypes = [...]PowerUpType{
	PowerUpSpeed, PowerUpKick, PowerUpJump, PowerUpInvisible, PowerUpGiant,
}

// InputRecord is one client-submitted input sample (§4.3).
type InputRecord struct {
	Tick          uint64
	X             float64
	Z             float64
	RotY          float64
	JumpRequestID uint32
}

// Stats tracks a player's cumulative contribution to the match.
type Stats struct {
	Goals   int
	Assists int
	Shots   int
}

// Multipliers holds the active power-up multipliers for a player.
type Multipliers struct {
	Speed float64
	Jump  float64
	Kick  float64
}

// DefaultMultipliers returns the neutral (no power-up) multiplier set.
func DefaultMultipliers() Multipliers {
	return Multipliers{Speed: 1, Jump: 1, Kick: 1}
}

// Flags holds the visual-only state-update keys (§4.8, whitelist
// {invisible, giant}).
type Flags struct {
	Invisible bool
	Giant     bool
}

// Player is one of at most MaxClients kinematic actors in a match.
type Player struct {
	SessionID string
	Team      Team
	Character string

	Handle physics.BodyHandle

	X, Y, Z float64
	RotY    float64

	VX, VY, VZ float64

	JumpCount                 int
	LastProcessedJumpRequestID uint32

	Queue              *InputQueue
	LastInput          InputRecord
	LastReceivedTick   uint64

	ResetPosition bool

	Multipliers Multipliers
	Flags       Flags
	Stats       Stats

	activeEffects map[PowerUpType]*activeEffect
}

// NewPlayer constructs a player with zeroed kinematic state and default
// multipliers, spawned at the given team's canonical position.
func NewPlayer(sessionID string, team Team, character string) *Player {
	x := RedSpawnX
	if team == TeamBlue {
		x = BlueSpawnX
	}
	return &Player{
		SessionID:   sessionID,
		Team:        team,
		Character:   character,
		X:           x,
		Y:           SpawnY,
		Z:           0,
		Queue:       NewInputQueue(InputQueueMax),
		Multipliers: DefaultMultipliers(),
	}
}

// Ball is the single dynamic rigid body per match.
type Ball struct {
	Handle physics.BodyHandle

	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat

	Tick            uint64
	OwnerSessionID  string
	LastTouchID       string
	SecondLastTouchID string
}

// NewBall constructs a ball at the canonical reset position.
func NewBall() *Ball {
	return &Ball{
		Position:    mgl64.Vec3{BallSpawnX, BallSpawnY, BallSpawnZ},
		Orientation: mgl64.QuatIdent(),
	}
}

// PowerUp is a ground pickup, despawning after PowerUpLifetime if
// uncollected.
type PowerUp struct {
	ID      string
	Type    PowerUpType
	X, Y, Z float64

	spawnedAtTick uint64
}

type activeEffect struct {
	powerUpType PowerUpType
	expiresAtTick uint64
	ramp          *speedRamp
}

type speedRamp struct {
	// rampUpEndTick marks when the speed multiplier finishes ramping to
	// SpeedPowerUpMultiplier; rampDownStartTick marks when it begins
	// decaying back to 1, both relative to pickup tick.
	rampUpEndTick     uint64
	rampDownStartTick uint64
	rampDownEndTick   uint64
}
