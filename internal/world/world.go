package world

import (
	"math/rand"
	"time"

	"goalline/server/internal/physics"
	"goalline/server/internal/telemetry"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the match lifecycle state (§3).
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

// Deps bundles the runtime dependencies a WorldModel needs beyond pure
// game state: the physics contract, a deterministic RNG source, logging,
// and metrics/clock telemetry.
type Deps struct {
	Physics physics.World
	RNG     *rand.Rand
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
	Clock   telemetry.Clock
}

// Model is the authoritative per-match game state: players, ball,
// power-ups, scores, and timers. It owns no goroutines; SimLoop drives it.
type Model struct {
	physics physics.World
	rng     *rand.Rand
	logger  telemetry.Logger
	metrics telemetry.Metrics
	clock   telemetry.Clock

	Players map[string]*Player
	Ball    *Ball
	PowerUps map[string]*PowerUp

	Router *InputRouter

	Scores map[Team]int
	Timer  time.Duration
	Phase  Phase

	CurrentTick uint64

	lastGoalTime time.Time
	haveGoal     bool

	nextPowerUpSeq uint64
	nextPowerUpSpawnTick uint64

	goalResetAtTick uint64
	goalResetPending bool

	pendingEvents []WorldEvent

	// HostSessionID is the first player to join this match (§4.10:
	// "host only = first joiner by session order"). start-game/end-game
	// are rejected from any other session.
	HostSessionID string
}

// New constructs a world model with arena geometry and a ball already
// in place, and normalizes dependencies against sane fallbacks.
func New(deps Deps) *Model {
	if deps.Physics == nil {
		deps.Physics = physics.NewEngine()
	}
	if deps.RNG == nil {
		deps.RNG = rand.New(rand.NewSource(1))
	}
	if deps.Logger == nil {
		deps.Logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	if deps.Clock == nil {
		deps.Clock = telemetry.ClockFunc(time.Now)
	}

	BuildArena(deps.Physics)

	ball := NewBall()
	ball.Handle = deps.Physics.AddDynamicBody(physics.DynamicBodyDesc{
		Translation:    ball.Position,
		Sphere:         physics.SphereShape{Radius: BallRadius},
		Mass:           BallMass,
		Material:       physics.Material{Friction: 0.3, Restitution: BallRestitution},
		LinearDamping:  0.1,
		AngularDamping: 0.3,
		CCD:            true,
	})

	m := &Model{
		physics:  deps.Physics,
		rng:      deps.RNG,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		Players:  make(map[string]*Player),
		Ball:     ball,
		PowerUps: make(map[string]*PowerUp),
		Scores:   map[Team]int{TeamRed: 0, TeamBlue: 0},
		Timer:    MatchTimerStart,
		Phase:    PhaseWaiting,
	}
	m.Router = NewInputRouter(m.Players)
	m.nextPowerUpSpawnTick = uint64(PowerUpSpawnInterval / FixedSimDuration())
	return m
}

// StepPhysics advances the underlying PhysicsWorld by exactly one fixed
// tick (§4.1 step 4). Only the ball (the sole dynamic body) is
// integrated; player kinematic bodies move via SetKinematicTranslation
// in IntegratePlayers.
func (m *Model) StepPhysics() {
	m.physics.Step(FixedTimestep)
}

// FixedSimDuration returns the fixed per-tick duration as a time.Duration.
func FixedSimDuration() time.Duration {
	timestep := FixedTimestep
	return time.Duration(float64(time.Second) * timestep)
}

// ChooseTeam auto-balances team assignment per §8 scenario 2: prefer the
// requested team unless it is already full and the other has room.
func (m *Model) ChooseTeam(requested Team) Team {
	red, blue := m.teamCounts()
	other := TeamBlue
	if requested == TeamBlue {
		other = TeamRed
	}
	otherCount, requestedCount := blue, red
	if requested == TeamBlue {
		otherCount, requestedCount = red, blue
	}
	if requestedCount >= MaxPerTeam && otherCount < MaxPerTeam {
		return other
	}
	return requested
}

func (m *Model) teamCounts() (red, blue int) {
	for _, p := range m.Players {
		if p.Team == TeamRed {
			red++
		} else {
			blue++
		}
	}
	return
}

// AddPlayer creates and registers a kinematic player body, auto-balancing
// team assignment. Returns nil if the match is already at MaxClients.
func (m *Model) AddPlayer(sessionID string, requestedTeam Team, character string) *Player {
	if len(m.Players) >= MaxClients {
		return nil
	}
	if len(m.Players) == 0 {
		m.HostSessionID = sessionID
	}

	team := m.ChooseTeam(requestedTeam)
	player := NewPlayer(sessionID, team, character)
	player.Handle = m.physics.AddKinematicBody(physics.KinematicBodyDesc{
		Translation: mgl64.Vec3{player.X, player.Y, player.Z},
		Sphere:      physics.SphereShape{Radius: PlayerRadius},
	})
	m.Players[sessionID] = player
	m.Router.players = m.Players
	m.emit(EventKindPlayerJoined, PlayerJoinedPayload{SessionID: sessionID, Team: team, Character: character})
	return player
}

// RemovePlayer releases the player's rigid body and removes it from the
// match's ownership (§3, "must release on player leave").
func (m *Model) RemovePlayer(sessionID string) {
	player, ok := m.Players[sessionID]
	if !ok {
		return
	}
	m.physics.RemoveBody(player.Handle)
	delete(m.Players, sessionID)
	if m.Ball.LastTouchID == sessionID {
		m.Ball.LastTouchID = ""
	}
	if m.Ball.SecondLastTouchID == sessionID {
		m.Ball.SecondLastTouchID = ""
	}
	m.emit(EventKindPlayerLeft, PlayerLeftPayload{SessionID: sessionID})
}

// ResetPositions restores the canonical post-goal/post-join configuration
// (§8): ball at (0,2,0) with zero velocity, red at (-6,0.1,0), blue at
// (6,0.1,0).
func (m *Model) ResetPositions() {
	m.Ball.Position = mgl64.Vec3{BallSpawnX, BallSpawnY, BallSpawnZ}
	m.Ball.Velocity = mgl64.Vec3{}
	m.Ball.Orientation = mgl64.QuatIdent()
	m.Ball.LastTouchID = ""
	m.Ball.SecondLastTouchID = ""
	m.Ball.OwnerSessionID = ""
	m.physics.SetKinematicTranslation(m.Ball.Handle, m.Ball.Position)
	m.physics.SetLinearVelocity(m.Ball.Handle, mgl64.Vec3{})
	m.physics.SetAngularVelocity(m.Ball.Handle, mgl64.Vec3{})

	for _, p := range m.Players {
		x := RedSpawnX
		if p.Team == TeamBlue {
			x = BlueSpawnX
		}
		p.X, p.Y, p.Z = x, SpawnY, 0
		p.VX, p.VY, p.VZ = 0, 0, 0
		p.JumpCount = 0
		m.physics.SetKinematicTranslation(p.Handle, mgl64.Vec3{p.X, p.Y, p.Z})
	}
}

// RandomArenaPoint returns a uniformly random (x, z) within the arena
// interior, used by PowerUpService spawn placement.
func (m *Model) RandomArenaPoint() (x, z float64) {
	x = (m.rng.Float64()*2 - 1) * (ArenaHalfWidth - 1)
	z = (m.rng.Float64()*2 - 1) * (ArenaHalfDepth - 1)
	return
}
