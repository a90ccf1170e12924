package world

// WorldEvent is a discrete, reliable notification produced by a
// component during a tick (§4.9: player-joined, ball-touched,
// goal-scored, and the rest of the out-of-band event set). The sim
// engine bridge drains these once per tick and relays them as
// sim.Event values; world itself stays ignorant of wire framing.
type WorldEvent struct {
	Kind    string
	Payload any
}

const (
	EventKindPlayerJoined  = "player-joined"
	EventKindPlayerLeft    = "player-left"
	EventKindBallKicked    = "ball-kicked"
	EventKindBallTouched   = "ball-touched"
	EventKindPowerUpPicked = "powerup-collected"
	EventKindGoalScored    = "goal-scored"
	EventKindGameReset     = "game-reset"
)

// PlayerJoinedPayload accompanies EventKindPlayerJoined.
type PlayerJoinedPayload struct {
	SessionID string
	Team      Team
	Character string
}

// PlayerLeftPayload accompanies EventKindPlayerLeft.
type PlayerLeftPayload struct {
	SessionID string
}

// BallKickedPayload accompanies EventKindBallKicked.
type BallKickedPayload struct {
	SessionID string
	ImpulseX  float64
	ImpulseY  float64
	ImpulseZ  float64
}

// BallTouchedPayload accompanies EventKindBallTouched.
type BallTouchedPayload struct {
	SessionID string
	VX, VY, VZ float64
	X, Y, Z     float64
}

// PowerUpPickedPayload accompanies EventKindPowerUpPicked.
type PowerUpPickedPayload struct {
	SessionID string
	Type      PowerUpType
}

// GoalScoredPayload accompanies EventKindGoalScored.
type GoalScoredPayload struct {
	ScoringTeam Team
	ScorerID    string
	AssistID    string
	RedScore    int
	BlueScore   int
}

func (m *Model) emit(kind string, payload any) {
	m.pendingEvents = append(m.pendingEvents, WorldEvent{Kind: kind, Payload: payload})
}

// DrainEvents returns and clears every event recorded since the last
// drain, in emission order.
func (m *Model) DrainEvents() []WorldEvent {
	events := m.pendingEvents
	m.pendingEvents = nil
	return events
}
