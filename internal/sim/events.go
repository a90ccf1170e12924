package sim

// EventType enumerates discrete, reliable out-of-band notifications
// delivered alongside the continuous patch channel (§4.9). These never
// ride the per-tick patch stream because clients must not miss them on
// a dropped frame.
type EventType string

const (
	EventPlayerJoined   EventType = "player-joined"
	EventPlayerLeft     EventType = "player-left"
	EventRoomCode       EventType = "room-code"
	EventBallKicked     EventType = "ball-kicked"
	EventBallTouched    EventType = "ball-touched"
	EventPowerUpPicked  EventType = "powerup-collected"
	EventGoalScored     EventType = "goal-scored"
	EventGameStarted    EventType = "game-started"
	EventGameOver       EventType = "game-over"
	EventGameReset      EventType = "game-reset"
	EventChatMessage    EventType = "chat-message"
	EventPong           EventType = "pong"
)

// Event is one discrete notification queued for reliable delivery.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// PlayerJoinedEvent announces a new roster entry.
type PlayerJoinedEvent struct {
	ID        string `json:"id"`
	Team      string `json:"team"`
	Character string `json:"character"`
}

// PlayerLeftEvent announces a roster departure.
type PlayerLeftEvent struct {
	ID string `json:"id"`
}

// RoomCodeEvent carries the join code for a newly created match.
type RoomCodeEvent struct {
	Code string `json:"code"`
}

// BallKickedEvent announces an explicit kick action.
type BallKickedEvent struct {
	PlayerID string  `json:"playerId"`
	Power    float64 `json:"power"`
}

// BallTouchedEvent announces a contact-resolution touch, carrying the
// ball's post-contact velocity and position (§4.9).
type BallTouchedEvent struct {
	PlayerID string  `json:"playerId"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	VZ       float64 `json:"vz"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// PowerUpPickedEvent announces a pickup and its effect.
type PowerUpPickedEvent struct {
	PlayerID string `json:"playerId"`
	Type     string `json:"type"`
}

// GoalScoredEvent announces adjudicated goal attribution.
type GoalScoredEvent struct {
	ScoringTeam string `json:"scoringTeam"`
	ScorerID    string `json:"scorerId,omitempty"`
	AssistID    string `json:"assistId,omitempty"`
	RedScore    int    `json:"redScore"`
	BlueScore   int    `json:"blueScore"`
}

// GameStartedEvent announces the transition into PhasePlaying.
type GameStartedEvent struct{}

// GameOverEvent announces the transition into PhaseEnded.
type GameOverEvent struct {
	RedScore  int    `json:"redScore"`
	BlueScore int    `json:"blueScore"`
	Winner    string `json:"winner,omitempty"`
}

// GameResetEvent announces a post-goal position reset completing.
type GameResetEvent struct{}

// ChatMessageEvent relays a chat message to the room.
type ChatMessageEvent struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}
