package sim

// PatchKind identifies the type of diff entry in the continuous
// broadcast channel (§4.9). Discrete reliable events live in events.go.
type PatchKind string

const (
	PatchBallPose       PatchKind = "ball_pose"
	PatchPlayerPose     PatchKind = "player_pose"
	PatchPlayerFlags    PatchKind = "player_flags"
	PatchPlayerStats    PatchKind = "player_stats"
	PatchPowerUpSpawned PatchKind = "powerup_spawned"
	PatchPowerUpRemoved PatchKind = "powerup_removed"
	PatchScore          PatchKind = "score"
	PatchTimer          PatchKind = "timer"
	PatchPhase          PatchKind = "phase"
)

// Patch is a diff entry applied to client-side state.
type Patch struct {
	Kind     PatchKind `json:"kind"`
	EntityID string    `json:"entityId,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// BallPosePayload mirrors the ball's pose/velocity/orientation/tick.
type BallPosePayload struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	VZ float64 `json:"vz"`
	QX float64 `json:"qx"`
	QY float64 `json:"qy"`
	QZ float64 `json:"qz"`
	QW float64 `json:"qw"`
	Tick    uint64 `json:"tick"`
	OwnerID string `json:"ownerId,omitempty"`
}

// PlayerPosePayload mirrors one player's kinematic pose.
type PlayerPosePayload struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	RotY float64 `json:"rotY"`
	Tick uint64  `json:"tick"`
}

// PlayerFlagsPayload mirrors the visual-only flags (§4.8 whitelist).
type PlayerFlagsPayload struct {
	Invisible bool `json:"invisible"`
	Giant     bool `json:"giant"`
}

// PlayerStatsPayload mirrors per-player contribution counters.
type PlayerStatsPayload struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Shots   int `json:"shots"`
}

// PowerUpSpawnedPayload mirrors a newly placed power-up.
type PowerUpSpawnedPayload struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// ScorePayload mirrors the team scoreboard.
type ScorePayload struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// TimerPayload mirrors the countdown remaining.
type TimerPayload struct {
	SecondsRemaining float64 `json:"secondsRemaining"`
}

// PhasePayload mirrors the match lifecycle phase.
type PhasePayload struct {
	Phase string `json:"phase"`
}
