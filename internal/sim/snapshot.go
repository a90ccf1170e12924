package sim

// Snapshot is the full authoritative state sent to a client on join or
// reconnect, from which subsequent patches are applied (§4.9).
type Snapshot struct {
	CurrentTick uint64  `json:"currentTick"`
	Phase       string  `json:"phase"`
	SecondsLeft float64 `json:"secondsLeft"`
	RedScore    int     `json:"redScore"`
	BlueScore   int     `json:"blueScore"`

	Players  []SnapshotPlayer  `json:"players"`
	PowerUps []SnapshotPowerUp `json:"powerUps"`
	Ball     SnapshotBall      `json:"ball"`
}

// SnapshotPlayer mirrors one connected player's full state.
type SnapshotPlayer struct {
	ID          string              `json:"id"`
	Team        string              `json:"team"`
	Character   string              `json:"character"`
	X           float64             `json:"x"`
	Y           float64             `json:"y"`
	Z           float64             `json:"z"`
	RotY        float64             `json:"rotY"`
	Flags       PlayerFlagsPayload  `json:"flags"`
	Multipliers SnapshotMultipliers `json:"multipliers"`
	Stats       PlayerStatsPayload  `json:"stats"`
	Tick        uint64              `json:"tick"`
}

// SnapshotMultipliers mirrors the active power-up multiplier set.
type SnapshotMultipliers struct {
	Speed float64 `json:"speed"`
	Jump  float64 `json:"jump"`
	Kick  float64 `json:"kick"`
}

// SnapshotPowerUp mirrors one power-up pickup in the world.
type SnapshotPowerUp struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// SnapshotBall mirrors the ball's full kinematic state.
type SnapshotBall struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Z              float64 `json:"z"`
	VX             float64 `json:"vx"`
	VY             float64 `json:"vy"`
	VZ             float64 `json:"vz"`
	QX             float64 `json:"qx"`
	QY             float64 `json:"qy"`
	QZ             float64 `json:"qz"`
	QW             float64 `json:"qw"`
	Tick           uint64  `json:"tick"`
	OwnerSessionID string  `json:"ownerSessionId,omitempty"`
}
