package matchsvc

import (
	"time"

	"github.com/sasha-s/go-deadlock"

	"goalline/server/internal/sim"
	"goalline/server/internal/telemetry"
	"goalline/server/internal/world"
)

// Subscriber receives the outbound patch/event fan-out produced each
// Advance (§4.9's SnapshotPublisher). internal/net/ws.Session satisfies
// this structurally; matchsvc can't import that package (it already
// imports matchsvc to build sessions), so this narrow interface is the
// seam, mirroring the teacher's hub.go subscriber abstraction.
type Subscriber interface {
	Deliver(patches []sim.Patch, events []sim.Event)
}

// Match is one live soccer match: its world state, the fixed-timestep
// loop driving it, and the lifecycle timers the registry needs to know
// about (empty-match disposal). Matches are single-threaded cooperative
// executors (§5): every mutation — sim ticks, client commands, and
// timer firings — is serialized onto the loop's Run goroutine via
// Enqueue/Advance, so nothing here needs per-field locking.
type Match struct {
	ID       string
	JoinCode string
	Private  bool

	World *world.Model
	Loop  *sim.Loop

	// IdleTimeout overrides how long an empty match is kept alive
	// before disposal; zero means world.EmptyDisposeDelay. The
	// registry sets this from the server's configured idle timeout.
	IdleTimeout time.Duration

	stop      chan struct{}
	disposeAt cancelableTimer

	// onDrop is invoked once the empty-match grace period elapses with
	// no new join; the registry wires this to Remove. Run's panic
	// recovery also invokes it, so a corrupt match disposes itself the
	// same way an idle one does.
	onDrop func(id string)

	logger telemetry.Logger

	subMu       deadlock.Mutex
	subscribers map[string]Subscriber
	patchTick   uint64

	// Corrupt latches true once a sim-step panic is recovered (§7); set
	// before the forced game-over event is broadcast.
	Corrupt bool
}

// NewMatch constructs a match with a fresh world and loop, wired
// through engineBridge. seed makes each match's RNG (power-up type and
// placement) independently deterministic for tests.
func NewMatch(id string, private bool, joinCode string, seed int64, deps sim.Deps, cfg sim.LoopConfig) *Match {
	if deps.RNG == nil {
		deps.RNG = newRNG(seed)
	}
	if deps.Logger == nil {
		deps.Logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	if deps.Clock == nil {
		deps.Clock = telemetry.ClockFunc(time.Now)
	}

	w := world.New(world.Deps{
		RNG:     deps.RNG,
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
		Clock:   deps.Clock,
	})

	bridge := NewEngineBridge(w, deps)
	m := &Match{
		ID: id, JoinCode: joinCode, Private: private, World: w,
		logger:      deps.Logger,
		subscribers: make(map[string]Subscriber),
	}

	var tick uint64
	m.Loop = sim.NewLoop(bridge, cfg, sim.LoopHooks{
		NextTick: func() uint64 {
			tick++
			return tick
		},
		AfterStep: m.onAfterStep,
	})
	return m
}

// Subscribe registers a session to receive the patch/event fan-out
// produced after every Advance; a session already subscribed under
// sessionID is replaced.
func (m *Match) Subscribe(sessionID string, sub Subscriber) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subscribers[sessionID] = sub
}

// Unsubscribe removes a session from the fan-out roster. Safe to call
// on a sessionID that was never subscribed.
func (m *Match) Unsubscribe(sessionID string) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	delete(m.subscribers, sessionID)
}

// onAfterStep is wired as sim.LoopHooks.AfterStep: it drains the
// patch/event queues accumulated by the just-completed Advance and fans
// them out to every subscribed session. Events are discrete and
// reliable (§4.9), so they go out every tick; patches are the
// continuous diff channel and are decoupled to PATCH_RATE (half of
// TICK_RATE) by publishing only every other tick via a tick-parity
// counter, never a second ticker.
func (m *Match) onAfterStep(result sim.LoopStepResult) {
	events := m.Loop.DrainEvents()

	m.patchTick++
	var patches []sim.Patch
	if m.patchTick%2 == 0 {
		patches = m.Loop.DrainPatches()
	}

	if len(patches) == 0 && len(events) == 0 {
		return
	}
	m.broadcast(patches, events)
}

// broadcast copies the subscriber roster under lock, then delivers
// outside it so a slow/blocked write on one session can't stall the
// match loop or other sessions — mirroring the teacher's hub.go
// broadcastState split between holding the map lock and writing.
func (m *Match) broadcast(patches []sim.Patch, events []sim.Event) {
	m.subMu.Lock()
	subs := make([]Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		subs = append(subs, sub)
	}
	m.subMu.Unlock()

	for _, sub := range subs {
		sub.Deliver(patches, events)
	}
}

// Join adds a new player to the match and, when the player was added,
// cancels any pending empty-match dispose timer (§4.10, §5).
func (m *Match) Join(sessionID string, team world.Team, character string) *world.Player {
	p := m.World.AddPlayer(sessionID, team, character)
	if p != nil {
		m.disposeAt.Cancel()
	}
	return p
}

// Leave removes a player and, if the match is now empty, arms the
// dispose timer so the registry can reclaim it after EmptyDisposeDelay.
func (m *Match) Leave(sessionID string) {
	m.World.RemovePlayer(sessionID)
	if len(m.World.Players) == 0 {
		m.disposeAt.Arm(m.idleTimeout(), func() {
			if m.onDrop != nil {
				m.onDrop(m.ID)
			}
		})
	}
}

func (m *Match) idleTimeout() time.Duration {
	if m.IdleTimeout > 0 {
		return m.IdleTimeout
	}
	return world.EmptyDisposeDelay
}

// Run starts the fixed-timestep loop on the calling goroutine; callers
// typically invoke this via `go match.Run()`. A panicking sim step is
// recovered here (§7): the match is marked corrupt, a forced
// game-over/draw is broadcast to its sessions, and the match disposes
// itself through the same path an idle timeout uses, so one match's
// crash never takes down the process or any other concurrent match.
func (m *Match) Run() {
	if m.stop == nil {
		m.stop = make(chan struct{})
	}
	defer m.recoverPanic()
	m.Loop.Run(m.stop)
}

func (m *Match) recoverPanic() {
	r := recover()
	if r == nil {
		return
	}
	if m.logger != nil {
		m.logger.Printf("match %s: recovered panic in sim loop: %v", m.ID, r)
	}
	m.Corrupt = true
	m.broadcast(nil, []sim.Event{{
		Type: sim.EventGameOver,
		Payload: sim.GameOverEvent{
			RedScore:  m.World.Scores[world.TeamRed],
			BlueScore: m.World.Scores[world.TeamBlue],
			Winner:    "draw",
		},
	}})
	if m.onDrop != nil {
		m.onDrop(m.ID)
	}
}

// Dispose stops the loop, cancels pending timers, and releases every
// rigid body (§5, "On dispose: all timers are cancelled, all rigid
// bodies released").
func (m *Match) Dispose() {
	m.disposeAt.Cancel()
	if m.stop != nil {
		close(m.stop)
	}
	for sessionID := range m.World.Players {
		m.World.RemovePlayer(sessionID)
	}
}

