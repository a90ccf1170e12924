package sim

// EngineCore is the narrow contract the fixed-timestep Loop drives each
// tick. A match wires its own adapter (internal/matchsvc) around
// internal/world.Model to satisfy this interface, keeping the loop
// itself ignorant of rigid-body/contact/goal semantics.
type EngineCore interface {
	// Deps returns the injected dependencies backing this engine.
	Deps() Deps

	// Apply stages a batch of commands for the next Step, in the order
	// they were drained from the command buffer.
	Apply(commands []Command) error

	// Step advances the simulation by exactly one fixed tick.
	Step()

	// Snapshot returns a full authoritative copy of the current state.
	Snapshot() Snapshot

	// DrainPatches returns and clears the patches produced since the
	// last call, for broadcast on the continuous channel.
	DrainPatches() []Patch

	// SnapshotPatches returns a full-state patch set without clearing
	// the pending diff buffer, for late-joining clients.
	SnapshotPatches() []Patch

	// RestorePatches re-queues patches ahead of newly produced ones,
	// used when a send attempt fails and must be retried.
	RestorePatches(patches []Patch)

	// DrainEvents returns and clears discrete reliable events produced
	// since the last call.
	DrainEvents() []Event
}

// Engine is the public surface the Loop exposes to its owner (a Match).
// It mirrors EngineCore plus the scheduling controls a match needs
// beyond pure simulation (enqueueing commands, advancing wall time).
type Engine interface {
	EngineCore

	// Enqueue stages a command for processing on a future tick, subject
	// to per-actor throttling. Returns false if the command was dropped.
	Enqueue(cmd Command) bool

	// CurrentTick reports the most recently completed tick number.
	CurrentTick() uint64
}
