package sim

import (
	"math/rand"

	"goalline/server/internal/telemetry"
)

// Deps carries shared infrastructure dependencies required by the
// simulation engine, kept as narrow interfaces so internal/world and
// internal/sim never depend on the concrete logging backend.
type Deps struct {
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
	Clock   telemetry.Clock
	RNG     *rand.Rand
}
