// Package intake validates decoded client messages and stages them onto
// a match's loop as sim.Command values (§4.10's NetAdapter routing
// duties), mirroring the teacher's internal/net/intake/command.go.
package intake

import (
	"time"

	"goalline/server/internal/net/proto"
	"goalline/server/internal/sim"
)

// RejectReason enumerates why a staged command was refused. Loop.Enqueue
// only reports accept/reject, not which of its internal limits tripped
// (capacity vs per-actor throttle), so a rejected enqueue is reported
// under the single RejectQueueRejected reason rather than guessing.
const (
	RejectInvalidMessage = "invalid-message"
	RejectQueueRejected  = "queue-rejected"
)

// CommandContext carries the per-session hooks StageClientCommand needs:
// the loop to enqueue onto and the actor's session id.
type CommandContext struct {
	Loop     sim.Engine
	ActorID  string
	Now      func() time.Time
}

// StageClientCommand validates msg, stamps actor/issued-at metadata, and
// enqueues it onto ctx.Loop. It returns the staged command, whether it
// was accepted, and a reject reason when it was not.
func StageClientCommand(ctx CommandContext, msg proto.ClientMessage) (sim.Command, bool, string) {
	var zero sim.Command

	if msg.Type == proto.TypeChat && len(msg.Message) == 0 {
		return zero, false, RejectInvalidMessage
	}

	command, ok := proto.ClientCommand(msg)
	if !ok {
		return zero, false, RejectInvalidMessage
	}

	command.ActorID = ctx.ActorID
	if ctx.Now != nil {
		command.IssuedAt = ctx.Now()
	} else {
		command.IssuedAt = time.Now()
	}

	if ctx.Loop == nil {
		return zero, false, RejectQueueRejected
	}
	if !ctx.Loop.Enqueue(command) {
		return zero, false, RejectQueueRejected
	}
	return command, true, ""
}
