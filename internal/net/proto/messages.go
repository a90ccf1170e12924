// Package proto defines the wire message catalog exchanged between a
// client and one match session (§6): the tagged-union client→server
// messages, the join handshake, and the encoders for the discrete
// server→client events and the delta snapshot channel.
package proto

import (
	"encoding/json"
	"fmt"

	"goalline/server/internal/sim"
)

// Version tracks the wire-protocol revision expected by clients.
const Version = 1

// Client message type identifiers (§6).
const (
	TypeJoin        = "join"
	TypeInput       = "input"
	TypeKick        = "kick"
	TypeJoinTeam    = "join-team"
	TypeChat        = "chat"
	TypeStartGame   = "start-game"
	TypeEndGame     = "end-game"
	TypeUpdateState = "update-state"
	TypePing        = "ping"
)

// ChatMaxLen enforces the 500-char chat cap (§6).
const ChatMaxLen = 500

// ClientMessage captures one inbound tagged message. Only the fields
// relevant to msg.Type are populated; the rest stay at their zero value.
type ClientMessage struct {
	Ver  int    `json:"ver,omitempty"`
	Type string `json:"type"`

	Join *JoinOptions `json:"join,omitempty"`

	Inputs []sim.InputPayload `json:"inputs,omitempty"`
	// Single-input shorthand, folded into Inputs by DecodeClientMessage.
	Tick          uint64  `json:"tick,omitempty"`
	X             float64 `json:"x,omitempty"`
	Z             float64 `json:"z,omitempty"`
	RotY          float64 `json:"rotY,omitempty"`
	JumpRequestID uint32  `json:"jumpRequestId,omitempty"`

	ImpulseX float64 `json:"impulseX,omitempty"`
	ImpulseY float64 `json:"impulseY,omitempty"`
	ImpulseZ float64 `json:"impulseZ,omitempty"`

	Name      string `json:"name,omitempty"`
	Team      string `json:"team,omitempty"`
	Character string `json:"character,omitempty"`

	Message string `json:"message,omitempty"`

	Key   string `json:"key,omitempty"`
	Value bool   `json:"value,omitempty"`
}

// JoinOptions mirrors the `join` message's structured payload (§4.10,
// §6: {name, team, character, map, isPublic, code, mode}).
type JoinOptions struct {
	Name         string `json:"name"`
	Team         string `json:"team"`
	Character    string `json:"character"`
	Map          string `json:"map"`
	IsPublic     bool   `json:"isPublic"`
	Code         string `json:"code"`
	Mode         string `json:"mode"`
	ResumeToken  string `json:"resumeToken,omitempty"`
}

// DecodeClientMessage parses a raw frame (already codec-decoded into
// JSON-shaped bytes) into a ClientMessage, folding the single-input
// shorthand into Inputs when the batch form is absent.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	if msg.Type == TypeInput && len(msg.Inputs) == 0 {
		msg.Inputs = []sim.InputPayload{{
			Tick: msg.Tick, X: msg.X, Z: msg.Z, RotY: msg.RotY, JumpRequestID: msg.JumpRequestID,
		}}
	}
	return msg, nil
}

// ClientCommand translates a decoded message into the sim.Command it
// stages onto the match loop. Join is handled separately by the session
// (it establishes the actor rather than acting through one), so it is
// never returned here.
func ClientCommand(msg ClientMessage) (sim.Command, bool) {
	switch msg.Type {
	case TypeInput:
		return sim.Command{Type: sim.CommandInput, Inputs: msg.Inputs}, true
	case TypeKick:
		return sim.Command{Type: sim.CommandKick, Kick: &sim.KickPayload{
			ImpulseX: msg.ImpulseX, ImpulseY: msg.ImpulseY, ImpulseZ: msg.ImpulseZ,
		}}, true
	case TypeJoinTeam:
		return sim.Command{Type: sim.CommandJoinTeam, JoinTeam: &sim.JoinTeamPayload{
			Name: msg.Name, Team: msg.Team, Character: msg.Character,
		}}, true
	case TypeChat:
		message := msg.Message
		if len(message) > ChatMaxLen {
			message = message[:ChatMaxLen]
		}
		return sim.Command{Type: sim.CommandChat, Chat: &sim.ChatPayload{Message: message}}, true
	case TypeStartGame:
		return sim.Command{Type: sim.CommandStartGame}, true
	case TypeEndGame:
		return sim.Command{Type: sim.CommandEndGame}, true
	case TypeUpdateState:
		return sim.Command{Type: sim.CommandUpdateState, UpdateState: &sim.UpdateStatePayload{
			Key: msg.Key, Value: msg.Value,
		}}, true
	case TypePing:
		return sim.Command{Type: sim.CommandPing}, true
	default:
		return sim.Command{}, false
	}
}

// ServerEvent wraps a sim.Event in its wire envelope. The type tag
// doubles as the event's discriminant, so clients can switch on `type`
// without a nested payload lookup.
type ServerEvent struct {
	Ver     int           `json:"ver"`
	Type    sim.EventType `json:"type"`
	Payload any           `json:"payload,omitempty"`
}

// EncodeEvent renders one discrete reliable event (§4.9).
func EncodeEvent(ev sim.Event) ServerEvent {
	return ServerEvent{Ver: Version, Type: ev.Type, Payload: ev.Payload}
}

const typeState = "state"

// StateSnapshot is the schema-driven delta channel payload (§4.9),
// published at PATCH_RATE.
type StateSnapshot struct {
	Ver     int          `json:"ver"`
	Type    string       `json:"type"`
	Tick    uint64       `json:"tick"`
	Patches []sim.Patch  `json:"patches"`
}

// EncodeStateSnapshot renders one patch-channel broadcast frame.
func EncodeStateSnapshot(tick uint64, patches []sim.Patch) StateSnapshot {
	return StateSnapshot{Ver: Version, Type: typeState, Tick: tick, Patches: patches}
}

// JoinResponse answers a `join` message with the full-state snapshot
// (so a late joiner never needs a separate keyframe round-trip) plus
// the resumable identity the client should hold onto.
type JoinResponse struct {
	Ver         int          `json:"ver"`
	SessionID   string       `json:"sessionId"`
	MatchID     string       `json:"matchId"`
	JoinCode    string       `json:"joinCode,omitempty"`
	ResumeToken string       `json:"resumeToken,omitempty"`
	Snapshot    sim.Snapshot `json:"snapshot"`
}
