// Package ws implements the per-session websocket handler loop (§4.10's
// NetAdapter), modeled on the teacher's internal/net/ws/session.go: one
// goroutine per connection that decodes tagged messages, stages them
// onto the owning match's loop, and relays the patch/event channels
// back out.
package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"goalline/server/internal/matchsvc"
	"goalline/server/internal/net/intake"
	"goalline/server/internal/net/proto"
	"goalline/server/internal/net/resume"
	"goalline/server/internal/sim"
	"goalline/server/internal/telemetry"
	"goalline/server/internal/world"
)

// SessionConfig collects the dependencies one websocket session needs.
type SessionConfig struct {
	Conn   *websocket.Conn
	Match  *matchsvc.Match
	Codec  Codec
	Resume *resume.Issuer
	Logger telemetry.Logger
	Now    func() time.Time
}

// Session coordinates a single websocket connection's join-through-
// disconnect lifecycle.
type Session struct {
	conn   *websocket.Conn
	match  *matchsvc.Match
	codec  Codec
	resume *resume.Issuer
	logger telemetry.Logger
	now    func() time.Time

	sessionID string
	writeMu   sync.Mutex
}

// NewSession constructs a session handler for the given connection.
func NewSession(cfg SessionConfig) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Session{
		conn:   cfg.Conn,
		match:  cfg.Match,
		codec:  cfg.Codec,
		resume: cfg.Resume,
		logger: logger,
		now:    now,
	}
}

// Serve runs the session to completion: the join handshake, then the
// read loop that stages commands until the connection drops.
func (s *Session) Serve() {
	defer s.conn.Close()

	join, ok := s.awaitJoin()
	if !ok {
		return
	}

	player, resumed := s.resolveJoin(join)
	if player == nil {
		s.writeReject("match is full")
		return
	}
	s.sessionID = player.SessionID

	if !resumed && s.match.JoinCode != "" {
		s.writeEvent(sim.Event{Type: sim.EventRoomCode, Payload: sim.RoomCodeEvent{Code: s.match.JoinCode}})
	}

	token := ""
	if s.resume != nil {
		if t, err := s.resume.Issue(s.match.ID, s.sessionID, string(player.Team)); err == nil {
			token = t
		} else {
			s.logger.Printf("resume token issue failed for %s: %v", s.sessionID, err)
		}
	}

	bridge := s.match.Loop
	snap := bridge.Snapshot()
	s.writeJSON(proto.JoinResponse{
		Ver:         proto.Version,
		SessionID:   s.sessionID,
		MatchID:     s.match.ID,
		JoinCode:    s.match.JoinCode,
		ResumeToken: token,
		Snapshot:    snap,
	})

	s.match.Subscribe(s.sessionID, s)

	s.readLoop()

	s.match.Unsubscribe(s.sessionID)
	s.match.Leave(s.sessionID)
}

// Deliver satisfies matchsvc.Subscriber: it fans out the patch/event
// batch produced by the match's AfterStep hook (§4.9's
// SnapshotPublisher) onto this session's connection. Runs on the match
// goroutine, so writes are serialized against readLoop's own responses
// via writeMu rather than the loop's command-staging lock.
func (s *Session) Deliver(patches []sim.Patch, events []sim.Event) {
	if len(patches) > 0 {
		s.writeJSON(proto.EncodeStateSnapshot(s.match.Loop.CurrentTick(), patches))
	}
	for _, ev := range events {
		s.writeEvent(ev)
	}
}

func (s *Session) awaitJoin() (proto.ClientMessage, bool) {
	frameType, raw, err := s.conn.ReadMessage()
	if err != nil {
		return proto.ClientMessage{}, false
	}
	msg, err := s.decodeFrame(frameType, raw)
	if err != nil || msg.Type != proto.TypeJoin {
		s.logger.Printf("expected join as first message, got error=%v type=%q", err, msg.Type)
		return proto.ClientMessage{}, false
	}
	return msg, true
}

func (s *Session) resolveJoin(msg proto.ClientMessage) (*world.Player, bool) {
	opts := msg.Join
	if opts == nil {
		opts = &proto.JoinOptions{}
	}

	if opts.ResumeToken != "" && s.resume != nil {
		if claims, err := s.resume.Verify(opts.ResumeToken); err == nil && claims.MatchID == s.match.ID {
			if p, exists := s.match.World.Players[claims.SessionID]; exists {
				return p, true
			}
		}
	}

	sessionID := uuid.New().String()
	team := world.Team(opts.Team)
	return s.match.Join(sessionID, team, opts.Character), false
}

func (s *Session) readLoop() {
	for {
		frameType, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := s.decodeFrame(frameType, raw)
		if err != nil {
			s.logger.Printf("discarding malformed message from %s: %v", s.sessionID, err)
			continue
		}

		if msg.Type == proto.TypeJoinTeam || msg.Type == proto.TypeInput || msg.Type == proto.TypeKick ||
			msg.Type == proto.TypeChat || msg.Type == proto.TypeStartGame || msg.Type == proto.TypeEndGame ||
			msg.Type == proto.TypeUpdateState || msg.Type == proto.TypePing {
			_, _, reason := intake.StageClientCommand(intake.CommandContext{
				Loop: s.match.Loop, ActorID: s.sessionID, Now: s.now,
			}, msg)
			if reason != "" {
				s.logger.Printf("command rejected for %s: %s", s.sessionID, reason)
			}
			continue
		}
		s.logger.Printf("unknown message type %q from %s", msg.Type, s.sessionID)
	}
}

func (s *Session) decodeFrame(frameType int, raw []byte) (proto.ClientMessage, error) {
	var msg proto.ClientMessage
	if err := s.codec.Unmarshal(raw, &msg); err != nil {
		return msg, err
	}
	if msg.Type == proto.TypeInput && len(msg.Inputs) == 0 {
		msg.Inputs = []sim.InputPayload{{
			Tick: msg.Tick, X: msg.X, Z: msg.Z, RotY: msg.RotY, JumpRequestID: msg.JumpRequestID,
		}}
	}
	return msg, nil
}

func (s *Session) writeJSON(v any) bool {
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.logger.Printf("failed to encode response for %s: %v", s.sessionID, err)
		return false
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(s.codec.FrameType(), data) == nil
}

func (s *Session) writeEvent(ev sim.Event) bool {
	return s.writeJSON(proto.EncodeEvent(ev))
}

func (s *Session) writeReject(reason string) {
	s.writeJSON(struct {
		Ver    int    `json:"ver"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}{Ver: proto.Version, Type: "join-rejected", Reason: reason})
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	s.conn.WriteMessage(websocket.CloseMessage, message)
}
