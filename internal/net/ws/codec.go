package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSubprotocol is advertised on upgrade to opt into the binary
// wire codec (§6 "Wire representation"), grounded in
// bormisov1-spaceship-online-game's binary-frame GameState channel,
// which uses the same msgpack/v5 library for its real-time payloads.
const MsgpackSubprotocol = "soccer.msgpack.v1"

// Codec encodes/decodes wire frames for one session and reports the
// websocket frame type its encoded output must be sent as.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	FrameType() int
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)     { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) FrameType() int                     { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error)     { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) FrameType() int                     { return websocket.BinaryMessage }

// JSONCodec is the default, human-inspectable wire codec.
var JSONCodec Codec = jsonCodec{}

// MsgpackCodec is the opt-in binary wire codec.
var MsgpackCodec Codec = msgpackCodec{}

// SelectCodec picks a session's codec from the subprotocol negotiated
// during upgrade (empty string means the client didn't ask for msgpack,
// or the server has it disabled).
func SelectCodec(negotiatedSubprotocol string, msgpackEnabled bool) Codec {
	if msgpackEnabled && negotiatedSubprotocol == MsgpackSubprotocol {
		return MsgpackCodec
	}
	return JSONCodec
}
