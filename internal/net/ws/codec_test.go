package ws

import (
	"testing"

	"github.com/gorilla/websocket"
)

func TestSelectCodecDefaultsToJSON(t *testing.T) {
	if SelectCodec("", true) != JSONCodec {
		t.Fatal("expected JSON codec with no negotiated subprotocol")
	}
	if SelectCodec(MsgpackSubprotocol, false) != JSONCodec {
		t.Fatal("expected JSON codec when msgpack is disabled server-side")
	}
}

func TestSelectCodecMsgpackWhenNegotiated(t *testing.T) {
	codec := SelectCodec(MsgpackSubprotocol, true)
	if codec != MsgpackCodec {
		t.Fatal("expected msgpack codec when negotiated and enabled")
	}
	if codec.FrameType() != websocket.BinaryMessage {
		t.Fatalf("expected binary frame type, got %d", codec.FrameType())
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	type sample struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	data, err := JSONCodec.Marshal(sample{A: 1, B: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out sample
	if err := JSONCodec.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.A != 1 || out.B != "x" {
		t.Fatalf("unexpected round trip result: %+v", out)
	}
}

func TestMsgpackCodecRoundTrip(t *testing.T) {
	type sample struct {
		A int    `msgpack:"a"`
		B string `msgpack:"b"`
	}
	data, err := MsgpackCodec.Marshal(sample{A: 1, B: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out sample
	if err := MsgpackCodec.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.A != 1 || out.B != "x" {
		t.Fatalf("unexpected round trip result: %+v", out)
	}
}
