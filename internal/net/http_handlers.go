package net

import (
	"encoding/base64"
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"

	"goalline/server/internal/matchsvc"
	"goalline/server/internal/net/resume"
	"goalline/server/internal/net/ws"
	"goalline/server/internal/observability"
	"goalline/server/internal/telemetry"
)

// HandlerConfig collects the dependencies the HTTP surface needs to
// create matches and upgrade sessions onto them (§4.10).
type HandlerConfig struct {
	Registry       *matchsvc.Registry
	Resume         *resume.Issuer
	Logger         telemetry.Logger
	MsgpackEnabled bool
	Observability  observability.Config
}

type createMatchRequest struct {
	Private bool   `json:"private"`
	Code    string `json:"code,omitempty"`
}

type createMatchResponse struct {
	MatchID  string `json:"matchId"`
	JoinCode string `json:"joinCode,omitempty"`
	QRCodePNG string `json:"qrPNG,omitempty"`
}

// NewHandler builds the NetAdapter's HTTP surface: match creation,
// health, and the websocket upgrade endpoint, modeled on the teacher's
// internal/net/http_handlers.go mux layout.
func NewHandler(cfg HandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/matches", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		var req createMatchRequest
		if r.Body != nil {
			defer r.Body.Close()
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && req.Private {
				httpError(w, "invalid payload", nethttp.StatusBadRequest)
				return
			}
		}

		m, err := cfg.Registry.Create(matchsvc.CreateOptions{Private: req.Private, RequestedCode: req.Code})
		if err != nil {
			httpError(w, "failed to create match", nethttp.StatusInternalServerError)
			return
		}
		go m.Run()

		resp := createMatchResponse{MatchID: m.ID, JoinCode: m.JoinCode}
		if m.JoinCode != "" {
			if png, err := qrcode.Encode(m.JoinCode, qrcode.Medium, 256); err == nil {
				resp.QRCodePNG = base64.StdEncoding.EncodeToString(png)
			} else {
				logger.Printf("qr encode failed for match %s: %v", m.ID, err)
			}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		Subprotocols:    []string{ws.MsgpackSubprotocol},
		CheckOrigin:     func(r *nethttp.Request) bool { return true },
	}

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		code := r.URL.Query().Get("code")
		matchID := r.URL.Query().Get("matchId")

		var m *matchsvc.Match
		var ok bool
		if code != "" {
			m, ok = cfg.Registry.LookupByCode(code)
		} else if matchID != "" {
			m, ok = cfg.Registry.Lookup(matchID)
		}
		if !ok {
			httpError(w, "unknown match", nethttp.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("upgrade failed: %v", err)
			return
		}

		codec := ws.SelectCodec(conn.Subprotocol(), cfg.MsgpackEnabled)
		session := ws.NewSession(ws.SessionConfig{
			Conn:    conn,
			Match:   m,
			Codec:   codec,
			Resume:  cfg.Resume,
			Logger:  logger,
			Now:     time.Now,
		})
		go session.Serve()
	})

	observability.Mount(mux, cfg.Observability)

	return mux
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
