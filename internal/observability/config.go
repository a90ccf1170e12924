// Package observability mounts optional debugging endpoints onto the
// server's HTTP mux without the core request handlers needing to know
// about them.
package observability

import (
	"net/http"
	"net/http/pprof"
)

// Config captures opt-in observability toggles that wire into the server.
type Config struct {
	EnablePprofTrace bool
}

// Mount registers the stdlib pprof endpoints under /debug/pprof/ when
// tracing is enabled. Left unmounted otherwise, since pprof exposes
// stack and heap data that shouldn't be reachable by default.
func Mount(mux *http.ServeMux, cfg Config) {
	if !cfg.EnablePprofTrace {
		return
	}
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}
