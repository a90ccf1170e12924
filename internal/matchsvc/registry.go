package matchsvc

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"goalline/server/internal/sim"
	"goalline/server/internal/world"
)

// Registry maps joinCode -> Match for private matches and id -> Match
// for every match, guarded by one short-held lock (§4.10, §5:
// "MatchRegistry and the NetAdapter share process-wide state with
// small critical sections... guarded by a short-held lock").
type Registry struct {
	mu       sync.Mutex
	byID     map[string]*Match
	byCode   map[string]*Match
	nextSeq  int64

	deps    sim.Deps
	loopCfg sim.LoopConfig

	// IdleTimeout overrides world.EmptyDisposeDelay for every match
	// this registry creates; zero keeps the world-layer default.
	IdleTimeout time.Duration
}

// NewRegistry constructs an empty registry. deps/loopCfg are the
// baseline dependencies/tunables applied to every match it creates.
func NewRegistry(deps sim.Deps, loopCfg sim.LoopConfig) *Registry {
	return &Registry{
		byID:    make(map[string]*Match),
		byCode:  make(map[string]*Match),
		deps:    deps,
		loopCfg: loopCfg,
	}
}

// CreateOptions carries the match-creation fields the registry acts on
// (§4.10, §6): whether the match is private and an optional
// caller-supplied code. Other join options (such as mode) are not
// carried here.
type CreateOptions struct {
	Private      bool
	RequestedCode string
}

// Create registers a new match, minting a join code for private
// matches per §4.10: accept a valid caller-supplied 4-char code, or
// generate a unique one (up to JoinCodeMaxAttempts, else a short
// random fallback).
func (r *Registry) Create(opts CreateOptions) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID()
	code := ""
	if opts.Private {
		var err error
		code, err = r.reserveCodeLocked(opts.RequestedCode)
		if err != nil {
			return nil, err
		}
	}

	m := NewMatch(id, opts.Private, code, r.nextSeq, r.deps, r.loopCfg)
	m.IdleTimeout = r.IdleTimeout
	m.onDrop = func(matchID string) { r.Remove(matchID) }
	m.disposeAt.Arm(m.idleTimeout(), func() { m.onDrop(m.ID) })

	r.byID[id] = m
	if code != "" {
		r.byCode[code] = m
	}
	return m, nil
}

// Lookup resolves a match by id.
func (r *Registry) Lookup(id string) (*Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	return m, ok
}

// LookupByCode resolves a private match by its join code.
func (r *Registry) LookupByCode(code string) (*Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byCode[code]
	return m, ok
}

// Remove disposes and unregisters a match, idempotent on an unknown id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	m, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
		if m.JoinCode != "" {
			delete(r.byCode, m.JoinCode)
		}
	}
	r.mu.Unlock()
	if ok {
		m.Dispose()
	}
}

// Len reports the number of live matches, for diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *Registry) nextID() string {
	r.nextSeq++
	return fmt.Sprintf("match-%d", r.nextSeq)
}

func (r *Registry) reserveCodeLocked(requested string) (string, error) {
	if requested != "" && validJoinCode(requested) {
		if _, taken := r.byCode[requested]; !taken {
			return requested, nil
		}
	}
	for attempt := 0; attempt < world.JoinCodeMaxAttempts; attempt++ {
		code, err := randomJoinCode()
		if err != nil {
			return "", err
		}
		if _, taken := r.byCode[code]; !taken {
			return code, nil
		}
	}
	// Fallback: a short random suffix virtually never collides twice in
	// a row, and a stuck registry should never block match creation.
	return randomJoinCode()
}

func validJoinCode(code string) bool {
	if len(code) != world.JoinCodeLen {
		return false
	}
	for _, r := range code {
		if !containsRune(world.JoinCodeAlphabet, r) {
			return false
		}
	}
	return true
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func randomJoinCode() (string, error) {
	alphabet := world.JoinCodeAlphabet
	out := make([]byte, world.JoinCodeLen)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
