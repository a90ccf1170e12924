package matchsvc

import (
	"testing"

	"goalline/server/internal/sim"
)

func newTestRegistry() *Registry {
	return NewRegistry(sim.Deps{}, sim.LoopConfig{CommandCapacity: 32})
}

func TestRegistryCreatePublicMatchHasNoCode(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(CreateOptions{Private: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.JoinCode != "" {
		t.Fatalf("expected no join code for public match, got %q", m.JoinCode)
	}
	if _, ok := r.Lookup(m.ID); !ok {
		t.Fatal("expected match to be registered by id")
	}
}

func TestRegistryCreatePrivateMatchGetsUniqueCode(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(CreateOptions{Private: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.JoinCode) == 0 {
		t.Fatal("expected a join code for a private match")
	}
	if found, ok := r.LookupByCode(m.JoinCode); !ok || found.ID != m.ID {
		t.Fatal("expected match to be resolvable by its join code")
	}
}

func TestRegistryHonorsRequestedCode(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(CreateOptions{Private: true, RequestedCode: "AB23"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.JoinCode != "AB23" {
		t.Fatalf("expected requested code AB23, got %q", m.JoinCode)
	}
}

func TestRegistryRejectsInvalidRequestedCode(t *testing.T) {
	r := newTestRegistry()
	m, err := r.Create(CreateOptions{Private: true, RequestedCode: "lower"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.JoinCode == "lower" {
		t.Fatal("expected an invalid requested code to be replaced with a generated one")
	}
	if len(m.JoinCode) != 4 {
		t.Fatalf("expected a 4-char generated code, got %q", m.JoinCode)
	}
}

func TestRegistryCollisionFallsBackToAnotherCode(t *testing.T) {
	r := newTestRegistry()
	first, err := r.Create(CreateOptions{Private: true, RequestedCode: "QZ99"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Create(CreateOptions{Private: true, RequestedCode: "QZ99"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.JoinCode == first.JoinCode {
		t.Fatal("expected a colliding requested code to fall back to a distinct generated one")
	}
}

func TestRegistryRemoveClearsBothIndexes(t *testing.T) {
	r := newTestRegistry()
	m, _ := r.Create(CreateOptions{Private: true})
	r.Remove(m.ID)

	if _, ok := r.Lookup(m.ID); ok {
		t.Fatal("expected match to be gone from id index")
	}
	if _, ok := r.LookupByCode(m.JoinCode); ok {
		t.Fatal("expected match to be gone from code index")
	}
	if r.Len() != 0 {
		t.Fatalf("expected registry to be empty, got %d", r.Len())
	}
}

func TestRegistryRemoveUnknownIDIsNoop(t *testing.T) {
	r := newTestRegistry()
	r.Remove("does-not-exist")
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}
