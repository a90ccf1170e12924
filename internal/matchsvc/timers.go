package matchsvc

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// cancelableTimer wraps time.AfterFunc with idempotent cancel and
// re-arm semantics, used for the empty-match dispose grace period and
// any other match-scoped timeout that must survive being cancelled
// from a different goroutine than the one that started it (§5,
// "Empty-match dispose timer is cancelable... cleared idempotently").
type cancelableTimer struct {
	mu     deadlock.Mutex
	timer  *time.Timer
	active bool
}

// Arm (re)starts the timer for d, cancelling any previous pending fire.
func (t *cancelableTimer) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.active = true
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		fired := t.active
		t.active = false
		t.mu.Unlock()
		if fired {
			fn()
		}
	})
}

// Cancel stops a pending fire. Safe to call even if never armed, or
// already fired; both are no-ops.
func (t *cancelableTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.active = false
}
