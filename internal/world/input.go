package world

import "sort"

// InputQueue is a bounded FIFO of pending input records for one player
// (§4.3). It is touched only from the match executor.
type InputQueue struct {
	records []InputRecord
	cap     int
}

// NewInputQueue constructs an empty queue bounded at capacity.
func NewInputQueue(capacity int) *InputQueue {
	if capacity <= 0 {
		capacity = InputQueueMax
	}
	return &InputQueue{cap: capacity}
}

// Push appends a record, trimming the oldest entries once the queue
// exceeds its capacity.
func (q *InputQueue) Push(rec InputRecord) {
	q.records = append(q.records, rec)
	if over := len(q.records) - q.cap; over > 0 {
		q.records = q.records[over:]
	}
}

// Shift removes and returns the oldest record, reporting false on an
// empty queue.
func (q *InputQueue) Shift() (InputRecord, bool) {
	if len(q.records) == 0 {
		return InputRecord{}, false
	}
	rec := q.records[0]
	q.records = q.records[1:]
	return rec, true
}

// Len reports the number of pending records.
func (q *InputQueue) Len() int {
	return len(q.records)
}

// InputRouter accepts batched or single input records from sessions and
// stages them onto each player's InputQueue, enforcing the tick-ordering
// acceptance gate of §4.3.
type InputRouter struct {
	players map[string]*Player
}

// NewInputRouter constructs a router bound to the match's player table.
func NewInputRouter(players map[string]*Player) *InputRouter {
	return &InputRouter{players: players}
}

// Accept sorts a batch by ascending tick and enqueues every record whose
// tick is strictly greater than the player's lastReceivedTick at the
// moment it is considered, updating lastReceivedTick as it goes.
// Malformed records (out-of-range x/z) are dropped silently per §7.
func (r *InputRouter) Accept(sessionID string, batch []InputRecord) {
	player, ok := r.players[sessionID]
	if !ok || player == nil {
		return
	}

	sorted := make([]InputRecord, len(batch))
	copy(sorted, batch)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })

	for _, rec := range sorted {
		if !validInput(rec) {
			continue
		}
		if rec.Tick <= player.LastReceivedTick {
			continue
		}
		player.LastReceivedTick = rec.Tick
		player.Queue.Push(rec)
	}
}

func validInput(rec InputRecord) bool {
	return rec.X >= -1 && rec.X <= 1 && rec.Z >= -1 && rec.Z <= 1
}

// Consume removes exactly one record per call for SimLoop step 2. On an
// empty queue it replays lastInput with movement zeroed and the
// jumpRequestId preserved, so a repeated id will not re-fire the edge
// trigger.
func (r *InputRouter) Consume(player *Player) InputRecord {
	if rec, ok := player.Queue.Shift(); ok {
		player.LastInput = rec
		return rec
	}
	fallback := player.LastInput
	fallback.X = 0
	fallback.Z = 0
	return fallback
}
