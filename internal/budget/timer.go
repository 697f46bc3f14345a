package budget

import "time"

// FlushInterval is the watermark for periodic ledger persistence while a
// session runs: at most this much elapsed time can be lost to a crash.
const FlushInterval = 300

// Timer drives a live countdown against the yearly ledger. Elapsed time is
// always recomputed from the stored start timestamp, never from counting
// ticks, so time spent with the process suspended is fully accounted for
// on the next tick.
type Timer struct {
	ledger *Ledger
	stats  *Stats

	// now is swapped out in tests to simulate clock advance.
	now func() time.Time

	// Exhausted, when set, fires after the zero-floor auto-stop.
	Exhausted func()

	running     bool
	category    Category
	startedAt   time.Time
	atStart     int64
	lastFlushed int64
}

func NewTimer(ledger *Ledger, stats *Stats) *Timer {
	return &Timer{
		ledger: ledger,
		stats:  stats,
		now:    time.Now,
	}
}

// Start begins a session for the given category. It is a no-op returning
// false while a session is already running; one in-flight session at a time
// is the only concurrency rule the timer needs.
func (t *Timer) Start(cat Category) bool {
	if t.running {
		return false
	}
	t.running = true
	t.category = ParseCategory(string(cat))
	t.startedAt = t.now()
	t.atStart = t.ledger.Remaining()
	t.lastFlushed = 0
	return true
}

// Tick recomputes the countdown from wall clock. It flushes the ledger every
// FlushInterval seconds of elapsed time and force-stops when the allowance
// hits zero. Safe to call while idle.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	elapsed := t.elapsed()
	remaining := t.remainingAt(elapsed)

	if elapsed-t.lastFlushed >= FlushInterval {
		t.ledger.SetRemaining(remaining)
		t.lastFlushed = elapsed
	}

	if remaining <= 0 {
		t.Stop()
		if t.Exhausted != nil {
			t.Exhausted()
		}
	}
}

// Stop ends the session: the final remaining value is persisted
// unconditionally (even inside the flush watermark, to keep the tail), and
// the full elapsed time is credited to today's stats for the active
// category. Stats are NOT capped by the ledger's zero floor. Returns the
// elapsed seconds, or 0 when no session was running.
func (t *Timer) Stop() int64 {
	if !t.running {
		return 0
	}
	elapsed := t.elapsed()
	t.ledger.SetRemaining(t.remainingAt(elapsed))
	t.stats.Increment(Today(t.now()), t.category, elapsed)
	t.running = false
	return elapsed
}

func (t *Timer) elapsed() int64 {
	return int64(t.now().Sub(t.startedAt) / time.Second)
}

func (t *Timer) remainingAt(elapsed int64) int64 {
	remaining := t.atStart - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Running reports whether a session is active.
func (t *Timer) Running() bool {
	return t.running
}

// ActiveCategory returns the running session's category; zero value when idle.
func (t *Timer) ActiveCategory() Category {
	if !t.running {
		return ""
	}
	return t.category
}

// Elapsed returns whole seconds since the session started, 0 when idle.
func (t *Timer) Elapsed() int64 {
	if !t.running {
		return 0
	}
	return t.elapsed()
}

// Remaining returns the live countdown value while running, otherwise the
// ledger's persisted value.
func (t *Timer) Remaining() int64 {
	if !t.running {
		return t.ledger.Remaining()
	}
	return t.remainingAt(t.elapsed())
}
