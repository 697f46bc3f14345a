package budget

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmedhsn/studybudget/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCore(t *testing.T) (*store.Store, *Ledger, *Stats) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	log := discardLogger()
	return s, NewLedger(s, log), NewStats(s, log)
}

// fakeClock advances only when told to, simulating wall time including
// suspend/resume gaps.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(secs int64) {
	c.t = c.t.Add(time.Duration(secs) * time.Second)
}

func newFakeTimer(ledger *Ledger, stats *Stats) (*Timer, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	tm := NewTimer(ledger, stats)
	tm.now = clock.now
	return tm, clock
}

func TestSessionStartStop(t *testing.T) {
	_, ledger, stats := newTestCore(t)
	tm, clock := newFakeTimer(ledger, stats)

	if !tm.Start(Uni) {
		t.Fatal("start on idle timer should succeed")
	}
	if tm.Start(FYP) {
		t.Fatal("start while running must be a no-op")
	}
	if tm.ActiveCategory() != Uni {
		t.Fatalf("active category = %q, want Uni", tm.ActiveCategory())
	}

	clock.advance(400)
	elapsed := tm.Stop()
	if elapsed != 400 {
		t.Fatalf("elapsed = %d, want 400", elapsed)
	}
	if tm.Running() {
		t.Fatal("timer should be idle after stop")
	}

	// Scenario A: full allowance minus the session.
	if got := ledger.Remaining(); got != store.InitialAllowanceSeconds-400 {
		t.Fatalf("remaining = %d, want %d", got, store.InitialAllowanceSeconds-400)
	}
	day := stats.EnsureDay(Today(clock.now()))
	if day.UniSeconds != 400 {
		t.Fatalf("uni seconds = %d, want 400", day.UniSeconds)
	}
	if day.TotalDailySeconds != 400 {
		t.Fatalf("total seconds = %d, want 400", day.TotalDailySeconds)
	}
}

func TestStopWhenIdle(t *testing.T) {
	_, ledger, stats := newTestCore(t)
	tm, _ := newFakeTimer(ledger, stats)

	if got := tm.Stop(); got != 0 {
		t.Fatalf("stop on idle timer returned %d, want 0", got)
	}
}

func TestFlushWatermark(t *testing.T) {
	s, ledger, stats := newTestCore(t)
	tm, clock := newFakeTimer(ledger, stats)

	start := ledger.Remaining()
	tm.Start(Freelancing)

	// Scenario B: exactly 300s elapsed triggers exactly one flush.
	clock.advance(300)
	tm.Tick()
	persisted, err := s.RemainingSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if persisted != start-300 {
		t.Fatalf("persisted after first flush = %d, want %d", persisted, start-300)
	}
	if tm.lastFlushed != 300 {
		t.Fatalf("lastFlushed = %d, want 300", tm.lastFlushed)
	}

	// 599s: inside the watermark, no second flush.
	clock.advance(299)
	tm.Tick()
	persisted, _ = s.RemainingSeconds()
	if persisted != start-300 {
		t.Fatalf("persisted at 599s = %d, want %d (no flush)", persisted, start-300)
	}

	// 600s: second flush.
	clock.advance(1)
	tm.Tick()
	persisted, _ = s.RemainingSeconds()
	if persisted != start-600 {
		t.Fatalf("persisted at 600s = %d, want %d", persisted, start-600)
	}
	if tm.lastFlushed != 600 {
		t.Fatalf("lastFlushed = %d, want 600", tm.lastFlushed)
	}

	tm.Stop()
}

func TestSuspendResumeGap(t *testing.T) {
	s, ledger, stats := newTestCore(t)
	tm, clock := newFakeTimer(ledger, stats)

	start := ledger.Remaining()
	tm.Start(Career)

	// Ticks stop firing while suspended; one big clock jump stands in for
	// the gap. The first tick after resume must account for all of it.
	clock.advance(1200)
	tm.Tick()

	if got := tm.Remaining(); got != start-1200 {
		t.Fatalf("remaining after gap = %d, want %d", got, start-1200)
	}
	persisted, _ := s.RemainingSeconds()
	if persisted != start-1200 {
		t.Fatalf("gap should have flushed: persisted = %d, want %d", persisted, start-1200)
	}

	clock.advance(100)
	elapsed := tm.Stop()
	if elapsed != 1300 {
		t.Fatalf("elapsed = %d, want 1300", elapsed)
	}
	persisted, _ = s.RemainingSeconds()
	if persisted != start-1300 {
		t.Fatalf("final persisted = %d, want %d", persisted, start-1300)
	}
}

func TestZeroFloorAutoStop(t *testing.T) {
	_, ledger, stats := newTestCore(t)
	tm, clock := newFakeTimer(ledger, stats)

	// Scenario C: 100s left, 500s studied.
	ledger.SetRemaining(100)
	exhausted := false
	tm.Exhausted = func() { exhausted = true }

	tm.Start(FYP)
	clock.advance(500)
	tm.Tick()

	if tm.Running() {
		t.Fatal("timer must auto-stop at zero remaining")
	}
	if !exhausted {
		t.Fatal("Exhausted callback should have fired")
	}
	if got := ledger.Remaining(); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}

	// Stats credit the full 500s even though the ledger floored at 0.
	day := stats.EnsureDay(Today(clock.now()))
	if day.FYPSeconds != 500 {
		t.Fatalf("fyp seconds = %d, want 500", day.FYPSeconds)
	}
	if day.TotalDailySeconds != 500 {
		t.Fatalf("total seconds = %d, want 500", day.TotalDailySeconds)
	}
}

func TestStopInsideWatermarkStillPersists(t *testing.T) {
	s, ledger, stats := newTestCore(t)
	tm, clock := newFakeTimer(ledger, stats)

	start := ledger.Remaining()
	tm.Start(Uni)
	clock.advance(42) // well inside the 5-minute watermark
	tm.Tick()
	tm.Stop()

	persisted, _ := s.RemainingSeconds()
	if persisted != start-42 {
		t.Fatalf("persisted = %d, want %d", persisted, start-42)
	}
}

func TestRemainingWhileIdleTracksLedger(t *testing.T) {
	_, ledger, stats := newTestCore(t)
	tm, _ := newFakeTimer(ledger, stats)

	ledger.SetRemaining(777)
	if got := tm.Remaining(); got != 777 {
		t.Fatalf("idle remaining = %d, want 777", got)
	}
	if got := tm.Elapsed(); got != 0 {
		t.Fatalf("idle elapsed = %d, want 0", got)
	}
}

func TestManualAdjustments(t *testing.T) {
	_, ledger, stats := newTestCore(t)

	// Scenario D: credit 10 minutes to Uni.
	start := ledger.Remaining()
	today := "2026-03-14"
	CreditStudyTime(ledger, stats, today, Uni, 600)
	if got := ledger.Remaining(); got != start-600 {
		t.Fatalf("remaining after credit = %d, want %d", got, start-600)
	}
	day := stats.EnsureDay(today)
	if day.UniSeconds != 600 || day.TotalDailySeconds != 600 {
		t.Fatalf("credit not reflected in stats: %+v", day)
	}

	// Penalty of 5 minutes: ledger only.
	ApplyPenalty(ledger, 300)
	if got := ledger.Remaining(); got != start-600+300 {
		t.Fatalf("remaining after penalty = %d, want %d", got, start-600+300)
	}
	day = stats.EnsureDay(today)
	if day.TotalDailySeconds != 600 {
		t.Fatalf("penalty must not touch stats, total = %d", day.TotalDailySeconds)
	}
}
