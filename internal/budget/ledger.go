package budget

import "log/slog"

// LedgerStore is the slice of persistence the ledger needs.
type LedgerStore interface {
	RemainingSeconds() (int64, error)
	SetRemainingSeconds(secs int64) error
	AdjustRemainingSeconds(delta int64) error
}

// Ledger is the single source of truth for "seconds remaining in the
// yearly allowance". Every mutation persists synchronously; store failures
// are logged and the in-memory value keeps serving reads until the next
// successful write. One Ledger exists per process and it is only touched
// from the UI event loop, so no locking is needed.
type Ledger struct {
	store     LedgerStore
	log       *slog.Logger
	remaining int64
}

// NewLedger loads the persisted counter (the store seeds the default
// allowance on first run) and returns the process-wide ledger.
func NewLedger(s LedgerStore, log *slog.Logger) *Ledger {
	l := &Ledger{store: s, log: log}
	secs, err := s.RemainingSeconds()
	if err != nil {
		l.log.Error("load ledger", "err", err)
	}
	l.remaining = secs
	return l
}

// Remaining returns the current counter value.
func (l *Ledger) Remaining() int64 {
	return l.remaining
}

// SetRemaining overwrites the counter. Negative input clamps to zero; there
// is no upper bound, unused time simply accumulates.
func (l *Ledger) SetRemaining(secs int64) {
	if secs < 0 {
		secs = 0
	}
	l.remaining = secs
	if err := l.store.SetRemainingSeconds(secs); err != nil {
		l.log.Error("persist ledger", "remaining", secs, "err", err)
	}
}

// Adjust applies a relative change: positive deltas are penalties that add
// owed time back, negative deltas credit study time done off the clock.
// The result never drops below zero.
func (l *Ledger) Adjust(delta int64) {
	next := l.remaining + delta
	if next < 0 {
		l.SetRemaining(0)
		return
	}
	l.remaining = next
	if err := l.store.AdjustRemainingSeconds(delta); err != nil {
		l.log.Error("adjust ledger", "delta", delta, "err", err)
	}
}
