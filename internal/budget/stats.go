package budget

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmedhsn/studybudget/internal/store"
)

// metaYearInit marks which year has already had its rows pre-created.
const metaYearInit = "year_rows_initialized"

// StatsStore is the slice of persistence the aggregator needs.
type StatsStore interface {
	EnsureDay(date string) (*store.DayStat, error)
	IncrementStudyTime(date, column string, seconds int64) error
	StatsRange(start, end string) ([]store.DayStat, error)
	AdjustDailyTotal(date string, delta int64) error
	InitYearRows(year int) error
	GetMeta(key string) (string, error)
	SetMeta(key, value string) error
}

// Stats maintains additive per-day, per-category counters. Like the ledger
// it degrades store failures to logged no-ops.
type Stats struct {
	store StatsStore
	log   *slog.Logger
}

func NewStats(s StatsStore, log *slog.Logger) *Stats {
	return &Stats{store: s, log: log}
}

// EnsureDay returns the row for date, creating a zeroed one if absent. On
// store failure it returns a zero-valued stat so callers can keep rendering.
func (s *Stats) EnsureDay(date string) store.DayStat {
	d, err := s.store.EnsureDay(date)
	if err != nil {
		s.log.Error("ensure day", "date", date, "err", err)
		return store.DayStat{Date: date, DailyGoalSeconds: store.DefaultDailyGoalSeconds}
	}
	return *d
}

// Increment credits seconds to a category and the daily total together.
// Unknown categories fall back to Uni via ParseCategory.
func (s *Stats) Increment(date string, cat Category, seconds int64) {
	cat = ParseCategory(string(cat))
	if err := s.store.IncrementStudyTime(date, cat.Column(), seconds); err != nil {
		s.log.Error("increment stats", "date", date, "category", cat, "err", err)
	}
}

// Range returns existing rows between start and end inclusive, ascending.
// Missing days are absent; callers treat them as zero.
func (s *Stats) Range(start, end string) []store.DayStat {
	stats, err := s.store.StatsRange(start, end)
	if err != nil {
		s.log.Error("stats range", "start", start, "end", end, "err", err)
		return nil
	}
	return stats
}

// AdjustTotal adds to the daily total without touching any category column.
// It intentionally bypasses the sum invariant; penalty bookkeeping only.
func (s *Stats) AdjustTotal(date string, delta int64) {
	if err := s.store.AdjustDailyTotal(date, delta); err != nil {
		s.log.Error("adjust daily total", "date", date, "err", err)
	}
}

// InitYear pre-creates a row for every day of the year, once per year. The
// marker in app_meta keeps startup from re-walking 365 inserts every run;
// the inserts themselves are INSERT OR IGNORE so a lost marker is harmless.
func (s *Stats) InitYear(year int) {
	marker := fmt.Sprintf("%d", year)
	if done, err := s.store.GetMeta(metaYearInit); err == nil && done == marker {
		return
	}
	if err := s.store.InitYearRows(year); err != nil {
		s.log.Error("init year rows", "year", year, "err", err)
		return
	}
	if err := s.store.SetMeta(metaYearInit, marker); err != nil {
		s.log.Error("set year marker", "year", year, "err", err)
	}
}

// Today returns the current date in the stats key format.
func Today(now time.Time) string {
	return now.Format("2006-01-02")
}
