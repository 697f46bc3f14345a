package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// categoryColumns is the closed set of per-category counters. Increment
// refuses anything outside it so column names never come from user input.
var categoryColumns = map[string]bool{
	"uni_seconds":         true,
	"fyp_seconds":         true,
	"freelancing_seconds": true,
	"career_seconds":      true,
}

func (s *Store) scanDayStat(row *sql.Row) (*DayStat, error) {
	d := &DayStat{}
	err := row.Scan(&d.Date, &d.Year, &d.Month, &d.DailyGoalSeconds,
		&d.UniSeconds, &d.FYPSeconds, &d.FreelancingSeconds, &d.CareerSeconds,
		&d.TotalDailySeconds)
	if err != nil {
		return nil, err
	}
	return d, nil
}

const dayStatColumns = `date, year, month, daily_goal_seconds,
	uni_seconds, fyp_seconds, freelancing_seconds, career_seconds,
	total_daily_seconds`

// EnsureDay returns the row for date, lazily creating it with zero counters
// and the default goal. It never overwrites an existing row.
func (s *Store) EnsureDay(date string) (*DayStat, error) {
	d, err := s.dayStat(date)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get day %s: %w", date, err)
	}

	t, err := time.Parse(dayFormat, date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO daily_stats (date, year, month) VALUES (?, ?, ?)`,
		date, t.Year(), int(t.Month()),
	)
	if err != nil {
		return nil, fmt.Errorf("create day %s: %w", date, err)
	}
	return s.dayStat(date)
}

func (s *Store) dayStat(date string) (*DayStat, error) {
	row := s.db.QueryRow(
		`SELECT `+dayStatColumns+` FROM daily_stats WHERE date = ?`, date,
	)
	return s.scanDayStat(row)
}

// IncrementStudyTime adds seconds to one category column and to the daily
// total in a single statement, keeping the sum invariant intact.
func (s *Store) IncrementStudyTime(date, column string, seconds int64) error {
	if !categoryColumns[column] {
		return fmt.Errorf("unknown stats column %q", column)
	}
	if _, err := s.EnsureDay(date); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf(
		`UPDATE daily_stats
		 SET %s = %s + ?, total_daily_seconds = total_daily_seconds + ?
		 WHERE date = ?`, column, column),
		seconds, seconds, date,
	)
	if err != nil {
		return fmt.Errorf("increment study time: %w", err)
	}
	return nil
}

// AdjustDailyTotal adds to total_daily_seconds only. This deliberately
// bypasses the category-sum invariant; it exists for penalty bookkeeping.
func (s *Store) AdjustDailyTotal(date string, delta int64) error {
	if _, err := s.EnsureDay(date); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`UPDATE daily_stats SET total_daily_seconds = total_daily_seconds + ? WHERE date = ?`,
		delta, date,
	)
	if err != nil {
		return fmt.Errorf("adjust daily total: %w", err)
	}
	return nil
}

// StatsRange returns existing rows between start and end inclusive, ordered
// by date ascending. Days with no row are simply absent.
func (s *Store) StatsRange(start, end string) ([]DayStat, error) {
	rows, err := s.db.Query(
		`SELECT `+dayStatColumns+` FROM daily_stats
		 WHERE date BETWEEN ? AND ? ORDER BY date ASC`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("stats range: %w", err)
	}
	defer rows.Close()

	var stats []DayStat
	for rows.Next() {
		var d DayStat
		if err := rows.Scan(&d.Date, &d.Year, &d.Month, &d.DailyGoalSeconds,
			&d.UniSeconds, &d.FYPSeconds, &d.FreelancingSeconds, &d.CareerSeconds,
			&d.TotalDailySeconds); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// WeeklyStats returns the 7 most recent rows, newest first.
func (s *Store) WeeklyStats() ([]DayStat, error) {
	rows, err := s.db.Query(
		`SELECT ` + dayStatColumns + ` FROM daily_stats ORDER BY date DESC LIMIT 7`,
	)
	if err != nil {
		return nil, fmt.Errorf("weekly stats: %w", err)
	}
	defer rows.Close()

	var stats []DayStat
	for rows.Next() {
		var d DayStat
		if err := rows.Scan(&d.Date, &d.Year, &d.Month, &d.DailyGoalSeconds,
			&d.UniSeconds, &d.FYPSeconds, &d.FreelancingSeconds, &d.CareerSeconds,
			&d.TotalDailySeconds); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// MonthlyAverage returns the mean total_daily_seconds over the days of the
// given month that have any recorded time.
func (s *Store) MonthlyAverage(year, month int) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT AVG(total_daily_seconds) FROM daily_stats
		 WHERE year = ? AND month = ? AND total_daily_seconds > 0`,
		year, month,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("monthly average: %w", err)
	}
	return avg.Float64, nil
}

// InitYearRows pre-creates a zeroed row for every day of the year so range
// queries need no synthetic backfill. Existing rows are left untouched.
func (s *Store) InitYearRows(year int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin year init: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO daily_stats (date, year, month) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare year init: %w", err)
	}
	defer stmt.Close()

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
		if _, err := stmt.Exec(d.Format(dayFormat), year, int(d.Month())); err != nil {
			return fmt.Errorf("insert %s: %w", d.Format(dayFormat), err)
		}
	}
	return tx.Commit()
}
