package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// InitialAllowanceSeconds is the yearly study budget seeded on first run:
// 3600 hours expressed in seconds.
const InitialAllowanceSeconds = 12960000

// DefaultDailyGoalSeconds is the per-day goal seeded into daily_stats rows.
const DefaultDailyGoalSeconds = 36000

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	ddl := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS ledger (
		id                INTEGER PRIMARY KEY CHECK (id = 1),
		password_hash     TEXT NOT NULL DEFAULT '',
		remaining_seconds INTEGER NOT NULL DEFAULT %d
	);

	INSERT OR IGNORE INTO ledger (id) VALUES (1);

	CREATE TABLE IF NOT EXISTS daily_stats (
		date                TEXT PRIMARY KEY,
		year                INTEGER NOT NULL,
		month               INTEGER NOT NULL,
		daily_goal_seconds  INTEGER NOT NULL DEFAULT %d,
		uni_seconds         INTEGER NOT NULL DEFAULT 0,
		fyp_seconds         INTEGER NOT NULL DEFAULT 0,
		freelancing_seconds INTEGER NOT NULL DEFAULT 0,
		career_seconds      INTEGER NOT NULL DEFAULT 0,
		total_daily_seconds INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_stats_month ON daily_stats(year, month);

	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'Medium',
		purpose     TEXT NOT NULL DEFAULT 'Uni',
		description TEXT NOT NULL DEFAULT '',
		status      INTEGER NOT NULL DEFAULT 0,
		date        TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		date        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'day',
		time        TEXT NOT NULL DEFAULT '',
		end_time    TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT 'blue'
	);

	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);

	CREATE TABLE IF NOT EXISTS notebooks (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		color      TEXT NOT NULL DEFAULT '#3B82F6',
		created_at TEXT NOT NULL DEFAULT (strftime('%%Y-%%m-%%dT%%H:%%M:%%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS notes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		notebook_id INTEGER NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS timetables (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS timetable_slots (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		timetable_id INTEGER NOT NULL REFERENCES timetables(id) ON DELETE CASCADE,
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL,
		activity     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS app_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`, InitialAllowanceSeconds, DefaultDailyGoalSeconds)

	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/studybudget/studybudget.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studybudget", "studybudget.db"), nil
}

// DefaultLogPath returns the log file path next to the database.
func DefaultLogPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studybudget", "studybudget.log"), nil
}
