package store

import (
	"fmt"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/studybudget.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestForeignKeysOn(t *testing.T) {
	s := newTestStore(t)
	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Ledger
// ============================================================

func TestLedgerSeededWithAllowance(t *testing.T) {
	s := newTestStore(t)
	secs, err := s.RemainingSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if secs != InitialAllowanceSeconds {
		t.Fatalf("expected %d, got %d", InitialAllowanceSeconds, secs)
	}
}

func TestLedgerSeedIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetRemainingSeconds(42); err != nil {
		t.Fatal(err)
	}
	// Re-running the migration must not reset a non-default counter.
	if err := s.migrateV1(); err != nil {
		t.Fatal(err)
	}
	secs, _ := s.RemainingSeconds()
	if secs != 42 {
		t.Fatalf("re-seed reset counter to %d", secs)
	}
}

func TestLedgerSetAndAdjust(t *testing.T) {
	s := newTestStore(t)
	s.SetRemainingSeconds(1000)
	s.AdjustRemainingSeconds(-300)
	s.AdjustRemainingSeconds(50)

	secs, _ := s.RemainingSeconds()
	if secs != 750 {
		t.Fatalf("expected 750, got %d", secs)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	s := newTestStore(t)
	hash, err := s.PasswordHash()
	if err != nil {
		t.Fatal(err)
	}
	if hash != "" {
		t.Fatalf("fresh store should have no password, got %q", hash)
	}
	if err := s.SetPasswordHash("$2a$10$example"); err != nil {
		t.Fatal(err)
	}
	hash, _ = s.PasswordHash()
	if hash != "$2a$10$example" {
		t.Fatalf("unexpected hash %q", hash)
	}
}

// ============================================================
// Daily stats
// ============================================================

func TestEnsureDayCreatesZeroRow(t *testing.T) {
	s := newTestStore(t)
	d, err := s.EnsureDay("2026-02-17")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != 2026 || d.Month != 2 {
		t.Fatalf("year/month wrong: %+v", d)
	}
	if d.DailyGoalSeconds != DefaultDailyGoalSeconds {
		t.Fatalf("goal = %d, want %d", d.DailyGoalSeconds, DefaultDailyGoalSeconds)
	}
	if d.TotalDailySeconds != 0 || d.CategorySum() != 0 {
		t.Fatalf("new row should be zeroed: %+v", d)
	}
}

func TestEnsureDayDoesNotOverwrite(t *testing.T) {
	s := newTestStore(t)
	s.EnsureDay("2026-02-17")
	s.IncrementStudyTime("2026-02-17", "uni_seconds", 99)

	d, err := s.EnsureDay("2026-02-17")
	if err != nil {
		t.Fatal(err)
	}
	if d.UniSeconds != 99 {
		t.Fatalf("ensure overwrote counters: %+v", d)
	}
}

func TestEnsureDayRejectsBadDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.EnsureDay("17/02/2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestIncrementKeepsInvariant(t *testing.T) {
	s := newTestStore(t)
	s.IncrementStudyTime("2026-03-01", "uni_seconds", 100)
	s.IncrementStudyTime("2026-03-01", "fyp_seconds", 200)
	s.IncrementStudyTime("2026-03-01", "career_seconds", 50)

	d, _ := s.EnsureDay("2026-03-01")
	if d.TotalDailySeconds != 350 {
		t.Fatalf("total = %d, want 350", d.TotalDailySeconds)
	}
	if d.CategorySum() != d.TotalDailySeconds {
		t.Fatalf("invariant broken: %+v", d)
	}
}

func TestIncrementUnknownColumn(t *testing.T) {
	s := newTestStore(t)
	err := s.IncrementStudyTime("2026-03-01", "total_daily_seconds", 100)
	if err == nil {
		t.Fatal("expected error for non-category column")
	}
}

func TestAdjustDailyTotalOnly(t *testing.T) {
	s := newTestStore(t)
	s.IncrementStudyTime("2026-03-02", "uni_seconds", 100)
	s.AdjustDailyTotal("2026-03-02", 60)

	d, _ := s.EnsureDay("2026-03-02")
	if d.TotalDailySeconds != 160 || d.UniSeconds != 100 {
		t.Fatalf("unexpected row: %+v", d)
	}
}

func TestStatsRangeInclusiveAscending(t *testing.T) {
	s := newTestStore(t)
	s.EnsureDay("2026-04-01")
	s.EnsureDay("2026-04-03")
	s.EnsureDay("2026-04-05")
	s.EnsureDay("2026-03-31") // outside

	rows, err := s.StatsRange("2026-04-01", "2026-04-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Date != "2026-04-01" || rows[2].Date != "2026-04-05" {
		t.Fatalf("range bounds not inclusive: %s .. %s", rows[0].Date, rows[2].Date)
	}
}

func TestWeeklyStatsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	for day := 1; day <= 9; day++ {
		s.EnsureDay(fmt.Sprintf("2026-05-%02d", day))
	}
	rows, err := s.WeeklyStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7", len(rows))
	}
	if rows[0].Date != "2026-05-09" {
		t.Fatalf("newest first expected, got %s", rows[0].Date)
	}
}

func TestMonthlyAverageIgnoresIdleDays(t *testing.T) {
	s := newTestStore(t)
	s.IncrementStudyTime("2026-06-01", "uni_seconds", 3600)
	s.IncrementStudyTime("2026-06-02", "uni_seconds", 7200)
	s.EnsureDay("2026-06-03") // zero day, excluded from the mean

	avg, err := s.MonthlyAverage(2026, 6)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 5400 {
		t.Fatalf("avg = %v, want 5400", avg)
	}
}

func TestMonthlyAverageEmptyMonth(t *testing.T) {
	s := newTestStore(t)
	avg, err := s.MonthlyAverage(2026, 11)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 0 {
		t.Fatalf("avg = %v, want 0", avg)
	}
}

func TestInitYearRowsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.InitYearRows(2024); err != nil { // leap year
		t.Fatal(err)
	}
	rows, _ := s.StatsRange("2024-01-01", "2024-12-31")
	if len(rows) != 366 {
		t.Fatalf("2024 should have 366 rows, got %d", len(rows))
	}

	s.IncrementStudyTime("2024-02-29", "fyp_seconds", 123)
	if err := s.InitYearRows(2024); err != nil {
		t.Fatal(err)
	}
	d, _ := s.EnsureDay("2024-02-29")
	if d.FYPSeconds != 123 {
		t.Fatalf("re-init clobbered counters: %+v", d)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestTaskCRUD(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("Revise OS notes", "High", "Uni", "ch 4-6", "2026-02-20")
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 || task.Done {
		t.Fatalf("unexpected task: %+v", task)
	}

	if err := s.UpdateTask(task.ID, "Revise OS", "Medium", "Uni", ""); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.Title != "Revise OS" || got.Priority != "Medium" {
		t.Fatalf("update failed: %+v", got)
	}

	s.ToggleTask(task.ID)
	got, _ = s.GetTask(task.ID)
	if !got.Done {
		t.Fatal("toggle should mark done")
	}
	s.ToggleTask(task.ID)
	got, _ = s.GetTask(task.ID)
	if got.Done {
		t.Fatal("second toggle should mark pending")
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTask(task.ID); err == nil {
		t.Fatal("expected error for deleted task")
	}
}

func TestTasksByDateOrdering(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateTask("a", "Low", "Uni", "", "2026-02-20")
	b, _ := s.CreateTask("b", "Low", "Uni", "", "2026-02-20")
	s.CreateTask("other day", "Low", "Uni", "", "2026-02-21")
	s.ToggleTask(a.ID) // done drops below pending

	tasks, err := s.TasksByDate("2026-02-20")
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Fatalf("ordering wrong: %+v", tasks)
	}
}

// ============================================================
// Events
// ============================================================

func TestEventMonthTypePinsToFirst(t *testing.T) {
	s := newTestStore(t)
	e, err := s.CreateEvent(Event{Title: "Exams", Date: "2026-06-14", Type: "month"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Date != "2026-06-01" {
		t.Fatalf("month event date = %s, want 2026-06-01", e.Date)
	}
}

func TestEventCategoryColors(t *testing.T) {
	s := newTestStore(t)
	e, _ := s.CreateEvent(Event{Title: "Demo", Date: "2026-06-10", Category: "FYP"})
	if e.Color != "red" {
		t.Fatalf("FYP color = %s, want red", e.Color)
	}
	e2, _ := s.CreateEvent(Event{Title: "Misc", Date: "2026-06-10", Category: "Other"})
	if e2.Color != "blue" {
		t.Fatalf("fallback color = %s, want blue", e2.Color)
	}
}

func TestEventsByDateIncludesMonthEvents(t *testing.T) {
	s := newTestStore(t)
	s.CreateEvent(Event{Title: "Lecture", Date: "2026-06-10", Time: "09:00"})
	s.CreateEvent(Event{Title: "Exams", Date: "2026-06-05", Type: "month"})
	s.CreateEvent(Event{Title: "Elsewhere", Date: "2026-07-01", Time: "09:00"})

	events, err := s.EventsByDate("2026-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestEventsByMonthSkipsPastDayEvents(t *testing.T) {
	s := newTestStore(t)
	s.CreateEvent(Event{Title: "Past", Date: "2026-06-01", Time: "09:00"})
	s.CreateEvent(Event{Title: "Future", Date: "2026-06-20", Time: "09:00"})
	s.CreateEvent(Event{Title: "Exams", Date: "2026-06-05", Type: "month"})

	events, err := s.EventsByMonth(2026, 6, "2026-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (future day + month)", len(events))
	}
	for _, e := range events {
		if e.Title == "Past" {
			t.Fatal("past day event should be hidden")
		}
	}
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	s := newTestStore(t)
	e, _ := s.CreateEvent(Event{Title: "Demo", Date: "2026-06-10"})
	e.Title = "Final demo"
	e.Category = "FYP"
	if err := s.UpdateEvent(*e); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetEvent(e.ID)
	if got.Title != "Final demo" || got.Color != "red" {
		t.Fatalf("update failed: %+v", got)
	}

	s.DeleteEvent(e.ID)
	if _, err := s.GetEvent(e.ID); err == nil {
		t.Fatal("expected error for deleted event")
	}
}

// ============================================================
// Notebooks & notes
// ============================================================

func TestNotebookNotesCascade(t *testing.T) {
	s := newTestStore(t)
	nb, err := s.CreateNotebook("Algorithms", "book", "#3B82F6")
	if err != nil {
		t.Fatal(err)
	}
	s.CreateNote(nb.ID, "Dijkstra", "greedy over frontier")
	s.CreateNote(nb.ID, "MST", "")

	got, _ := s.GetNotebook(nb.ID)
	if got.NoteCount != 2 {
		t.Fatalf("note count = %d, want 2", got.NoteCount)
	}

	if err := s.DeleteNotebook(nb.ID); err != nil {
		t.Fatal(err)
	}
	notes, _ := s.NotesByNotebook(nb.ID)
	if len(notes) != 0 {
		t.Fatalf("cascade failed, %d notes remain", len(notes))
	}
}

func TestNoteCRUD(t *testing.T) {
	s := newTestStore(t)
	nb, _ := s.CreateNotebook("Misc", "", "#000")
	n, err := s.CreateNote(nb.ID, "Idea", "draft")
	if err != nil {
		t.Fatal(err)
	}
	if n.Date == "" {
		t.Fatal("note date should be stamped")
	}

	s.UpdateNote(n.ID, "Idea v2", "final")
	got, _ := s.GetNote(n.ID)
	if got.Title != "Idea v2" || got.Content != "final" {
		t.Fatalf("update failed: %+v", got)
	}

	s.DeleteNote(n.ID)
	if _, err := s.GetNote(n.ID); err == nil {
		t.Fatal("expected error for deleted note")
	}
}

func TestNotebooksNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.CreateNotebook("First", "", "#000")
	s.CreateNotebook("Second", "", "#000")

	nbs, err := s.ListNotebooks()
	if err != nil {
		t.Fatal(err)
	}
	if len(nbs) != 2 || nbs[0].Title != "Second" {
		t.Fatalf("unexpected order: %+v", nbs)
	}
}

// ============================================================
// Timetables
// ============================================================

func TestTimetableSlotsCascade(t *testing.T) {
	s := newTestStore(t)
	tt, err := s.CreateTimetable("Exam week")
	if err != nil {
		t.Fatal(err)
	}
	s.AddSlot(tt.ID, "08:00", "10:00", "Revision")
	s.AddSlot(tt.ID, "06:00", "07:00", "Gym")

	slots, _ := s.SlotsByTimetable(tt.ID)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].StartTime != "06:00" {
		t.Fatalf("slots should sort by start time, got %s first", slots[0].StartTime)
	}

	s.DeleteTimetable(tt.ID)
	slots, _ = s.SlotsByTimetable(tt.ID)
	if len(slots) != 0 {
		t.Fatalf("cascade failed, %d slots remain", len(slots))
	}
}

func TestTimetableNameUnique(t *testing.T) {
	s := newTestStore(t)
	s.CreateTimetable("Default")
	if _, err := s.CreateTimetable("Default"); err == nil {
		t.Fatal("expected error for duplicate timetable name")
	}
}

// ============================================================
// App meta
// ============================================================

func TestMetaRoundTrip(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetMeta("missing")
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Fatalf("missing key should read empty, got %q", v)
	}

	s.SetMeta("profile_name", "Ahmed")
	s.SetMeta("profile_name", "Ahmed H")
	v, _ = s.GetMeta("profile_name")
	if v != "Ahmed H" {
		t.Fatalf("upsert failed: %q", v)
	}
}
