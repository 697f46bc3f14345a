package store

// DayStat is one daily_stats row: the per-category breakdown of studied
// seconds for a single calendar date.
type DayStat struct {
	Date               string // YYYY-MM-DD
	Year               int
	Month              int
	DailyGoalSeconds   int64
	UniSeconds         int64
	FYPSeconds         int64
	FreelancingSeconds int64
	CareerSeconds      int64
	TotalDailySeconds  int64
}

// CategorySum returns the sum of the four category columns. Outside of the
// AdjustDailyTotal escape hatch it always equals TotalDailySeconds.
func (d DayStat) CategorySum() int64 {
	return d.UniSeconds + d.FYPSeconds + d.FreelancingSeconds + d.CareerSeconds
}

type Task struct {
	ID          int64
	Title       string
	Priority    string // High, Medium, Low
	Purpose     string // category label
	Description string
	Done        bool
	Date        string // YYYY-MM-DD
}

type Event struct {
	ID          int64
	Title       string
	Date        string // YYYY-MM-DD; month-typed events pin to the 1st
	Type        string // "day" or "month"
	Time        string // start time, HH:MM
	EndTime     string
	Location    string
	Category    string
	Description string
	Color       string
}

type Notebook struct {
	ID        int64
	Title     string
	Icon      string
	Color     string
	CreatedAt string
	NoteCount int
}

type Note struct {
	ID         int64
	NotebookID int64
	Title      string
	Content    string
	Date       string
}

type Timetable struct {
	ID   int64
	Name string
}

type TimetableSlot struct {
	ID          int64
	TimetableID int64
	StartTime   string
	EndTime     string
	Activity    string
}
