package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewPlanner
	viewCalendar
	viewNotes
	viewTimetable
	viewReports
)

const viewCount = 6

var viewNames = []string{"Dashboard", "Planner", "Calendar", "Notes", "Timetable", "Reports"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionStartedMsg struct{}

type sessionStoppedMsg struct {
	elapsed int64
}

type allowanceExhaustedMsg struct{}

type unlockedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatSeconds(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(secs int64) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}

func today() string {
	return time.Now().Format("2006-01-02")
}
