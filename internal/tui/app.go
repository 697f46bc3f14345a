package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"

	"github.com/ahmedhsn/studybudget/internal/auth"
	"github.com/ahmedhsn/studybudget/internal/budget"
	"github.com/ahmedhsn/studybudget/internal/export"
	"github.com/ahmedhsn/studybudget/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	ledger *budget.Ledger
	stats  *budget.Stats
	timer  *budget.Timer
	gate   *auth.Gate

	width  int
	height int

	unlocked      bool
	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	unlock    unlockModel
	dashboard dashboardModel
	planner   plannerModel
	calendar  calendarModel
	notes     notesModel
	timetable timetableModel
	reports   reportsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, log *slog.Logger) App {
	ledger := budget.NewLedger(s, log)
	stats := budget.NewStats(s, log)
	timer := budget.NewTimer(ledger, stats)
	timer.Exhausted = func() {
		beeep.Alert("Study Budget", "Yearly allowance exhausted — session stopped.", "")
	}
	gate := auth.NewGate(s)

	// Pre-create this year's rows once so weekly charts never backfill.
	stats.InitYear(time.Now().Year())

	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		ledger:     ledger,
		stats:      stats,
		timer:      timer,
		gate:       gate,
		activeView: viewDashboard,
		unlock:     newUnlockModel(gate),
		dashboard:  newDashboardModel(ledger, stats, timer),
		planner:    newPlannerModel(s),
		calendar:   newCalendarModel(s),
		notes:      newNotesModel(s),
		timetable:  newTimetableModel(s),
		reports:    newReportsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.unlock.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.planner.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.timetable.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.unlock.setSize(a.width, a.height)
		return a, nil

	case unlockedMsg:
		a.unlocked = true
		return a, a.dashboard.loadData()

	case tickMsg:
		cmds = append(cmds, tickCmd())
		if a.unlocked {
			var cmd tea.Cmd
			a.dashboard, cmd = a.dashboard.update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case sessionStartedMsg:
		a.status = "Session started"
		return a, nil

	case sessionStoppedMsg:
		a.status = "Session stopped — " + formatSeconds(msg.elapsed) + " recorded"
		return a, nil

	case allowanceExhaustedMsg:
		a.status = "Yearly allowance exhausted — session stopped"
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	if !a.unlocked {
		var cmd tea.Cmd
		a.unlock, cmd = a.unlock.update(msg)
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child form owns the keyboard until it completes.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.timer.Stop() // persist the tail before exiting
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPlanner
			return a, a.planner.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCalendar
			return a, a.calendar.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewNotes
			return a, a.notes.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewTimetable
			return a, a.timetable.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, a.refreshCurrentView()
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewPlanner:
		a.planner, cmd = a.planner.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewTimetable:
		a.timetable, cmd = a.timetable.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewPlanner:
		return a.planner.formActive
	case viewCalendar:
		return a.calendar.formActive
	case viewNotes:
		return a.notes.formActive
	case viewTimetable:
		return a.timetable.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewPlanner:
		return a.planner.refresh()
	case viewCalendar:
		return a.calendar.refresh()
	case viewNotes:
		return a.notes.refresh()
	case viewTimetable:
		return a.timetable.refresh()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.unlocked {
		return a.unlock.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewPlanner:
		content = a.planner.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewNotes:
		content = a.notes.view()
	case viewTimetable:
		content = a.timetable.view()
	case viewReports:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studybudget")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	sessionInfo := ""
	if a.timer.Running() {
		label := fmt.Sprintf(" ● %s %s", a.timer.ActiveCategory(), formatSeconds(a.timer.Elapsed()))
		sessionInfo = successStyle.Render(label)
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Daily Stats")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		year := time.Now().Year()
		stats := a.stats.Range(fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year))

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		var err error
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("studybudget-%s.csv", dateStr))
			err = export.ToCSV(stats, path)
		} else {
			path = filepath.Join(home, fmt.Sprintf("studybudget-%s.json", dateStr))
			err = export.ToJSON(stats, a.ledger.Remaining(), path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
