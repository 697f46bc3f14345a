package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/budget"
	"github.com/ahmedhsn/studybudget/internal/store"
)

type dashboardModel struct {
	ledger *budget.Ledger
	stats  *budget.Stats
	timer  *budget.Timer

	width  int
	height int

	todayStat store.DayStat

	// Category picker state
	picking      bool
	pickerCursor int

	// Manual adjustment form
	formActive   bool
	adjustForm   *huh.Form
	adjustKind   string
	adjustMins   string
	adjustCat    string
}

func newDashboardModel(ledger *budget.Ledger, stats *budget.Stats, timer *budget.Timer) dashboardModel {
	return dashboardModel{
		ledger: ledger,
		stats:  stats,
		timer:  timer,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	today store.DayStat
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{today: d.stats.EnsureDay(today())}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayStat = msg.today
		return d, nil

	case tickMsg:
		wasRunning := d.timer.Running()
		d.timer.Tick()
		if wasRunning && !d.timer.Running() {
			// The timer stopped itself at the zero floor.
			return d, tea.Batch(
				d.loadData(),
				func() tea.Msg { return allowanceExhaustedMsg{} },
			)
		}
		return d, nil

	case tea.KeyMsg:
		if d.formActive {
			return d.updateAdjustForm(msg)
		}
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer.Running() {
				return d, nil
			}
			if d.ledger.Remaining() <= 0 {
				return d, func() tea.Msg {
					return statusMsg{text: "No study time remaining this year", isError: true}
				}
			}
			d.picking = true
			d.pickerCursor = 0
			return d, nil

		case key.Matches(msg, keys.Stop):
			return d.stopSession()

		case key.Matches(msg, keys.Adjust):
			if d.timer.Running() {
				return d, func() tea.Msg {
					return statusMsg{text: "Stop the session before adjusting time", isError: true}
				}
			}
			return d.openAdjustForm()
		}
	}

	if d.formActive {
		return d.updateAdjustForm(msg)
	}
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < len(budget.Categories)-1 {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		cat := budget.Categories[d.pickerCursor]
		d.picking = false
		if !d.timer.Start(cat) {
			return d, nil
		}
		return d, func() tea.Msg { return sessionStartedMsg{} }
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d dashboardModel) stopSession() (dashboardModel, tea.Cmd) {
	elapsed := d.timer.Stop()
	if elapsed == 0 {
		return d, nil
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return sessionStoppedMsg{elapsed: elapsed} },
	)
}

func (d dashboardModel) openAdjustForm() (dashboardModel, tea.Cmd) {
	d.adjustKind = "credit"
	d.adjustMins = ""
	d.adjustCat = string(budget.Uni)

	var catOptions []huh.Option[string]
	for _, c := range budget.Categories {
		catOptions = append(catOptions, huh.NewOption(string(c), string(c)))
	}

	d.adjustForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Adjustment").
				Options(
					huh.NewOption("Credit studied time", "credit"),
					huh.NewOption("Penalty (reduce allowance)", "penalty"),
				).
				Value(&d.adjustKind),
			huh.NewInput().
				Title("Minutes").
				Validate(validateMinutes).
				Value(&d.adjustMins),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOptions...).
				Value(&d.adjustCat),
		),
	).WithShowHelp(false)

	d.formActive = true
	return d, d.adjustForm.Init()
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of minutes")
	}
	return nil
}

func (d dashboardModel) updateAdjustForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		d.formActive = false
		return d, nil
	}

	form, cmd := d.adjustForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.adjustForm = f
	}

	if d.adjustForm.State == huh.StateCompleted {
		d.formActive = false
		mins, _ := strconv.Atoi(strings.TrimSpace(d.adjustMins))
		seconds := int64(mins) * 60

		if d.adjustKind == "credit" {
			cat := budget.ParseCategory(d.adjustCat)
			budget.CreditStudyTime(d.ledger, d.stats, today(), cat, seconds)
			return d, tea.Batch(
				d.loadData(),
				func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Credited %d min to %s", mins, cat)}
				},
			)
		}

		budget.ApplyPenalty(d.ledger, seconds)
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Penalty applied: %d min removed", mins)}
		}
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	timerPanel := d.renderTimerPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)

	var bottomPanel string
	switch {
	case d.formActive:
		bottomPanel = activePanelStyle.Width(contentWidth).Render(d.adjustForm.View())
	case d.picking:
		bottomPanel = d.renderCategoryPicker(contentWidth)
	default:
		bottomPanel = d.renderPacePanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, todayPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	remaining := d.timer.Remaining()
	timeStr := formatSeconds(remaining)

	if d.timer.Running() {
		timeDisplay := timerRunningStyle.Width(w - 6).Render(timeStr)
		cat := d.timer.ActiveCategory()
		dot := lipgloss.NewStyle().Foreground(categoryColors[cat]).Render("●")
		indicator := successStyle.Render(fmt.Sprintf("%s  STUDYING %s", dot, strings.ToUpper(string(cat))))
		session := mutedStyle.Render("session " + formatSeconds(d.timer.Elapsed()))

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			session,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render(timeStr)
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s to start a session, a to adjust")
	if remaining <= 0 {
		indicator = errorStyle.Render("✗  ALLOWANCE EXHAUSTED")
		hint = mutedStyle.Render("No study time left this year")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatSeconds(d.todayStat.TotalDailySeconds))

	goal := d.todayStat.DailyGoalSeconds
	pct := int64(0)
	if goal > 0 {
		pct = d.todayStat.TotalDailySeconds * 100 / goal
	}
	goalStr := mutedStyle.Render(fmt.Sprintf("goal %s (%d%%)", formatSeconds(goal), pct))

	header := fmt.Sprintf("%s  %s  %s", title, total, goalStr)

	var rows []string
	rows = append(rows, header)
	for _, c := range budget.Categories {
		secs := d.categorySeconds(c)
		dot := lipgloss.NewStyle().Foreground(categoryColors[c]).Render("●")
		row := fmt.Sprintf("  %s %-12s %s", dot, c, formatSeconds(secs))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) categorySeconds(c budget.Category) int64 {
	switch c {
	case budget.FYP:
		return d.todayStat.FYPSeconds
	case budget.Freelancing:
		return d.todayStat.FreelancingSeconds
	case budget.Career:
		return d.todayStat.CareerSeconds
	default:
		return d.todayStat.UniSeconds
	}
}

func (d dashboardModel) renderPacePanel(w int) string {
	title := titleStyle.Render("Pace")

	now := time.Now()
	yearEnd := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	daysLeft := int64(yearEnd.Sub(now).Hours()/24) + 1
	if daysLeft < 1 {
		daysLeft = 1
	}

	remaining := d.timer.Remaining()
	perDay := remaining / daysLeft

	rows := []string{
		title,
		fmt.Sprintf("  Remaining this year  %s", highlightStyle.Render(formatHours(remaining))),
		fmt.Sprintf("  Days left            %d", daysLeft),
		fmt.Sprintf("  Needed per day       %s", highlightStyle.Render(formatSeconds(perDay))),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderCategoryPicker(w int) string {
	title := titleStyle.Render("Select Category")

	var rows []string
	rows = append(rows, title)
	for i, c := range budget.Categories {
		dot := lipgloss.NewStyle().Foreground(categoryColors[c]).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, c)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: start  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
