package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/budget"
	"github.com/ahmedhsn/studybudget/internal/store"
)

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	stats  []store.DayStat
	avg    float64
	offset int // weeks back from the current week (0 = this week)

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	stats []store.DayStat
	avg   float64
}

func (r reportsModel) refresh() tea.Cmd {
	start, end := r.weekRange()
	return func() tea.Msg {
		stats, _ := r.store.StatsRange(start.Format("2006-01-02"), end.Format("2006-01-02"))
		now := time.Now()
		avg, _ := r.store.MonthlyAverage(now.Year(), int(now.Month()))
		return reportsDataMsg{stats: stats, avg: avg}
	}
}

// weekRange returns the Monday and Sunday of the displayed week.
func (r reportsModel) weekRange() (time.Time, time.Time) {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	monday := day.AddDate(0, 0, -int(weekday-time.Monday))
	monday = monday.AddDate(0, 0, -7*r.offset)
	return monday, monday.AddDate(0, 0, 6)
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.stats = msg.stats
		r.avg = msg.avg
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]store.DayStat, len(r.stats))
	for _, s := range r.stats {
		byDate[s.Date] = s
	}

	monday, _ := r.weekRange()

	// One stacked bar per weekday; days with no row show as zero.
	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		label := d.Format("Mon 02")

		s, ok := byDate[d.Format("2006-01-02")]
		var values []barchart.BarValue
		if ok && s.TotalDailySeconds > 0 {
			for _, c := range budget.Categories {
				secs := categoryValue(s, c)
				if secs == 0 {
					continue
				}
				values = append(values, barchart.BarValue{
					Name:  string(c),
					Value: float64(secs) / 3600.0,
					Style: lipgloss.NewStyle().Foreground(categoryColors[c]),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func categoryValue(s store.DayStat, c budget.Category) int64 {
	switch c {
	case budget.FYP:
		return s.FYPSeconds
	case budget.Freelancing:
		return s.FreelancingSeconds
	case budget.Career:
		return s.CareerSeconds
	default:
		return s.UniSeconds
	}
}

func (r reportsModel) view() string {
	w := r.width - 4

	monday, sunday := r.weekRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", monday.Format("Jan 02"), sunday.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly Report"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	legend := r.renderLegend()
	tableView := r.renderSummaryTable(w)

	avgLine := mutedStyle.Render(fmt.Sprintf("  Monthly average (study days): %s/day",
		formatSeconds(int64(r.avg))))

	nav := mutedStyle.Render("  ←/→: change week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", avgLine, nav,
		),
	)
}

func (r reportsModel) renderLegend() string {
	var items []string
	for _, c := range budget.Categories {
		dot := lipgloss.NewStyle().Foreground(categoryColors[c]).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, c))
	}
	return "  " + strings.Join(items, "  ")
}

func (r reportsModel) renderSummaryTable(w int) string {
	var weekTotal int64
	var rows []string

	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %10s %10s %10s",
		"Date", "Uni", "FYP", "Freelance", "Career", "Total"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 68))))

	hasData := false
	for _, s := range r.stats {
		weekTotal += s.TotalDailySeconds
		if s.TotalDailySeconds == 0 {
			continue
		}
		hasData = true
		rows = append(rows, fmt.Sprintf("  %-12s %10s %10s %10s %10s %10s",
			s.Date,
			formatSeconds(s.UniSeconds),
			formatSeconds(s.FYPSeconds),
			formatSeconds(s.FreelancingSeconds),
			formatSeconds(s.CareerSeconds),
			formatSeconds(s.TotalDailySeconds),
		))
	}

	if !hasData {
		return mutedStyle.Render("  No study time recorded this week")
	}

	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 68))))
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-12s %55s", "Week total", formatSeconds(weekTotal))))

	return strings.Join(rows, "\n")
}
