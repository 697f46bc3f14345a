package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/budget"
	"github.com/ahmedhsn/studybudget/internal/store"
)

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	year  int
	month int

	events []store.Event
	cursor int

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  int64

	// Form field pointers (survive value copies)
	formTitle    *string
	formDate     *string
	formType     *string
	formTime     *string
	formEndTime  *string
	formLocation *string
	formCategory *string
	formDesc     *string
}

func newCalendarModel(s *store.Store) calendarModel {
	now := time.Now()
	title, date, typ, tm, end, loc, cat, desc := "", "", "day", "", "", "", string(budget.Uni), ""
	return calendarModel{
		store:        s,
		year:         now.Year(),
		month:        int(now.Month()),
		formTitle:    &title,
		formDate:     &date,
		formType:     &typ,
		formTime:     &tm,
		formEndTime:  &end,
		formLocation: &loc,
		formCategory: &cat,
		formDesc:     &desc,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	events []store.Event
}

func (c calendarModel) refresh() tea.Cmd {
	year, month := c.year, c.month
	// Past day-events are hidden only in the current month.
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	now := time.Now()
	if year == now.Year() && month == int(now.Month()) {
		from = today()
	}
	return func() tea.Msg {
		events, _ := c.store.EventsByMonth(year, month, from)
		return calendarDataMsg{events: events}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case calendarDataMsg:
		c.events = msg.events
		if c.cursor >= len(c.events) {
			c.cursor = max(0, len(c.events)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.events)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Left):
			c.month--
			if c.month < 1 {
				c.month = 12
				c.year--
			}
			c.cursor = 0
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			c.month++
			if c.month > 12 {
				c.month = 1
				c.year++
			}
			c.cursor = 0
			return c, c.refresh()
		case key.Matches(msg, keys.New):
			return c.showEventForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(c.events) > 0 {
				e := c.events[c.cursor]
				return c.showEventForm(&e)
			}
		case key.Matches(msg, keys.Delete):
			if len(c.events) > 0 {
				c.store.DeleteEvent(c.events[c.cursor].ID)
				return c, c.refresh()
			}
		}
	}
	return c, nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (c calendarModel) showEventForm(e *store.Event) (calendarModel, tea.Cmd) {
	if e != nil {
		*c.formTitle = e.Title
		*c.formDate = e.Date
		*c.formType = e.Type
		*c.formTime = e.Time
		*c.formEndTime = e.EndTime
		*c.formLocation = e.Location
		*c.formCategory = e.Category
		*c.formDesc = e.Description
		c.editing = true
		c.editingID = e.ID
	} else {
		*c.formTitle = ""
		*c.formDate = fmt.Sprintf("%04d-%02d-01", c.year, c.month)
		*c.formType = "day"
		*c.formTime = ""
		*c.formEndTime = ""
		*c.formLocation = ""
		*c.formCategory = string(budget.Uni)
		*c.formDesc = ""
		c.editing = false
	}

	catOptions := make([]huh.Option[string], len(budget.Categories))
	for i, cat := range budget.Categories {
		catOptions[i] = huh.NewOption(string(cat), string(cat))
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(c.formTitle),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Validate(validateDate).Value(c.formDate),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Single day", "day"),
					huh.NewOption("Whole month", "month"),
				).
				Value(c.formType),
			huh.NewInput().Title("Start time (HH:MM)").Value(c.formTime),
			huh.NewInput().Title("End time (HH:MM)").Value(c.formEndTime),
			huh.NewInput().Title("Location").Value(c.formLocation),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(c.formCategory),
			huh.NewText().Title("Description").Value(c.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		if strings.TrimSpace(*c.formTitle) == "" {
			return c, func() tea.Msg {
				return statusMsg{text: "Event title cannot be empty", isError: true}
			}
		}
		ev := store.Event{
			Title:       *c.formTitle,
			Date:        strings.TrimSpace(*c.formDate),
			Type:        *c.formType,
			Time:        strings.TrimSpace(*c.formTime),
			EndTime:     strings.TrimSpace(*c.formEndTime),
			Location:    *c.formLocation,
			Category:    *c.formCategory,
			Description: *c.formDesc,
		}
		if c.editing {
			ev.ID = c.editingID
			c.store.UpdateEvent(ev)
		} else {
			c.store.CreateEvent(ev)
		}
		return c, c.refresh()
	}

	return c, cmd
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Event")
		if c.editing {
			title = titleStyle.Render("Edit Event")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	monthName := time.Month(c.month).String()
	title := titleStyle.Render(fmt.Sprintf("%s %d", monthName, c.year))
	nav := mutedStyle.Render("  ←/→ change month")
	header := title + nav

	if len(c.events) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No upcoming events. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, e := range c.events {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		when := e.Date
		if e.Type == "month" {
			when = "all month"
		} else if e.Time != "" {
			when = fmt.Sprintf("%s %s", e.Date, e.Time)
			if e.EndTime != "" {
				when += "-" + e.EndTime
			}
		}

		row := style.Render(fmt.Sprintf("%s%s %-28s", cursor, dot, e.Title)) +
			mutedStyle.Render(when)
		if e.Location != "" {
			row += mutedStyle.Render("  @ " + e.Location)
		}
		rows = append(rows, row)

		if i == c.cursor && e.Description != "" {
			rows = append(rows, mutedStyle.Render("      "+e.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
