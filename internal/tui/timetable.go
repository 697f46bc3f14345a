package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/store"
)

type timetableModel struct {
	store  *store.Store
	width  int
	height int

	timetables []store.Timetable
	slots      []store.TimetableSlot
	cursor     int
	slotCursor int

	viewingSlots bool

	formActive bool
	form       *huh.Form
	formType   string // "timetable", "slot"

	// Form field pointers (survive value copies)
	formName     *string
	formStart    *string
	formEnd      *string
	formActivity *string
}

func newTimetableModel(s *store.Store) timetableModel {
	name, start, end, activity := "", "", "", ""
	return timetableModel{
		store:        s,
		formName:     &name,
		formStart:    &start,
		formEnd:      &end,
		formActivity: &activity,
	}
}

func (t *timetableModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type timetablesDataMsg struct {
	timetables []store.Timetable
}

type slotsDataMsg struct {
	slots []store.TimetableSlot
}

func (t timetableModel) refresh() tea.Cmd {
	return func() tea.Msg {
		timetables, _ := t.store.ListTimetables()
		return timetablesDataMsg{timetables: timetables}
	}
}

func (t timetableModel) refreshSlots() tea.Cmd {
	if t.cursor >= len(t.timetables) {
		return nil
	}
	id := t.timetables[t.cursor].ID
	return func() tea.Msg {
		slots, _ := t.store.SlotsByTimetable(id)
		return slotsDataMsg{slots: slots}
	}
}

func (t timetableModel) update(msg tea.Msg) (timetableModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case timetablesDataMsg:
		t.timetables = msg.timetables
		if t.cursor >= len(t.timetables) {
			t.cursor = max(0, len(t.timetables)-1)
		}
		return t, nil

	case slotsDataMsg:
		t.slots = msg.slots
		if t.slotCursor >= len(t.slots) {
			t.slotCursor = max(0, len(t.slots)-1)
		}
		return t, nil

	case tea.KeyMsg:
		if t.viewingSlots {
			return t.updateSlotView(msg)
		}
		return t.updateTimetableList(msg)
	}
	return t, nil
}

func (t timetableModel) updateTimetableList(msg tea.KeyMsg) (timetableModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.timetables)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(t.timetables) > 0 {
			t.viewingSlots = true
			t.slotCursor = 0
			return t, t.refreshSlots()
		}
	case key.Matches(msg, keys.New):
		return t.showTimetableForm()
	case key.Matches(msg, keys.Delete):
		if len(t.timetables) > 0 {
			// Slots go with the timetable.
			t.store.DeleteTimetable(t.timetables[t.cursor].ID)
			return t, t.refresh()
		}
	}
	return t, nil
}

func (t timetableModel) updateSlotView(msg tea.KeyMsg) (timetableModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		t.viewingSlots = false
		return t, nil
	case key.Matches(msg, keys.Up):
		if t.slotCursor > 0 {
			t.slotCursor--
		}
	case key.Matches(msg, keys.Down):
		if t.slotCursor < len(t.slots)-1 {
			t.slotCursor++
		}
	case key.Matches(msg, keys.New):
		return t.showSlotForm()
	case key.Matches(msg, keys.Delete):
		if len(t.slots) > 0 {
			t.store.DeleteSlot(t.slots[t.slotCursor].ID)
			return t, t.refreshSlots()
		}
	}
	return t, nil
}

func validateClock(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func (t timetableModel) showTimetableForm() (timetableModel, tea.Cmd) {
	*t.formName = ""
	t.formType = "timetable"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Timetable Name").Value(t.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t timetableModel) showSlotForm() (timetableModel, tea.Cmd) {
	*t.formStart = ""
	*t.formEnd = ""
	*t.formActivity = ""
	t.formType = "slot"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start (HH:MM)").Validate(validateClock).Value(t.formStart),
			huh.NewInput().Title("End (HH:MM)").Validate(validateClock).Value(t.formEnd),
			huh.NewInput().Title("Activity").Value(t.formActivity),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t timetableModel) updateForm(msg tea.Msg) (timetableModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		switch t.formType {
		case "timetable":
			if strings.TrimSpace(*t.formName) != "" {
				t.store.CreateTimetable(*t.formName)
			}
			return t, t.refresh()
		case "slot":
			if t.cursor < len(t.timetables) && strings.TrimSpace(*t.formActivity) != "" {
				t.store.AddSlot(t.timetables[t.cursor].ID,
					strings.TrimSpace(*t.formStart),
					strings.TrimSpace(*t.formEnd),
					*t.formActivity)
			}
			return t, t.refreshSlots()
		}
	}

	return t, cmd
}

func (t timetableModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Timetable")
		if t.formType == "slot" {
			title = titleStyle.Render("New Slot")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if t.viewingSlots {
		return t.renderSlotView()
	}
	return t.renderTimetableList()
}

func (t timetableModel) renderTimetableList() string {
	w := t.width - 4
	title := titleStyle.Render("Timetables")

	if len(t.timetables) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No timetables yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, tt := range t.timetables {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+tt.Name))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  enter: slots"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t timetableModel) renderSlotView() string {
	w := t.width - 4
	tt := t.timetables[t.cursor]
	title := titleStyle.Render(tt.Name + " — Slots")

	if len(t.slots) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Empty timetable. Press n to add a slot."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, slot := range t.slots {
		cursor := "  "
		style := normalItemStyle
		if i == t.slotCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s - %s  ", cursor, slot.StartTime, slot.EndTime))+
			slot.Activity)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new slot  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
