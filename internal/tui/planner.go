package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/budget"
	"github.com/ahmedhsn/studybudget/internal/store"
)

var taskPriorities = []string{"High", "Medium", "Low"}

type plannerModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  int64

	// Form field pointers (survive value copies)
	formTitle    *string
	formPriority *string
	formPurpose  *string
	formDesc     *string
}

func newPlannerModel(s *store.Store) plannerModel {
	title, prio, purpose, desc := "", "Medium", string(budget.Uni), ""
	return plannerModel{
		store:        s,
		formTitle:    &title,
		formPriority: &prio,
		formPurpose:  &purpose,
		formDesc:     &desc,
	}
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type plannerDataMsg struct {
	tasks []store.Task
}

func (p plannerModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, _ := p.store.TasksByDate(today())
		return plannerDataMsg{tasks: tasks}
	}
}

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plannerDataMsg:
		p.tasks = msg.tasks
		if p.cursor >= len(p.tasks) {
			p.cursor = max(0, len(p.tasks)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.tasks)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showTaskForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(p.tasks) > 0 {
				t := p.tasks[p.cursor]
				return p.showTaskForm(&t)
			}
		case key.Matches(msg, keys.Toggle):
			if len(p.tasks) > 0 {
				p.store.ToggleTask(p.tasks[p.cursor].ID)
				return p, p.refresh()
			}
		case key.Matches(msg, keys.Delete):
			if len(p.tasks) > 0 {
				p.store.DeleteTask(p.tasks[p.cursor].ID)
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p plannerModel) showTaskForm(t *store.Task) (plannerModel, tea.Cmd) {
	if t != nil {
		*p.formTitle = t.Title
		*p.formPriority = t.Priority
		*p.formPurpose = t.Purpose
		*p.formDesc = t.Description
		p.editing = true
		p.editingID = t.ID
	} else {
		*p.formTitle = ""
		*p.formPriority = "Medium"
		*p.formPurpose = string(budget.Uni)
		*p.formDesc = ""
		p.editing = false
	}

	prioOptions := make([]huh.Option[string], len(taskPriorities))
	for i, pr := range taskPriorities {
		prioOptions[i] = huh.NewOption(pr, pr)
	}
	purposeOptions := make([]huh.Option[string], len(budget.Categories))
	for i, c := range budget.Categories {
		purposeOptions[i] = huh.NewOption(string(c), string(c))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(p.formTitle),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(p.formPriority),
			huh.NewSelect[string]().Title("Purpose").Options(purposeOptions...).Value(p.formPurpose),
			huh.NewText().Title("Description").Value(p.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) updateForm(msg tea.Msg) (plannerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if strings.TrimSpace(*p.formTitle) == "" {
			return p, func() tea.Msg {
				return statusMsg{text: "Task title cannot be empty", isError: true}
			}
		}
		if p.editing {
			p.store.UpdateTask(p.editingID, *p.formTitle, *p.formPriority, *p.formPurpose, *p.formDesc)
		} else {
			p.store.CreateTask(*p.formTitle, *p.formPriority, *p.formPurpose, *p.formDesc, today())
		}
		return p, p.refresh()
	}

	return p, cmd
}

func (p plannerModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Task")
		if p.editing {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Today's Plan")

	if len(p.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing planned. Press n to add a task."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range p.tasks {
		check := "☐"
		if t.Done {
			check = "☑"
		}
		prio := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render(t.Priority)
		cat := budget.ParseCategory(t.Purpose)
		dot := lipgloss.NewStyle().Foreground(categoryColors[cat]).Render("●")

		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		titleText := t.Title
		if t.Done {
			titleText = mutedStyle.Strikethrough(true).Render(titleText)
		}
		row := style.Render(fmt.Sprintf("%s%s %s ", cursor, check, dot)) +
			titleText +
			fmt.Sprintf("  %s", prio)
		rows = append(rows, row)

		if i == p.cursor && t.Description != "" {
			rows = append(rows, mutedStyle.Render("      "+t.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
