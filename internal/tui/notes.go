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

var notebookColors = []string{"#3B82F6", "#EF4444", "#F59E0B", "#10B981", "#8B5CF6", "#EC4899"}
var notebookIcons = []string{"📓", "📘", "📙", "📗", "📕", "🗒"}

type notesModel struct {
	store  *store.Store
	width  int
	height int

	notebooks []store.Notebook
	notes     []store.Note
	cursor    int
	noteCursor int

	viewingNotes bool // true = inside the selected notebook
	readingNote  bool // true = full note open

	formActive bool
	form       *huh.Form
	formType   string // "notebook", "edit_notebook", "note", "edit_note"
	editingID  int64

	// Form field pointers (survive value copies)
	formTitle   *string
	formIcon    *string
	formColor   *string
	formContent *string
}

func newNotesModel(s *store.Store) notesModel {
	title, icon, color, content := "", notebookIcons[0], notebookColors[0], ""
	return notesModel{
		store:       s,
		formTitle:   &title,
		formIcon:    &icon,
		formColor:   &color,
		formContent: &content,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

type notebooksDataMsg struct {
	notebooks []store.Notebook
}

type notesDataMsg struct {
	notes []store.Note
}

func (n notesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		notebooks, _ := n.store.ListNotebooks()
		return notebooksDataMsg{notebooks: notebooks}
	}
}

func (n notesModel) refreshNotes() tea.Cmd {
	if n.cursor >= len(n.notebooks) {
		return nil
	}
	id := n.notebooks[n.cursor].ID
	return func() tea.Msg {
		notes, _ := n.store.NotesByNotebook(id)
		return notesDataMsg{notes: notes}
	}
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notebooksDataMsg:
		n.notebooks = msg.notebooks
		if n.cursor >= len(n.notebooks) {
			n.cursor = max(0, len(n.notebooks)-1)
		}
		return n, nil

	case notesDataMsg:
		n.notes = msg.notes
		if n.noteCursor >= len(n.notes) {
			n.noteCursor = max(0, len(n.notes)-1)
		}
		return n, nil

	case tea.KeyMsg:
		if n.readingNote {
			if key.Matches(msg, keys.Back) {
				n.readingNote = false
			} else if key.Matches(msg, keys.Edit) {
				if n.noteCursor < len(n.notes) {
					note := n.notes[n.noteCursor]
					n.readingNote = false
					return n.showNoteForm(&note)
				}
			}
			return n, nil
		}
		if n.viewingNotes {
			return n.updateNoteList(msg)
		}
		return n.updateNotebookList(msg)
	}
	return n, nil
}

func (n notesModel) updateNotebookList(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(msg, keys.Down):
		if n.cursor < len(n.notebooks)-1 {
			n.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(n.notebooks) > 0 {
			n.viewingNotes = true
			n.noteCursor = 0
			return n, n.refreshNotes()
		}
	case key.Matches(msg, keys.New):
		return n.showNotebookForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(n.notebooks) > 0 {
			nb := n.notebooks[n.cursor]
			return n.showNotebookForm(&nb)
		}
	case key.Matches(msg, keys.Delete):
		if len(n.notebooks) > 0 {
			// Notes go with the notebook.
			n.store.DeleteNotebook(n.notebooks[n.cursor].ID)
			return n, n.refresh()
		}
	}
	return n, nil
}

func (n notesModel) updateNoteList(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		n.viewingNotes = false
		return n, n.refresh()
	case key.Matches(msg, keys.Up):
		if n.noteCursor > 0 {
			n.noteCursor--
		}
	case key.Matches(msg, keys.Down):
		if n.noteCursor < len(n.notes)-1 {
			n.noteCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(n.notes) > 0 {
			n.readingNote = true
		}
	case key.Matches(msg, keys.New):
		return n.showNoteForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(n.notes) > 0 {
			note := n.notes[n.noteCursor]
			return n.showNoteForm(&note)
		}
	case key.Matches(msg, keys.Delete):
		if len(n.notes) > 0 {
			n.store.DeleteNote(n.notes[n.noteCursor].ID)
			return n, n.refreshNotes()
		}
	}
	return n, nil
}

func (n notesModel) showNotebookForm(nb *store.Notebook) (notesModel, tea.Cmd) {
	if nb != nil {
		*n.formTitle = nb.Title
		*n.formIcon = nb.Icon
		*n.formColor = nb.Color
		n.formType = "edit_notebook"
		n.editingID = nb.ID
	} else {
		*n.formTitle = ""
		*n.formIcon = notebookIcons[0]
		*n.formColor = notebookColors[0]
		n.formType = "notebook"
	}

	iconOptions := make([]huh.Option[string], len(notebookIcons))
	for i, ic := range notebookIcons {
		iconOptions[i] = huh.NewOption(ic, ic)
	}
	colorOptions := make([]huh.Option[string], len(notebookColors))
	for i, c := range notebookColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Notebook Title").Value(n.formTitle),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(n.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(n.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showNoteForm(note *store.Note) (notesModel, tea.Cmd) {
	if note != nil {
		*n.formTitle = note.Title
		*n.formContent = note.Content
		n.formType = "edit_note"
		n.editingID = note.ID
	} else {
		*n.formTitle = ""
		*n.formContent = ""
		n.formType = "note"
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Note Title").Value(n.formTitle),
			huh.NewText().Title("Content").Value(n.formContent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		if strings.TrimSpace(*n.formTitle) == "" {
			return n, nil
		}
		switch n.formType {
		case "notebook":
			n.store.CreateNotebook(*n.formTitle, *n.formIcon, *n.formColor)
			return n, n.refresh()
		case "edit_notebook":
			n.store.UpdateNotebook(n.editingID, *n.formTitle, *n.formIcon, *n.formColor)
			return n, n.refresh()
		case "note":
			if n.cursor < len(n.notebooks) {
				n.store.CreateNote(n.notebooks[n.cursor].ID, *n.formTitle, *n.formContent)
			}
			return n, n.refreshNotes()
		case "edit_note":
			n.store.UpdateNote(n.editingID, *n.formTitle, *n.formContent)
			return n, n.refreshNotes()
		}
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := titleStyle.Render("New Notebook")
		switch n.formType {
		case "edit_notebook":
			title = titleStyle.Render("Edit Notebook")
		case "note":
			title = titleStyle.Render("New Note")
		case "edit_note":
			title = titleStyle.Render("Edit Note")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if n.readingNote && n.noteCursor < len(n.notes) {
		return n.renderNoteView()
	}
	if n.viewingNotes {
		return n.renderNoteList()
	}
	return n.renderNotebookList()
}

func (n notesModel) renderNotebookList() string {
	w := n.width - 4
	title := titleStyle.Render("Notebooks")

	if len(n.notebooks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No notebooks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, nb := range n.notebooks {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(nb.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == n.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		count := mutedStyle.Render(fmt.Sprintf("(%d notes)", nb.NoteCount))
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s %-24s", cursor, dot, nb.Icon, nb.Title))+count)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: open"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (n notesModel) renderNoteList() string {
	w := n.width - 4
	nb := n.notebooks[n.cursor]
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(nb.Color)).Render("●")
	title := titleStyle.Render(fmt.Sprintf("%s %s %s", dot, nb.Icon, nb.Title))

	if len(n.notes) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No notes. Press n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, note := range n.notes {
		cursor := "  "
		style := normalItemStyle
		if i == n.noteCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-32s", cursor, note.Title))+
			mutedStyle.Render(note.Date))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: read  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (n notesModel) renderNoteView() string {
	w := n.width - 4
	note := n.notes[n.noteCursor]

	title := titleStyle.Render(note.Title)
	date := mutedStyle.Render(note.Date)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+date,
		"",
		note.Content,
		"",
		mutedStyle.Render("  e: edit  esc: back"),
	)
	return activePanelStyle.Width(w).Render(content)
}
