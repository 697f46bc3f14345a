package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhsn/studybudget/internal/auth"
)

type unlockModel struct {
	gate     *auth.Gate
	firstRun bool
	form     *huh.Form
	width    int
	height   int
	errText  string

	password string
	confirm  string
}

func newUnlockModel(gate *auth.Gate) unlockModel {
	configured, _ := gate.Configured()
	m := unlockModel{
		gate:     gate,
		firstRun: !configured,
	}
	m.form = m.buildForm()
	return m
}

func (m *unlockModel) buildForm() *huh.Form {
	m.password = ""
	m.confirm = ""

	if m.firstRun {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Set a password").
					EchoMode(huh.EchoModePassword).
					Value(&m.password),
				huh.NewInput().
					Title("Confirm password").
					EchoMode(huh.EchoModePassword).
					Value(&m.confirm),
			),
		).WithShowHelp(false)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithShowHelp(false)
}

func (m unlockModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *unlockModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m unlockModel) update(msg tea.Msg) (unlockModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.firstRun {
			if m.password != m.confirm {
				m.errText = "Passwords do not match"
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			if err := m.gate.SetPassword(m.password); err != nil {
				m.errText = err.Error()
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			return m, func() tea.Msg { return unlockedMsg{} }
		}

		if !m.gate.Check(m.password) {
			m.errText = "Wrong password"
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return unlockedMsg{} }
	}

	return m, cmd
}

func (m unlockModel) view() string {
	title := titleStyle.Render("Study Budget")
	sub := mutedStyle.Render("Locked")
	if m.firstRun {
		sub = mutedStyle.Render("First run — choose a password")
	}

	body := lipgloss.JoinVertical(lipgloss.Center, title, sub, "", m.form.View())
	if m.errText != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", errorStyle.Render(m.errText))
	}

	box := activePanelStyle.Padding(1, 4).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
