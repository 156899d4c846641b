package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sesame/internal/auth"
	"github.com/naveenspark/sesame/internal/form"
)

type loginDoneMsg struct {
	err error
}

type loginModel struct {
	auth       *auth.Manager
	fields     fieldSet
	errs       form.Errors
	serverErr  string
	submitting bool
}

func newLoginModel(m *auth.Manager) loginModel {
	return loginModel{
		auth: m,
		fields: newFieldSet(
			field{key: "email", label: "email", placeholder: "you@example.com"},
			field{key: "password", label: "password", masked: true},
		),
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = m.auth.Status().Err
			if m.serverErr == "" {
				m.serverErr = auth.Message(msg.err, auth.MsgBadCredentials)
			}
			m.fields.set("password", "")
		}
		return m, nil

	case tea.KeyMsg:
		if m.fields.handleKey(msg) {
			return m.submit()
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	email := strings.TrimSpace(m.fields.value("email"))
	password := m.fields.value("password")

	m.errs = form.Login(email, password)
	m.serverErr = ""
	if m.errs != nil {
		m.fields.focusFirstError(m.errs)
		return m, nil
	}

	m.submitting = true
	a := m.auth
	return m, func() tea.Msg {
		return loginDoneMsg{err: a.Login(context.Background(), email, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Welcome back") + "\n")
	b.WriteString(" " + dimStyle.Render("Sign in to continue") + "\n\n")
	b.WriteString(m.fields.view(m.errs))
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.serverErr != "":
		b.WriteString(" " + errorStyle.Render(m.serverErr))
	default:
		b.WriteString(" " + metaStyle.Render("no account yet? esc, then r to register"))
	}
	return b.String()
}
