package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sesame/internal/auth"
	"github.com/naveenspark/sesame/internal/form"
)

type validateDoneMsg struct {
	err error
}

type validateModel struct {
	auth       *auth.Manager
	fields     fieldSet
	errs       form.Errors
	serverErr  string
	success    string
	submitting bool
}

func newValidateModel(m *auth.Manager) validateModel {
	return validateModel{
		auth: m,
		fields: newFieldSet(
			field{key: "code", label: "code", placeholder: "from your email"},
		),
	}
}

func (m validateModel) Update(msg tea.Msg) (validateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case validateDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = m.auth.Status().Err
			if m.serverErr == "" {
				m.serverErr = auth.Message(msg.err, auth.MsgValidateFailed)
			}
			return m, nil
		}
		m.success = "Account validated. You can sign in now."
		return m, navigateAfter(redirectDelay, viewValidate, viewLogin)

	case tea.KeyMsg:
		if m.success != "" {
			return m, nil
		}
		if m.fields.handleKey(msg) {
			return m.submit()
		}
	}
	return m, nil
}

func (m validateModel) submit() (validateModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	code := strings.TrimSpace(m.fields.value("code"))
	m.errs = form.Code(code)
	m.serverErr = ""
	if m.errs != nil {
		return m, nil
	}

	m.submitting = true
	a := m.auth
	return m, func() tea.Msg {
		return validateDoneMsg{err: a.ValidateAccount(context.Background(), code)}
	}
}

func (m validateModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Validate your account") + "\n")
	b.WriteString(" " + dimStyle.Render("Enter the verification code you received by email") + "\n\n")
	b.WriteString(m.fields.view(m.errs))
	b.WriteString("\n")
	switch {
	case m.success != "":
		b.WriteString(" " + successStyle.Render(m.success))
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("validating..."))
	case m.serverErr != "":
		b.WriteString(" " + errorStyle.Render(m.serverErr))
	default:
		b.WriteString(" " + metaStyle.Render("no code? esc, then r to register again"))
	}
	return b.String()
}
