package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sesame/internal/auth"
	"github.com/naveenspark/sesame/internal/form"
	"github.com/naveenspark/sesame/pkg/domain"
)

// redirectDelay is how long a success message stays up before the next form.
const redirectDelay = 3 * time.Second

type registerDoneMsg struct {
	err error
}

type registerModel struct {
	auth       *auth.Manager
	fields     fieldSet
	errs       form.Errors
	serverErr  string
	success    string
	submitting bool
}

func newRegisterModel(m *auth.Manager) registerModel {
	return registerModel{
		auth: m,
		fields: newFieldSet(
			field{key: "firstName", label: "first name", placeholder: "Ada"},
			field{key: "lastName", label: "last name", placeholder: "Lovelace"},
			field{key: "email", label: "email", placeholder: "you@example.com"},
			field{key: "password", label: "password", masked: true},
			field{key: "phone", label: "phone", placeholder: "0612345678"},
			field{key: "profilePicture", label: "picture url", placeholder: "optional"},
		),
	}
}

func (m registerModel) request() domain.RegisterRequest {
	return domain.RegisterRequest{
		FirstName:      strings.TrimSpace(m.fields.value("firstName")),
		LastName:       strings.TrimSpace(m.fields.value("lastName")),
		Email:          strings.TrimSpace(m.fields.value("email")),
		Password:       m.fields.value("password"),
		Phone:          strings.TrimSpace(m.fields.value("phone")),
		ProfilePicture: strings.TrimSpace(m.fields.value("profilePicture")),
		Role:           domain.DefaultRole,
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = m.auth.Status().Err
			if m.serverErr == "" {
				m.serverErr = auth.Message(msg.err, auth.MsgRegisterFailed)
			}
			return m, nil
		}
		m.success = "Account created. Check your email for the validation code."
		return m, navigateAfter(redirectDelay, viewRegister, viewValidate)

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

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	req := m.request()
	m.errs = form.Registration(req)
	m.serverErr = ""
	if m.errs != nil {
		m.fields.focusFirstError(m.errs)
		return m, nil
	}

	m.submitting = true
	a := m.auth
	return m, func() tea.Msg {
		return registerDoneMsg{err: a.Register(context.Background(), req)}
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Create an account") + "\n\n")
	b.WriteString(m.fields.view(m.errs))
	b.WriteString("\n")
	switch {
	case m.success != "":
		b.WriteString(" " + successStyle.Render(m.success) + "\n")
		b.WriteString(" " + dimStyle.Render("taking you to account validation..."))
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("creating account..."))
	case m.serverErr != "":
		b.WriteString(" " + errorStyle.Render(m.serverErr))
	default:
		b.WriteString(" " + metaStyle.Render("password: 8+ characters, upper and lower case, a digit and one of "+form.PasswordSymbols))
	}
	return b.String()
}
