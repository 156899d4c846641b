package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sesame/internal/auth"
)

type copyResultMsg struct {
	err error
}

type dashboardModel struct {
	auth      *auth.Manager
	statusMsg string
	now       func() time.Time
}

func newDashboardModel(m *auth.Manager) dashboardModel {
	return dashboardModel{auth: m, now: time.Now}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "token copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "c" {
			tok := m.auth.Status().Token
			if tok == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(tok)}
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	st := m.auth.Status()
	if !st.Authenticated {
		return ""
	}

	var b strings.Builder
	name := "there"
	if st.User != nil {
		name = st.User.DisplayName()
	}
	fmt.Fprintf(&b, " %s\n\n", titleStyle.Render("Hello, "+name))

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "   %s  %s\n", metaStyle.Render(fmt.Sprintf("%-10s", label)), normalStyle.Render(value))
	}
	if st.User != nil {
		row("email", st.User.Email)
		row("first name", st.User.FirstName)
		row("last name", st.User.LastName)
		row("role", st.User.Role)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, " %s\n", dimStyle.Render("session"))
	row("token", truncStr(st.Token, 24))
	if info, ok := m.auth.Claims(); ok {
		row("subject", info.Subject)
		now := m.now()
		if !info.IssuedAt.IsZero() {
			row("issued", formatUntil(info.IssuedAt, now))
		}
		if !info.ExpiresAt.IsZero() {
			exp := formatUntil(info.ExpiresAt, now)
			if info.Expired(now) {
				exp = errorStyle.Render("expired " + exp)
			}
			row("expires", exp)
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + successStyle.Render(m.statusMsg))
	}
	return b.String()
}
