package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type homeModel struct {
	width int
}

// View renders the landing page. authed switches the call to action.
func (m homeModel) View(authed bool) string {
	lines := []string{
		titleStyle.Render("Your account, from the terminal"),
		"",
		dimStyle.Render("Create an account, confirm it with the code we email you,"),
		dimStyle.Render("and sign in to reach your dashboard."),
		"",
	}
	if authed {
		lines = append(lines, accentStyle.Render("2")+" "+normalStyle.Render("open your dashboard"))
	} else {
		lines = append(lines,
			accentStyle.Render("r")+" "+normalStyle.Render("create an account"),
			accentStyle.Render("l")+" "+normalStyle.Render("sign in"),
			accentStyle.Render("v")+" "+normalStyle.Render("enter a validation code"),
		)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		pad := (m.width - lipgloss.Width(l)) / 2
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad) + l + "\n")
	}
	return b.String()
}
