package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the SESAME logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "SESAME" in brass with a glint that sweeps across
// the letters and pauses between passes, dim brass (#5a4a20) to gold (#f0c850).
func renderShimmerLogo(frame int) string {
	const (
		text   = "SESAME"
		period = 40 // frames per sweep, including the pause
		width  = 0.9
	)
	n := len(text)

	// The glint travels from just left of the first letter to just right of
	// the last, then rests off-screen for the remainder of the period.
	pos := float64(frame%period)/float64(period)*float64(n+4) - 2

	var out strings.Builder
	for i := 0; i < n; i++ {
		d := (float64(i) - pos) / width
		b := 0.25 + 0.75*math.Exp(-d*d)

		r := clampByte(90 + b*(240-90))
		g := clampByte(74 + b*(200-74))
		bl := clampByte(32 + b*(80-32))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d4a844")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))
)

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into one help line.
func helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpView renders the help overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f0c850")).
		Bold(true).
		Render("S E S A M E")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"sesame", "Open the app (dashboard when signed in)"},
		{"sesame login", "Sign in with email and password"},
		{"sesame register", "Create an account"},
		{"sesame validate [code]", "Activate an account with the emailed code"},
		{"sesame status", "Show the stored session"},
		{"sesame logout", "Clear your session"},
	}
	keys := []struct{ key, desc string }{
		{"1", "home"},
		{"2", "dashboard"},
		{"l / r / v", "login / register / validate"},
		{"o", "log out"},
		{"tab", "next field"},
		{"enter", "next field, submit on the last one"},
		{"ctrl+s", "submit"},
		{"esc", "leave a form"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
