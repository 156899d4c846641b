package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var doorGreetings = [...]string{
	"The door is closed. It does not open for guesses.",
	"No token, no entry. The door has been very consistent about this.",
	"You knocked. Nobody answered. Try the password.",
	"The door remembers everyone who came in. It does not remember you.",
	"Forty thieves found the right words. You can too.",
	"A closed door is just an open door with opinions.",
	"The lock is patient. The lock has nowhere else to be.",
	"Your session ended. The door kept the key.",
	"Somewhere, a validation code waits in your inbox.",
	"The door is polite but firm. Sign in first.",
}

func printHelp(out io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d4a844")).
		Bold(true).
		Render("S E S A M E")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Say the words and the door opens."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"sesame", "Open the interactive client"},
		{"sesame login", "Sign in with email and password"},
		{"sesame register", "Create an account"},
		{"sesame validate", "Enter the code from your email"},
		{"sesame validate CODE", "Validate without opening the client"},
		{"sesame status", "Show the stored session"},
		{"sesame logout", "Clear your session"},
		{"sesame --version", "Show version"},
		{"sesame help", "You are here"},
	}

	fmt.Fprintf(out, "\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	env := []struct{ name, desc string }{
		{"SESAME_API_URL", "API base URL"},
		{"SESAME_TOKEN", "Use this token instead of the stored one"},
		{"SESAME_HOME", "Session and log directory (default ~/.sesame)"},
		{"SESAME_LOG_LEVEL", "trace, debug, info, warn or error"},
		{"SESAME_HTTP_TIMEOUT", "Request timeout, e.g. 30s"},
	}
	fmt.Fprintf(out, "\n  Environment:\n")
	for _, e := range env {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(out)
}

// printGreeting is shown when there is no session.
func printGreeting(out io.Writer) {
	msg := doorGreetings[rand.Intn(len(doorGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d4a844")).
		Bold(true).
		Render("SESAME")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Not signed in. To enter: sesame login")

	fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
