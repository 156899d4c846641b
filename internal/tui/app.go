package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/sesame/internal/auth"
)

type view int

const (
	viewHome view = iota
	viewLogin
	viewRegister
	viewValidate
	viewDashboard
)

var viewNames = map[string]view{
	"home":      viewHome,
	"login":     viewLogin,
	"register":  viewRegister,
	"validate":  viewValidate,
	"dashboard": viewDashboard,
}

// navigateMsg switches from one view to another, unless the user has already
// moved on.
type navigateMsg struct {
	from view
	to   view
}

func navigateAfter(d time.Duration, from, to view) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navigateMsg{from: from, to: to}
	})
}

// sessionEventMsg wraps an auth.Event for the update loop.
type sessionEventMsg struct {
	event auth.Event
}

// waitForEvent blocks on the manager's event channel and delivers one event.
func waitForEvent(ch <-chan auth.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return sessionEventMsg{event: e}
	}
}

// App is the root Bubbletea model.
type App struct {
	auth      *auth.Manager
	view      view
	home      homeModel
	login     loginModel
	register  registerModel
	validate  validateModel
	dashboard dashboardModel
	helpOpen  bool
	notice    string
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the TUI, opening on the named view ("home", "login",
// "register", "validate" or "dashboard"). An empty or unknown name opens the
// dashboard when a session exists and home otherwise.
func NewApp(m *auth.Manager, start string) App {
	a := App{
		auth:      m,
		login:     newLoginModel(m),
		register:  newRegisterModel(m),
		validate:  newValidateModel(m),
		dashboard: newDashboardModel(m),
	}
	v, ok := viewNames[start]
	if !ok {
		v = viewHome
		if m.IsAuthenticated() {
			v = viewDashboard
		}
	}
	a.view = guard(v, m.IsAuthenticated())
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), waitForEvent(a.auth.Events()))
}

// navigate switches view through the guard. Forms start fresh on entry.
func (a App) navigate(to view) (App, tea.Cmd) {
	resolved := guard(to, a.auth.IsAuthenticated())
	if resolved != to {
		a.notice = "please sign in first"
	} else if to != a.view {
		a.notice = ""
	}
	a.auth.ClearError()
	switch resolved {
	case viewLogin:
		a.login = newLoginModel(a.auth)
	case viewRegister:
		a.register = newRegisterModel(a.auth)
	case viewValidate:
		a.validate = newValidateModel(a.auth)
	case viewDashboard:
		a.dashboard = newDashboardModel(a.auth)
	}
	a.view = resolved
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.home.width = msg.Width
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionEventMsg:
		next := waitForEvent(a.auth.Events())
		switch msg.event.Kind {
		case auth.EventExpired:
			if a.view != viewLogin {
				a, _ = a.navigate(viewLogin)
			}
			if msg.event.WasAuthenticated && !msg.event.DuringLogin {
				a.notice = "your session has expired, please sign in again"
			}
		case auth.EventLoggedOut:
			if a.view != viewLogin {
				a, _ = a.navigate(viewLogin)
			}
		}
		return a, next

	case navigateMsg:
		if a.view != msg.from {
			return a, nil
		}
		return a.navigate(msg.to)

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil && a.view == viewLogin {
			return a.navigate(viewDashboard)
		}
		return a, cmd

	case registerDoneMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case validateDoneMsg:
		var cmd tea.Cmd
		a.validate, cmd = a.validate.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc", "?":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}

		if a.isEditing() {
			if msg.String() == "esc" {
				return a.navigate(viewHome)
			}
			break
		}

		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "h", "?":
			a.helpOpen = true
			return a, nil
		case "1":
			return a.navigate(viewHome)
		case "2":
			return a.navigate(viewDashboard)
		case "l":
			return a.navigate(viewLogin)
		case "r":
			return a.navigate(viewRegister)
		case "v":
			return a.navigate(viewValidate)
		case "o":
			if a.auth.IsAuthenticated() {
				if err := a.auth.Logout(); err != nil {
					a.notice = "logout: " + err.Error()
				}
				a, _ = a.navigate(viewLogin)
				a.notice = "signed out"
			}
			return a, nil
		case "esc":
			if a.view != viewHome {
				return a.navigate(viewHome)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewValidate:
		a.validate, cmd = a.validate.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether keystrokes belong to a form rather than the app.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewRegister, viewValidate:
		return true
	}
	return false
}

// navbar renders the link row: where you can go, and who you are.
func (a App) navbar() string {
	authed := a.auth.IsAuthenticated()

	type link struct {
		key  string
		name string
		v    view
	}
	left := []link{{"1", "Home", viewHome}}
	if authed {
		left = append(left, link{"2", "Dashboard", viewDashboard})
	}
	var right []link
	if !authed {
		right = []link{{"l", "Login", viewLogin}, {"r", "Register", viewRegister}}
	}

	render := func(links []link) string {
		parts := make([]string, 0, len(links))
		for _, l := range links {
			if l.v == a.view {
				parts = append(parts, accentStyle.Render(l.key)+" "+selectedStyle.Underline(true).Render(l.name))
			} else {
				parts = append(parts, metaStyle.Render(l.key)+" "+dimStyle.Render(l.name))
			}
		}
		return strings.Join(parts, "   ")
	}

	leftStr := " " + render(left)
	rightStr := render(right)
	if authed {
		who := "signed in"
		if st := a.auth.Status(); st.User != nil && st.User.Email != "" {
			who = st.User.Email
		}
		rightStr = dimStyle.Render(truncStr(who, 32)) + "   " + metaStyle.Render("o") + " " + dimStyle.Render("Logout")
	}
	rightStr += " "

	gap := a.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr)
	if gap < 2 {
		gap = 2
	}
	return leftStr + strings.Repeat(" ", gap) + rightStr
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Guarded views never render without a session, whatever a.view says.
	shown := guard(a.view, a.auth.IsAuthenticated())

	var body, help string
	switch shown {
	case viewHome:
		body = a.home.View(a.auth.IsAuthenticated())
		help = helpBar("1/2", "nav", "l", "login", "r", "register", "v", "validate", "h", "help", "q", "quit")
	case viewLogin:
		body = a.login.View()
		help = helpBar("tab", "next", "enter", "sign in", "esc", "back")
	case viewRegister:
		body = a.register.View()
		help = helpBar("tab", "next", "ctrl+s", "submit", "esc", "back")
	case viewValidate:
		body = a.validate.View()
		help = helpBar("enter", "validate", "esc", "back")
	case viewDashboard:
		body = a.dashboard.View()
		help = helpBar("c", "copy token", "o", "logout", "1", "home", "h", "help", "q", "quit")
	}

	if a.helpOpen {
		body = helpView()
		help = helpBar("esc", "close", "q", "quit")
	}

	noticeLine := ""
	if a.notice != "" {
		noticeLine = " " + noticeStyle.Render(a.notice)
	}

	// Chrome budget: header(1) + navbar(1) + notice(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, a.navbar(), noticeLine, body, help)
}
