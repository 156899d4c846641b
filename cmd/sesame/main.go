package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/sesame/internal/auth"
	"github.com/naveenspark/sesame/internal/config"
	"github.com/naveenspark/sesame/internal/logger"
	"github.com/naveenspark/sesame/internal/session"
	"github.com/naveenspark/sesame/internal/tui"
	"github.com/naveenspark/sesame/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// deps is everything a command needs, wired from the environment.
type deps struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *session.FileStore
	auth   *auth.Manager
	closer io.Closer
}

func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	return wire(cfg)
}

func wire(cfg *config.Config) (*deps, error) {
	log, closer, err := logger.New(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath()})
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(cfg.Home, cfg.Token)
	c := client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(log),
	)
	m := auth.NewManager(c, store, auth.WithLogger(log))
	m.Bind(c)

	log.Debug().Str("api", cfg.APIURL).Str("home", cfg.Home).Str("version", version).Msg("started")
	return &deps{cfg: cfg, log: log, store: store, auth: m, closer: closer}, nil
}

func (r *deps) Close() error {
	return r.closer.Close()
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "sesame "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "login", "register", "validate", "logout", "status":
	default:
		return fmt.Errorf("unknown command %q (see: sesame help)", cmd)
	}

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	switch cmd {
	case "logout":
		return runLogout(rt, out)
	case "status":
		return runStatus(rt, out, time.Now())
	case "validate":
		if len(args) > 1 {
			return runValidate(ctx, rt, args[1], out)
		}
	}
	return runTUI(rt, cmd)
}

// runTUI opens the interactive client on the named view.
func runTUI(rt *deps, start string) error {
	p := tea.NewProgram(tui.NewApp(rt.auth, start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runValidate submits a code without the TUI and reports the outcome.
func runValidate(ctx context.Context, rt *deps, code string, out io.Writer) error {
	if err := rt.auth.ValidateAccount(ctx, code); err != nil {
		printValidateFailed(out, rt.auth.Status().Err)
		return errors.New("account not validated")
	}
	printValidated(out)
	return nil
}

func runLogout(rt *deps, out io.Writer) error {
	if rt.store.Token() == "" && rt.store.Load().User == nil {
		fmt.Fprintln(out, "Already logged out.")
		return nil
	}
	if err := rt.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runStatus(rt *deps, out io.Writer, now time.Time) error {
	st := rt.auth.Status()
	if !st.Authenticated {
		printGreeting(out)
		return nil
	}
	info, ok := auth.Inspect(st.Token)
	printStatus(out, st, info, ok, now)
	fmt.Fprintf(out, "  %ssession stored in %s%s\n\n", ansiSlate, rt.store.Dir(), ansiReset)
	return nil
}
