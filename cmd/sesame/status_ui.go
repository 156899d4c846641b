package main

import (
	"fmt"
	"io"
	"time"

	"github.com/naveenspark/sesame/internal/auth"
)

// ANSI color constants for command output (no lipgloss, runs outside the TUI).
const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiItalic    = "\033[3m"
	ansiGreen     = "\033[38;2;52;212;116m"  // #34d474
	ansiRed       = "\033[38;2;232;96;96m"   // #e86060
	ansiGold      = "\033[38;2;212;168;68m"  // #d4a844
	ansiGoldLight = "\033[38;2;200;168;76m"  // #c8a84c
	ansiSlate     = "\033[38;2;136;144;160m" // #8890a0
)

// printLogo prints the spaced SESAME wordmark in alternating gold.
func printLogo(out io.Writer) {
	letters := "SESAME"
	colors := [2]string{ansiGold, ansiGoldLight}
	fmt.Fprint(out, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(out, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

func printValidated(out io.Writer) {
	printLogo(out)
	fmt.Fprintf(out, "\n  %s%s✓ account validated%s\n", ansiGreen, ansiBold, ansiReset)
	fmt.Fprintf(out, "  %s%sSign in with: sesame login%s\n\n", ansiSlate, ansiItalic, ansiReset)
}

func printValidateFailed(out io.Writer, msg string) {
	if msg == "" {
		msg = auth.MsgValidateFailed
	}
	printLogo(out)
	fmt.Fprintf(out, "\n  %s%s✗ %s%s\n\n", ansiRed, ansiBold, msg, ansiReset)
}

// printStatus prints the stored session. Claims are shown only when the token
// decodes as a JWT.
func printStatus(out io.Writer, st auth.Status, info auth.TokenInfo, decoded bool, now time.Time) {
	printLogo(out)
	who := "unknown user"
	if st.User != nil {
		who = st.User.DisplayName()
	}
	fmt.Fprintf(out, "\n  %s%ssigned in%s  %s\n", ansiGreen, ansiBold, ansiReset, who)
	if st.User != nil && st.User.Email != "" && st.User.Email != who {
		fmt.Fprintf(out, "  %s%s%s\n", ansiSlate, st.User.Email, ansiReset)
	}
	if !decoded {
		fmt.Fprintf(out, "  %stoken is not a JWT; expiry unknown%s\n", ansiSlate, ansiReset)
		return
	}
	if info.Subject != "" {
		fmt.Fprintf(out, "  %ssubject%s  %s\n", ansiSlate, ansiReset, info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintf(out, "  %sexpires%s  never\n", ansiSlate, ansiReset)
	case info.Expired(now):
		fmt.Fprintf(out, "  %sexpires%s  %s%sexpired %s%s\n", ansiSlate, ansiReset, ansiRed, ansiBold, info.ExpiresAt.Format(time.RFC1123), ansiReset)
	default:
		fmt.Fprintf(out, "  %sexpires%s  %s (in %s)\n", ansiSlate, ansiReset, info.ExpiresAt.Format(time.RFC1123), info.ExpiresAt.Sub(now).Truncate(time.Minute))
	}
}
