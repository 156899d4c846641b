package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatUntil renders the distance from now to t, e.g. "in 3h" or "5m ago".
func formatUntil(t, now time.Time) string {
	d := t.Sub(now)
	suffix := ""
	prefix := "in "
	if d < 0 {
		d = -d
		prefix = ""
		suffix = " ago"
	}
	var s string
	switch {
	case d < time.Minute:
		if suffix != "" {
			return "just now"
		}
		s = "under a minute"
	case d < time.Hour:
		s = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		s = fmt.Sprintf("%dh", int(d.Hours()))
	default:
		s = fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	return prefix + s + suffix
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
