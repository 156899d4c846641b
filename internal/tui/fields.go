package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sesame/internal/form"
)

// field is one labelled text input. key matches the form.Errors key.
type field struct {
	key         string
	label       string
	placeholder string
	value       string
	masked      bool
}

// fieldSet is the focus and editing logic shared by every form.
type fieldSet struct {
	fields []field
	focus  int
}

func newFieldSet(fields ...field) fieldSet {
	return fieldSet{fields: fields}
}

// value returns the current text of the field with the given key.
func (s fieldSet) value(key string) string {
	for _, f := range s.fields {
		if f.key == key {
			return f.value
		}
	}
	return ""
}

// set replaces the text of the field with the given key.
func (s *fieldSet) set(key, v string) {
	for i := range s.fields {
		if s.fields[i].key == key {
			s.fields[i].value = v
			return
		}
	}
}

// keys returns field keys in display order.
func (s fieldSet) keys() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.key
	}
	return out
}

// handleKey applies a keystroke and reports whether it asked to submit.
// Pasted text is inserted rune by rune.
func (s *fieldSet) handleKey(msg tea.KeyMsg) (submit bool) {
	if msg.Paste {
		f := &s.fields[s.focus]
		for _, r := range msg.Runes {
			f.value = editRune(f.value, string(r))
		}
		return false
	}
	n := len(s.fields)
	key := msg.String()
	switch key {
	case "ctrl+s":
		return true
	case "tab", "down":
		s.focus = (s.focus + 1) % n
	case "shift+tab", "up":
		s.focus = (s.focus - 1 + n) % n
	case "enter":
		if s.focus == n-1 {
			return true
		}
		s.focus++
	default:
		f := &s.fields[s.focus]
		f.value = editRune(f.value, key)
	}
	return false
}

// focusFirstError moves focus to the first field with an error.
func (s *fieldSet) focusFirstError(errs form.Errors) {
	for i, f := range s.fields {
		if _, ok := errs[f.key]; ok {
			s.focus = i
			return
		}
	}
}

// view renders the inputs with per-field errors underneath.
func (s fieldSet) view(errs form.Errors) string {
	width := 0
	for _, f := range s.fields {
		if l := utf8.RuneCountInString(f.label); l > width {
			width = l
		}
	}

	var b strings.Builder
	for i, f := range s.fields {
		cursor := " "
		style := metaStyle
		if i == s.focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}

		display := f.value
		if f.masked {
			display = strings.Repeat("•", utf8.RuneCountInString(f.value))
		}
		switch {
		case i == s.focus:
			display = normalStyle.Render(display) + accentStyle.Render("█")
		case display == "":
			display = inputPlaceholderStyle.Render(f.placeholder)
		default:
			display = normalStyle.Render(display)
		}

		fmt.Fprintf(&b, " %s %s  %s\n", cursor, style.Render(fmt.Sprintf("%-*s", width, f.label)), display)
		if msg, ok := errs[f.key]; ok {
			fmt.Fprintf(&b, "   %s  %s\n", strings.Repeat(" ", width), errorStyle.Render(msg))
		}
	}
	return b.String()
}
