package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxInputLen caps a form field, in runes.
const maxInputLen = 256

// editRune applies one keystroke to text. "backspace" drops the last rune, a
// single printable rune is appended, and any other key leaves text unchanged.
func editRune(text, key string) string {
	if key == "backspace" {
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	}
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || r == utf8.RuneError || !unicode.IsPrint(r) {
		return text
	}
	if utf8.RuneCountInString(text) >= maxInputLen {
		return text
	}
	return text + key
}

// truncateToHeight keeps the first maxLines lines of s. maxLines <= 0 means
// no limit.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	lines := strings.SplitAfterN(s, "\n", maxLines+1)
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "")
}
