package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewWritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(Options{Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer closer.Close() //nolint:errcheck

	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sesame.log")
	l, closer, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Info().Msg("first")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "first") {
		t.Errorf("log file = %q, want it to contain 'first'", data)
	}
}

func TestNewWithoutSinkIsDisabled(t *testing.T) {
	l, _, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if l.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", l.GetLevel())
	}
}
