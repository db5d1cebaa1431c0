package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info)

	logger.Info("daemon_listening", F("addr", "127.0.0.1:7171"))

	line := buf.String()
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field, got %q", line)
	}
	if !strings.Contains(line, "msg=daemon_listening") {
		t.Fatalf("expected message field, got %q", line)
	}
	if !strings.Contains(line, "addr=127.0.0.1:7171") {
		t.Fatalf("expected addr field, got %q", line)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("expected low levels filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestWithFieldsCarryForward(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info).With(F("component", "daemon"))

	logger.Info("started")

	if !strings.Contains(buf.String(), "component=daemon") {
		t.Fatalf("expected bound field, got %q", buf.String())
	}
}

func TestQuotingOfSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info)

	logger.Info("note_save_failed", F("error", "connection refused"))

	if !strings.Contains(buf.String(), `error="connection refused"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"WARN":    Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
		"warning": Warn,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
