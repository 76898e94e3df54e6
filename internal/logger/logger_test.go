package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"warning": WARN,
		"Error":   ERROR,
		"":        INFO,
		"verbose": INFO,
	}

	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Service: "render", Level: WARN, Out: &buf})

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN  [render] shown 3") {
		t.Errorf("expected warn line with service tag, got %q", out)
	}
}

func TestLogger_NoColorsWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: DEBUG, Out: &buf})

	l.Error("boom")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no ANSI escapes, got %q", buf.String())
	}
}

func TestLogger_WithAppendsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Service: "link2qr", Level: DEBUG, Out: &buf}).With("debounce")

	l.Debug("armed")

	if !strings.Contains(buf.String(), "[link2qr/debounce] armed") {
		t.Errorf("expected nested service tag, got %q", buf.String())
	}
}

func TestLogger_NilOutputDiscards(t *testing.T) {
	l := NewWithOptions(Options{Level: DEBUG})
	l.Info("nothing to see")
	l.SetOutput(nil)
	l.Info("still nothing")
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var l *Logger
	l.Info("no panic")
}
