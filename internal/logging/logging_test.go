package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(level)
	l.SetOutput(&buf)
	l.sink.now = func() time.Time { return time.Date(2020, 10, 26, 3, 43, 30, 0, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages written: %q", out)
	}
	if !strings.Contains(out, "03:43:30.000 [WARN] shown 3\n") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestLogger_Named(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	catalog := l.Named("catalog")
	catalog.Info("query radius=%.1f", 1.5)
	catalog.Named("cache").Debug("hit")

	out := buf.String()
	if !strings.Contains(out, "[INFO] [catalog] query radius=1.5") {
		t.Errorf("missing component tag in %q", out)
	}
	if !strings.Contains(out, "[DEBUG] [catalog.cache] hit") {
		t.Errorf("missing nested component tag in %q", out)
	}

	// Children share the level with the parent
	l.SetLevel(LevelError)
	if catalog.Enabled(LevelInfo) {
		t.Error("child logger should follow parent level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "here")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestLevel_String(t *testing.T) {
	if got := Level(99).String(); got != "UNKNOWN" {
		t.Errorf("Level(99).String() = %q", got)
	}
}
