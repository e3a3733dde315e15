package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warning", LevelWarn},
		{"warn", LevelWarn},
		{" error ", LevelError},
		{"chatty", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(99).String() != "UNKNOWN" {
		t.Errorf("got %q, %q", LevelWarn, Level(99))
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn)
	log.SetOutput(&buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "warn 3") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "error 4") {
		t.Errorf("missing error line: %q", out)
	}

	buf.Reset()
	log.SetLevel(LevelDebug)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("SetLevel did not lower threshold: %q", buf.String())
	}
}

func TestInfowFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo)
	log.SetOutput(&buf)

	log.Infow("job fired", "event", "sunset", "offset", "-30m")
	out := buf.String()
	if !strings.Contains(out, "job fired") || !strings.Contains(out, `"event": "sunset"`) {
		t.Errorf("Infow output = %q", out)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing %s", "here")
	log.SetLevel(LevelDebug)
	log.Debug("still nothing")
}
