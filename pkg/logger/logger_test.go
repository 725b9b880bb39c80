package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

// resetNamed drops every named logger and points new ones at w.
func resetNamed(t *testing.T, w io.Writer) {
	t.Helper()
	namedMu.Lock()
	namedLoggers = make(map[string]Logger)
	namedWriter = w
	namedMu.Unlock()

	t.Cleanup(func() {
		namedMu.Lock()
		namedLoggers = make(map[string]Logger)
		namedWriter = os.Stdout
		namedMu.Unlock()
	})
}

func TestGetLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	resetNamed(t, &buf)

	l := GetLogger("coinbase.client")
	l.(*logger).now = fixedClock

	l.Info("client ready")

	want := "2024-03-09 14:05:07 - coinbase.client - INFO - client ready\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestGetLoggerSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	resetNamed(t, &buf)

	l := GetLogger("quiet")
	l.Debug("not shown")
	l.Warnf("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("Debug line should be filtered at INFO level: %q", out)
	}
	if !strings.Contains(out, " - quiet - WARN - shown 1") {
		t.Errorf("Expected warn line, got %q", out)
	}
}

func TestGetLoggerReturnsSameInstance(t *testing.T) {
	var buf bytes.Buffer
	resetNamed(t, &buf)

	first := GetLogger("shared")
	second := GetLogger("shared")
	if first != second {
		t.Fatal("Expected the same logger for the same name")
	}

	second.Info("once")
	if n := strings.Count(buf.String(), "once"); n != 1 {
		t.Errorf("Expected message written once, got %d times", n)
	}

	if GetLogger("other") == first {
		t.Error("Different names must yield different loggers")
	}
}

func TestNamedLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{
		Level:   InfoLevel,
		Writer:  &buf,
		NoColor: true,
		Layout:  LayoutNamed,
		Prefix:  "svc",
	})
	l.(*logger).now = fixedClock

	l.WithFields(map[string]interface{}{"b": 2, "a": 1}).Error("boom")

	want := "2024-03-09 14:05:07 - svc - ERROR - a=1 b=2 boom\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestConsoleLayout(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{
		Level:    DebugLevel,
		Writer:   &buf,
		NoColor:  true,
		ShowTime: true,
	})
	l.(*logger).now = fixedClock

	l.WithPrefix("check").WithField("profile", "default").Debugf("resolved %s", "key")

	want := "14:05:07 DEBUG [check] profile=default resolved key\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: InfoLevel, Writer: &buf, NoColor: true})

	_ = parent.WithField("k", "v")
	parent.Info("plain")

	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("Parent logger picked up child field: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogKeyValueNoColor(t *testing.T) {
	var buf bytes.Buffer
	helperOut = &buf
	SetNoColor(true)
	t.Cleanup(func() {
		helperOut = os.Stdout
		SetNoColor(false)
	})

	LogKeyValue("Base URL", "api.coinbase.com")

	if buf.String() != "Base URL: api.coinbase.com\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}
