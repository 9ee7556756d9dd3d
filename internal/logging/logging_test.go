package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) Logger {
	l := New(buf, level).(*logfmtLogger)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	log := fixedLogger(&buf, Info).With(F("component", "config"))
	log.Warn("using embedded default", F("path", "/tmp/a b/tetris.json"), Err(errors.New("boom")), F("attempt", 1))

	want := `ts=2024-01-02T03:04:05Z level=warn msg="using embedded default" component=config path="/tmp/a b/tetris.json" error=boom attempt=1` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected line:\n got=%q\nwant=%q", got, want)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := fixedLogger(&buf, Warn)
	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if log.Enabled(Info) || !log.Enabled(Error) {
		t.Fatalf("unexpected Enabled results")
	}
	log.Error("shown")
	if !strings.Contains(buf.String(), "level=error") {
		t.Fatalf("expected error record, got %q", buf.String())
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	log := Nop()
	if log.Enabled(Error) {
		t.Fatalf("nop logger should not be enabled")
	}
	log.Error("ignored")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":    Debug,
		" WARN ":   Warn,
		"warning":  Warn,
		"error":    Error,
		"info":     Info,
		"":         Info,
		"verbose?": Info,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tetris.log")
	log, closer, err := OpenFile(path, Info)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	log.Info("first")
	log.Info("second")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", lines, data)
	}
	if _, _, err := OpenFile("  ", Info); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestMultiFansOutByLevel(t *testing.T) {
	var file, console bytes.Buffer
	log := Multi(fixedLogger(&file, Debug), nil, fixedLogger(&console, Warn)).With(F("run", 1))
	log.Info("config loaded")
	log.Warn("using default config")

	if got := strings.Count(file.String(), "\n"); got != 2 {
		t.Fatalf("expected both records in file, got %q", file.String())
	}
	if strings.Contains(console.String(), "config loaded") || !strings.Contains(console.String(), "run=1") {
		t.Fatalf("unexpected console output: %q", console.String())
	}
	if !log.Enabled(Debug) {
		t.Fatalf("expected debug enabled through file logger")
	}
	if Multi().Enabled(Error) {
		t.Fatalf("empty multi logger should not be enabled")
	}
}
