package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFileWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")

	logger, closeFn, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("thumbnail degraded", "card", "web#0")
	if err := closeFn(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	for _, want := range []string{"thumbnail degraded", "card=web#0", "session="} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in log, got %q", want, got)
		}
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := New("", "info")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("ignored")
	if err := closeFn(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_LeavesStandardLogOutput(t *testing.T) {
	before := log.Writer()
	path := filepath.Join(t.TempDir(), "catalog.log")

	_, closeFn, err := New(path, "info")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeFn()

	if log.Writer() != before {
		t.Fatalf("expected standard log output to stay unchanged")
	}
}
