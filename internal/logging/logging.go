// Package logging sets up file-backed structured logging. The terminal belongs
// to the TUI, so nothing is written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// New returns a logger writing to path and a function closing the file. An
// empty path yields a logger that discards everything. The standard log
// package keeps its output so start-up failures still reach the terminal.
func New(path, level string) (*slog.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return Discard(), func() error { return nil }, nil
	}

	f, err := tea.LogToFileWith(path, "catalog", log.New(io.Discard, "", 0))
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: ParseLevel(level)})
	logger := slog.New(handler).With("session", sessionID())
	return logger, f.Close, nil
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func sessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
