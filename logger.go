package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// NewLogger returns a structured slog.Logger with the given level. Output is
// JSON unless stdout is a terminal. Every record carries the run's session id.
func NewLogger(level slog.Leveler) *slog.Logger {
	return newLogger(os.Stdout, isTerminal(os.Stdout), level, uuid.NewString())
}

func newLogger(w io.Writer, text bool, level slog.Leveler, session string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if text {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("session", session)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
