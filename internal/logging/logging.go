// Package logging builds the structured logger shared by every install phase.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

// Prefix is printed ahead of every log line.
const Prefix = "setup-orgflow"

var isTerminal = term.IsTerminal

// New returns a logger writing to w at the named level.
// Timestamps are only reported when w is an interactive terminal.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = io.Discard
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: interactive(w),
	}), nil
}

// Discard returns a logger that drops everything. Intended for tests and quiet callers.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a log level.
// An empty string selects info.
func ParseLevel(raw string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return log.InfoLevel, nil
	case "debug", "trace", "verbose":
		return log.DebugLevel, nil
	case "info", "information":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf(messages.LoggingInvalidLevelFmt, raw)
	}
}

func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}
