// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every log line.
const Prefix = "launchrun"

// New returns a logger writing to w at the named level. Unknown levels
// fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           ParseLevel(level),
		ReportTimestamp: false,
	})
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a
// log.Level; anything else is warn.
func ParseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.WarnLevel
	}
	return l
}

// Install makes logger the slog default and returns a func that restores
// the previous default.
func Install(logger *log.Logger) (restore func()) {
	prev := slog.Default()
	slog.SetDefault(slog.New(logger))
	return func() { slog.SetDefault(prev) }
}

// Setup is New followed by Install.
func Setup(w io.Writer, level string) (*log.Logger, func()) {
	logger := New(w, level)
	return logger, Install(logger)
}
