// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.WarnLevel},
		{"chatty", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetup_RoutesSlog(t *testing.T) {
	var buf bytes.Buffer
	_, restore := Setup(&buf, "info")
	defer restore()

	slog.Debug("hidden")
	slog.Info("launched", "configuration", "api")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "launched") || !strings.Contains(out, "configuration=api") {
		t.Errorf("info record missing: %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestInstall_Restore(t *testing.T) {
	prev := slog.Default()
	restore := Install(New(&bytes.Buffer{}, "debug"))
	if slog.Default() == prev {
		t.Fatal("Install did not replace the default logger")
	}
	restore()
	if slog.Default() != prev {
		t.Error("restore did not reinstate the previous logger")
	}
}
