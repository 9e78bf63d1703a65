// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/launch"

	"github.com/google/uuid"
)

const (
	// EnvMode holds "run" or "debug".
	EnvMode = "LAUNCHRUN_MODE"
	// EnvSession holds the session UUID.
	EnvSession = "LAUNCHRUN_SESSION"
	// EnvConfiguration holds the launched configuration name.
	EnvConfiguration = "LAUNCHRUN_CONFIGURATION"
	// EnvProject holds the owning project, empty for workspace-level launches.
	EnvProject = "LAUNCHRUN_PROJECT"

	envPrefix = "LAUNCHRUN_"
)

var (
	// ErrUnsupportedHandle is recorded for handles that are not *workspace.Definition.
	ErrUnsupportedHandle = errors.New("unsupported launch handle")
	// ErrEmptyCommand is recorded when a definition has nothing to run.
	ErrEmptyCommand = errors.New("nothing to run")

	_ launch.Launcher = (*Launcher)(nil)
)

type (
	// Session is one started launch.
	Session struct {
		ID        uuid.UUID
		Name      string
		Project   string
		Source    string
		Mode      launch.Mode
		Runner    config.Runner
		StartedAt time.Time
	}

	// SessionResult is a finished Session.
	SessionResult struct {
		Session
		ExitCode   int
		Err        error
		FinishedAt time.Time
	}

	// Recorder receives session lifecycle events. Errors are logged.
	Recorder interface {
		RecordStart(ctx context.Context, s Session) error
		RecordFinish(ctx context.Context, r SessionResult) error
	}

	// Options configures a Launcher. Nil writers discard output; a nil
	// Stdin reads nothing.
	Options struct {
		Stdout   io.Writer
		Stderr   io.Writer
		Stdin    io.Reader
		Recorder Recorder
		// Environ returns the base environment; nil means os.Environ.
		Environ func() []string
		// Now returns the current time; nil means time.Now.
		Now func() time.Time
	}

	// ExitStatusError reports a non-zero exit status.
	ExitStatusError struct {
		Code int
	}
)

// Succeeded reports whether the session exited with status 0 and no error.
func (r SessionResult) Succeeded() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// Duration is the wall time of the session.
func (r SessionResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
