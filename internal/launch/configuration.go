// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ModeRun starts a configuration through its run pathway.
	ModeRun Mode = iota
	// ModeDebug starts a configuration through its debug pathway.
	ModeDebug
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid launch mode")

type (
	// Mode selects which launch pathway a launcher uses.
	Mode int

	// InvalidModeError is returned when a mode name is not recognized.
	// It wraps ErrInvalidMode for errors.Is() compatibility.
	InvalidModeError struct {
		Value string
	}

	// Configuration is the request-scoped view of one named launch
	// configuration. Handle is owned by the Provider that produced it; this
	// package never inspects it and hands it back to the Launcher as is.
	Configuration struct {
		Name   string
		Handle any
	}

	// Project identifies a resolved project. Implementations belong to the
	// ProjectResolver; a nil Project means the unscoped workspace listing.
	Project interface {
		ProjectName() string
	}

	// Provider supplies launch configurations in display order.
	Provider interface {
		Configurations(ctx context.Context, project Project) ([]Configuration, error)
	}

	// ProjectResolver maps a project name to a Project. Unknown names must
	// produce an error; Invoke returns it to the caller unchanged.
	ProjectResolver interface {
		ResolveProject(ctx context.Context, name string) (Project, error)
	}

	// Launcher starts a configuration. Launch must not block on the
	// launched session; failures after the call are the launcher's to
	// report.
	Launcher interface {
		Launch(ctx context.Context, handle any, mode Mode)
	}
)

// ModeFromDebug derives the launch mode from the debug flag.
func ModeFromDebug(debug bool) Mode {
	if debug {
		return ModeDebug
	}
	return ModeRun
}

// ParseMode converts "run" or "debug" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "run":
		return ModeRun, nil
	case "debug":
		return ModeDebug, nil
	default:
		return ModeRun, &InvalidModeError{Value: s}
	}
}

// String returns "run" or "debug".
func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeDebug:
		return "debug"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Error implements the error interface for InvalidModeError.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid launch mode %q (valid: run, debug)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }
