// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"fmt"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/launch"
)

const (
	// DirName is the directory holding launch files.
	DirName = ".launchrun"
)

var (
	// ErrWorkspaceNotFound is returned by Open when the root is not a directory.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrProjectNotFound is the sentinel error wrapped by ProjectNotFoundError.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidDefinition is the sentinel error wrapped by InvalidDefinitionError.
	ErrInvalidDefinition = errors.New("invalid launch definition")
	// ErrUnsupportedFormat is returned when decoding a file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported launch file format")

	_ launch.Project         = (*Project)(nil)
	_ launch.ProjectResolver = (*Workspace)(nil)
	_ launch.Provider        = (*Workspace)(nil)
)

type (
	// Options configures Open.
	Options struct {
		// DefaultRunner applies to definitions that name no runner.
		// Empty means config.RunnerNative.
		DefaultRunner config.Runner
	}

	// Project is a workspace subdirectory with a .launchrun directory.
	Project struct {
		Name string
		Dir  string
	}

	// Definition is one normalised launch declaration.
	//
	// After loading, a native definition always has a Command and a virtual
	// definition always has a Script. The same holds for Debug when it
	// declares either.
	Definition struct {
		Name string
		// Project is the owning project name; empty for workspace-level files.
		Project string
		// Source is the absolute path of the declaring file.
		Source  string
		Runner  config.Runner
		Command []string
		Script  string
		// Workdir is absolute.
		Workdir string
		Env     map[string]string
		Debug   *DebugSpec
	}

	// DebugSpec overrides the command and environment in debug mode.
	DebugSpec struct {
		Command []string
		Script  string
		Env     map[string]string
	}

	// ProjectNotFoundError is returned by ResolveProject for unknown names.
	ProjectNotFoundError struct {
		Name      string
		Available []string
	}

	// InvalidDefinitionError describes a rejected launch declaration.
	InvalidDefinitionError struct {
		Source string
		// Index is the position of the declaration within its file.
		Index  int
		Name   string
		Reason string
	}
)

// ProjectName implements launch.Project.
func (p *Project) ProjectName() string { return p.Name }

// Configuration wraps d for the launch core.
func (d *Definition) Configuration() launch.Configuration {
	return launch.Configuration{Name: d.Name, Handle: d}
}

// HasDebug reports whether d declares its own debug command or script.
func (d *Definition) HasDebug() bool {
	return d.Debug != nil && (len(d.Debug.Command) > 0 || d.Debug.Script != "")
}

// Error implements the error interface.
func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", e.Name)
}

// Unwrap returns ErrProjectNotFound.
func (e *ProjectNotFoundError) Unwrap() error { return ErrProjectNotFound }

// Error implements the error interface.
func (e *InvalidDefinitionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: launches[%d] (%s): %s", e.Source, e.Index, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: launches[%d]: %s", e.Source, e.Index, e.Reason)
}

// Unwrap returns ErrInvalidDefinition.
func (e *InvalidDefinitionError) Unwrap() error { return ErrInvalidDefinition }
