// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMissingService is returned by Invoke when a required service is nil.
var ErrMissingService = errors.New("launch service not configured")

type (
	// Services bundles the collaborators Invoke consults. Projects may be
	// nil when requests never name a project.
	Services struct {
		Provider Provider
		Projects ProjectResolver
		Launcher Launcher
	}

	// Request holds the parsed inputs of one invocation.
	Request struct {
		// List prints the configurations instead of launching one.
		List bool
		// Indices prefixes listed names with their selector index.
		Indices bool
		// Debug selects ModeDebug.
		Debug bool
		// Project narrows the listing to one project when non-empty.
		Project string
		// Args are the positional arguments left after option parsing.
		// Exactly one is required when not listing.
		Args []string
	}
)

// Invoke runs one request end to end and returns the single output string.
//
// Resolver outcomes, including the InvalidArgs case, are reported as their
// fixed message with a nil error. Errors from the project resolver or the
// provider are returned unchanged.
func Invoke(ctx context.Context, svc Services, req Request) (string, error) {
	if svc.Provider == nil {
		return "", fmt.Errorf("%w: provider", ErrMissingService)
	}

	var project Project
	if req.Project != "" {
		if svc.Projects == nil {
			return "", fmt.Errorf("%w: project resolver", ErrMissingService)
		}
		p, err := svc.Projects.ResolveProject(ctx, req.Project)
		if err != nil {
			return "", err
		}
		project = p
	}

	configs, err := svc.Provider.Configurations(ctx, project)
	if err != nil {
		return "", err
	}
	slog.Debug("fetched launch configurations", "count", len(configs), "project", req.Project)

	if req.List {
		return List(configs, req.Indices), nil
	}

	if len(req.Args) != 1 {
		return Message(KindInvalidArgs), nil
	}

	if svc.Launcher == nil {
		return "", fmt.Errorf("%w: launcher", ErrMissingService)
	}

	mode := ModeFromDebug(req.Debug)
	return Dispatch(ctx, Resolve(configs, req.Args[0]), mode, svc.Launcher), nil
}
