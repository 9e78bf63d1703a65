// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// virtualRunner interprets the script with the embedded POSIX shell.
type virtualRunner struct{}

func (virtualRunner) run(ctx context.Context, p plan) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(p.script), "script")
	if err != nil {
		return 1, fmt.Errorf("failed to parse script: %w", err)
	}

	r, err := interp.New(
		interp.Dir(p.dir),
		interp.Env(expand.ListEnviron(p.env...)),
		interp.StdIO(p.stdin, p.stdout, p.stderr),
	)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := r.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return int(status), nil
		}
		return 1, fmt.Errorf("script execution failed: %w", err)
	}
	return 0, nil
}
