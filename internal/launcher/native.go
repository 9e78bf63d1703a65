// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// nativeRunner starts the command as a host process.
type nativeRunner struct{}

func (nativeRunner) run(ctx context.Context, p plan) (int, error) {
	if len(p.argv) == 0 {
		return 1, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	cmd.Dir = p.dir
	cmd.Env = p.env
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("failed to start %s: %w", p.argv[0], err)
	}
	return 0, nil
}
