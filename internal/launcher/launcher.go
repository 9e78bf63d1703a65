// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/launch"
	"github.com/launchrun/launchrun/internal/workspace"

	"github.com/google/uuid"
)

type (
	// Launcher starts sessions in the background. It implements
	// launch.Launcher.
	Launcher struct {
		opts    Options
		runners map[config.Runner]runner

		wg      sync.WaitGroup
		mu      sync.Mutex
		results []SessionResult
	}

	// plan is what a runner executes.
	plan struct {
		argv   []string
		script string
		dir    string
		env    []string
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	runner interface {
		run(ctx context.Context, p plan) (int, error)
	}
)

// New returns a Launcher.
func New(opts Options) *Launcher {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Launcher{
		opts: opts,
		runners: map[config.Runner]runner{
			config.RunnerNative:  nativeRunner{},
			config.RunnerVirtual: virtualRunner{},
		},
	}
}

// Launch implements launch.Launcher. It returns before the session starts;
// failures are logged and kept for Wait.
func (l *Launcher) Launch(ctx context.Context, handle any, mode launch.Mode) {
	s := Session{
		ID:        uuid.New(),
		Mode:      mode,
		StartedAt: l.opts.Now(),
	}

	def, ok := handle.(*workspace.Definition)
	if ok && def != nil {
		s.Name = def.Name
		s.Project = def.Project
		s.Source = def.Source
		s.Runner = def.Runner
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		if !ok || def == nil {
			l.finish(ctx, SessionResult{
				Session:  s,
				ExitCode: 1,
				Err:      fmt.Errorf("%w: %T", ErrUnsupportedHandle, handle),
			})
			return
		}
		l.run(ctx, s, def)
	}()
}

// Wait blocks until every launched session has finished and returns their
// results in completion order.
func (l *Launcher) Wait() []SessionResult {
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.results)
}

func (l *Launcher) run(ctx context.Context, s Session, def *workspace.Definition) {
	p, err := l.plan(s, def)
	if err != nil {
		l.finish(ctx, SessionResult{Session: s, ExitCode: 1, Err: err})
		return
	}

	r, ok := l.runners[def.Runner]
	if !ok {
		l.finish(ctx, SessionResult{Session: s, ExitCode: 1, Err: def.Runner.Validate()})
		return
	}

	if l.opts.Recorder != nil {
		if err := l.opts.Recorder.RecordStart(ctx, s); err != nil {
			slog.Warn("failed to record session start", "session", s.ID, "error", err)
		}
	}

	slog.Debug("session started",
		"session", s.ID, "configuration", s.Name, "project", s.Project,
		"runner", s.Runner, "mode", s.Mode)

	code, err := r.run(ctx, p)
	l.finish(ctx, SessionResult{Session: s, ExitCode: code, Err: err})
}

// plan selects the command for the session mode and builds its environment.
func (l *Launcher) plan(s Session, def *workspace.Definition) (plan, error) {
	argv, script := def.Command, def.Script
	env := maps.Clone(def.Env)
	if env == nil {
		env = map[string]string{}
	}

	if s.Mode == launch.ModeDebug {
		if def.HasDebug() {
			argv, script = def.Debug.Command, def.Debug.Script
		} else if def.Runner == config.RunnerVirtual {
			script = "set -x\n" + script
		}
		if def.Debug != nil {
			maps.Copy(env, def.Debug.Env)
		}
	}

	if len(argv) == 0 && strings.TrimSpace(script) == "" {
		return plan{}, fmt.Errorf("%w: %s", ErrEmptyCommand, def.Name)
	}

	env[EnvMode] = s.Mode.String()
	env[EnvSession] = s.ID.String()
	env[EnvConfiguration] = def.Name
	env[EnvProject] = def.Project

	return plan{
		argv:   argv,
		script: script,
		dir:    def.Workdir,
		env:    buildEnv(l.opts.Environ(), env),
		stdin:  l.opts.Stdin,
		stdout: l.opts.Stdout,
		stderr: l.opts.Stderr,
	}, nil
}

func (l *Launcher) finish(ctx context.Context, r SessionResult) {
	r.FinishedAt = l.opts.Now()
	if r.Err == nil && r.ExitCode != 0 {
		r.Err = &ExitStatusError{Code: r.ExitCode}
	}

	if r.Succeeded() {
		slog.Debug("session finished", "session", r.ID, "configuration", r.Name, "duration", r.Duration())
	} else {
		slog.Warn("session failed", "session", r.ID, "configuration", r.Name, "exit_code", r.ExitCode, "error", r.Err)
	}

	if l.opts.Recorder != nil {
		// Record even when the parent context was canceled.
		if err := l.opts.Recorder.RecordFinish(context.WithoutCancel(ctx), r); err != nil {
			slog.Warn("failed to record session finish", "session", r.ID, "error", err)
		}
	}

	l.mu.Lock()
	l.results = append(l.results, r)
	l.mu.Unlock()
}

// buildEnv drops inherited LAUNCHRUN_* variables from base and appends
// extra in key order.
func buildEnv(base []string, extra map[string]string) []string {
	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		if strings.HasPrefix(kv, envPrefix) {
			continue
		}
		env = append(env, kv)
	}
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		env = append(env, k+"="+extra[k])
	}
	return env
}
