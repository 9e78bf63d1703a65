// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"maps"
	"path/filepath"
	"strings"

	"github.com/launchrun/launchrun/internal/config"

	"mvdan.cc/sh/v3/syntax"
)

// normalize validates raw and turns it into a Definition. baseDir is the
// default working directory; relative workdirs resolve against fileDir.
func normalize(raw rawLaunch, index int, source, project, fileDir, baseDir string, defaultRunner config.Runner) (*Definition, error) {
	invalid := func(reason string) error {
		return &InvalidDefinitionError{Source: source, Index: index, Name: raw.Name, Reason: reason}
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, invalid("name must not be empty")
	}

	runner := config.Runner(raw.Runner)
	if runner == "" {
		runner = defaultRunner
	}
	if err := runner.Validate(); err != nil {
		return nil, invalid(err.Error())
	}

	if len(raw.Command) == 0 && strings.TrimSpace(raw.Script) == "" {
		return nil, invalid("one of command or script is required")
	}
	if len(raw.Command) > 0 && raw.Command[0] == "" {
		return nil, invalid("command[0] must name a program")
	}

	workdir := baseDir
	if raw.Workdir != "" {
		workdir = raw.Workdir
		if !filepath.IsAbs(workdir) {
			workdir = filepath.Join(fileDir, workdir)
		}
	}

	def := &Definition{
		Name:    name,
		Project: project,
		Source:  source,
		Runner:  runner,
		Workdir: filepath.Clean(workdir),
		Env:     maps.Clone(raw.Env),
	}

	cmd, script, err := shape(runner, raw.Command, raw.Script)
	if err != nil {
		return nil, invalid(err.Error())
	}
	def.Command, def.Script = cmd, script

	if raw.Debug != nil {
		dbg := &DebugSpec{Env: maps.Clone(raw.Debug.Env)}
		if len(raw.Debug.Command) > 0 || strings.TrimSpace(raw.Debug.Script) != "" {
			if len(raw.Debug.Command) > 0 && raw.Debug.Command[0] == "" {
				return nil, invalid("debug.command[0] must name a program")
			}
			dbg.Command, dbg.Script, err = shape(runner, raw.Debug.Command, raw.Debug.Script)
			if err != nil {
				return nil, invalid("debug: " + err.Error())
			}
		}
		def.Debug = dbg
	}

	return def, nil
}

// shape converts a command/script pair into the form the runner executes:
// native runs argv, virtual interprets a script.
func shape(runner config.Runner, command []string, script string) ([]string, string, error) {
	switch runner {
	case config.RunnerVirtual:
		if script != "" {
			return nil, script, nil
		}
		quoted, err := quoteArgs(command)
		return nil, quoted, err
	default:
		if len(command) > 0 {
			return append([]string(nil), command...), "", nil
		}
		return []string{"sh", "-c", script}, "", nil
	}
}

func quoteArgs(args []string) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			return "", err
		}
		parts[i] = q
	}
	return strings.Join(parts, " "), nil
}
