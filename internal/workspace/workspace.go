// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/issue"
	"github.com/launchrun/launchrun/internal/launch"
)

// Workspace is an opened workspace root. It holds no cached state; every
// call rereads the file system.
type Workspace struct {
	root          string
	defaultRunner config.Runner
}

// Open returns the workspace rooted at root, which must be an existing
// directory. An empty root means the current directory.
func Open(root string, opts Options) (*Workspace, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, abs)
	}

	runner := opts.DefaultRunner
	if runner == "" {
		runner = config.RunnerNative
	}
	if err := runner.Validate(); err != nil {
		return nil, err
	}

	return &Workspace{root: abs, defaultRunner: runner}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Projects lists the projects of the workspace sorted by name.
func (w *Workspace) Projects(ctx context.Context) ([]*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %s: %w", w.root, err)
	}

	var projects []*Project
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		if !isDir(filepath.Join(dir, DirName)) {
			continue
		}
		projects = append(projects, &Project{Name: e.Name(), Dir: dir})
	}

	slices.SortFunc(projects, func(a, b *Project) int { return strings.Compare(a.Name, b.Name) })
	return projects, nil
}

// ResolveProject implements launch.ProjectResolver.
func (w *Workspace) ResolveProject(ctx context.Context, name string) (launch.Project, error) {
	projects, err := w.Projects(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}
	return nil, &ProjectNotFoundError{Name: name, Available: names}
}

// Configurations implements launch.Provider. A nil project yields the
// workspace-level definitions followed by every project's in name order.
func (w *Workspace) Configurations(ctx context.Context, project launch.Project) ([]launch.Configuration, error) {
	defs, err := w.Definitions(ctx, project)
	if err != nil {
		return nil, err
	}

	configs := make([]launch.Configuration, len(defs))
	for i, d := range defs {
		configs[i] = d.Configuration()
	}
	return configs, nil
}

// Definitions is Configurations without the launch wrapper.
func (w *Workspace) Definitions(ctx context.Context, project launch.Project) ([]*Definition, error) {
	if project != nil {
		p, err := w.asProject(ctx, project)
		if err != nil {
			return nil, err
		}
		return w.loadDir(ctx, filepath.Join(p.Dir, DirName), p.Name, p.Dir)
	}

	defs, err := w.loadDir(ctx, filepath.Join(w.root, DirName), "", w.root)
	if err != nil {
		return nil, err
	}

	projects, err := w.Projects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		pd, err := w.loadDir(ctx, filepath.Join(p.Dir, DirName), p.Name, p.Dir)
		if err != nil {
			return nil, err
		}
		defs = append(defs, pd...)
	}
	return defs, nil
}

// asProject accepts projects from other resolvers by name.
func (w *Workspace) asProject(ctx context.Context, project launch.Project) (*Project, error) {
	if p, ok := project.(*Project); ok && p.Dir != "" {
		return p, nil
	}
	resolved, err := w.ResolveProject(ctx, project.ProjectName())
	if err != nil {
		return nil, err
	}
	return resolved.(*Project), nil
}

// loadDir reads the launch files of dir in lexical order. A missing
// directory yields no definitions.
func (w *Workspace) loadDir(ctx context.Context, dir, project, baseDir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var defs []*Definition
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		if !isLaunchFile(e.Name()) {
			slog.Debug("skipping non-launch file", "path", filepath.Join(dir, e.Name()))
			continue
		}

		path := filepath.Join(dir, e.Name())
		fileDefs, err := w.loadFile(path, project, baseDir)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load launch file").
				WithResource(path).
				WithSuggestion("Each launch needs a name and a command or script").
				WithSuggestion("runner must be \"native\" or \"virtual\"").
				Wrap(err).
				BuildError()
		}
		defs = append(defs, fileDefs...)
	}
	return defs, nil
}

func (w *Workspace) loadFile(path, project, baseDir string) ([]*Definition, error) {
	lf, err := readLaunchFile(path)
	if err != nil {
		return nil, err
	}

	fileDir := filepath.Dir(path)
	defs := make([]*Definition, 0, len(lf.Launches))
	for i, raw := range lf.Launches {
		def, err := normalize(raw, i, path, project, fileDir, baseDir, w.defaultRunner)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	slog.Debug("loaded launch file", "path", path, "launches", len(defs))
	return defs, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
