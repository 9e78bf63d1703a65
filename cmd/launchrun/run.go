// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/launchrun/launchrun/internal/issue"
	"github.com/launchrun/launchrun/internal/launch"
	"github.com/launchrun/launchrun/internal/launcher"
	"github.com/launchrun/launchrun/internal/workspace"

	"github.com/spf13/cobra"
)

type runOptions struct {
	list    bool
	indices bool
	debug   bool
	project string
}

// newRunCommand creates the `launchrun run` command.
func newRunCommand(app *App) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [selector]",
		Short: "List or start launch configurations",
		Long: `List or start launch configurations.

The selector is either an index into the listing shown by --list --indices
or a prefix of a configuration name. A selector that matches more than one
name is rejected; use an index or a longer prefix instead.`,
		Args: cobra.ArbitraryArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return app.completeSelector(cmd.Context(), opts.project, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLaunch(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list launch configurations")
	cmd.Flags().BoolVarP(&opts.indices, "indices", "i", false, "show indices in the listing")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "start in debug mode")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "restrict to one project (default is default_project from config)")

	if err := cmd.RegisterFlagCompletionFunc("project", func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return app.completeProject(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		slog.Debug("failed to register project completion", "error", err)
	}

	return cmd
}

func (a *App) runLaunch(cmd *cobra.Command, opts runOptions, args []string) error {
	ctx := cmd.Context()
	cfg := a.prepare(ctx)

	ws, err := a.openWorkspace(cfg)
	if err != nil {
		return err
	}

	project := opts.project
	if project == "" {
		project = cfg.DefaultProject
	}

	var recorder launcher.Recorder
	if !opts.list {
		if store := a.openHistory(cfg); store != nil {
			defer func() {
				if err := store.Close(); err != nil {
					slog.Warn("failed to close history", "error", err)
				}
			}()
			recorder = store
		}
	}

	l := a.Launchers(launcher.Options{
		Stdout:   a.stdout,
		Stderr:   a.stderr,
		Stdin:    a.stdin,
		Recorder: recorder,
	})

	out, err := launch.Invoke(ctx, launch.Services{
		Provider: ws,
		Projects: ws,
		Launcher: l,
	}, launch.Request{
		List:    opts.list,
		Indices: opts.indices,
		Debug:   opts.debug,
		Project: project,
		Args:    args,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrProjectNotFound) {
			return newServiceError(err, issue.ProjectNotFoundId)
		}
		if errors.Is(err, workspace.ErrInvalidDefinition) {
			return newServiceError(err, issue.LaunchFileInvalidId)
		}
		return err
	}

	if out != "" {
		fmt.Fprint(a.stdout, out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(a.stdout)
		}
	}

	for _, res := range l.Wait() {
		if !res.Succeeded() {
			fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("%s exited: %v", NameStyle.Render(res.Name), res.Err))
		}
	}

	if launch.IsErrorMessage(out) {
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}
	return nil
}

// completeSelector returns configuration names starting with toComplete.
func (a *App) completeSelector(ctx context.Context, projectName, toComplete string) []string {
	cfg := a.prepare(ctx)
	ws, err := a.openWorkspace(cfg)
	if err != nil {
		return nil
	}

	if projectName == "" {
		projectName = cfg.DefaultProject
	}
	var project launch.Project
	if projectName != "" {
		if project, err = ws.ResolveProject(ctx, projectName); err != nil {
			return nil
		}
	}

	configs, err := ws.Configurations(ctx, project)
	if err != nil {
		return nil
	}

	var names []string
	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		if seen[c.Name] || !strings.HasPrefix(c.Name, toComplete) {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	return names
}

func (a *App) completeProject(ctx context.Context, toComplete string) []string {
	ws, err := a.openWorkspace(a.prepare(ctx))
	if err != nil {
		return nil
	}
	projects, err := ws.Projects(ctx)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range projects {
		if strings.HasPrefix(p.Name, toComplete) {
			names = append(names, p.Name)
		}
	}
	return names
}
