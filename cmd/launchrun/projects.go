// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newProjectsCommand creates the `launchrun projects` command.
func newProjectsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := app.openWorkspace(app.prepare(ctx))
			if err != nil {
				return err
			}

			projects, err := ws.Projects(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Projects in "+ws.Root()))
			if len(projects) == 0 {
				fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none found)"))
				return nil
			}
			for _, p := range projects {
				rel, err := filepath.Rel(ws.Root(), p.Dir)
				if err != nil {
					rel = p.Dir
				}
				fmt.Fprintf(app.stdout, "  %s %s\n", NameStyle.Render(p.Name), SubtitleStyle.Render(rel))
			}
			return nil
		},
	}
}
