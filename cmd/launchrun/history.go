// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/history"
	"github.com/launchrun/launchrun/internal/issue"

	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("launch history is disabled (history.enabled: false)")

type historyOptions struct {
	limit   int
	project string
	prune   int
}

// newHistoryCommand creates the `launchrun history` command.
func newHistoryCommand(app *App) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently launched sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "number of sessions to show (default is history.limit from config)")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "only show sessions of this project")
	cmd.Flags().IntVar(&opts.prune, "prune", 0, "delete all but the newest N sessions")

	return cmd
}

func (a *App) showHistory(cmd *cobra.Command, opts historyOptions) error {
	ctx := cmd.Context()
	cfg := a.prepare(ctx)

	if !cfg.History.Enabled {
		return newServiceError(errHistoryDisabled, issue.HistoryUnavailableId)
	}

	path, err := config.HistoryPath(cfg)
	if err != nil {
		return err
	}
	store, err := a.History(path)
	if err != nil {
		return newServiceError(err, issue.HistoryUnavailableId)
	}
	defer func() { _ = store.Close() }()

	if cmd.Flags().Changed("prune") {
		n, err := store.Prune(ctx, opts.prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s Pruned %d session(s)\n", SuccessStyle.Render("✓"), n)
		return nil
	}

	limit := opts.limit
	if limit <= 0 {
		limit = cfg.History.Limit
	}
	records, err := store.Recent(ctx, limit, opts.project)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("No launches recorded yet."))
		return nil
	}
	for _, r := range records {
		fmt.Fprintln(a.stdout, formatRecord(r))
	}
	return nil
}

// formatRecord renders one history line:
//
//	2026-01-02 15:04:05  succeeded  api/Server  debug  1.2s
func formatRecord(r history.Record) string {
	name := r.Name
	if r.Project != "" {
		name = r.Project + "/" + r.Name
	}

	status := string(r.Status)
	switch r.Status {
	case history.StatusSucceeded:
		status = SuccessStyle.Render(fmt.Sprintf("%-9s", status))
	case history.StatusFailed:
		status = ErrorStyle.Render(fmt.Sprintf("%-9s", status))
	default:
		status = WarningStyle.Render(fmt.Sprintf("%-9s", status))
	}

	duration := SubtitleStyle.Render("-")
	if d := r.Duration(); d > 0 {
		duration = d.Round(100 * time.Millisecond).String()
	}

	line := fmt.Sprintf("%s  %s  %s  %-5s  %s",
		r.StartedAt.Format(time.DateTime), status, NameStyle.Render(name), r.Mode, duration)
	if r.Status == history.StatusFailed && r.Error != "" {
		line += "  " + SubtitleStyle.Render(r.Error)
	}
	return line
}
