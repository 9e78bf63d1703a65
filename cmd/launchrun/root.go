// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchrun",
		Short: "Start launch configurations from the command line",
		Long: TitleStyle.Render("launchrun") + SubtitleStyle.Render(" - start launch configurations from the command line") + `

launchrun reads launch configurations from the .launchrun directories of a
workspace and its projects, and starts them in run or debug mode.

` + SubtitleStyle.Render("Examples:") + `
  launchrun run --list --indices   List configurations with their indices
  launchrun run 0                  Start the first configuration
  launchrun run Api --debug        Start the configuration named "Api..." in debug mode
  launchrun run -p web Dev         Start "Dev..." from the web project
  launchrun history                Show recently launched sessions`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.prepare(cmd.Context())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/launchrun/config.cue)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVarP(&app.opts.workspace, "workspace", "w", "", "workspace root (default is the current directory)")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newProjectsCommand(app))
	rootCmd.AddCommand(newHistoryCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetIn(app.stdin)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's exit code.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.handleErr(w, err)
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
