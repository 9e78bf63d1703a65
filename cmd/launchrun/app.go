// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/history"
	"github.com/launchrun/launchrun/internal/issue"
	"github.com/launchrun/launchrun/internal/launch"
	"github.com/launchrun/launchrun/internal/launcher"
	"github.com/launchrun/launchrun/internal/logging"
	"github.com/launchrun/launchrun/internal/workspace"
)

type (
	// App wires CLI services. All command handlers receive an App and
	// delegate through its injection points.
	App struct {
		Config     ConfigProvider
		Workspaces WorkspaceOpener
		Launchers  LauncherFactory
		History    HistoryOpener
		stdout     io.Writer
		stderr     io.Writer
		stdin      io.Reader

		opts   globalOptions
		cfg    *config.Config
		cfgErr error
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Workspaces WorkspaceOpener
		Launchers  LauncherFactory
		History    HistoryOpener
		Stdout     io.Writer
		Stderr     io.Writer
		Stdin      io.Reader
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Workspace is what the CLI needs from an opened workspace.
	Workspace interface {
		launch.Provider
		launch.ProjectResolver
		Projects(ctx context.Context) ([]*workspace.Project, error)
		Root() string
	}

	// WorkspaceOpener opens the workspace at root.
	WorkspaceOpener func(root string, opts workspace.Options) (Workspace, error)

	// SessionLauncher is a launch.Launcher whose sessions can be awaited.
	SessionLauncher interface {
		launch.Launcher
		Wait() []launcher.SessionResult
	}

	// LauncherFactory builds the launcher for one invocation.
	LauncherFactory func(opts launcher.Options) SessionLauncher

	// HistoryStore is the launch history.
	HistoryStore interface {
		launcher.Recorder
		Recent(ctx context.Context, limit int, project string) ([]history.Record, error)
		Prune(ctx context.Context, keep int) (int64, error)
		Close() error
	}

	// HistoryOpener opens the history database at path.
	HistoryOpener func(path string) (HistoryStore, error)

	// globalOptions holds the persistent root flags.
	globalOptions struct {
		configPath string
		workspace  string
		logLevel   string
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Workspaces == nil {
		deps.Workspaces = func(root string, opts workspace.Options) (Workspace, error) {
			ws, err := workspace.Open(root, opts)
			if err != nil {
				return nil, err
			}
			return ws, nil
		}
	}
	if deps.Launchers == nil {
		deps.Launchers = func(opts launcher.Options) SessionLauncher {
			return launcher.New(opts)
		}
	}
	if deps.History == nil {
		deps.History = func(path string) (HistoryStore, error) {
			store, err := history.Open(path)
			if err != nil {
				return nil, err
			}
			return store, nil
		}
	}

	return &App{
		Config:     deps.Config,
		Workspaces: deps.Workspaces,
		Launchers:  deps.Launchers,
		History:    deps.History,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		stdin:      deps.Stdin,
	}, nil
}

// prepare loads the configuration once per process and installs the
// logger. A config that fails to load is reported as a warning and the
// defaults are used.
func (a *App) prepare(ctx context.Context) *config.Config {
	if a.cfg != nil {
		return a.cfg
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.opts.configPath})
	if err != nil {
		a.cfgErr = err
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	level := string(cfg.LogLevel)
	if a.opts.logLevel != "" {
		level = a.opts.logLevel
	}
	if a.verbose() {
		level = string(config.LogLevelDebug)
	}
	logging.Install(logging.New(a.stderr, level))
	applyColorScheme(string(cfg.UI.ColorScheme))

	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose()))
	}
	return cfg
}

func (a *App) verbose() bool {
	return a.opts.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

// issueStyle is the glamour style for catalog entries.
func (a *App) issueStyle() string {
	if a.cfg != nil && a.cfg.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// openWorkspace opens the workspace chosen by --workspace, then the
// workspace config key, then the current directory.
func (a *App) openWorkspace(cfg *config.Config) (Workspace, error) {
	root := a.opts.workspace
	if root == "" {
		root = cfg.Workspace
	}

	ws, err := a.Workspaces(root, workspace.Options{DefaultRunner: cfg.DefaultRunner})
	if err != nil {
		if errors.Is(err, workspace.ErrWorkspaceNotFound) {
			return nil, newServiceError(err, issue.WorkspaceNotFoundId)
		}
		return nil, err
	}
	slog.Debug("opened workspace", "root", ws.Root())
	return ws, nil
}

// openHistory returns the history store, or nil when history is disabled
// or cannot be opened.
func (a *App) openHistory(cfg *config.Config) HistoryStore {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := config.HistoryPath(cfg)
	if err != nil {
		slog.Warn("failed to resolve history path", "error", err)
		return nil
	}
	store, err := a.History(path)
	if err != nil {
		slog.Warn("launch history unavailable", "path", path, "error", err)
		return nil
	}
	return store
}

// handleErr renders err for the user. It is the fang error handler.
func (a *App) handleErr(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose()))

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(w, svcErr, a.issueStyle())
	}
}
