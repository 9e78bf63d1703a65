// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `launchrun config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage launchrun configuration",
		Long: `Manage launchrun configuration.

Configuration is stored in:
  - Linux: ~/.config/launchrun/config.cue
  - macOS: ~/Library/Application Support/launchrun/config.cue
  - Windows: %APPDATA%\launchrun\config.cue

Every key can be overridden with a LAUNCHRUN_ environment variable, for
example LAUNCHRUN_DEFAULT_RUNNER=virtual or LAUNCHRUN_HISTORY_LIMIT=50.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.prepare(cmd.Context())
			if app.cfgErr != nil {
				return newServiceError(app.cfgErr, issue.ConfigLoadFailedId)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(cmd *cobra.Command) error {
	cfg := a.prepare(cmd.Context())
	if a.cfgErr != nil {
		return newServiceError(a.cfgErr, issue.ConfigLoadFailedId)
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)

	fmt.Fprintf(a.stdout, "%s: %s\n", NameStyle.Render("Config file"), a.configFileLabel())
	fmt.Fprintln(a.stdout)

	keys := config.Keys(cfg)
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		value := fmt.Sprintf("%v", keys[k])
		if value == "" {
			value = SubtitleStyle.Render(`""`)
		} else {
			value = SuccessStyle.Render(value)
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", NameStyle.Render(k), value)
	}
	return nil
}

// configFileLabel names the file the configuration came from.
func (a *App) configFileLabel() string {
	if a.opts.configPath != "" {
		return a.opts.configPath
	}
	path, err := config.ConfigFilePath()
	if err == nil && fileExists(path) {
		return path
	}
	if fileExists(config.ConfigFileName + "." + config.ConfigFileExt) {
		return config.ConfigFileName + "." + config.ConfigFileExt
	}
	return SubtitleStyle.Render("(using defaults)")
}

func (a *App) showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgFile, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(a.stdout, "Config file: %s\n", cfgFile)

	if cfg := a.cfg; cfg != nil {
		if historyPath, err := config.HistoryPath(cfg); err == nil {
			fmt.Fprintf(a.stdout, "History database: %s\n", historyPath)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
