// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// RunnerNative starts launch configurations as host processes.
	RunnerNative Runner = "native"
	// RunnerVirtual runs launch configurations in the embedded shell.
	RunnerVirtual Runner = "virtual"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// DefaultHistoryLimit is the number of rows `launchrun history` shows.
	DefaultHistoryLimit = 20
)

var (
	// ErrInvalidRunner is the sentinel error wrapped by InvalidRunnerError.
	ErrInvalidRunner = errors.New("invalid runner")
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned for unknown color schemes.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Runner names how a launch configuration is executed.
	Runner string

	// InvalidRunnerError is returned when a Runner value is not recognized.
	InvalidRunnerError struct {
		Value Runner
	}

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme is the terminal color preference.
	ColorScheme string

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Workspace is the workspace root; empty means the working directory.
		Workspace string `json:"workspace" mapstructure:"workspace"`
		// DefaultProject scopes `run` when --project is not given.
		DefaultProject string `json:"default_project" mapstructure:"default_project"`
		// DefaultRunner applies to launch definitions that name no runner.
		DefaultRunner Runner `json:"default_runner" mapstructure:"default_runner"`
		// LogLevel is the log threshold unless --verbose is set.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// History configures the launch history database.
		History HistoryConfig `json:"history" mapstructure:"history"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// HistoryConfig configures launch history.
	HistoryConfig struct {
		// Enabled records every launched session.
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Path overrides the database location (default: <config dir>/history.db).
		Path string `json:"path" mapstructure:"path"`
		// Limit is the default number of rows listed.
		Limit int `json:"limit" mapstructure:"limit"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultRunner: RunnerNative,
		LogLevel:      LogLevelWarn,
		History: HistoryConfig{
			Enabled: true,
			Limit:   DefaultHistoryLimit,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns nil for a known runner.
func (r Runner) Validate() error {
	switch r {
	case RunnerNative, RunnerVirtual:
		return nil
	default:
		return &InvalidRunnerError{Value: r}
	}
}

// String returns the runner name.
func (r Runner) String() string { return string(r) }

// Error implements the error interface.
func (e *InvalidRunnerError) Error() string {
	return fmt.Sprintf("invalid runner %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidRunner.
func (e *InvalidRunnerError) Unwrap() error { return ErrInvalidRunner }

// Validate returns nil for a known level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns nil for a known color scheme.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: auto, dark, light)", ErrInvalidColorScheme, string(c))
	}
}

// Validate checks every enumerated field. Values coming from the
// environment bypass the CUE schema, so Load calls this after merging.
func (c *Config) Validate() error {
	var errs []error
	if err := c.DefaultRunner.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.History.Limit <= 0 {
		errs = append(errs, fmt.Errorf("history.limit must be positive, got %d", c.History.Limit))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
