// SPDX-License-Identifier: MPL-2.0

// Package config loads the launchrun configuration.
//
// The configuration is a CUE file validated against the embedded #Config
// schema and merged into Viper over the built-in defaults. Environment
// variables prefixed with LAUNCHRUN_ override file values, with nested keys
// joined by underscores (LAUNCHRUN_HISTORY_LIMIT overrides history.limit).
package config
