// SPDX-License-Identifier: MPL-2.0

// Package workspace reads launch definitions from a workspace directory.
//
// A workspace is a root directory. Launch files directly inside
// <root>/.launchrun/ are workspace-level; every direct subdirectory that
// has its own .launchrun/ directory is a project. Launch files may be CUE
// (.cue), TOML (.toml) or YAML (.yaml, .yml); each holds a "launches" list.
//
// Workspace implements launch.ProjectResolver and launch.Provider. The
// Handle of every configuration it returns is a *Definition.
package workspace
