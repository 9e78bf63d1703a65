// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for launchrun.
//
// The command tree is built from an App, the composition root that wires
// configuration, the workspace provider, the launcher and the launch
// history. Tests build an App from Dependencies with fakes.
package cmd
