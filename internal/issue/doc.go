// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown help
// pages that the CLI renders when well-known failures occur.
package issue
