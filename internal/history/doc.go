// SPDX-License-Identifier: MPL-2.0

// Package history persists launched sessions in a SQLite database and
// implements launcher.Recorder.
package history
