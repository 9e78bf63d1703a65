// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process logger. A charmbracelet/log logger
// writes to stderr and is installed as the slog default handler, so library
// packages log through log/slog without depending on the backend.
package logging
