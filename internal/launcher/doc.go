// SPDX-License-Identifier: MPL-2.0

// Package launcher starts launch definitions as background sessions.
//
// Launch returns immediately; each session runs in its own goroutine with
// either the native runner (os/exec) or the virtual runner (the mvdan.cc/sh
// interpreter). Wait blocks until every session has finished.
package launcher
