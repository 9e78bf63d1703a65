// SPDX-License-Identifier: MPL-2.0

// Package launch resolves a selector against the launch configurations of a
// workspace or project and dispatches the selected configuration in run or
// debug mode.
//
// A selector is either an integer literal, which indexes the current
// listing, or a name prefix. Integer parsing takes priority: a selector
// that parses as an integer is never matched as a prefix, even when a
// configuration is literally named after it.
//
// The package owns no state. The configuration list, the project model and
// the launch mechanism are injected as capability interfaces (Provider,
// ProjectResolver, Launcher) and consulted fresh on every Invoke call.
package launch
