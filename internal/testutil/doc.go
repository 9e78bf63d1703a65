// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors
// and hand back cleanup functions: environment variables (MustSetenv,
// MustUnsetenv, SetHomeDir), the working directory (MustChdir) and fixture
// files (MustWriteFile, MustMkdirAll).
package testutil
