// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory in tests;
// os.UserHomeDir does not honor HOME on every platform.
var configDirOverride string

// SetConfigDirOverride redirects ConfigDir to dir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}
