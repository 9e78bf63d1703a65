// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/launchrun/launchrun/cmd/launchrun"

func main() {
	cmd.Execute()
}
