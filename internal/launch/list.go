// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"strings"
)

const (
	formatShowIndices = "%-3d: %s\n"
	formatNoIndices   = "%s\n"
)

// List renders one line per configuration in the order given. With
// showIndices each name is prefixed by its 0-based position, left-aligned
// in a three character field, so it can be passed back as a selector.
func List(configs []Configuration, showIndices bool) string {
	var sb strings.Builder
	for i, cfg := range configs {
		if showIndices {
			fmt.Fprintf(&sb, formatShowIndices, i, cfg.Name)
		} else {
			fmt.Fprintf(&sb, formatNoIndices, cfg.Name)
		}
	}
	return sb.String()
}
