// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// KindResolved means exactly one configuration was selected.
	KindResolved ResultKind = iota
	// KindIndexOutOfRange means an integer selector fell outside the listing.
	KindIndexOutOfRange
	// KindAmbiguous means a prefix selector matched two or more names.
	KindAmbiguous
	// KindNotFound means a prefix selector matched no name.
	KindNotFound
	// KindInvalidArgs means the caller did not supply exactly one selector.
	KindInvalidArgs
)

type (
	// ResultKind classifies the outcome of selector resolution.
	ResultKind int

	// Result is the outcome of resolving a selector. Configuration is only
	// meaningful when Kind is KindResolved.
	Result struct {
		Kind          ResultKind
		Configuration Configuration
	}
)

// Resolve selects one configuration from configs.
//
// A selector that is a base-10 integer literal is an index and never falls
// back to prefix matching; literals too large for int64 are out of range.
// Any other selector is a case-sensitive name prefix. The scan stops at the
// second match, so an ambiguous prefix is reported without enumerating
// every candidate. The empty selector is a prefix of every name.
func Resolve(configs []Configuration, selector string) Result {
	index, err := strconv.ParseInt(selector, 10, 64)
	switch {
	case err == nil:
		if index < 0 || index >= int64(len(configs)) {
			return Result{Kind: KindIndexOutOfRange}
		}
		return Resolved(configs[index])
	case errors.Is(err, strconv.ErrRange):
		return Result{Kind: KindIndexOutOfRange}
	}

	var (
		found Configuration
		seen  bool
	)
	for _, cfg := range configs {
		if !strings.HasPrefix(cfg.Name, selector) {
			continue
		}
		if seen {
			return Result{Kind: KindAmbiguous}
		}
		found, seen = cfg, true
	}
	if !seen {
		return Result{Kind: KindNotFound}
	}
	return Resolved(found)
}

// Resolved wraps cfg in a successful Result.
func Resolved(cfg Configuration) Result {
	return Result{Kind: KindResolved, Configuration: cfg}
}

// OK reports whether the result selected a configuration.
func (r Result) OK() bool { return r.Kind == KindResolved }

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case KindResolved:
		return "resolved"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindAmbiguous:
		return "ambiguous"
	case KindNotFound:
		return "not found"
	case KindInvalidArgs:
		return "invalid args"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}
