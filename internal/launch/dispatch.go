// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	formatStarted = "%s Started"

	errorPrefix = "Error: "

	// MessageInvalidArgs is returned when the selector count is not one.
	MessageInvalidArgs = errorPrefix + "Invalid Args"
	// MessageIndexOutOfRange is returned for an integer selector outside the listing.
	MessageIndexOutOfRange = errorPrefix + "Index Out of Range"
	// MessageAmbiguous is returned when a prefix matches several configurations.
	MessageAmbiguous = errorPrefix + "Multiple Launch Configurations Found"
	// MessageNotFound is returned when a prefix matches nothing.
	MessageNotFound = errorPrefix + "Configuration Not Found"
)

// Dispatch acts on a resolution result. A resolved configuration is handed
// to launcher exactly once and the returned status names it; every other
// kind returns its fixed error message without touching the launcher.
func Dispatch(ctx context.Context, result Result, mode Mode, launcher Launcher) string {
	if result.Kind != KindResolved {
		return Message(result.Kind)
	}

	cfg := result.Configuration
	slog.Debug("dispatching launch configuration", "name", cfg.Name, "mode", mode)
	launcher.Launch(ctx, cfg.Handle, mode)
	return Started(cfg.Name)
}

// Started formats the status line for a launched configuration.
func Started(name string) string {
	return fmt.Sprintf(formatStarted, name)
}

// Message returns the fixed message for an unsuccessful result kind and ""
// for KindResolved.
func Message(kind ResultKind) string {
	switch kind {
	case KindInvalidArgs:
		return MessageInvalidArgs
	case KindIndexOutOfRange:
		return MessageIndexOutOfRange
	case KindAmbiguous:
		return MessageAmbiguous
	case KindNotFound:
		return MessageNotFound
	default:
		return ""
	}
}

// IsErrorMessage reports whether out is one of the fixed error messages.
func IsErrorMessage(out string) bool {
	switch out {
	case MessageInvalidArgs, MessageIndexOutOfRange, MessageAmbiguous, MessageNotFound:
		return true
	default:
		return false
	}
}
