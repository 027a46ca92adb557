// Package assist is the boundary to the external generative collaborator
// used for AI-assisted dialect conversion. The collaborator is consumed
// through a single request/response round trip; any transport failure or
// response-shape violation is recoverable and absorbed by the caller's
// deterministic fallback, never propagated as a fatal error.
package assist

import (
	"context"
)

// Provider abstracts the generative collaborator. Implementations make
// exactly one generation attempt per Complete call; the conversion
// engine's deterministic fallback is the retry policy.
type Provider interface {
	// Complete sends one prompt and returns the raw reply text.
	Complete(ctx context.Context, prompt string) (string, error)

	// IsConfigured reports whether the provider can serve requests. An
	// unconfigured provider routes every conversion deterministically.
	IsConfigured() bool
}
