// Package provider defines the pluggable chat-model contract used by the
// kernel. Implementations wrap one vendor API each; the kernel never
// depends on vendor SDK types directly.
package provider

import (
	"context"
	"fmt"

	"github.com/korulabs/koru/core"
)

// Provider is a chat-capable language model backend.
type Provider interface {
	// Generate produces a response for the ordered message sequence.
	// Errors are surfaced unmodified to the caller; a failed call fails
	// the whole turn.
	Generate(ctx context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error)
}

// APIError reports a non-success HTTP response from a provider endpoint.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.Status, e.Body)
}
