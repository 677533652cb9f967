// Package expand models the external language-model collaborator that turns
// a short todo description into a detailed one. The rest of the system only
// sees the Expander contract; the call may fail or time out, and the caller
// decides what to do with the original text when it does.
package expand

import "context"

// Expander expands a short piece of text into a detailed description.
// Implementations must honor ctx cancellation and deadlines.
type Expander interface {
	Expand(ctx context.Context, text string) (string, error)
}

// Noop returns the input unchanged. Used when no expansion backend is
// configured.
type Noop struct{}

func (Noop) Expand(_ context.Context, text string) (string, error) {
	return text, nil
}
