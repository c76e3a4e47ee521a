// Package llm wraps the external language-model collaborator behind a
// single-shot completion interface so the editor core can be tested with a
// substitute instead of a real network dependency.
package llm

import "context"

// Completer issues one request/response completion call
type Completer interface {
	// Complete sends a formatted prompt and returns the model's text
	Complete(ctx context.Context, prompt string) (string, error)
}
