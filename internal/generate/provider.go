package generate

import (
	"context"
	"strings"
)

// CompletionService produces text from a chat-completion style request.
//
// Implementations are free to be stochastic: identical inputs need not yield
// identical text. Callers must only rely on structural properties of the
// output, never exact content.
type CompletionService interface {
	// Complete sends one system+user prompt pair and returns the
	// generated text.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// ModelName returns the name of the backing model.
	ModelName() string
}

// KeyScheme is the expected bearer-token prefix for the generation service.
const KeyScheme = "sk-"

// PlausibleKey reports whether a credential carries the expected scheme
// prefix. Advisory only: it is a typo check, not authentication.
func PlausibleKey(key string) bool {
	return strings.HasPrefix(strings.TrimSpace(key), KeyScheme)
}
