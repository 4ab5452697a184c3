// Package generate drafts technical sections through an external
// text-generation service, constrained to a validated reference list.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/acewriter/ace/internal/reference"
)

// TargetWords is the default soft minimum draft length. Shorter output is
// accepted when the subject is legitimately exhausted; the target triggers
// at most one ampliation request, never a retry loop.
const TargetWords = 1500

// Request describes one draft to generate.
type Request struct {
	Subject    string
	Chapter    string
	References []reference.Record
}

// Draft is a generated text body. Words is always recomputed from Text,
// never carried over from a previous generation.
type Draft struct {
	Text  string `json:"text"`
	Words int    `json:"words"`

	// Extended is set when the ampliation pass contributed text.
	Extended bool `json:"extended"`

	// ExtendFailed is set when the ampliation request failed and the
	// original short draft was kept. Not a fatal condition.
	ExtendFailed bool `json:"extend_failed,omitempty"`

	// Deduplicated is set when the extension verbatim-repeated the
	// original draft and the duplicate was stripped before concatenation.
	Deduplicated bool `json:"deduplicated,omitempty"`
}

// ServiceError wraps a failure of the external generation service. The
// session state preceding the failed call is left untouched by callers.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Generator produces drafts through a CompletionService.
type Generator struct {
	svc    CompletionService
	target int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTargetWords overrides the soft minimum word count.
func WithTargetWords(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.target = n
		}
	}
}

// NewGenerator creates a Generator over the given service.
func NewGenerator(svc CompletionService, opts ...GeneratorOption) *Generator {
	g := &Generator{svc: svc, target: TargetWords}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TargetWords returns the configured soft minimum.
func (g *Generator) TargetWords() int {
	return g.target
}

// Generate produces a draft for the request. When the first response falls
// short of the word target it issues exactly one follow-up continuation
// request and concatenates the two parts; a failed follow-up falls back to
// the original draft rather than failing the operation.
func (g *Generator) Generate(ctx context.Context, req Request) (Draft, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return Draft{}, fmt.Errorf("subject is required")
	}

	text, err := g.svc.Complete(ctx, systemPrompt, buildDraftPrompt(req, g.target))
	if err != nil {
		return Draft{}, &ServiceError{Op: "draft", Err: err}
	}
	text = strings.TrimSpace(text)

	draft := Draft{Text: text, Words: WordCount(text)}
	if draft.Words >= g.target {
		return draft, nil
	}

	// Single bounded ampliation. Guarded by the length check above; the
	// combined draft is accepted as-is even if still short.
	ext, err := g.svc.Complete(ctx, systemPrompt, buildExtendPrompt(req, text, g.target))
	if err != nil {
		draft.ExtendFailed = true
		return draft, nil
	}
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return draft, nil
	}

	if strings.Contains(ext, text) {
		// The service echoed the original before continuing; keep only
		// the continuation.
		ext = strings.TrimSpace(strings.Replace(ext, text, "", 1))
		draft.Deduplicated = true
		if ext == "" {
			return draft, nil
		}
	}

	draft.Text = text + "\n\n" + ext
	draft.Words = WordCount(draft.Text)
	draft.Extended = true
	return draft, nil
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
