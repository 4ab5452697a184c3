// Package citation matches in-text author-year citations against a
// reference table and renders APA-style reference strings.
package citation

import (
	"fmt"
	"strings"

	"github.com/acewriter/ace/internal/reference"
)

// Matcher finds which references a draft actually cites.
//
// The primary rule is an exact parenthetical occurrence of "(Surname, YYYY)"
// in the text. The loose rule, a case-insensitive surname substring test, is
// strictly weaker and over-matches (common-surname substrings); it exists for
// model output that drops the parenthetical convention and must be enabled
// explicitly.
type Matcher struct {
	loose bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLooseMatching enables the surname-substring fallback rule.
func WithLooseMatching() Option {
	return func(m *Matcher) {
		m.loose = true
	}
}

// NewMatcher creates a Matcher. Without options only the exact parenthetical
// rule applies.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the deduplicated records cited in text, in table order.
// Identical (text, refs) inputs always yield the identical result.
func (m *Matcher) Match(text string, refs []reference.Record) []reference.Record {
	lower := ""
	if m.loose {
		lower = strings.ToLower(text)
	}

	seen := make(map[int]bool, len(refs))
	var out []reference.Record
	for _, rec := range refs {
		if seen[rec.Index] {
			continue
		}
		if m.cited(text, lower, rec) {
			seen[rec.Index] = true
			out = append(out, rec)
		}
	}
	return out
}

func (m *Matcher) cited(text, lowerText string, rec reference.Record) bool {
	surname := rec.Surname()
	if surname == "" {
		return false
	}

	// Exact parenthetical author-year citation, e.g. "(Smith, 2020)".
	if rec.Year > 0 && strings.Contains(text, fmt.Sprintf("(%s, %d)", surname, rec.Year)) {
		return true
	}
	// Narrative form "Smith (2020)" uses the same tokens.
	if rec.Year > 0 && strings.Contains(text, fmt.Sprintf("%s (%d)", surname, rec.Year)) {
		return true
	}

	if m.loose {
		return strings.Contains(lowerText, strings.ToLower(surname))
	}
	return false
}
