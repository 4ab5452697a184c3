package generate

import (
	"fmt"
	"strings"

	"github.com/acewriter/ace/internal/citation"
)

// systemPrompt fixes the register and the citation discipline for every
// request in the workflow.
const systemPrompt = `You are an academic writing assistant producing technical chapter sections.
Write formal, evidence-based prose. Cite ONLY the references you are given,
using parenthetical author-year citations such as (Smith, 2020). Never invent
references or cite anything outside the supplied list.`

// buildDraftPrompt renders the initial generation request.
func buildDraftPrompt(req Request, targetWords int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a technical section on the subject %q", req.Subject)
	if req.Chapter != "" {
		fmt.Fprintf(&b, " for the chapter %q", req.Chapter)
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Requirements:\n")
	fmt.Fprintf(&b, "- Minimum length: %d words.\n", targetWords)
	b.WriteString("- Organize the content hierarchically with section headers.\n")
	b.WriteString("- Include concrete examples and application passages.\n")
	b.WriteString("- Cite only the references listed below, as (Surname, Year).\n")

	b.WriteString("\nAllowed references:\n")
	for _, rec := range req.References {
		b.WriteString("- ")
		b.WriteString(citation.FormatAPA(rec))
		b.WriteString("\n")
	}

	return b.String()
}

// buildExtendPrompt renders the single ampliation request, carrying the
// original draft as context.
func buildExtendPrompt(req Request, draft string, targetWords int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The following draft on %q is below the %d-word target.\n", req.Subject, targetWords)
	b.WriteString("Continue it with additional sections and examples. Do not repeat ")
	b.WriteString("content already present, and keep citing only the same reference list ")
	b.WriteString("as (Surname, Year).\n\n")
	b.WriteString("Draft so far:\n\n")
	b.WriteString(draft)

	return b.String()
}
