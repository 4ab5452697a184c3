package citation

import (
	"fmt"
	"strings"

	"github.com/acewriter/ace/internal/reference"
)

// FormatAPA renders a record as an APA-style reference string:
//
//	Authors (Year). Title. Journal, Volume(Issue), Pages. DOI
//
// Absent fields are omitted without placeholders.
func FormatAPA(rec reference.Record) string {
	var b strings.Builder

	authors := strings.TrimSpace(rec.Authors)
	if authors != "" {
		b.WriteString(authors)
	}
	if rec.Year > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(%d)", rec.Year)
	}
	if b.Len() > 0 {
		b.WriteString(".")
	}

	if title := strings.TrimSpace(rec.Title); title != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strings.TrimSuffix(title, "."))
		b.WriteString(".")
	}

	if source := formatSource(rec); source != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(source)
		b.WriteString(".")
	}

	if doi := strings.TrimSpace(rec.DOI); doi != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(doi)
	}

	return b.String()
}

// FormatAPAList renders every record, preserving input order.
func FormatAPAList(refs []reference.Record) []string {
	out := make([]string, len(refs))
	for i, rec := range refs {
		out[i] = FormatAPA(rec)
	}
	return out
}

// formatSource builds the "Journal, Volume(Issue), Pages" segment.
func formatSource(rec reference.Record) string {
	var parts []string
	if j := strings.TrimSpace(rec.Journal); j != "" {
		parts = append(parts, j)
	}
	vol := strings.TrimSpace(rec.Volume)
	if issue := strings.TrimSpace(rec.Issue); issue != "" && vol != "" {
		vol = fmt.Sprintf("%s(%s)", vol, issue)
	}
	if vol != "" {
		parts = append(parts, vol)
	}
	if p := strings.TrimSpace(rec.Pages); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}
