// Package reference defines the core domain types for bibliographic records.
package reference

import (
	"strconv"
	"strings"
)

// Status classifies how complete a record's metadata is.
type Status string

const (
	// StatusComplete means every required field is present.
	StatusComplete Status = "complete"

	// StatusIncompleteSecondary means all critical fields are present but
	// one or more secondary fields are blank. The record is still citable.
	StatusIncompleteSecondary Status = "incomplete_secondary"

	// StatusNeedsReview means at least one critical field is blank. The
	// record is excluded from the working list unless explicitly accepted.
	StatusNeedsReview Status = "needs_review"
)

// Record represents one row of a bibliography table.
//
// Records are created by the bibliography parser and immutable afterwards;
// duplicate rows are retained as distinct records.
type Record struct {
	// Index is the 1-based row number in the source table, header excluded.
	Index int `json:"index"`

	// Critical fields
	Authors string `json:"authors"` // "Surname, Initial" convention
	Year    int    `json:"year"`
	Title   string `json:"title"`
	Journal string `json:"journal"`
	DOI     string `json:"doi"` // DOI or URL

	// Secondary fields
	Volume        string `json:"volume,omitempty"`
	Issue         string `json:"issue,omitempty"`
	Pages         string `json:"pages,omitempty"`
	EvidenceLevel string `json:"evidence_level,omitempty"`
	Quartile      string `json:"quartile,omitempty"`
	Subtopic      string `json:"subtopic,omitempty"`
	Include       string `json:"include,omitempty"`
	Justification string `json:"justification,omitempty"`

	// Classification, computed at parse time
	Status           Status   `json:"status"`
	MissingCritical  []string `json:"missing_critical,omitempty"`
	MissingSecondary []string `json:"missing_secondary,omitempty"`
}

// Surname returns the first author's family name: the first comma-delimited
// token of the Authors field. "Smith, J.; Doe, A." yields "Smith".
func (r Record) Surname() string {
	s := strings.TrimSpace(r.Authors)
	if idx := strings.IndexAny(s, ",;"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// Citable reports whether the record may be used for generation without
// explicit caller confirmation.
func (r Record) Citable() bool {
	return r.Status == StatusComplete || r.Status == StatusIncompleteSecondary
}

// Label returns a short display form: "Smith, J. (2020) - Title".
func (r Record) Label() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.Authors))
	if r.Year > 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(r.Year))
		b.WriteString(")")
	}
	if r.Title != "" {
		b.WriteString(" - ")
		b.WriteString(r.Title)
	}
	return strings.TrimSpace(b.String())
}
