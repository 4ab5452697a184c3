// Package bibliography parses and validates tabular reference lists.
package bibliography

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/acewriter/ace/internal/reference"
)

// Column names for the bibliography CSV contract. The header row must carry
// every one of these; matching is case-insensitive after trimming.
const (
	ColAuthors       = "Authors"
	ColYear          = "Year"
	ColTitle         = "Title"
	ColJournal       = "Journal"
	ColVolume        = "Volume"
	ColIssue         = "Issue"
	ColPages         = "Pages"
	ColDOI           = "DOI/URL"
	ColEvidenceLevel = "Evidence Level"
	ColQuartile      = "Quartile"
	ColSubtopic      = "Subtopic"
	ColInclude       = "Include"
	ColJustification = "Justification"
)

// RequiredColumns is the closed set of columns a bibliography must carry.
var RequiredColumns = []string{
	ColAuthors, ColYear, ColTitle, ColJournal,
	ColVolume, ColIssue, ColPages, ColDOI,
	ColEvidenceLevel, ColQuartile, ColSubtopic, ColInclude, ColJustification,
}

// CriticalColumns are the fields whose absence makes a row unusable for
// citation.
var CriticalColumns = []string{ColAuthors, ColYear, ColTitle, ColJournal, ColDOI}

// MissingColumnsError reports required columns absent from the header row.
// No rows are processed when this is returned.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("bibliography is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Table holds the parsed, classified bibliography in source order.
type Table struct {
	Records []reference.Record
}

// Parse reads a CSV bibliography and classifies every row. The header row is
// mandatory. It fails with *MissingColumnsError before any row is processed
// when the schema is short.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled per cell
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("bibliography is empty (header row mandatory)")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	// Excel's "CSV UTF-8" export prepends a BOM, which the reader leaves
	// stuck to the first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols, missing := indexColumns(header)
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	table := &Table{}
	for i := 1; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", i, err)
		}
		table.Records = append(table.Records, buildRecord(i, row, cols))
	}

	return table, nil
}

// indexColumns maps required column names to their header positions and
// returns the names that could not be found.
func indexColumns(header []string) (map[string]int, []string) {
	cols := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, want := range RequiredColumns {
		found := -1
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, want)
			continue
		}
		cols[want] = found
	}
	return cols, missing
}

// buildRecord converts one CSV row into a classified Record.
func buildRecord(index int, row []string, cols map[string]int) reference.Record {
	cell := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := reference.Record{
		Index:         index,
		Authors:       cell(ColAuthors),
		Title:         cell(ColTitle),
		Journal:       cell(ColJournal),
		DOI:           cell(ColDOI),
		Volume:        cell(ColVolume),
		Issue:         cell(ColIssue),
		Pages:         cell(ColPages),
		EvidenceLevel: cell(ColEvidenceLevel),
		Quartile:      cell(ColQuartile),
		Subtopic:      cell(ColSubtopic),
		Include:       cell(ColInclude),
		Justification: cell(ColJustification),
	}
	rec.Year = parseYear(cell(ColYear))

	present := func(name string) bool {
		if name == ColYear {
			return cell(ColYear) != ""
		}
		return cell(name) != ""
	}
	Classify(&rec, present)
	return rec
}

// Classify recomputes a record's status from a per-column presence predicate.
// Exposed so that repaired records (e.g. a DOI filled in later) can be
// reclassified without reparsing the table.
func Classify(rec *reference.Record, present func(col string) bool) {
	rec.MissingCritical = nil
	rec.MissingSecondary = nil

	critical := make(map[string]bool, len(CriticalColumns))
	for _, c := range CriticalColumns {
		critical[c] = true
		if !present(c) {
			rec.MissingCritical = append(rec.MissingCritical, c)
		}
	}
	for _, c := range RequiredColumns {
		if critical[c] {
			continue
		}
		if !present(c) {
			rec.MissingSecondary = append(rec.MissingSecondary, c)
		}
	}

	switch {
	case len(rec.MissingCritical) > 0:
		rec.Status = reference.StatusNeedsReview
	case len(rec.MissingSecondary) > 0:
		rec.Status = reference.StatusIncompleteSecondary
	default:
		rec.Status = reference.StatusComplete
	}
}

// Reclassify recomputes status from the record's own fields. Year counts as
// present when non-zero.
func Reclassify(rec *reference.Record) {
	fields := map[string]string{
		ColAuthors:       rec.Authors,
		ColTitle:         rec.Title,
		ColJournal:       rec.Journal,
		ColDOI:           rec.DOI,
		ColVolume:        rec.Volume,
		ColIssue:         rec.Issue,
		ColPages:         rec.Pages,
		ColEvidenceLevel: rec.EvidenceLevel,
		ColQuartile:      rec.Quartile,
		ColSubtopic:      rec.Subtopic,
		ColInclude:       rec.Include,
		ColJustification: rec.Justification,
	}
	Classify(rec, func(col string) bool {
		if col == ColYear {
			return rec.Year != 0
		}
		return strings.TrimSpace(fields[col]) != ""
	})
}

// parseYear parses a year cell leniently. Spreadsheet exports sometimes emit
// integers as floats ("2020.0"); a trailing ".0" is stripped before parsing.
// Unparseable cells yield 0.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return y
}

// Complete returns the records with no missing required fields.
func (t *Table) Complete() []reference.Record {
	return t.withStatus(reference.StatusComplete)
}

// IncompleteSecondary returns records missing only secondary fields.
func (t *Table) IncompleteSecondary() []reference.Record {
	return t.withStatus(reference.StatusIncompleteSecondary)
}

// NeedsReview returns records missing one or more critical fields.
func (t *Table) NeedsReview() []reference.Record {
	return t.withStatus(reference.StatusNeedsReview)
}

func (t *Table) withStatus(s reference.Status) []reference.Record {
	var out []reference.Record
	for _, rec := range t.Records {
		if rec.Status == s {
			out = append(out, rec)
		}
	}
	return out
}
