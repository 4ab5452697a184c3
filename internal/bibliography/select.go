package bibliography

import (
	"fmt"

	"github.com/acewriter/ace/internal/reference"
)

// Selection names the needs-review rows the caller has accepted into the
// working list.
type Selection struct {
	// All accepts every needs-review row regardless of Rows.
	All bool

	// Rows holds accepted 1-based row indices.
	Rows []int
}

// Working merges the auto-included citable records with the accepted
// needs-review records, stable by original row index. The merge is a pure
// function of its inputs: identical inputs always yield the identical list.
//
// It fails when a selected index does not exist or does not reference a
// needs-review row.
func (t *Table) Working(sel Selection) ([]reference.Record, error) {
	accepted := make(map[int]bool, len(sel.Rows))
	for _, idx := range sel.Rows {
		rec, ok := t.byIndex(idx)
		if !ok {
			return nil, fmt.Errorf("no reference at row %d", idx)
		}
		if rec.Status != reference.StatusNeedsReview {
			return nil, fmt.Errorf("row %d does not need review (status %s)", idx, rec.Status)
		}
		accepted[idx] = true
	}

	// Records are stored in source order, so filtering preserves the
	// stable-by-original-index contract.
	var out []reference.Record
	for _, rec := range t.Records {
		if rec.Citable() || sel.All && rec.Status == reference.StatusNeedsReview || accepted[rec.Index] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (t *Table) byIndex(idx int) (reference.Record, bool) {
	for _, rec := range t.Records {
		if rec.Index == idx {
			return rec, true
		}
	}
	return reference.Record{}, false
}
