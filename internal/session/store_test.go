package session

import (
	"path/filepath"
	"testing"

	"github.com/acewriter/ace/internal/reference"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRefs() []reference.Record {
	return []reference.Record{
		{Index: 1, Authors: "Smith, J.", Year: 2020, Title: "X", Journal: "Y", DOI: "10.1/x", Status: reference.StatusComplete},
		{Index: 2, Authors: "Doe, A.", Year: 2019, Title: "Z", Journal: "W", Status: reference.StatusNeedsReview, MissingCritical: []string{"DOI/URL"}},
		{Index: 3, Authors: "Brown, K.", Year: 2021, Title: "T", Journal: "J", DOI: "10.2/t", Status: reference.StatusIncompleteSecondary, MissingSecondary: []string{"Pages"}},
	}
}

func TestCurrent_CreatesSession(t *testing.T) {
	store := openTestStore(t)

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if sess.ID == "" {
		t.Error("session ID should be set")
	}

	again, err := store.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if again.ID != sess.ID {
		t.Errorf("Current() created a second session: %s != %s", again.ID, sess.ID)
	}
}

func TestSaveAndLoadReferences(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}

	got, err := store.References()
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("References() returned %d records, want 3", len(got))
	}
	if got[0].Authors != "Smith, J." || got[1].Status != reference.StatusNeedsReview {
		t.Errorf("round-trip mangled records: %+v", got)
	}
	if len(got[1].MissingCritical) != 1 {
		t.Errorf("missing-field lists should survive the round trip: %+v", got[1])
	}
}

func TestWorking_SelectionFlow(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}

	// Default: citable rows only.
	working, err := store.Working()
	if err != nil {
		t.Fatalf("Working() error = %v", err)
	}
	if len(working) != 2 {
		t.Fatalf("Working() = %d rows, want 2 before selection", len(working))
	}

	if err := store.SetSelection([]int{2}, false); err != nil {
		t.Fatalf("SetSelection() error = %v", err)
	}
	working, err = store.Working()
	if err != nil {
		t.Fatalf("Working() error = %v", err)
	}
	if len(working) != 3 {
		t.Errorf("Working() = %d rows, want 3 after accepting row 2", len(working))
	}
	// Order stays stable by row index.
	if working[0].Index != 1 || working[1].Index != 2 || working[2].Index != 3 {
		t.Errorf("Working() order = %v", working)
	}
}

func TestSetSelection_RejectsNonReviewRows(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}

	if err := store.SetSelection([]int{1}, false); err == nil {
		t.Error("SetSelection() should reject a complete row")
	}
	if err := store.SetSelection([]int{99}, false); err == nil {
		t.Error("SetSelection() should reject an unknown row")
	}
}

func TestSaveDraft_InvalidatesCitations(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}
	if err := store.SaveCitations([]Citation{{RefIndex: 1, Formatted: "Smith, J. (2020). X. Y."}}); err != nil {
		t.Fatalf("SaveCitations() error = %v", err)
	}

	if err := store.SaveDraft("New subject", "", "text", 1, false); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	cites, err := store.Citations()
	if err != nil {
		t.Fatalf("Citations() error = %v", err)
	}
	if len(cites) != 0 {
		t.Errorf("a new draft should clear the stored citations, got %v", cites)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if sess.Subject != "New subject" || sess.Draft != "text" || sess.DraftWords != 1 {
		t.Errorf("draft not stored with its subject: %+v", sess)
	}
}

func TestCitations_RoundTripOrder(t *testing.T) {
	store := openTestStore(t)

	in := []Citation{
		{RefIndex: 3, Formatted: "Brown, K. (2021). T. J."},
		{RefIndex: 1, Formatted: "Smith, J. (2020). X. Y."},
	}
	if err := store.SaveCitations(in); err != nil {
		t.Fatalf("SaveCitations() error = %v", err)
	}

	got, err := store.Citations()
	if err != nil {
		t.Fatalf("Citations() error = %v", err)
	}
	if len(got) != 2 || got[0].RefIndex != 3 || got[1].RefIndex != 1 {
		t.Errorf("Citations() = %v, want match order preserved", got)
	}
}

func TestUpdateReference(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}

	rec := sampleRefs()[1]
	rec.DOI = "10.9/repaired"
	rec.Status = reference.StatusComplete
	if err := store.UpdateReference(rec); err != nil {
		t.Fatalf("UpdateReference() error = %v", err)
	}

	got, err := store.References()
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}
	if got[1].DOI != "10.9/repaired" || got[1].Status != reference.StatusComplete {
		t.Errorf("UpdateReference() not applied: %+v", got[1])
	}

	rec.Index = 99
	if err := store.UpdateReference(rec); err == nil {
		t.Error("UpdateReference() should fail for an unknown row")
	}
}

func TestReset_ClearsEverythingAtomically(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveReferences(sampleRefs()); err != nil {
		t.Fatalf("SaveReferences() error = %v", err)
	}
	if err := store.SetSelection(nil, true); err != nil {
		t.Fatalf("SetSelection() error = %v", err)
	}
	if err := store.SaveDraft("Subject", "Ch", "draft text", 2, true); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if err := store.SaveCitations([]Citation{{RefIndex: 1, Formatted: "x"}}); err != nil {
		t.Fatalf("SaveCitations() error = %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if sess.Subject != "" || sess.Draft != "" || sess.DraftWords != 0 || sess.Extended {
		t.Errorf("Reset() left session state behind: %+v", sess)
	}

	recs, err := store.References()
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Reset() left %d references behind", len(recs))
	}

	cites, err := store.Citations()
	if err != nil {
		t.Fatalf("Citations() error = %v", err)
	}
	if len(cites) != 0 {
		t.Errorf("Reset() left %d citations behind", len(cites))
	}
}
