package citation

import (
	"reflect"
	"testing"

	"github.com/acewriter/ace/internal/reference"
)

func testRefs() []reference.Record {
	return []reference.Record{
		{Index: 1, Authors: "Smith, J.", Year: 2020, Title: "X", Journal: "Y", DOI: "10.1/x"},
		{Index: 2, Authors: "Doe, A.", Year: 2019, Title: "Z", Journal: "W"},
		{Index: 3, Authors: "Brown, K.", Year: 2021, Title: "T", Journal: "J"},
	}
}

func TestMatch_Parenthetical(t *testing.T) {
	text := "Strength training improves performance (Smith, 2020)."

	got := NewMatcher().Match(text, testRefs())
	if len(got) != 1 || got[0].Surname() != "Smith" {
		t.Errorf("Match() = %v, want only Smith", got)
	}
}

func TestMatch_Narrative(t *testing.T) {
	text := "Doe (2019) reported similar adaptations."

	got := NewMatcher().Match(text, testRefs())
	if len(got) != 1 || got[0].Surname() != "Doe" {
		t.Errorf("Match() = %v, want only Doe", got)
	}
}

func TestMatch_WrongYearDoesNotMatch(t *testing.T) {
	text := "An earlier cohort (Smith, 2010) is out of scope."

	got := NewMatcher().Match(text, testRefs())
	if len(got) != 0 {
		t.Errorf("Match() = %v, want none (year mismatch)", got)
	}
}

func TestMatch_StrictIgnoresBareSurname(t *testing.T) {
	text := "The smithsonian archive mentions browning techniques."

	got := NewMatcher().Match(text, testRefs())
	if len(got) != 0 {
		t.Errorf("Match() = %v, want none in strict mode", got)
	}
}

func TestMatch_LooseOvermatches(t *testing.T) {
	text := "The smith at the forge."

	got := NewMatcher(WithLooseMatching()).Match(text, testRefs())
	if len(got) != 1 || got[0].Surname() != "Smith" {
		t.Errorf("loose Match() = %v, want Smith via substring", got)
	}
}

func TestMatch_DedupAndOrder(t *testing.T) {
	text := "(Brown, 2021) then (Smith, 2020) and again (Smith, 2020)."

	got := NewMatcher().Match(text, testRefs())
	// Table order, not text order; one entry per record.
	if len(got) != 2 || got[0].Index != 1 || got[1].Index != 3 {
		t.Errorf("Match() = %v, want Smith then Brown once each", got)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	text := "(Smith, 2020) and (Doe, 2019)."
	refs := testRefs()

	first := NewMatcher().Match(text, refs)
	second := NewMatcher().Match(text, refs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Match() not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}
