package diag

import (
	"math"
	"testing"

	"keyva/internal/source"
)

func TestBagCapAndHasErrors(t *testing.T) {
	b := NewBag(2)
	if b.HasErrors() {
		t.Fatal("empty bag has errors")
	}
	if !b.Add(Diagnostic{Severity: SevWarning}) {
		t.Fatal("first Add rejected")
	}
	if !b.Add(Diagnostic{Severity: SevError}) {
		t.Fatal("second Add rejected")
	}
	if b.Add(Diagnostic{}) {
		t.Fatal("Add over cap accepted")
	}
	if !b.HasErrors() {
		t.Fatal("error diagnostic not seen")
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Code: SynUnexpectedToken, Primary: source.Span{Start: 9, End: 10}})
	b.Add(Diagnostic{Code: LexUnknownChar, Primary: source.Span{Start: 2, End: 3}})
	b.Add(Diagnostic{Code: LexUnterminatedString, Primary: source.Span{Start: 2, End: 3}, Severity: SevError})

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError {
		t.Fatalf("severity tiebreak failed: %+v", items[0])
	}
	if items[2].Code != SynUnexpectedToken {
		t.Fatalf("offset ordering failed: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := Diagnostic{Code: LexUnknownChar, Primary: source.Span{Start: 1, End: 2}}
	b.Add(d)
	b.Add(d)
	b.Add(Diagnostic{Code: LexUnknownChar, Primary: source.Span{Start: 5, End: 6}})

	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", b.Len())
	}
}

func TestBagMergeGrowsAndSaturates(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: LexUnknownChar})

	other := NewBag(2)
	other.Add(Diagnostic{Code: SynUnexpectedToken})
	other.Add(Diagnostic{Code: SynExpectEnd})

	a.Merge(other)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Merge: len=%d cap=%d, want 3/3", a.Len(), a.Cap())
	}

	// Combined counts past uint16 range clamp max instead of wrapping it
	// below len(items).
	big := &Bag{items: make([]Diagnostic, 40000), max: 40000}
	big.Merge(&Bag{items: make([]Diagnostic, 40000), max: 40000})
	if big.Len() != 80000 || big.Cap() != math.MaxUint16 {
		t.Fatalf("Merge overflow: len=%d cap=%d", big.Len(), big.Cap())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(4)
	var r Reporter = BagReporter{Bag: b}
	r.Report(SynExpectEnd, SevError, source.Span{}, "expected 'end'", nil)
	if b.Len() != 1 || b.Items()[0].Message != "expected 'end'" {
		t.Fatalf("report not collected: %+v", b.Items())
	}
}
