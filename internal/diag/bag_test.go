package diag

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	sp := source.Span{File: 0, Start: 1, End: 2}
	if !bag.Add(New(SevWarning, PrjUnknownKey, sp, "w")) {
		t.Fatal("first add rejected")
	}
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	bag.Add(NewError(SemaDuplicateLocal, sp, "e"))
	if bag.Add(NewError(SemaDuplicateLocal, sp, "dropped")) {
		t.Error("add past limit must fail")
	}
	if !bag.Full() || bag.ErrorCount() != 1 || !bag.HasWarnings() {
		t.Errorf("unexpected bag state: full=%v errors=%d", bag.Full(), bag.ErrorCount())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SemaTypeMismatch, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 3}, "a"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 3}, "a"))
	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Code != SynUnexpectedToken || items[1].Code != SemaTypeMismatch {
		t.Errorf("order = %v, %v", items[0].Code, items[1].Code)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString:    "LEX1002",
		SynDuplicateDefault:      "SYN2006",
		SemaScriptAlreadyDefined: "SEM3007",
		PrjUnknownKey:            "PRJ5001",
		GenInternal:              "GEN6001",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown codes must fall back to the unknown title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaDuplicateCase, source.Span{}, "Duplicate case").
		WithNote(source.Span{Start: 4, End: 5}, "first defined here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cs2", []byte("[proc,a]\ndef_int $x = 1;\n"))
	diags := []Diagnostic{
		NewError(SemaDuplicateLocal, source.Span{File: id, Start: 18, End: 19}, "Duplicate local variable x"),
	}
	want := "ERROR SEM3010 main.cs2:2:10 Duplicate local variable x"
	if got := FormatShort(diags, fs); got != want {
		t.Errorf("FormatShort = %q, want %q", got, want)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{Start: 3, End: 7}
	ReportError(rep, SemaTypeMismatch, span, "Type mismatch").Emit()
	ReportError(rep, SemaTypeMismatch, span, "Type mismatch").Emit()
	ReportError(rep, SemaTypeMismatch, source.Span{Start: 8, End: 9}, "Type mismatch").Emit()
	ReportError(rep, SemaTypeMismatch, span, "Other message").Emit()
	if bag.Len() != 3 || rep.Suppressed() != 1 {
		t.Fatalf("len = %d, suppressed = %d", bag.Len(), rep.Suppressed())
	}

	var nilRep *DedupReporter
	nilRep.Report(SemaTypeMismatch, SevError, span, "x", nil)
	if nilRep.Suppressed() != 0 {
		t.Fatal("nil reporter counted")
	}
}
