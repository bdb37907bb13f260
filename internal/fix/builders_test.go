package fix

import (
	"testing"

	"seq/internal/diag"
	"seq/internal/source"
)

func TestInsertTextIsEmptyEditAtStart(t *testing.T) {
	span := source.Span{File: 0, Start: 4, End: 9}
	f := InsertText("insert `in`", span, "in ")

	if f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("expected always-safe, got %s", f.Applicability)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	edit := f.Edits[0]
	if edit.Span != (source.Span{File: 0, Start: 4, End: 4}) {
		t.Fatalf("unexpected insertion span %v", edit.Span)
	}
	if edit.NewText != "in " || edit.OldText != "" {
		t.Fatalf("unexpected edit %+v", edit)
	}
}

func TestDeleteSpanKeepsGuard(t *testing.T) {
	span := source.Span{Start: 9, End: 10}
	f := DeleteSpan("remove `)`", span, ")")

	edit := f.Edits[0]
	if edit.NewText != "" {
		t.Errorf("expected empty NewText for deletion, got %q", edit.NewText)
	}
	if edit.OldText != ")" {
		t.Errorf("expected OldText ')', got %q", edit.OldText)
	}
}

func TestReplaceSpan(t *testing.T) {
	span := source.Span{Start: 0, End: 3}
	f := ReplaceSpan("rename", span, "seq", "rep")

	edit := f.Edits[0]
	if edit.NewText != "seq" || edit.OldText != "rep" || edit.Span != span {
		t.Fatalf("unexpected edit %+v", edit)
	}
}

func TestWrapWithIsMaybeIncorrect(t *testing.T) {
	span := source.Span{Start: 2, End: 5}
	f := WrapWith("wrap in braces", span, "{", "}")

	if f.Applicability != diag.FixApplicabilityMaybeIncorrect {
		t.Fatalf("expected maybe-incorrect, got %s", f.Applicability)
	}
	if len(f.Edits) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(f.Edits))
	}
	if f.Edits[0].Span.Start != 2 || f.Edits[1].Span.Start != 5 {
		t.Fatalf("unexpected wrap edits %+v", f.Edits)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	f := InsertText("t", source.Span{}, "x",
		WithID("custom"),
		MaybeIncorrect(),
		nil,
	)
	if f.ID != "custom" {
		t.Errorf("expected ID 'custom', got %q", f.ID)
	}
	if f.Applicability != diag.FixApplicabilityMaybeIncorrect {
		t.Errorf("expected maybe-incorrect, got %s", f.Applicability)
	}

	f = WrapWith("t", source.Span{}, "(", ")", WithApplicability(diag.FixApplicabilityAlwaysSafe))
	if f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Errorf("explicit applicability must win over the wrap default, got %s", f.Applicability)
	}
}
